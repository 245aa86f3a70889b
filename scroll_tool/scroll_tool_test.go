package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yalue/playtune"
)

func TestNoteName(t *testing.T) {
	expected := map[uint8]string{
		// Middle C and friends
		60: "4C",
		61: "4C#",
		64: "4E",
		69: "4A",
		0:  "-1C",
		// Percussion codes
		128 + 36: "KickD",
		128 + 42: "HHatC",
		// An unnamed percussion code
		128 + 100: "P100",
	}
	for note, name := range expected {
		if noteName(note) != name {
			t.Logf("Wrong name for note %d: expected %q, got %q\n", note,
				name, noteName(note))
			t.FailNow()
		}
	}
}

func TestRenderScroll(t *testing.T) {
	data := []byte{
		0x00, 0x64,
		0x90, 0x40,
		0x01, 0x2c,
		0x80,
		0xf0,
	}
	score, e := playtune.DecodeScore(data, nil)
	if e != nil {
		t.Logf("Failed decoding score: %s\n", e)
		t.FailNow()
	}
	var output bytes.Buffer
	renderScroll(&output, score, data, "song", &renderOptions{generators: 6})
	text := output.String()
	t.Logf("Rendered scroll:\n%s", text)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	// Titles (with surrounding blank lines) plus one line per snapshot.
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "    0       0.400 ") {
		t.Logf("Wrong final line timestamp: %q\n", last)
		t.FailNow()
	}
	if !strings.Contains(text, "4E") {
		t.Logf("The scroll doesn't name the playing note\n")
		t.FailNow()
	}
	if !strings.Contains(text, "0002: 90 40 01 2C") {
		t.Logf("The scroll doesn't show the second snapshot's bytes\n")
		t.FailNow()
	}
	if !strings.Contains(text, "0006: 80 F0") {
		t.Logf("The scroll doesn't show the final snapshot's bytes\n")
		t.FailNow()
	}
	// The second snapshot: a 300 ms delay starting at 0.100.
	if !strings.Contains(text, "  300       0.100 ") {
		t.Logf("The scroll doesn't show the second snapshot's timing\n")
		t.FailNow()
	}
}

func TestRenderScrollHexMode(t *testing.T) {
	data := []byte{0x90, 0x40, 0x00, 0x64, 0x80, 0xf0}
	score, e := playtune.DecodeScore(data, nil)
	if e != nil {
		t.Logf("Failed decoding score: %s\n", e)
		t.FailNow()
	}
	var output bytes.Buffer
	renderScroll(&output, score, data, "song", &renderOptions{
		generators: 6,
		hexNotes:   true,
	})
	if !strings.Contains(output.String(), "x40") {
		t.Logf("Hex mode didn't show the raw note number:\n%s",
			output.String())
		t.FailNow()
	}
}

func TestRenderScrollWarningMarker(t *testing.T) {
	// Two adjacent delays produce a flagged second snapshot.
	data := []byte{0x00, 0x64, 0x00, 0x64, 0xf0}
	score, e := playtune.DecodeScore(data, nil)
	if e != nil {
		t.Logf("Failed decoding score: %s\n", e)
		t.FailNow()
	}
	var output bytes.Buffer
	renderScroll(&output, score, data, "song", &renderOptions{generators: 6})
	if !strings.Contains(output.String(), "<--") {
		t.Logf("The flagged snapshot has no warning marker:\n%s",
			output.String())
		t.FailNow()
	}
}

func TestRenderCodeOutput(t *testing.T) {
	data := []byte{
		0x00, 0x64,
		0x90, 0x40,
		0x01, 0x2c,
		0x80,
		0xf0,
	}
	score, e := playtune.DecodeScore(data, nil)
	if e != nil {
		t.Logf("Failed decoding score: %s\n", e)
		t.FailNow()
	}
	var output bytes.Buffer
	renderScroll(&output, score, data, "song", &renderOptions{
		generators: 6,
		codeOutput: true,
	})
	text := output.String()
	t.Logf("Rendered C source:\n%s", text)
	if !strings.Contains(text, "const byte PROGMEM score [] = {") {
		t.Logf("Missing C array framing\n")
		t.FailNow()
	}
	if !strings.Contains(text, "0x90,0x40,0x01,0x2C,") {
		t.Logf("Missing C byte dump for the second snapshot\n")
		t.FailNow()
	}
	// The terminator is written with the closing brace, not as a trailing
	// comma on the last scroll line.
	if strings.Contains(text, "0xF0,") {
		t.Logf("The terminator must not appear in the byte dumps\n")
		t.FailNow()
	}
	if !strings.Contains(text, " 0xf0};") {
		t.Logf("Missing terminator and closing brace\n")
		t.FailNow()
	}
	if !strings.Contains(text, "1 tone generator is used") {
		t.Logf("Missing generator-count summary comment\n")
		t.FailNow()
	}
	// Every scroll line must sit inside a comment so the array compiles.
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "*/") && !strings.HasPrefix(line, "/*") {
			t.Logf("Scroll line isn't commented: %q\n", line)
			t.FailNow()
		}
	}
}
