package playtune

import (
	"strings"
	"testing"
)

func TestReadCommand(t *testing.T) {
	// One of each command type, without volume bytes.
	data := []byte{
		// Delay of 0x1234 ms
		0x12, 0x34,
		// Note 0x40 on, generator 2
		0x92, 0x40,
		// Note off, generator 2
		0x82,
		// Instrument change to 0x19, generator 5; top bit of the operand
		// must be masked off.
		0xc5, 0x99,
		// Restart marker
		0xe0,
		// End of score
		0xf0,
	}
	command, next, e := ReadCommand(data, 0, false)
	if e != nil {
		t.Logf("Failed reading delay command: %s\n", e)
		t.FailNow()
	}
	delay, ok := command.(*DelayCommand)
	if !ok || (delay.Milliseconds != 0x1234) {
		t.Logf("Read wrong delay command: %s\n", command)
		t.FailNow()
	}
	if next != 2 {
		t.Logf("Wrong cursor after delay: expected 2, got %d\n", next)
		t.FailNow()
	}
	command, next, e = ReadCommand(data, next, false)
	if e != nil {
		t.Logf("Failed reading note-on command: %s\n", e)
		t.FailNow()
	}
	noteOn, ok := command.(*NoteOnCommand)
	if !ok || (noteOn.Generator != 2) || (noteOn.Note != 0x40) ||
		noteOn.HasVolume {
		t.Logf("Read wrong note-on command: %s\n", command)
		t.FailNow()
	}
	command, next, e = ReadCommand(data, next, false)
	if e != nil {
		t.Logf("Failed reading note-off command: %s\n", e)
		t.FailNow()
	}
	noteOff, ok := command.(*NoteOffCommand)
	if !ok || (noteOff.Generator != 2) {
		t.Logf("Read wrong note-off command: %s\n", command)
		t.FailNow()
	}
	command, next, e = ReadCommand(data, next, false)
	if e != nil {
		t.Logf("Failed reading instrument-change command: %s\n", e)
		t.FailNow()
	}
	change, ok := command.(*InstrumentChangeCommand)
	if !ok || (change.Generator != 5) || (change.Instrument != 0x19) {
		t.Logf("Read wrong instrument-change command: %s\n", command)
		t.FailNow()
	}
	command, next, e = ReadCommand(data, next, false)
	if e != nil {
		t.Logf("Failed reading restart marker: %s\n", e)
		t.FailNow()
	}
	if _, ok = command.(*RestartCommand); !ok {
		t.Logf("Expected a restart marker, got: %s\n", command)
		t.FailNow()
	}
	command, next, e = ReadCommand(data, next, false)
	if e != nil {
		t.Logf("Failed reading end-of-score command: %s\n", e)
		t.FailNow()
	}
	if _, ok = command.(*EndOfScoreCommand); !ok {
		t.Logf("Expected end of score, got: %s\n", command)
		t.FailNow()
	}
	if next != len(data) {
		t.Logf("Wrong final cursor: expected %d, got %d\n", len(data), next)
		t.FailNow()
	}
}

func TestReadCommandWithVolume(t *testing.T) {
	data := []byte{0x90, 0x45, 0x64}
	command, next, e := ReadCommand(data, 0, true)
	if e != nil {
		t.Logf("Failed reading note-on with volume: %s\n", e)
		t.FailNow()
	}
	noteOn, ok := command.(*NoteOnCommand)
	if !ok || !noteOn.HasVolume || (noteOn.Volume != 0x64) {
		t.Logf("Read wrong note-on command: %s\n", command)
		t.FailNow()
	}
	if next != 3 {
		t.Logf("A note-on with volume must be 3 bytes; cursor was %d\n", next)
		t.FailNow()
	}
	// The same bytes without volume expected must only consume 2 bytes.
	_, next, e = ReadCommand(data, 0, false)
	if e != nil {
		t.Logf("Failed reading note-on without volume: %s\n", e)
		t.FailNow()
	}
	if next != 2 {
		t.Logf("A note-on without volume must be 2 bytes; cursor was %d\n",
			next)
		t.FailNow()
	}
}

func TestReadCommandGeneratorIndex(t *testing.T) {
	// The generator index is always the low 4 bits of the command byte.
	for g := 0; g < MaxToneGenerators; g++ {
		command, _, e := ReadCommand([]byte{0x90 | uint8(g), 0x40}, 0, false)
		if e != nil {
			t.Logf("Failed reading note-on for generator %d: %s\n", g, e)
			t.FailNow()
		}
		noteOn := command.(*NoteOnCommand)
		if int(noteOn.Generator) != g {
			t.Logf("Wrong generator index: expected %d, got %d\n", g,
				noteOn.Generator)
			t.FailNow()
		}
	}
}

func TestReadCommandTruncated(t *testing.T) {
	// Each of these streams ends where an operand byte is required.
	truncated := [][]byte{
		// Delay missing its low byte
		{0x00},
		// Note-on missing its note
		{0x91},
		// Note-on missing its volume
		{0x91, 0x40},
		// Instrument change missing its operand
		{0xc1},
	}
	for i, data := range truncated {
		expectVolume := i == 2
		_, _, e := ReadCommand(data, 0, expectVolume)
		if e == nil {
			t.Logf("Didn't get expected error for truncated stream %d\n", i)
			t.FailNow()
		}
		truncErr, ok := e.(*TruncatedStreamError)
		if !ok {
			t.Logf("Expected a TruncatedStreamError for stream %d, got: %s\n",
				i, e)
			t.FailNow()
		}
		if truncErr.Offset != 0 {
			t.Logf("Wrong offset in truncation error for stream %d: %d\n", i,
				truncErr.Offset)
			t.FailNow()
		}
		t.Logf("Got expected error for truncated stream %d: %s\n", i, e)
	}
}

func TestReadCommandUnknown(t *testing.T) {
	// 0xa0, 0xb0, and 0xd0 opcodes are not part of the protocol.
	for _, b := range []byte{0xa5, 0xb0, 0xdf} {
		_, _, e := ReadCommand([]byte{b, 0x00}, 0, false)
		unknownErr, ok := e.(*UnknownCommandError)
		if !ok {
			t.Logf("Expected an UnknownCommandError for 0x%02x, got: %v\n", b,
				e)
			t.FailNow()
		}
		if (unknownErr.Byte != b) || (unknownErr.Offset != 0) {
			t.Logf("Wrong error contents for 0x%02x: %s\n", b, e)
			t.FailNow()
		}
		t.Logf("Got expected error for command byte 0x%02x: %s\n", b, e)
	}
}

func TestErrorWindow(t *testing.T) {
	data := make([]byte, 40)
	for i := range data {
		data[i] = uint8(i)
	}
	// An interior fault: 16 bytes on each side of the bracketed byte.
	window := ErrorWindow(data, 20)
	if !strings.Contains(window, "[14]") {
		t.Logf("Window doesn't bracket the faulting byte: %s\n", window)
		t.FailNow()
	}
	fields := strings.Fields(window)
	if len(fields) != 33 {
		t.Logf("Expected 33 bytes in the window, got %d: %s\n", len(fields),
			window)
		t.FailNow()
	}
	if (fields[0] != "04") || (fields[len(fields)-1] != "24") {
		t.Logf("Window covers the wrong byte range: %s\n", window)
		t.FailNow()
	}
	// A fault near the start must clip to the buffer.
	window = ErrorWindow(data, 2)
	fields = strings.Fields(window)
	if (len(fields) != 19) || (fields[0] != "00") || (fields[2] != "[02]") {
		t.Logf("Window near buffer start is wrong: %s\n", window)
		t.FailNow()
	}
	// A fault at the end of the buffer marks the missing byte.
	window = ErrorWindow(data, len(data))
	if !strings.HasSuffix(window, "[??]") {
		t.Logf("Window at buffer end doesn't mark the missing byte: %s\n",
			window)
		t.FailNow()
	}
}
