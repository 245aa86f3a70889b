// This defines a command-line utility for displaying a Playtune bytestream
// (a MIDITONES .bin file) as a time-ordered scroll, sort of like a piano roll
// with non-uniform time, or for emitting it as an annotated C source array.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/yalue/playtune"
)

// Controls how the scroll is formatted.
type renderOptions struct {
	// The number of tone generator columns to display, 1 through 16.
	generators int
	// If true, print each note's volume next to its name.
	showVolume bool
	// If true, print raw note numbers in hex instead of note names.
	hexNotes bool
	// If true, note values 128-255 are percussion codes and get percussion
	// names; otherwise such values are shown raw.
	percussionNotes bool
	// If true, format the output as a C source array with the scroll in
	// comments.
	codeOutput bool
}

// Writes one scroll line for a snapshot: the delay, the timestamp, the state
// of every displayed generator, and the bytes that produced it. Lines for
// snapshots with warnings get a trailing marker.
func writeSnapshotLine(w io.Writer, s *playtune.Snapshot, data []byte,
	opts *renderOptions, isFinal bool) {
	var line strings.Builder
	if opts.codeOutput {
		line.WriteString("/*")
	}
	fmt.Fprintf(&line, "%5d %7d.%03d ", s.DelayMilliseconds,
		s.TimeMilliseconds/1000, s.TimeMilliseconds%1000)
	for g := 0; g < opts.generators; g++ {
		state := &s.Generators[g]
		showRaw := opts.hexNotes ||
			((state.Note >= 128) && !opts.percussionNotes)
		switch {
		case state.Playing && showRaw:
			fmt.Fprintf(&line, "%6s", fmt.Sprintf("x%02X", state.Note))
		case state.Playing:
			fmt.Fprintf(&line, "%6s", noteName(state.Note))
		case state.InstrumentChanged:
			// A silent generator that just switched instruments.
			fmt.Fprintf(&line, "%6s", fmt.Sprintf("i%d", state.Instrument))
		default:
			line.WriteString("      ")
		}
		if opts.showVolume {
			if state.Playing && state.HasVolume {
				fmt.Fprintf(&line, " v%-3d", state.Volume)
			} else {
				line.WriteString("     ")
			}
		}
	}
	fmt.Fprintf(&line, "   %04X: ", s.StartOffset)
	if opts.codeOutput {
		line.WriteString("*/ ")
	}
	end := s.EndOffset
	// The C array must not end with a trailing comma before the terminator,
	// so the final line's 0xf0 is emitted with the closing brace instead.
	if opts.codeOutput && isFinal && (end > s.StartOffset) &&
		(data[end-1] == 0xf0) {
		end--
	}
	for i := s.StartOffset; i < end; i++ {
		if opts.codeOutput {
			fmt.Fprintf(&line, "0x%02X,", data[i])
		} else {
			fmt.Fprintf(&line, "%02X ", data[i])
		}
	}
	if s.Warning && !opts.codeOutput {
		line.WriteString("  <-- check this")
	}
	fmt.Fprintf(w, "%s\n", line.String())
}

// Writes the scroll column titles.
func writeTitles(w io.Writer, opts *renderOptions) {
	fmt.Fprintf(w, "\n")
	if opts.codeOutput {
		fmt.Fprintf(w, "//")
	}
	fmt.Fprintf(w, "duration    time   ")
	for g := 0; g < opts.generators; g++ {
		if opts.showVolume {
			fmt.Fprintf(w, "   gen%-5d", g)
		} else {
			fmt.Fprintf(w, " gen%-2d", g)
		}
	}
	fmt.Fprintf(w, "        bytestream code\n\n")
}

// Renders the decoded score as a scroll (or as an annotated C array) to w.
// The data argument must be the same buffer the score was decoded from; the
// snapshots' byte ranges index into it.
func renderScroll(w io.Writer, score *playtune.Score, data []byte,
	baseName string, opts *renderOptions) {
	if opts.codeOutput {
		fmt.Fprintf(w, "// Playtune bytestream for file \"%s.bin\"\n",
			baseName)
		fmt.Fprintf(w, "const byte PROGMEM score [] = {\n")
	}
	writeTitles(w, opts)
	for i, s := range score.Snapshots {
		writeSnapshotLine(w, s, data, opts, i == len(score.Snapshots)-1)
	}
	if opts.codeOutput {
		fmt.Fprintf(w, " 0xf0};\n")
		count := score.Stats.GeneratorsUsedCount()
		plural := "s are"
		if count == 1 {
			plural = " is"
		}
		fmt.Fprintf(w, "// This score contains %d bytes, and %d tone "+
			"generator%s used.\n", len(data), count, plural)
	}
}

// Prints the pass statistics in a human-readable form.
func writeSummary(w io.Writer, score *playtune.Score) {
	stats := &score.Stats
	fmt.Fprintf(w, "\nAt most %d tone generators were used.\n",
		stats.MaxGeneratorIndex+1)
	fmt.Fprintf(w, "Total duration: %d.%03d seconds.\n", score.TotalTime/1000,
		score.TotalTime%1000)
	if stats.NotesSkipped > 0 {
		fmt.Fprintf(w, "%d notes were not displayed because of the "+
			"display generator limit.\n", stats.NotesSkipped)
	}
	if stats.StopNotesBeforeStart > 0 {
		fmt.Fprintf(w, "%d notes were stopped and restarted with no "+
			"intervening delay.\n", stats.StopNotesBeforeStart)
	}
	if stats.ConsecutiveDelays > 0 {
		fmt.Fprintf(w, "%d pairs of adjacent delays could have been "+
			"merged.\n", stats.ConsecutiveDelays)
	}
	if stats.RestartMarks > 0 {
		fmt.Fprintf(w, "The score contains %d restart marker(s).\n",
			stats.RestartMarks)
	}
	if stats.VolumeSeen {
		fmt.Fprintf(w, "Note volumes range from %d to %d.\n",
			stats.MinVolume, stats.MaxVolume)
	}
	if stats.InstrumentsSeen {
		fmt.Fprintf(w, "Instruments used:\n")
		for i, count := range stats.InstrumentUseCounts {
			if count == 0 {
				continue
			}
			fmt.Fprintf(w, "  %3d %s: %d note(s)\n", i, instrumentNames[i],
				count)
		}
	}
}

// Reads the full score file into memory.
func loadScoreFile(name string) ([]byte, error) {
	data, e := ioutil.ReadFile(name)
	if e != nil {
		return nil, errors.Wrapf(e, "couldn't read score file %s", name)
	}
	return data, nil
}

func run() int {
	var filename string
	var generatorCount int
	var expectVolume, ignoreVolume, hexNotes, codeOutput bool
	var percussionNotes bool
	flag.StringVar(&filename, "input_file", "", "The .bin score file to "+
		"display.")
	flag.IntVar(&generatorCount, "generators", 6, "The number of tone "+
		"generators to display, up to 16.")
	flag.BoolVar(&expectVolume, "volume", false, "If set, the file "+
		"contains note volume information, which is displayed.")
	flag.BoolVar(&ignoreVolume, "ignore_volume", false, "If set, the file "+
		"contains note volume information, but it isn't displayed.")
	flag.BoolVar(&hexNotes, "hex", false, "If set, show raw note numbers "+
		"instead of note names.")
	flag.BoolVar(&codeOutput, "code", false, "If set, write an annotated C "+
		"source array to <base>.c instead of printing a scroll.")
	flag.BoolVar(&percussionNotes, "percussion", true, "If set, note "+
		"values 128-255 are displayed as percussion names.")
	flag.Parse()
	if filename == "" {
		fmt.Printf("Invalid arguments. Run with -help for more " +
			"information.\n")
		return 1
	}
	if (generatorCount < 1) || (generatorCount > playtune.MaxToneGenerators) {
		fmt.Printf("The generator count must be between 1 and %d.\n",
			playtune.MaxToneGenerators)
		return 1
	}
	data, e := loadScoreFile(filename)
	if e != nil {
		fmt.Printf("%s\n", e)
		return 1
	}
	baseName := strings.TrimSuffix(filename, ".bin")
	fmt.Printf("Processing %s, %d bytes\n", filename, len(data))
	decodeOptions := &playtune.DecodeOptions{
		ExpectVolume:      expectVolume || ignoreVolume,
		PercussionNotes:   percussionNotes,
		DisplayGenerators: generatorCount,
	}
	// A fatal mid-stream error doesn't stop the display: the scroll still
	// covers everything decoded before the fault.
	score, decodeErr := playtune.DecodeScore(data, decodeOptions)
	output := os.Stdout
	if codeOutput {
		outFile, e := os.Create(baseName + ".c")
		if e != nil {
			fmt.Printf("%s\n", errors.Wrapf(e, "couldn't create output "+
				"file %s.c", baseName))
			return 1
		}
		defer outFile.Close()
		output = outFile
	}
	renderOpts := &renderOptions{
		generators:      generatorCount,
		showVolume:      score.Options.ExpectVolume && !ignoreVolume,
		hexNotes:        hexNotes,
		percussionNotes: score.Options.PercussionNotes,
		codeOutput:      codeOutput,
	}
	if score.Header != nil {
		fmt.Printf("Score header: %s\n", score.Header)
	}
	renderScroll(output, score, data, baseName, renderOpts)
	writeSummary(os.Stdout, score)
	if decodeErr != nil {
		fmt.Fprintf(os.Stderr, "\n---> file format error: %s\n", decodeErr)
		return 8
	}
	fmt.Printf("Done.\n")
	return 0
}

func main() {
	os.Exit(run())
}
