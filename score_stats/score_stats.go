// This defines a command-line utility for gathering information about a
// directory of Playtune score files: which instruments and tone generators
// they use, and how many encoding anomalies they contain.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/yalue/playtune"
)

// Keeps track of accumulated counts across every scanned score.
type scoreStats struct {
	// One value per instrument: the number of notes started with it, summed
	// over scores that contain instrument information.
	noteCounts [128]uint64
	// The number of notes started per tone generator index.
	generatorCounts [playtune.MaxToneGenerators]uint64
	// Totals across all scanned scores.
	totalTime             uint64
	totalStopStartPairs   uint64
	totalMergeableDelays  uint64
	scoresWithVolume      int
	scoresWithInstruments int
	scoresScanned         int
}

// Dumps the accumulated totals to stdout.
func (s *scoreStats) printInfo() {
	fmt.Printf("Scanned %d score(s), %d.%03d seconds of music total.\n",
		s.scoresScanned, s.totalTime/1000, s.totalTime%1000)
	fmt.Printf("%d score(s) carry volume, %d carry instruments.\n",
		s.scoresWithVolume, s.scoresWithInstruments)
	if (s.totalStopStartPairs != 0) || (s.totalMergeableDelays != 0) {
		fmt.Printf("Anomalies: %d redundant stop/start pair(s), %d "+
			"mergeable delay pair(s).\n", s.totalStopStartPairs,
			s.totalMergeableDelays)
	}
	for i, count := range s.generatorCounts {
		if count == 0 {
			continue
		}
		fmt.Printf("Generator %d: %d note(s).\n", i, count)
	}
	for i, count := range s.noteCounts {
		if count == 0 {
			continue
		}
		fmt.Printf("Instrument %d: %d note(s).\n", i, count)
	}
}

// Adds the named score file to the running totals. Returns an error if one
// occurs.
func (s *scoreStats) addFile(name string, expectVolume bool) error {
	data, e := ioutil.ReadFile(name)
	if e != nil {
		return errors.Wrapf(e, "failed reading %s", name)
	}
	opts := &playtune.DecodeOptions{
		ExpectVolume:      expectVolume,
		DisplayGenerators: playtune.MaxToneGenerators,
	}
	score, e := playtune.DecodeScore(data, opts)
	if e != nil {
		return errors.Wrapf(e, "failed decoding %s", name)
	}
	stats := &score.Stats
	s.scoresScanned++
	s.totalTime += uint64(score.TotalTime)
	s.totalStopStartPairs += uint64(stats.StopNotesBeforeStart)
	s.totalMergeableDelays += uint64(stats.ConsecutiveDelays)
	if stats.VolumeSeen {
		s.scoresWithVolume++
	}
	if stats.InstrumentsSeen {
		s.scoresWithInstruments++
		for i, count := range stats.InstrumentUseCounts {
			s.noteCounts[i] += uint64(count)
		}
	}
	// Note starts per generator come from walking the snapshots: a note
	// start is a generator that is playing in a snapshot but wasn't playing
	// the same note in the previous one.
	var previous *playtune.Snapshot
	for _, snapshot := range score.Snapshots {
		for g := range snapshot.Generators {
			state := &snapshot.Generators[g]
			if !state.Playing {
				continue
			}
			if (previous == nil) || !previous.Generators[g].Playing ||
				(previous.Generators[g].Note != state.Note) {
				s.generatorCounts[g]++
			}
		}
		previous = snapshot
	}
	return nil
}

func run() int {
	var baseDir string
	var expectVolume bool
	flag.StringVar(&baseDir, "dir", "", "The directory to scan for .bin "+
		"score files.")
	flag.BoolVar(&expectVolume, "volume", false, "If set, headerless "+
		"scores are assumed to carry volume bytes.")
	flag.Parse()
	if baseDir == "" {
		fmt.Println("A base directory must be specified. " +
			"Run with -help for usage.")
		return 1
	}
	filenames, e := filepath.Glob(baseDir + "/*.bin")
	if e != nil {
		fmt.Printf("Failed looking up score files in dir %s: %s\n", baseDir,
			e)
		return 1
	}
	if len(filenames) <= 0 {
		fmt.Printf("Didn't find any score (.bin) files in dir %s.\n",
			baseDir)
		return 1
	}
	stats := &scoreStats{}
	for i, name := range filenames {
		fmt.Printf("Scanning file %d/%d: %s\n", i+1, len(filenames), name)
		e = stats.addFile(name, expectVolume)
		if e != nil {
			fmt.Printf("Failed analyzing file %s: %s\n", name, e)
		}
	}
	stats.printInfo()
	return 0
}

func main() {
	os.Exit(run())
}
