package playtune

// This file contains code for decoding an entire Playtune score: the optional
// self-describing header, the per-generator state tracking, and the single
// forward pass that turns the command stream into a sequence of timeline
// snapshots plus statistics.

import (
	"fmt"
)

// The minimum length of a self-describing score header.
const headerMinLength = 6

// Header flag bits in the first flag byte.
const (
	headerFlagVolume      = 0x80
	headerFlagInstruments = 0x40
	headerFlagPercussion  = 0x20
)

// This corresponds to the optional self-describing header some scores start
// with: 'P', 't', a total header length, two flag bytes, and the number of
// tone generators the encoder targeted.
type Header struct {
	// The total header length in bytes; the command stream starts here.
	// Always at least 6.
	Length uint8
	// True if note-on commands in this score carry a volume byte.
	VolumePresent bool
	// True if the score contains instrument-change commands.
	InstrumentsPresent bool
	// True if note values 128 through 255 are percussion codes.
	PercussionNotes bool
	// The number of tone generators the encoder declared.
	GeneratorCount uint8
}

func (h *Header) String() string {
	return fmt.Sprintf("header length %d, volume: %v, instruments: %v, "+
		"percussion notes: %v, %d generators", h.Length, h.VolumePresent,
		h.InstrumentsPresent, h.PercussionNotes, h.GeneratorCount)
}

// Checks whether data starts with a self-describing header. Returns the
// parsed header and the offset where the command stream begins, or nil and 0
// if the buffer doesn't start with one. Never fails; a short buffer or an
// unrecognized prefix simply means the score has no header.
func ParseHeader(data []byte) (*Header, int) {
	if len(data) < headerMinLength {
		return nil, 0
	}
	if (data[0] != 'P') || (data[1] != 't') {
		return nil, 0
	}
	length := data[2]
	if (int(length) < headerMinLength) || (int(length) > len(data)) {
		return nil, 0
	}
	flags := data[3]
	// data[4] is a second flag byte, reserved and currently always 0.
	return &Header{
		Length:             length,
		VolumePresent:      (flags & headerFlagVolume) != 0,
		InstrumentsPresent: (flags & headerFlagInstruments) != 0,
		PercussionNotes:    (flags & headerFlagPercussion) != 0,
		GeneratorCount:     data[5],
	}, int(length)
}

// Configures a decode pass. The zero value (or a nil pointer) is valid:
// no volume bytes, no instruments, percussion off, and 6 generators tracked
// for display statistics. A score header overrides the three format flags.
type DecodeOptions struct {
	// True if note-on commands carry a volume byte. Equivalent to the legacy
	// -v option.
	ExpectVolume bool
	// True if the score is known to contain instrument-change commands.
	// Informational: the decoder accepts instrument changes either way, and
	// Statistics.InstrumentsSeen reports whether any actually appeared.
	ExpectInstruments bool
	// True if note values 128 through 255 should be read as percussion.
	PercussionNotes bool
	// The number of generators the caller will display. Notes on generators
	// past this count are still decoded but counted as skipped. 0 means the
	// default of 6.
	DisplayGenerators int
}

// Returns a copy of opts with format flags overridden by the header, if any,
// and the display count defaulted. A nil receiver yields pure defaults.
func (opts *DecodeOptions) resolve(header *Header) DecodeOptions {
	var resolved DecodeOptions
	if opts != nil {
		resolved = *opts
	}
	if header != nil {
		resolved.ExpectVolume = header.VolumePresent
		resolved.ExpectInstruments = header.InstrumentsPresent
		resolved.PercussionNotes = header.PercussionNotes
	}
	if resolved.DisplayGenerators <= 0 {
		resolved.DisplayGenerators = DefaultDisplayGenerators
	}
	if resolved.DisplayGenerators > MaxToneGenerators {
		resolved.DisplayGenerators = MaxToneGenerators
	}
	return resolved
}

// The live state of one tone generator at a point in the timeline.
type GeneratorState struct {
	// True if the generator is sounding a note.
	Playing bool
	// The note being played. Only valid if Playing is true.
	Note uint8
	// The volume of the current note, if the score carries volume.
	Volume    uint8
	HasVolume bool
	// The instrument assigned to the generator, if any was ever assigned.
	Instrument    uint8
	HasInstrument bool
	// True if the instrument changed since the previous snapshot.
	InstrumentChanged bool
	// True if the generator was silenced earlier in the current delay
	// interval. Reset at every delay boundary.
	justStopped bool
}

// An immutable record of all generator state at one timeline boundary. One
// snapshot is emitted per delay command, plus a final zero-delay snapshot for
// the terminal state.
type Snapshot struct {
	// The absolute time in milliseconds before the delay elapses.
	TimeMilliseconds uint32
	// The delay about to elapse. 0 on the final snapshot.
	DelayMilliseconds uint16
	// The state of all 16 generators at this boundary.
	Generators [MaxToneGenerators]GeneratorState
	// The half-open byte range of the commands consumed since the previous
	// snapshot, including this snapshot's delay command.
	StartOffset int
	EndOffset   int
	// True if a non-fatal anomaly was detected in this snapshot's interval:
	// a redundant stop/start pair or a mergeable pair of adjacent delays.
	Warning bool
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("t=%d ms, delay %d ms, bytes 0x%04x-0x%04x",
		s.TimeMilliseconds, s.DelayMilliseconds, s.StartOffset, s.EndOffset)
}

// Aggregate counts accumulated over a full decode pass.
type Statistics struct {
	// The highest generator index addressed by any command.
	MaxGeneratorIndex int
	// Note-on commands addressed to generators at or past the configured
	// display count. Display bookkeeping, not an error.
	NotesSkipped int
	// Note-on commands on a generator that was silenced earlier in the same
	// delay interval; the encoder could have elided the stop/start pair.
	StopNotesBeforeStart int
	// Adjacent delay pairs with no note or instrument command between them;
	// the encoder could have merged them.
	ConsecutiveDelays int
	// Restart markers (0xe0) seen in the stream.
	RestartMarks int
	// How many notes were started with each instrument. Only meaningful if
	// InstrumentsSeen is true.
	InstrumentUseCounts [128]uint32
	// The lowest and highest note volumes seen. Only meaningful if
	// VolumeSeen is true.
	MinVolume  uint8
	MaxVolume  uint8
	VolumeSeen bool
	// True if any instrument-change command appeared.
	InstrumentsSeen bool
	// A bitmap with bit g set if generator g ever started a note.
	GeneratorsUsed uint16
}

// Returns the number of distinct tone generators that started at least one
// note.
func (s *Statistics) GeneratorsUsedCount() int {
	count := 0
	for bitmap := s.GeneratorsUsed; bitmap != 0; bitmap >>= 1 {
		count += int(bitmap & 1)
	}
	return count
}

// Records a note volume in the running min/max.
func (s *Statistics) recordVolume(v uint8) {
	if !s.VolumeSeen {
		s.MinVolume = v
		s.MaxVolume = v
		s.VolumeSeen = true
		return
	}
	if v < s.MinVolume {
		s.MinVolume = v
	}
	if v > s.MaxVolume {
		s.MaxVolume = v
	}
}

// Holds the result of decoding a score: the header (if one was present), the
// ordered timeline snapshots, and the pass statistics.
type Score struct {
	// The score's self-describing header, or nil if it has none.
	Header *Header
	// The options the pass actually used: the caller's options with
	// defaults filled in and header flags applied.
	Options DecodeOptions
	// One snapshot per delay command, in timeline order, plus the final
	// terminal-state snapshot.
	Snapshots []*Snapshot
	// Aggregate counts over the pass.
	Stats Statistics
	// The total duration of the score in milliseconds.
	TotalTime uint32
	// The number of bytes of the buffer the pass consumed, including any
	// header and the end-of-score marker.
	BytesDecoded int
}

// Tracks the mutable state a decode pass threads through the command stream.
// Each pass owns its own decodeState; nothing here is shared.
type decodeState struct {
	generators [MaxToneGenerators]GeneratorState
	stats      Statistics
	timeNow    uint32
	// The start of the byte range the next snapshot will cover.
	rangeStart int
	// True once a delay command has been seen, so delay adjacency can be
	// detected.
	sawDelay bool
	// True if a note or instrument command occurred since the last delay.
	activitySinceDelay bool
	// True if the next emitted snapshot should carry the warning flag.
	warningPending bool
}

// Emits a snapshot of the current generator state covering bytes up to end,
// consuming the pending warning and resetting the per-snapshot instrument
// flags.
func (d *decodeState) emitSnapshot(score *Score, delay uint16, end int) {
	s := &Snapshot{
		TimeMilliseconds:  d.timeNow,
		DelayMilliseconds: delay,
		Generators:        d.generators,
		StartOffset:       d.rangeStart,
		EndOffset:         end,
		Warning:           d.warningPending,
	}
	score.Snapshots = append(score.Snapshots, s)
	d.rangeStart = end
	d.warningPending = false
	for i := range d.generators {
		d.generators[i].InstrumentChanged = false
	}
}

// Applies a note-on command to the state table and statistics.
func (d *decodeState) noteOn(c *NoteOnCommand, opts *DecodeOptions) {
	g := &d.generators[c.Generator]
	if g.justStopped {
		// The generator was stopped with no elapsed time since; the encoder
		// could have elided the stop/start pair.
		d.stats.StopNotesBeforeStart++
		d.warningPending = true
	}
	g.Playing = true
	g.Note = c.Note
	g.justStopped = false
	if c.HasVolume {
		g.Volume = c.Volume
		g.HasVolume = true
		d.stats.recordVolume(c.Volume)
	}
	d.stats.InstrumentUseCounts[g.Instrument]++
	d.stats.GeneratorsUsed |= 1 << c.Generator
	if int(c.Generator) > d.stats.MaxGeneratorIndex {
		d.stats.MaxGeneratorIndex = int(c.Generator)
	}
	if int(c.Generator) >= opts.DisplayGenerators {
		d.stats.NotesSkipped++
	}
	d.activitySinceDelay = true
}

// Applies a note-off command. Returns an error if the generator isn't
// playing, which makes the stream malformed.
func (d *decodeState) noteOff(c *NoteOffCommand, data []byte,
	offset int) error {
	g := &d.generators[c.Generator]
	if !g.Playing {
		return &NoteOffWithoutNoteOnError{
			Offset:    offset,
			Generator: c.Generator,
			Data:      data,
		}
	}
	g.Playing = false
	g.justStopped = true
	if int(c.Generator) > d.stats.MaxGeneratorIndex {
		d.stats.MaxGeneratorIndex = int(c.Generator)
	}
	d.activitySinceDelay = true
	return nil
}

// Applies an instrument-change command.
func (d *decodeState) instrumentChange(c *InstrumentChangeCommand) {
	g := &d.generators[c.Generator]
	g.Instrument = c.Instrument
	g.HasInstrument = true
	g.InstrumentChanged = true
	d.stats.InstrumentsSeen = true
	if int(c.Generator) > d.stats.MaxGeneratorIndex {
		d.stats.MaxGeneratorIndex = int(c.Generator)
	}
	d.activitySinceDelay = true
}

// Applies a delay command: detects mergeable adjacent delays, emits the
// snapshot for the boundary, then advances the clock.
func (d *decodeState) delay(c *DelayCommand, score *Score, end int) {
	if d.sawDelay && !d.activitySinceDelay {
		// Two back-to-back delays; the encoder could have merged them.
		d.stats.ConsecutiveDelays++
		d.warningPending = true
	}
	d.emitSnapshot(score, c.Milliseconds, end)
	d.timeNow += uint32(c.Milliseconds)
	d.sawDelay = true
	d.activitySinceDelay = false
	for i := range d.generators {
		d.generators[i].justStopped = false
	}
}

// Decodes an entire Playtune score in a single forward pass over data. The
// opts argument may be nil for defaults; if the score starts with a
// self-describing header, its flags override the options. The returned Score
// holds one snapshot per delay command plus a final zero-delay snapshot for
// the terminal state.
//
// On a fatal error (a truncated stream, an unknown command, or a note-off on
// a silent generator) the error is returned along with the partial Score:
// every snapshot emitted before the fault and the statistics accumulated so
// far. The error message includes the bytes surrounding the fault.
func DecodeScore(data []byte, opts *DecodeOptions) (*Score, error) {
	header, offset := ParseHeader(data)
	resolved := opts.resolve(header)
	score := &Score{Header: header, Options: resolved}
	state := &decodeState{rangeStart: offset}
	for offset < len(data) {
		command, next, e := ReadCommand(data, offset, resolved.ExpectVolume)
		if e != nil {
			score.Stats = state.stats
			score.TotalTime = state.timeNow
			score.BytesDecoded = offset
			return score, e
		}
		switch c := command.(type) {
		case *DelayCommand:
			state.delay(c, score, next)
		case *NoteOnCommand:
			state.noteOn(c, &resolved)
		case *NoteOffCommand:
			e = state.noteOff(c, data, offset)
			if e != nil {
				score.Stats = state.stats
				score.TotalTime = state.timeNow
				score.BytesDecoded = offset
				return score, e
			}
		case *InstrumentChangeCommand:
			state.instrumentChange(c)
		case *RestartCommand:
			// A loop marker only; it carries no state changes and doesn't
			// count as activity between delays.
			state.stats.RestartMarks++
		case *EndOfScoreCommand:
			offset = next
			state.emitSnapshot(score, 0, offset)
			score.Stats = state.stats
			score.TotalTime = state.timeNow
			score.BytesDecoded = offset
			return score, nil
		default:
			return score, fmt.Errorf("Unhandled command type at offset "+
				"0x%04x: %s", offset, command)
		}
		offset = next
	}
	// The buffer ran out without an end-of-score marker, which is legal.
	state.emitSnapshot(score, 0, offset)
	score.Stats = state.stats
	score.TotalTime = state.timeNow
	score.BytesDecoded = offset
	return score, nil
}
