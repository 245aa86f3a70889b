// This package defines a library for decoding Playtune bytestreams: compact
// binary scores of timed note, instrument, and volume commands for up to 16
// tone generators, as produced by the MIDITONES converter. The scroll_tool
// directory contains a command-line interface that renders a decoded score as
// a piano-roll style scroll or as an annotated C source array.
package playtune

import (
	"fmt"
)

// The number of tone generators a Playtune score can address. Commands carry
// the generator index in their low 4 bits.
const MaxToneGenerators = 16

// The number of tone generators assumed for display purposes when neither a
// header nor the caller says otherwise.
const DefaultDisplayGenerators = 6

// A basic interface that all decoded Playtune commands support.
type Command interface {
	// A string representation of the command.
	String() string
}

// Advances the timeline by a number of milliseconds. All commands between two
// delays take effect at the same instant.
type DelayCommand struct {
	// The delay in milliseconds, 0 through 0x7fff.
	Milliseconds uint16
}

func (c *DelayCommand) String() string {
	return fmt.Sprintf("Delay %d ms", c.Milliseconds)
}

// Starts a note on one tone generator. The volume is only present if the
// stream carries volume information.
type NoteOnCommand struct {
	Generator uint8
	// The note number. 0 through 127 are real pitches; 128 through 255 are
	// percussion codes when the score uses percussion notes.
	Note uint8
	// The note volume, only valid if HasVolume is true.
	Volume    uint8
	HasVolume bool
}

func (c *NoteOnCommand) String() string {
	if c.HasVolume {
		return fmt.Sprintf("Generator %d: note %d on, volume = %d",
			c.Generator, c.Note, c.Volume)
	}
	return fmt.Sprintf("Generator %d: note %d on", c.Generator, c.Note)
}

// Silences one tone generator. Carries no operand bytes; the generator index
// is in the command byte itself.
type NoteOffCommand struct {
	Generator uint8
}

func (c *NoteOffCommand) String() string {
	return fmt.Sprintf("Generator %d: note off", c.Generator)
}

// Changes the instrument associated with one tone generator.
type InstrumentChangeCommand struct {
	Generator uint8
	// The instrument number, 0 through 127.
	Instrument uint8
}

func (c *InstrumentChangeCommand) String() string {
	return fmt.Sprintf("Generator %d: instrument change to %d", c.Generator,
		c.Instrument)
}

// Marks the point a looping player restarts from. The decoder treats this as
// a marker only: it changes no generator state and advances no time.
type RestartCommand struct{}

func (c *RestartCommand) String() string {
	return "Restart marker"
}

// Marks the end of the score. No commands follow it.
type EndOfScoreCommand struct{}

func (c *EndOfScoreCommand) String() string {
	return "End of score"
}

// Decodes the single command starting at data[offset] and returns it along
// with the offset of the byte following the command. The expectVolume
// argument controls whether note-on commands carry a trailing volume byte.
// Returns a TruncatedStreamError if an operand byte would lie past the end of
// the buffer, or an UnknownCommandError if the command byte matches no known
// opcode. Never reads past len(data).
func ReadCommand(data []byte, offset int, expectVolume bool) (Command, int,
	error) {
	if offset >= len(data) {
		return nil, offset, &TruncatedStreamError{Offset: offset, Data: data}
	}
	b := data[offset]
	// A clear top bit means a two-byte big-endian delay.
	if b < 0x80 {
		if offset+1 >= len(data) {
			return nil, offset, &TruncatedStreamError{
				Offset: offset,
				Data:   data,
			}
		}
		ms := (uint16(b) << 8) | uint16(data[offset+1])
		return &DelayCommand{Milliseconds: ms}, offset + 2, nil
	}
	if b == 0xf0 {
		return &EndOfScoreCommand{}, offset + 1, nil
	}
	if b == 0xe0 {
		return &RestartCommand{}, offset + 1, nil
	}
	generator := b & 0x0f
	switch b & 0xf0 {
	case 0x90:
		// Note on: a note byte, plus a volume byte if the stream has volume
		// information.
		width := 2
		if expectVolume {
			width = 3
		}
		if offset+width > len(data) {
			return nil, offset, &TruncatedStreamError{
				Offset: offset,
				Data:   data,
			}
		}
		toReturn := &NoteOnCommand{
			Generator: generator,
			Note:      data[offset+1],
		}
		if expectVolume {
			toReturn.Volume = data[offset+2]
			toReturn.HasVolume = true
		}
		return toReturn, offset + width, nil
	case 0x80:
		return &NoteOffCommand{Generator: generator}, offset + 1, nil
	case 0xc0:
		if offset+1 >= len(data) {
			return nil, offset, &TruncatedStreamError{
				Offset: offset,
				Data:   data,
			}
		}
		return &InstrumentChangeCommand{
			Generator:  generator,
			Instrument: data[offset+1] & 0x7f,
		}, offset + 2, nil
	}
	return nil, offset, &UnknownCommandError{
		Offset: offset,
		Byte:   b,
		Data:   data,
	}
}
