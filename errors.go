package playtune

// This file contains the fatal error types a decode pass can produce. Each
// carries the byte offset of the fault and a reference to the score buffer so
// that its message can include the bytes surrounding the problem, the way the
// legacy scroll tool reported format errors.

import (
	"fmt"
	"strings"
)

// How many bytes on each side of a fault ErrorWindow includes, before
// clipping to the buffer bounds.
const errorWindowRadius = 16

// Formats the bytes surrounding data[offset] as hex, with the faulting byte
// bracketed, e.g. "90 3c [f1] 00 64". Includes up to 16 bytes on each side,
// clipped to the buffer. Returns an empty string if the offset is outside the
// buffer entirely and the buffer is empty.
func ErrorWindow(data []byte, offset int) string {
	start := offset - errorWindowRadius
	if start < 0 {
		start = 0
	}
	end := offset + errorWindowRadius + 1
	if end > len(data) {
		end = len(data)
	}
	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteByte(' ')
		}
		if i == offset {
			fmt.Fprintf(&b, "[%02x]", data[i])
		} else {
			fmt.Fprintf(&b, "%02x", data[i])
		}
	}
	// The fault can sit at len(data) when the stream ends where an operand
	// was required; mark the missing byte.
	if offset >= len(data) {
		if end > start {
			b.WriteByte(' ')
		}
		b.WriteString("[??]")
	}
	return b.String()
}

// Returned when a command required an operand byte past the end of the
// buffer.
type TruncatedStreamError struct {
	// The offset of the command that couldn't be completed.
	Offset int
	// The score buffer, for diagnostics.
	Data []byte
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("truncated stream at offset 0x%04x: %s", e.Offset,
		ErrorWindow(e.Data, e.Offset))
}

// Returned when a command byte matches none of the recognized opcodes.
type UnknownCommandError struct {
	Offset int
	// The unrecognized command byte.
	Byte uint8
	Data []byte
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command 0x%02x at offset 0x%04x: %s", e.Byte,
		e.Offset, ErrorWindow(e.Data, e.Offset))
}

// Returned when a note-off command targets a generator that isn't playing a
// note. This mirrors the legacy "tone generator not on" error.
type NoteOffWithoutNoteOnError struct {
	Offset    int
	Generator uint8
	Data      []byte
}

func (e *NoteOffWithoutNoteOnError) Error() string {
	return fmt.Sprintf("tone generator %d not on at offset 0x%04x: %s",
		e.Generator, e.Offset, ErrorWindow(e.Data, e.Offset))
}
