// Package input turns raw terminal bytes into logical game actions.
package input

import (
	"bufio"

	"github.com/tomz197/tetris/internal/game"
)

// Input is everything read from the terminal since the previous frame.
type Input struct {
	Actions []game.Action // in the order the keys arrived
	Quit    bool
	Pressed []byte // raw bytes, for activity tracking
}

// maxPending bounds an unterminated escape sequence carried between drains.
const maxPending = 16

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // incomplete escape sequence from the previous drain
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them. An escape sequence cut off at the end of the drain is kept
// for the next call. A closed stream is reported as Quit.
func ReadInput(s *Stream) Input {
	var fresh []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			fresh = append(fresh, b)
		default:
			break drain
		}
	}

	buf := append(s.pending, fresh...)
	in, rest := parse(buf)
	in.Pressed = fresh

	s.pending = nil
	if len(rest) > 0 && len(rest) <= maxPending && !s.closed {
		s.pending = append([]byte(nil), rest...)
	}
	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse maps a batch of bytes to actions. Escape sequences are consumed
// whole; arrows are recognised in CSI (ESC [) and SS3 (ESC O) form, with or
// without modifier parameters. An incomplete trailing sequence is ignored.
func Parse(buf []byte) Input {
	in, _ := parse(buf)
	return in
}

// parse is Parse that also returns an incomplete escape sequence found at
// the end of buf.
func parse(buf []byte) (in Input, rest []byte) {
	in.Pressed = buf

	for i := 0; i < len(buf); {
		b := buf[i]

		if b == '\x1b' {
			code, next, complete := escapeSequence(buf, i)
			if !complete {
				return in, buf[i:]
			}
			if a, ok := arrowAction(code); ok {
				in.Actions = append(in.Actions, a)
			}
			i = next
			continue
		}
		i++

		switch b {
		case 'q', 'Q', '\x03': // ctrl-c arrives as a byte in raw mode
			in.Quit = true
			continue
		}

		if a, ok := keyAction(b); ok {
			in.Actions = append(in.Actions, a)
		}
	}

	return in, nil
}

// escapeSequence reads the sequence starting with ESC at buf[start]. It
// returns the final byte (0 for a lone ESC or a malformed sequence), the
// index just past the sequence, and whether the sequence was complete.
func escapeSequence(buf []byte, start int) (code byte, next int, complete bool) {
	i := start + 1
	if i >= len(buf) {
		return 0, 0, false
	}

	switch buf[i] {
	case 'O': // SS3: ESC O <final>
		if i+1 >= len(buf) {
			return 0, 0, false
		}
		return buf[i+1], i + 2, true
	case '[': // CSI: ESC [ <params 0x30-0x3F> <intermediates 0x20-0x2F> <final 0x40-0x7E>
		for j := i + 1; j < len(buf); j++ {
			c := buf[j]
			switch {
			case c >= 0x40 && c <= 0x7e:
				return c, j + 1, true
			case c < 0x20 || c > 0x7e:
				// Not a valid sequence; resume at the offending byte.
				return 0, j, true
			}
		}
		return 0, 0, false
	default: // lone escape key
		return 0, i, true
	}
}

func arrowAction(code byte) (game.Action, bool) {
	switch code {
	case 'A': // Up arrow
		return game.ActionRotate, true
	case 'B': // Down arrow
		return game.ActionSoftDrop, true
	case 'C': // Right arrow
		return game.ActionMoveRight, true
	case 'D': // Left arrow
		return game.ActionMoveLeft, true
	}
	return 0, false
}

func keyAction(b byte) (game.Action, bool) {
	switch b {
	case 'a', 'A', 'h', 'H':
		return game.ActionMoveLeft, true
	case 'd', 'D', 'l', 'L':
		return game.ActionMoveRight, true
	case 's', 'S', 'j', 'J':
		return game.ActionSoftDrop, true
	case 'w', 'W', 'k', 'K', 'x', 'X':
		return game.ActionRotate, true
	case 'z', 'Z':
		return game.ActionRotateCCW, true
	case ' ':
		return game.ActionHardDrop, true
	case 'c', 'C':
		return game.ActionHold, true
	case 'g', 'G':
		return game.ActionToggleGhost, true
	case 'p', 'P':
		return game.ActionPause, true
	case 'r', 'R':
		return game.ActionRestart, true
	}
	return 0, false
}
