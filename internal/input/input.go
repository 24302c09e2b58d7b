package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// maxSequenceLen bounds an escape sequence carried between frames. Longer
// unterminated sequences are dropped.
const maxSequenceLen = 32

// Mouse is a pointer position in 1-based terminal cells.
type Mouse struct {
	Col, Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit  bool
	Left  bool
	Right bool
	Up    bool
	Down  bool

	// Pause and Reset fire once per key press rather than while held.
	Pause bool
	Reset bool

	// Mouse is the last pointer report of the frame, valid if MouseMoved.
	Mouse      Mouse
	MouseMoved bool

	// Closed is set once the underlying reader has failed or reached EOF.
	Closed bool

	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried into the next frame
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
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

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and mouse reports, and accumulates
// all pressed keys. Uses key state persistence to allow detecting
// simultaneous key combinations.
func ReadInput(s *Stream) Input {
	return readInput(s, time.Now())
}

func readInput(s *Stream, now time.Time) Input {
	buf := s.pending
	s.pending = nil

	// Drain all available bytes
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	input := Input{Closed: s.closed}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 == len(buf) && !s.closed {
			s.pending = append(s.pending, b)
			buf = buf[:i]
			break
		}
		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			n, complete := parseCSI(buf[i:], now, &s.state, &input)
			if !complete && !s.closed {
				if len(buf)-i <= maxSequenceLen {
					s.pending = append(s.pending, buf[i:]...)
				}
				buf = buf[:i]
				break
			}
			if n > 0 {
				i += n - 1
				continue
			}
		}

		applyByteToState(&s.state, &input, b, now)
	}

	// Keys are "held" if seen within hold duration
	input.Quit = now.Sub(s.state.quit) < keyHoldDuration
	input.Left = now.Sub(s.state.left) < keyHoldDuration
	input.Right = now.Sub(s.state.right) < keyHoldDuration
	input.Up = now.Sub(s.state.up) < keyHoldDuration
	input.Down = now.Sub(s.state.down) < keyHoldDuration
	input.Pressed = buf

	return input
}

// parseCSI consumes a CSI sequence at the start of buf (which begins with
// ESC [). It returns the number of bytes consumed, or 0 if the sequence is
// not one we handle. complete is false if buf ends mid-sequence.
func parseCSI(buf []byte, now time.Time, state *keyState, input *Input) (n int, complete bool) {
	if len(buf) < 3 {
		return 0, false
	}
	switch buf[2] {
	case 'A': // Up arrow
		state.up = now
		return 3, true
	case 'B': // Down arrow
		state.down = now
		return 3, true
	case 'C': // Right arrow
		state.right = now
		return 3, true
	case 'D': // Left arrow
		state.left = now
		return 3, true
	case '<':
		return parseSGRMouse(buf, input)
	}
	return 0, true
}

// parseSGRMouse reads an SGR mouse report: ESC [ < button ; col ; row (M|m).
func parseSGRMouse(buf []byte, input *Input) (n int, complete bool) {
	var fields [3]int
	field := 0
	start := 3
	for i := 3; i < len(buf); i++ {
		if i >= maxSequenceLen {
			return i, true
		}
		c := buf[i]
		switch {
		case c >= '0' && c <= '9':
		case c == ';' && field < 2:
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return i + 1, true
			}
			fields[field] = v
			field++
			start = i + 1
		case (c == 'M' || c == 'm') && field == 2:
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return i + 1, true
			}
			fields[2] = v
			input.Mouse = Mouse{Col: fields[1], Row: fields[2]}
			input.MouseMoved = true
			return i + 1, true
		default:
			// Malformed report: drop what was read so far.
			return i + 1, true
		}
	}
	return 0, false
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, input *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		input.Pause = true
	case 'r', 'R':
		input.Reset = true
	}
}
