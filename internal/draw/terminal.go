package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Control sequences for a playground session.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqMouseOn    = "\033[?1003h\033[?1006h" // Any-motion reports, SGR encoded
	seqMouseOff   = "\033[?1003l\033[?1006l"
	seqResetStyle = "\033[0m"
)

// ChunkWriter collects one frame of terminal output and sends it to the
// session in pieces of at most maxChunkSize bytes. Cell coordinates passed to
// MoveCursor and WriteAt are relative to the render area; the offset that
// centers it in a larger terminal is added here.
type ChunkWriter struct {
	out    io.Writer
	frame  []byte
	offCol int
	offRow int
}

// NewChunkWriter returns a ChunkWriter that sends frames to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    w,
		frame:  make([]byte, 0, 16*1024),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the render area, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// Begin hides the cursor, turns on pointer reporting and blanks the screen.
func (cw *ChunkWriter) Begin() error {
	cw.frame = append(cw.frame, seqHideCursor+seqMouseOn+seqClear...)
	return cw.Flush()
}

// End restores what Begin changed. Anything still buffered is sent first.
func (cw *ChunkWriter) End() error {
	cw.frame = append(cw.frame, seqMouseOff+seqResetStyle+seqClear+seqShowCursor...)
	return cw.Flush()
}

// ClearFrame starts the next frame on a blank screen.
func (cw *ChunkWriter) ClearFrame() {
	cw.frame = append(cw.frame, seqClear...)
}

// MoveCursor positions the cursor at a 1-based cell of the render area.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row+cw.offRow), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col+cw.offCol), 10)
	cw.frame = append(cw.frame, 'H')
}

// Write buffers p. It never fails, so Canvas.Render can target a ChunkWriter.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// WriteAt writes s starting at a 1-based cell of the render area.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.frame = append(cw.frame, s...)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the buffered frame. The buffer is emptied even when a write
// fails, since a broken session will not take the rest of the frame.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame
	cw.frame = cw.frame[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the terminal on os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
