package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestDrawLineScalesToPixels(t *testing.T) {
	// 10 columns x 5 rows = 10x10 pixels showing a 100x100 logical area.
	c := NewScaledCanvas(10, 5, 100, 100)
	c.DrawLine(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 90, Y: 0}, InkOutline)

	for x := 0.0; x <= 90; x += 10 {
		assert.Equal(t, InkOutline, c.At(r2.Vec{X: x, Y: 0}), "x=%v", x)
	}
	assert.Equal(t, InkNone, c.At(r2.Vec{X: 0, Y: 10}))
}

func TestDrawPolygonFill(t *testing.T) {
	c := NewCanvas(20, 10)
	square := []r2.Vec{{X: 2, Y: 2}, {X: 12, Y: 2}, {X: 12, Y: 12}, {X: 2, Y: 12}}
	c.DrawPolygon(square, InkHighlight, InkOutline)

	assert.Equal(t, InkHighlight, c.At(r2.Vec{X: 7, Y: 7}))
	assert.Equal(t, InkOutline, c.At(r2.Vec{X: 2, Y: 7}))
	assert.Equal(t, InkNone, c.At(r2.Vec{X: 15, Y: 7}))

	c.Clear()
	assert.Equal(t, InkNone, c.At(r2.Vec{X: 7, Y: 7}))
}

func TestDrawPolygonOffCanvasIsClipped(t *testing.T) {
	c := NewCanvas(4, 2)
	huge := []r2.Vec{{X: -1e6, Y: -1e6}, {X: 1e6, Y: -1e6}, {X: 0, Y: 1e6}}
	c.DrawPolygon(huge, InkShape, InkNone)
	assert.Equal(t, InkShape, c.At(r2.Vec{X: 1, Y: 1}))
}

func TestRenderColorsHalfBlocks(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(r2.Vec{X: 0, Y: 0}, InkShape)
	c.Set(r2.Vec{X: 0, Y: 1}, InkProbe)
	c.Set(r2.Vec{X: 1, Y: 1}, InkHighlight)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()

	assert.Contains(t, out, "\033[1;1H\033[38;5;247m\033[48;5;210m▀\033[49m")
	assert.Contains(t, out, "\033[1;2H\033[38;5;255m▄")
	assert.True(t, strings.HasSuffix(out, "\033[0m"))
}

func TestRenderSkipsEmptyCells(t *testing.T) {
	c := NewCanvas(8, 4)
	var buf bytes.Buffer
	c.Render(&buf)
	assert.Equal(t, "\033[0m", buf.String())
}

func TestTerminalToLogicalInvertsLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(80, 24, 1400, 1000)
	c.SetOffset(3, 2)

	p := r2.Vec{X: 700, Y: 500}
	col, row := c.LogicalToTerminal(p.X, p.Y)
	back := c.TerminalToLogical(col+c.OffsetCol(), row+c.OffsetRow())

	// One cell is 1400/80 wide and 1000/24 tall.
	assert.InDelta(t, p.X, back.X, 1400.0/80)
	assert.InDelta(t, p.Y, back.Y, 1000.0/24)
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(4, 2)
	var buf bytes.Buffer
	c.RenderBorder(&buf)
	assert.Empty(t, buf.String())

	c.SetOffset(2, 1)
	c.RenderBorder(&buf)
	assert.Contains(t, buf.String(), "┌────┐")
	assert.Contains(t, buf.String(), "│")
}

func TestOutlines(t *testing.T) {
	circle := CircleOutline(nil, r2.Vec{X: 5, Y: 5}, 2, 16)
	require.Len(t, circle, 16)
	for _, p := range circle {
		assert.InDelta(t, 2, r2.Norm(r2.Sub(p, r2.Vec{X: 5, Y: 5})), 1e-9)
	}

	capsule := CapsuleOutline(nil, r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 0}, 1, 16)
	require.Len(t, capsule, 18)
	// The first cap starts on the right of the axis at b.
	assert.InDelta(t, 10, capsule[0].X, 1e-9)
	assert.InDelta(t, -1, capsule[0].Y, 1e-9)
}

func TestChunkWriterAppliesOffset(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 4, 2)
	cw.WriteAt(1, 1, "hi")
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[3;5Hhi", buf.String())
}

type recordingWriter struct {
	writes []int
	bytes.Buffer
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, len(p))
	return w.Buffer.Write(p)
}

func TestChunkWriterSplitsLargeFrames(t *testing.T) {
	var w recordingWriter
	cw := NewChunkWriter(&w, 0, 0)
	frame := strings.Repeat("x", 2*maxChunkSize+10)
	cw.WriteString(frame)
	require.NoError(t, cw.Flush())

	assert.Equal(t, []int{maxChunkSize, maxChunkSize, 10}, w.writes)
	assert.Equal(t, frame, w.String())

	// The buffer is empty after a flush.
	require.NoError(t, cw.Flush())
	assert.Len(t, w.writes, 3)
}

func TestChunkWriterSession(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)
	require.NoError(t, cw.Begin())
	assert.Equal(t, "\033[?25l\033[?1003h\033[?1006h\033[H\033[2J", buf.String())

	buf.Reset()
	cw.ClearFrame()
	cw.WriteAt(2, 3, "ok")
	require.NoError(t, cw.End())
	assert.Equal(t, "\033[H\033[2J\033[3;2Hok\033[?1003l\033[?1006l\033[0m\033[H\033[2J\033[?25h", buf.String())
}
