// Package draw renders to the terminal: a half-block canvas with colored
// inks, outline generators for round shapes, and chunked ANSI output.
package draw

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Ink is the color of a canvas pixel. The zero Ink is an empty pixel.
type Ink uint8

const (
	InkNone      Ink = iota
	InkShape         // Resting shape fill
	InkHighlight     // Shape containing the probe
	InkOutline       // Segments and shape edges
	InkProbe         // Proximity line, closest point dot and cursor
)

// palette maps inks to xterm-256 color indexes.
var palette = [...]int{
	InkNone:      0,
	InkShape:     247,
	InkHighlight: 255,
	InkOutline:   252,
	InkProbe:     210,
}

// Color returns the xterm-256 color index used for ink.
func (ink Ink) Color() int {
	if int(ink) >= len(palette) {
		return palette[InkShape]
	}
	return palette[ink]
}
