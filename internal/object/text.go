package object

// Text is a simple drawable text object.
// Coordinates are 1-based canvas positions; the writer applies the
// centering offset.
type Text struct {
	X     int
	Y     int
	Value string
}

// Draw writes the text at its position.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	x := t.X
	y := t.Y
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	ctx.Writer.WriteAt(x, y, t.Value)
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(UpdateContext) error {
	return nil
}
