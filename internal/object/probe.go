package object

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/tomz197/colliders/internal/config"
	"github.com/tomz197/colliders/internal/draw"
)

// Probe is the query point every collider is tested against. It follows the
// mouse and can be nudged with the movement keys.
type Probe struct {
	Position r2.Vec
}

// Update moves the probe to the pointer, applies held movement keys and
// handles reset.
func (p *Probe) Update(ctx UpdateContext) error {
	if ctx.Input.Reset {
		p.Position = r2.Vec{}
		return nil
	}
	if ctx.PointerMoved {
		p.Position = ctx.Pointer
	}

	step := config.NudgeSpeed * ctx.Delta.Seconds()
	var d r2.Vec
	if ctx.Input.Left {
		d.X -= step
	}
	if ctx.Input.Right {
		d.X += step
	}
	if ctx.Input.Up {
		d.Y += step
	}
	if ctx.Input.Down {
		d.Y -= step
	}
	p.Position = r2.Add(p.Position, d)
	return nil
}

// Draw draws a crosshair at the probe position.
func (p *Probe) Draw(ctx DrawContext) error {
	c := ctx.Camera.WorldToScreen(p.Position)
	s := config.ProbeCrossSize / 2
	ctx.Canvas.DrawLine(r2.Vec{X: c.X - s, Y: c.Y}, r2.Vec{X: c.X + s, Y: c.Y}, draw.InkProbe)
	ctx.Canvas.DrawLine(r2.Vec{X: c.X, Y: c.Y - s}, r2.Vec{X: c.X, Y: c.Y + s}, draw.InkProbe)
	return nil
}
