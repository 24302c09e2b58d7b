package object

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/tomz197/colliders/internal/config"
	"github.com/tomz197/colliders/internal/draw"
	"github.com/tomz197/colliders/internal/physics"
)

// Collider is a named shape together with the result of the latest probe.
type Collider struct {
	Name  string
	Shape physics.Shape
	Hit   physics.Hit

	probe r2.Vec
}

// NewCollider wraps shape for display under name.
func NewCollider(name string, shape physics.Shape) *Collider {
	return &Collider{Name: name, Shape: shape}
}

// Update spins the shape by the frame rotation and probes it at ctx.Probe.
func (c *Collider) Update(ctx UpdateContext) error {
	if ctx.Rotation != 0 {
		c.Shape.Rotate(ctx.Rotation)
	}
	c.probe = ctx.Probe
	c.Hit = physics.Probe(c.Shape, ctx.Probe)
	return nil
}

// Draw fills the shape, highlighted while it contains the probe.
func (c *Collider) Draw(ctx DrawContext) error {
	if !ctx.Camera.Visible(c.Shape.Bounds()) {
		return nil
	}

	fill := draw.InkShape
	if c.Hit.Inside {
		fill = draw.InkHighlight
	}

	cam := ctx.Camera
	canvas := ctx.Canvas
	var points []r2.Vec

	switch s := c.Shape.(type) {
	case *physics.Segment:
		canvas.DrawLine(cam.WorldToScreen(s.Start), cam.WorldToScreen(s.End), fill)
		return nil
	case *physics.Circle:
		points = draw.CircleOutline(canvas.BorrowPoints(config.RoundSegments), s.Center, s.Radius, config.RoundSegments)
	case *physics.Capsule:
		points = draw.CapsuleOutline(canvas.BorrowPoints(config.RoundSegments+2), s.Start, s.End, s.Radius, config.RoundSegments)
	case *physics.AABB:
		b := s.Bounds()
		points = append(canvas.BorrowPoints(4),
			b.Min,
			r2.Vec{X: b.Max.X, Y: b.Min.Y},
			b.Max,
			r2.Vec{X: b.Min.X, Y: b.Max.Y},
		)
	case *physics.OBB:
		v := s.Vertices()
		points = append(canvas.BorrowPoints(4), v[:]...)
	case *physics.Polygon:
		points = s.WorldVertices(canvas.BorrowPoints(len(s.Vertices)))
	}

	canvas.DrawPolygon(cam.project(points), fill, draw.InkOutline)
	return nil
}

// DrawProximity draws a line from the probe to the closest point, with a dot
// on the closest point, when the probe is within ctx.Threshold.
func (c *Collider) DrawProximity(ctx DrawContext) error {
	if c.Hit.Distance > ctx.Threshold {
		return nil
	}

	cam := ctx.Camera
	closest := cam.WorldToScreen(c.Hit.Closest)
	ctx.Canvas.DrawLine(cam.WorldToScreen(c.probe), closest, draw.InkProbe)

	dot := draw.CircleOutline(ctx.Canvas.BorrowPoints(config.RoundSegments/2), closest, config.ClosestDotSize, config.RoundSegments/2)
	ctx.Canvas.DrawPolygon(dot, draw.InkProbe, draw.InkProbe)
	return nil
}
