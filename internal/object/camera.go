package object

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/tomz197/colliders/internal/config"
)

// Camera maps a y-up world onto the y-down canvas. Center is the world point
// shown in the middle of the view; Width and Height are the visible world
// extents, which match the canvas logical size.
type Camera struct {
	Center        r2.Vec
	Width, Height float64
}

// NewCamera returns a camera showing the configured view around the origin.
func NewCamera() Camera {
	return Camera{Width: config.ViewWidth, Height: config.ViewHeight}
}

// WorldToScreen converts world coordinates to canvas logical coordinates.
func (c Camera) WorldToScreen(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: p.X - c.Center.X + c.Width/2,
		Y: c.Center.Y - p.Y + c.Height/2,
	}
}

// ScreenToWorld converts canvas logical coordinates to world coordinates.
func (c Camera) ScreenToWorld(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: p.X + c.Center.X - c.Width/2,
		Y: c.Center.Y + c.Height/2 - p.Y,
	}
}

// Visible reports whether a world-space box overlaps the view, with
// CullMargin of slack.
func (c Camera) Visible(b r2.Box) bool {
	m := config.CullMargin
	halfW, halfH := c.Width/2+m, c.Height/2+m
	return b.Max.X >= c.Center.X-halfW && b.Min.X <= c.Center.X+halfW &&
		b.Max.Y >= c.Center.Y-halfH && b.Min.Y <= c.Center.Y+halfH
}

// project maps world points to the canvas in place.
func (c Camera) project(points []r2.Vec) []r2.Vec {
	for i, p := range points {
		points[i] = c.WorldToScreen(p)
	}
	return points
}
