package physics

import "gonum.org/v1/gonum/spatial/r2"

// Circle is a filled disc.
type Circle struct {
	Center r2.Vec
	Radius float64
}

// NewCircle returns a circle, rejecting a negative radius.
func NewCircle(center r2.Vec, radius float64) (*Circle, error) {
	if err := checkPoint("circle center", center); err != nil {
		return nil, err
	}
	if err := checkNonNegative("circle radius", radius); err != nil {
		return nil, err
	}
	return &Circle{Center: center, Radius: radius}, nil
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) Contains(p r2.Vec) bool {
	return PointInCircle(p, c.Center, c.Radius)
}

// ClosestPoint projects p radially onto the circle. At the exact center the
// direction is undefined and (1, 0) is used.
func (c *Circle) ClosestPoint(p r2.Vec) r2.Vec {
	return r2.Add(c.Center, r2.Scale(c.Radius, direction(r2.Sub(p, c.Center), r2.Vec{X: 1})))
}

// Rotate is a no-op: a circle has no orientation.
func (c *Circle) Rotate(float64) {}

func (c *Circle) Bounds() r2.Box {
	return inflate(r2.Box{Min: c.Center, Max: c.Center}, c.Radius)
}

// direction returns the unit vector of d, or fallback when d is zero.
func direction(d r2.Vec, fallback r2.Vec) r2.Vec {
	n := r2.Norm(d)
	if n == 0 {
		return fallback
	}
	return r2.Scale(1/n, d)
}
