package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rotation is a rotation by some angle, stored as its sine and cosine.
type Rotation struct {
	Sin, Cos float64
}

// NewRotation returns a rotation of theta radians. Theta is not wrapped.
func NewRotation(theta float64) Rotation {
	sin, cos := math.Sincos(theta)
	return Rotation{Sin: sin, Cos: cos}
}

// Mul returns p rotated.
func (r Rotation) Mul(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: p.X*r.Cos - p.Y*r.Sin,
		Y: p.X*r.Sin + p.Y*r.Cos,
	}
}

// MulT returns p inverse rotated.
func (r Rotation) MulT(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: p.X*r.Cos + p.Y*r.Sin,
		Y: p.Y*r.Cos - p.X*r.Sin,
	}
}

// Transform places a local frame in the world: rotate first, then translate.
type Transform struct {
	Position r2.Vec
	Rotation Rotation
}

// NewTransform returns a Transform with the given position and angle in radians.
func NewTransform(position r2.Vec, angle float64) Transform {
	return Transform{Position: position, Rotation: NewRotation(angle)}
}

// Mul maps a local point into the world.
func (t Transform) Mul(p r2.Vec) r2.Vec {
	return r2.Add(t.Rotation.Mul(p), t.Position)
}

// MulT maps a world point into the local frame.
func (t Transform) MulT(p r2.Vec) r2.Vec {
	return t.Rotation.MulT(r2.Sub(p, t.Position))
}
