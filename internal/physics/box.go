package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// AABB is an axis-aligned box given by its center and half extents.
type AABB struct {
	Center      r2.Vec
	HalfExtents r2.Vec
}

// NewAABB returns an axis-aligned box, rejecting negative half extents.
func NewAABB(center, halfExtents r2.Vec) (*AABB, error) {
	if err := checkBox("aabb", center, halfExtents); err != nil {
		return nil, err
	}
	return &AABB{Center: center, HalfExtents: halfExtents}, nil
}

func (b *AABB) Kind() Kind { return KindAABB }

func (b *AABB) Contains(p r2.Vec) bool {
	return boxContains(r2.Sub(p, b.Center), b.HalfExtents)
}

func (b *AABB) ClosestPoint(p r2.Vec) r2.Vec {
	return r2.Add(b.Center, boxClosest(r2.Sub(p, b.Center), b.HalfExtents))
}

// Rotate is a no-op: the box stays axis-aligned.
func (b *AABB) Rotate(float64) {}

func (b *AABB) Bounds() r2.Box {
	return r2.Box{
		Min: r2.Sub(b.Center, b.HalfExtents),
		Max: r2.Add(b.Center, b.HalfExtents),
	}
}

// OBB is a box rotated by Angle radians around its center.
type OBB struct {
	Center      r2.Vec
	HalfExtents r2.Vec
	Angle       float64
}

// NewOBB returns an oriented box, rejecting negative half extents.
func NewOBB(center, halfExtents r2.Vec, angle float64) (*OBB, error) {
	if err := checkBox("obb", center, halfExtents); err != nil {
		return nil, err
	}
	if err := checkScalar("obb angle", angle); err != nil {
		return nil, err
	}
	return &OBB{Center: center, HalfExtents: halfExtents, Angle: angle}, nil
}

func (b *OBB) Kind() Kind { return KindOBB }

func (b *OBB) Transform() Transform {
	return NewTransform(b.Center, b.Angle)
}

func (b *OBB) Contains(p r2.Vec) bool {
	return boxContains(b.Transform().MulT(p), b.HalfExtents)
}

func (b *OBB) ClosestPoint(p r2.Vec) r2.Vec {
	xf := b.Transform()
	return xf.Mul(boxClosest(xf.MulT(p), b.HalfExtents))
}

func (b *OBB) Rotate(delta float64) {
	b.Angle += delta
}

// Vertices returns the four world-space corners in counter-clockwise order.
func (b *OBB) Vertices() [4]r2.Vec {
	xf := b.Transform()
	h := b.HalfExtents
	return [4]r2.Vec{
		xf.Mul(r2.Vec{X: -h.X, Y: -h.Y}),
		xf.Mul(r2.Vec{X: h.X, Y: -h.Y}),
		xf.Mul(r2.Vec{X: h.X, Y: h.Y}),
		xf.Mul(r2.Vec{X: -h.X, Y: h.Y}),
	}
}

func (b *OBB) Bounds() r2.Box {
	v := b.Vertices()
	return boundsOf(v[:]...)
}

func checkBox(name string, center, halfExtents r2.Vec) error {
	if err := checkPoint(name+" center", center); err != nil {
		return err
	}
	if err := checkNonNegative(name+" half extent x", halfExtents.X); err != nil {
		return err
	}
	return checkNonNegative(name+" half extent y", halfExtents.Y)
}

// boxContains tests a local offset against half extents h.
func boxContains(d, h r2.Vec) bool {
	return math.Abs(d.X) <= h.X+Epsilon && math.Abs(d.Y) <= h.Y+Epsilon
}

// boxClosest returns the boundary point of a centered box nearest to the
// local offset d. Outside the box this is the per-axis clamp; inside, d is
// pushed to the face with the least penetration (ties go to x).
func boxClosest(d, h r2.Vec) r2.Vec {
	c := r2.Vec{X: clamp(d.X, -h.X, h.X), Y: clamp(d.Y, -h.Y, h.Y)}
	if c != d {
		return c
	}

	penX := h.X - math.Abs(d.X)
	penY := h.Y - math.Abs(d.Y)
	if penX <= penY {
		c.X = math.Copysign(h.X, signOrPlus(d.X))
	} else {
		c.Y = math.Copysign(h.Y, signOrPlus(d.Y))
	}
	return c
}

// signOrPlus maps zero (including negative zero) to +1.
func signOrPlus(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
