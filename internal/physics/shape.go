package physics

import "gonum.org/v1/gonum/spatial/r2"

// Kind identifies a shape variant.
type Kind int

const (
	KindCircle Kind = iota
	KindAABB
	KindOBB
	KindCapsule
	KindSegment
	KindPolygon
)

var kindNames = [...]string{
	KindCircle:  "circle",
	KindAABB:    "aabb",
	KindOBB:     "obb",
	KindCapsule: "capsule",
	KindSegment: "segment",
	KindPolygon: "polygon",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Shape is the query surface shared by every shape variant. The set of
// variants is closed: only types in this package implement it.
//
// Queries are pure functions of the shape and the point. Rotate is the only
// mutation; it adds delta to the stored angle of orientation-sensitive
// variants and does nothing for the others.
type Shape interface {
	// Kind reports the variant.
	Kind() Kind

	// Contains reports whether p lies within the shape's filled interior,
	// or within the tolerance band of a segment.
	Contains(p r2.Vec) bool

	// ClosestPoint returns the point on the shape's boundary nearest to p.
	// Interior points also map to the boundary.
	ClosestPoint(p r2.Vec) r2.Vec

	// Rotate adds delta radians to the shape's orientation.
	Rotate(delta float64)

	// Bounds returns the world-space axis-aligned bounding box.
	Bounds() r2.Box

	shape()
}

// Compile-time checks that every variant implements Shape.
var (
	_ Shape = (*Circle)(nil)
	_ Shape = (*AABB)(nil)
	_ Shape = (*OBB)(nil)
	_ Shape = (*Capsule)(nil)
	_ Shape = (*Segment)(nil)
	_ Shape = (*Polygon)(nil)
)

func (*Circle) shape()  {}
func (*AABB) shape()    {}
func (*OBB) shape()     {}
func (*Capsule) shape() {}
func (*Segment) shape() {}
func (*Polygon) shape() {}

// boundsOf returns the smallest box containing every point.
func boundsOf(points ...r2.Vec) r2.Box {
	if len(points) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < b.Min.X {
			b.Min.X = p.X
		}
		if p.Y < b.Min.Y {
			b.Min.Y = p.Y
		}
		if p.X > b.Max.X {
			b.Max.X = p.X
		}
		if p.Y > b.Max.Y {
			b.Max.Y = p.Y
		}
	}
	return b
}

// inflate grows b by r on every side.
func inflate(b r2.Box, r float64) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: b.Min.X - r, Y: b.Min.Y - r},
		Max: r2.Vec{X: b.Max.X + r, Y: b.Max.Y + r},
	}
}
