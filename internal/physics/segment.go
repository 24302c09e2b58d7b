package physics

import "gonum.org/v1/gonum/spatial/r2"

// DefaultLineTolerance is the distance within which a point counts as
// touching a segment.
const DefaultLineTolerance = 1.0

// Segment is a line segment with no thickness. Contains is a hit test
// within Tolerance of the segment rather than an interior test.
type Segment struct {
	Start, End r2.Vec
	Tolerance  float64
}

// NewSegment returns a segment hit-tested with the given tolerance.
func NewSegment(start, end r2.Vec, tolerance float64) (*Segment, error) {
	if err := checkPoint("segment start", start); err != nil {
		return nil, err
	}
	if err := checkPoint("segment end", end); err != nil {
		return nil, err
	}
	if err := checkNonNegative("segment tolerance", tolerance); err != nil {
		return nil, err
	}
	return &Segment{Start: start, End: end, Tolerance: tolerance}, nil
}

func (s *Segment) Kind() Kind { return KindSegment }

func (s *Segment) Contains(p r2.Vec) bool {
	return PointInCircle(p, s.ClosestPoint(p), s.Tolerance)
}

func (s *Segment) ClosestPoint(p r2.Vec) r2.Vec {
	return ClosestOnSegment(s.Start, s.End, p)
}

// Rotate is a no-op: orientation is implied by the endpoints.
func (s *Segment) Rotate(float64) {}

func (s *Segment) Bounds() r2.Box {
	return boundsOf(s.Start, s.End)
}

// ClosestOnSegment projects p onto the segment a-b, clamping to the
// endpoints. A zero-length segment is treated as the point a.
func ClosestOnSegment(a, b, p r2.Vec) r2.Vec {
	ab := r2.Sub(b, a)
	lenSq := r2.Norm2(ab)
	if lenSq == 0 {
		return a
	}
	t := clamp(r2.Dot(r2.Sub(p, a), ab)/lenSq, 0, 1)
	return r2.Add(a, r2.Scale(t, ab))
}

// Capsule is the set of points within Radius of the segment Start-End.
type Capsule struct {
	Start, End r2.Vec
	Radius     float64
}

// NewCapsule returns a capsule, rejecting a negative radius.
func NewCapsule(start, end r2.Vec, radius float64) (*Capsule, error) {
	if err := checkPoint("capsule start", start); err != nil {
		return nil, err
	}
	if err := checkPoint("capsule end", end); err != nil {
		return nil, err
	}
	if err := checkNonNegative("capsule radius", radius); err != nil {
		return nil, err
	}
	return &Capsule{Start: start, End: end, Radius: radius}, nil
}

func (c *Capsule) Kind() Kind { return KindCapsule }

func (c *Capsule) Contains(p r2.Vec) bool {
	return PointInCircle(p, ClosestOnSegment(c.Start, c.End, p), c.Radius)
}

// ClosestPoint offsets the nearest skeleton point by Radius toward p. When p
// lies on the skeleton the left normal of the axis is used, and (1, 0) for a
// zero-length axis, which makes a degenerate capsule behave as a circle.
func (c *Capsule) ClosestPoint(p r2.Vec) r2.Vec {
	s := ClosestOnSegment(c.Start, c.End, p)
	axis := r2.Sub(c.End, c.Start)
	fallback := direction(r2.Vec{X: -axis.Y, Y: axis.X}, r2.Vec{X: 1})
	return r2.Add(s, r2.Scale(c.Radius, direction(r2.Sub(p, s), fallback)))
}

// Rotate is a no-op: orientation is implied by the endpoints.
func (c *Capsule) Rotate(float64) {}

func (c *Capsule) Bounds() r2.Box {
	return inflate(boundsOf(c.Start, c.End), c.Radius)
}
