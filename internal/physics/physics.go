// Package physics provides the 2D geometric query kernel: shape variants,
// containment and closest-point queries, and polygon normalization.
package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the slack accepted by containment tests, so that a point
// returned by ClosestPoint always tests as contained despite rounding.
const Epsilon = 1e-9

// Distance calculates the Euclidean distance between two points. It stays
// finite for any finite pair of points.
func Distance(a, b r2.Vec) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b r2.Vec) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a center position.
func PointInCircle(p, center r2.Vec, radius float64) bool {
	r := radius + Epsilon
	return DistanceSquared(p, center) <= r*r
}

// Hit is the result of probing a shape with a single query point.
type Hit struct {
	Inside   bool
	Closest  r2.Vec
	Distance float64 // Distance from the query point to Closest
}

// Probe runs both queries of s against p.
func Probe(s Shape, p r2.Vec) Hit {
	closest := s.ClosestPoint(p)
	return Hit{
		Inside:   s.Contains(p),
		Closest:  closest,
		Distance: Distance(closest, p),
	}
}

// isFinite reports whether both coordinates are finite numbers.
func isFinite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
