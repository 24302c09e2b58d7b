package physics

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon is a convex polygon defined in a local frame centered on its
// centroid, placed in the world by Position and Angle.
//
// Convexity and consistent winding are not verified. A concave polygon does
// not crash any query, but its results are meaningless.
type Polygon struct {
	Vertices []r2.Vec // Centroid-relative, consistently wound
	Centroid r2.Vec   // Centroid of the vertices as originally given
	Position r2.Vec
	Angle    float64
}

// NewPolygon normalizes points around their centroid and places the result
// at position, rotated by angle. The points slice is not modified.
func NewPolygon(points []r2.Vec, position r2.Vec, angle float64) (*Polygon, error) {
	if err := checkPoint("polygon position", position); err != nil {
		return nil, err
	}
	if err := checkScalar("polygon angle", angle); err != nil {
		return nil, err
	}
	local, centroid, err := Normalize(points)
	if err != nil {
		return nil, err
	}
	return &Polygon{
		Vertices: local,
		Centroid: centroid,
		Position: position,
		Angle:    angle,
	}, nil
}

// Normalize computes the centroid of a simple polygon with the shoelace
// formula and returns a new slice of vertices relative to it.
//
// Polygons with (near) zero signed area fail with ErrDegenerateGeometry.
func Normalize(points []r2.Vec) (local []r2.Vec, centroid r2.Vec, err error) {
	if len(points) < 3 {
		return nil, r2.Vec{}, invalidf("polygon needs at least 3 vertices, got %d", len(points))
	}

	var cx, cy, area, scale float64
	for i, curr := range points {
		if err := checkPoint("polygon vertex", curr); err != nil {
			return nil, r2.Vec{}, err
		}
		next := points[(i+1)%len(points)]
		cross := curr.X*next.Y - next.X*curr.Y

		cx += (curr.X + next.X) * cross
		cy += (curr.Y + next.Y) * cross
		area += cross
		scale = math.Max(scale, math.Max(math.Abs(curr.X), math.Abs(curr.Y)))
	}
	area *= 0.5

	// The area threshold follows the coordinate scale so that collinear
	// points far from the origin are still caught.
	if math.Abs(area) <= Epsilon*math.Max(1, scale*scale) {
		return nil, r2.Vec{}, errors.Wrapf(ErrDegenerateGeometry, "polygon signed area %g", area)
	}

	centroid = r2.Vec{X: cx / (6 * area), Y: cy / (6 * area)}
	local = make([]r2.Vec, len(points))
	for i, p := range points {
		local[i] = r2.Sub(p, centroid)
	}
	return local, centroid, nil
}

func (p *Polygon) Kind() Kind { return KindPolygon }

func (p *Polygon) Transform() Transform {
	return NewTransform(p.Position, p.Angle)
}

// Contains requires the local point to lie on the same side of every edge.
// Either winding is accepted as long as it is consistent.
func (p *Polygon) Contains(pt r2.Vec) bool {
	q := p.Transform().MulT(pt)

	var inner, outer bool
	n := len(p.Vertices)
	for i, v := range p.Vertices {
		edge := r2.Sub(p.Vertices[(i+1)%n], v)
		length := r2.Norm(edge)
		if length == 0 {
			continue
		}
		side := r2.Cross(edge, r2.Sub(q, v)) / length
		switch {
		case side > Epsilon:
			inner = true
		case side < -Epsilon:
			outer = true
		}
		if inner && outer {
			return false
		}
	}
	return true
}

// ClosestPoint returns the nearest point over all edges, also when pt lies
// inside the polygon.
func (p *Polygon) ClosestPoint(pt r2.Vec) r2.Vec {
	xf := p.Transform()
	q := xf.MulT(pt)

	best := p.Vertices[0]
	bestDist := math.Inf(1)
	n := len(p.Vertices)
	for i, v := range p.Vertices {
		c := ClosestOnSegment(v, p.Vertices[(i+1)%n], q)
		d := Distance(c, q)
		// Far from the polygon the edge distances round to the same value;
		// keep the candidate that lies further towards q.
		if d < bestDist || (d == bestDist && r2.Dot(r2.Sub(c, best), r2.Sub(q, best)) > 0) {
			best, bestDist = c, d
		}
	}
	return xf.Mul(best)
}

func (p *Polygon) Rotate(delta float64) {
	p.Angle += delta
}

// WorldVertices appends the world-space vertices to dst and returns it.
func (p *Polygon) WorldVertices(dst []r2.Vec) []r2.Vec {
	xf := p.Transform()
	for _, v := range p.Vertices {
		dst = append(dst, xf.Mul(v))
	}
	return dst
}

func (p *Polygon) Bounds() r2.Box {
	return boundsOf(p.WorldVertices(make([]r2.Vec, 0, len(p.Vertices)))...)
}
