package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestCircleAtOrigin(t *testing.T) {
	c, err := NewCircle(r2.Vec{}, 50)
	require.NoError(t, err)

	assert.True(t, c.Contains(r2.Vec{}))
	cp := c.ClosestPoint(r2.Vec{})
	assert.InDelta(t, 50, Distance(cp, r2.Vec{}), delta)
	// The fallback direction is fixed.
	assert.Equal(t, cp, c.ClosestPoint(r2.Vec{}))
	assertVec(t, r2.Vec{X: 50}, cp)
}

func TestAABB(t *testing.T) {
	b, err := NewAABB(r2.Vec{X: 200, Y: 10}, r2.Vec{X: 60, Y: 60})
	require.NoError(t, err)

	assert.True(t, b.Contains(r2.Vec{X: 200, Y: 10}))
	assert.False(t, b.Contains(r2.Vec{X: 400, Y: 10}))
	assertVec(t, r2.Vec{X: 260, Y: 10}, b.ClosestPoint(r2.Vec{X: 400, Y: 10}))
	assertVec(t, r2.Vec{X: 260, Y: 70}, b.ClosestPoint(r2.Vec{X: 300, Y: 100}))

	// Interior queries go to the nearest face.
	assertVec(t, r2.Vec{X: 200, Y: 70}, b.ClosestPoint(r2.Vec{X: 200, Y: 60}))
	assertVec(t, r2.Vec{X: 140, Y: 15}, b.ClosestPoint(r2.Vec{X: 150, Y: 15}))
	// The exact center resolves to the +x face.
	assertVec(t, r2.Vec{X: 260, Y: 10}, b.ClosestPoint(r2.Vec{X: 200, Y: 10}))

	bounds := b.Bounds()
	assertVec(t, r2.Vec{X: 140, Y: -50}, bounds.Min)
	assertVec(t, r2.Vec{X: 260, Y: 70}, bounds.Max)
}

func TestOBB(t *testing.T) {
	b, err := NewOBB(r2.Vec{X: -200, Y: 10}, r2.Vec{X: 40, Y: 80}, math.Pi/2)
	require.NoError(t, err)

	// Rotated a quarter turn, the box is 160 wide and 80 tall.
	assert.True(t, b.Contains(r2.Vec{X: -130, Y: 10}))
	assert.False(t, b.Contains(r2.Vec{X: -200, Y: 60}))
	assertVec(t, r2.Vec{X: -200, Y: 50}, b.ClosestPoint(r2.Vec{X: -200, Y: 60}))
	assertVec(t, r2.Vec{X: -280, Y: 10}, b.ClosestPoint(r2.Vec{X: -300, Y: 10}))

	b.Rotate(-math.Pi / 2)
	assert.True(t, b.Contains(r2.Vec{X: -200, Y: 60}))
	assert.False(t, b.Contains(r2.Vec{X: -130, Y: 10}))
}

func TestSegmentTolerance(t *testing.T) {
	start := r2.Vec{X: -200, Y: -200}
	end := r2.Vec{X: 100, Y: -400}
	s, err := NewSegment(start, end, DefaultLineTolerance)
	require.NoError(t, err)

	mid := r2.Scale(0.5, r2.Add(start, end))
	assert.True(t, s.Contains(mid))

	dir := r2.Unit(r2.Sub(end, start))
	normal := r2.Vec{X: -dir.Y, Y: dir.X}
	assert.True(t, s.Contains(r2.Add(mid, r2.Scale(0.9, normal))))
	assert.False(t, s.Contains(r2.Add(mid, r2.Scale(2, normal))))

	// Projections clamp to the endpoints.
	assertVec(t, start, s.ClosestPoint(r2.Vec{X: -300, Y: -100}))
	assertVec(t, end, s.ClosestPoint(r2.Vec{X: 200, Y: -500}))

	wide, err := NewSegment(start, end, 5)
	require.NoError(t, err)
	assert.True(t, wide.Contains(r2.Add(mid, r2.Scale(2, normal))))
}

func TestZeroLengthSegment(t *testing.T) {
	p := r2.Vec{X: 3, Y: 4}
	s, err := NewSegment(p, p, 1)
	require.NoError(t, err)
	assert.Equal(t, p, s.ClosestPoint(r2.Vec{X: 100, Y: 100}))
	assert.True(t, s.Contains(r2.Vec{X: 3.5, Y: 4}))
	assert.False(t, s.Contains(r2.Vec{X: 5, Y: 4}))
}

func TestCapsule(t *testing.T) {
	c, err := NewCapsule(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 100, Y: 0}, 10)
	require.NoError(t, err)

	assert.True(t, c.Contains(r2.Vec{X: 50, Y: 9}))
	assert.True(t, c.Contains(r2.Vec{X: 105, Y: 5}))
	assert.False(t, c.Contains(r2.Vec{X: 50, Y: 11}))
	assert.False(t, c.Contains(r2.Vec{X: 109, Y: 9}))

	assertVec(t, r2.Vec{X: 50, Y: 10}, c.ClosestPoint(r2.Vec{X: 50, Y: 40}))
	assertVec(t, r2.Vec{X: 50, Y: -10}, c.ClosestPoint(r2.Vec{X: 50, Y: -3}))
	assertVec(t, r2.Vec{X: 110, Y: 0}, c.ClosestPoint(r2.Vec{X: 200, Y: 0}))
	// On the skeleton the left normal is used.
	assertVec(t, r2.Vec{X: 50, Y: 10}, c.ClosestPoint(r2.Vec{X: 50, Y: 0}))
}

func TestZeroLengthCapsuleIsCircle(t *testing.T) {
	center := r2.Vec{X: -20, Y: 35}
	capsule, err := NewCapsule(center, center, 30)
	require.NoError(t, err)
	circle, err := NewCircle(center, 30)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	queries := append(randomPoints(rng, 200, 100), center)
	for _, q := range queries {
		assert.Equal(t, circle.Contains(q), capsule.Contains(q), "query %v", q)
		assertVec(t, circle.ClosestPoint(q), capsule.ClosestPoint(q), "query %v", q)
	}
}

func TestRotateIsNoOpForUnorientedShapes(t *testing.T) {
	q := r2.Vec{X: 37, Y: -12}
	for _, s := range unorientedShapes(t) {
		before := Probe(s, q)
		s.Rotate(1.3)
		assert.Equal(t, before, Probe(s, q), s.Kind().String())
	}
}

func TestClosestPointIsContained(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, s := range allShapes(t) {
		for _, q := range randomPoints(rng, 300, 600) {
			cp := s.ClosestPoint(q)
			assert.True(t, s.Contains(cp), "%s: closest point %v of %v not contained", s.Kind(), cp, q)
		}
	}
}

func TestClosestPointIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, s := range allShapes(t) {
		for _, q := range randomPoints(rng, 300, 600) {
			cp := s.ClosestPoint(q)
			assertVec(t, cp, s.ClosestPoint(cp), "%s: query %v", s.Kind())
		}
	}
}

func TestRotationRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b, err := NewOBB(r2.Vec{X: -200, Y: 10}, r2.Vec{X: 40, Y: 80}, 0.3)
	require.NoError(t, err)
	p, err := NewPolygon(hexagon(), r2.Vec{X: -500, Y: -200}, 0.3)
	require.NoError(t, err)

	for _, s := range []Shape{b, p} {
		queries := randomPoints(rng, 100, 600)
		before := make([]Hit, len(queries))
		for i, q := range queries {
			before[i] = Probe(s, q)
		}

		s.Rotate(2.2)
		s.Rotate(-2.2)

		for i, q := range queries {
			after := Probe(s, q)
			assertVec(t, before[i].Closest, after.Closest, "%s: query %v", s.Kind(), q)
			// Containment may only differ for points on the boundary.
			if math.Abs(before[i].Distance) > 1e-6 {
				assert.Equal(t, before[i].Inside, after.Inside, "%s: query %v", s.Kind(), q)
			}
		}
	}
}

func TestBoundsContainShape(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, s := range allShapes(t) {
		b := s.Bounds()
		for _, q := range randomPoints(rng, 300, 600) {
			cp := s.ClosestPoint(q)
			assert.True(t, cp.X >= b.Min.X-delta && cp.X <= b.Max.X+delta, "%s: %v outside %v", s.Kind(), cp, b)
			assert.True(t, cp.Y >= b.Min.Y-delta && cp.Y <= b.Max.Y+delta, "%s: %v outside %v", s.Kind(), cp, b)
		}
	}
}

func randomPoints(rng *rand.Rand, n int, spread float64) []r2.Vec {
	points := make([]r2.Vec, n)
	for i := range points {
		points[i] = r2.Vec{X: (rng.Float64()*2 - 1) * spread, Y: (rng.Float64()*2 - 1) * spread}
	}
	return points
}

func unorientedShapes(t *testing.T) []Shape {
	t.Helper()
	circle, err := NewCircle(r2.Vec{}, 50)
	require.NoError(t, err)
	aabb, err := NewAABB(r2.Vec{X: 200, Y: 10}, r2.Vec{X: 60, Y: 60})
	require.NoError(t, err)
	capsule, err := NewCapsule(r2.Vec{X: -200, Y: 200}, r2.Vec{X: 200, Y: 400}, 30)
	require.NoError(t, err)
	segment, err := NewSegment(r2.Vec{X: -200, Y: -200}, r2.Vec{X: 100, Y: -400}, DefaultLineTolerance)
	require.NoError(t, err)
	return []Shape{circle, aabb, capsule, segment}
}

func allShapes(t *testing.T) []Shape {
	t.Helper()
	obb, err := NewOBB(r2.Vec{X: -200, Y: 10}, r2.Vec{X: 40, Y: 80}, 90)
	require.NoError(t, err)
	tri, err := NewPolygon(triangle(), r2.Vec{X: 200, Y: -200}, 0.4)
	require.NoError(t, err)
	hex, err := NewPolygon(hexagon(), r2.Vec{X: -500, Y: -200}, -1.1)
	require.NoError(t, err)
	flat, err := NewAABB(r2.Vec{X: 5, Y: 5}, r2.Vec{X: 30, Y: 0})
	require.NoError(t, err)
	dot, err := NewCircle(r2.Vec{X: -7, Y: 3}, 0)
	require.NoError(t, err)
	return append(unorientedShapes(t), obb, tri, hex, flat, dot)
}
