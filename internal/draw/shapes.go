package draw

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// CircleOutline appends segments points approximating the circle to dst.
func CircleOutline(dst []r2.Vec, center r2.Vec, radius float64, segments int) []r2.Vec {
	if segments < 3 {
		segments = 3
	}
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		sin, cos := math.Sincos(float64(i) * step)
		dst = append(dst, r2.Vec{X: center.X + cos*radius, Y: center.Y + sin*radius})
	}
	return dst
}

// CapsuleOutline appends a convex outline of the capsule a-b to dst: a half
// circle around each endpoint, each with segments/2+1 points.
func CapsuleOutline(dst []r2.Vec, a, b r2.Vec, radius float64, segments int) []r2.Vec {
	half := segments / 2
	if half < 2 {
		half = 2
	}
	axis := r2.Sub(b, a)
	angle := math.Atan2(axis.Y, axis.X)

	// Cap around b sweeps from the right side of the axis to the left.
	dst = arc(dst, b, radius, angle-math.Pi/2, half)
	return arc(dst, a, radius, angle+math.Pi/2, half)
}

// arc appends half+1 points of a half circle starting at angle start.
func arc(dst []r2.Vec, center r2.Vec, radius, start float64, half int) []r2.Vec {
	step := math.Pi / float64(half)
	for i := 0; i <= half; i++ {
		sin, cos := math.Sincos(start + float64(i)*step)
		dst = append(dst, r2.Vec{X: center.X + cos*radius, Y: center.Y + sin*radius})
	}
	return dst
}
