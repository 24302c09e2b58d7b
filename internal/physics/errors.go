package physics

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrDegenerateGeometry is returned when a polygon has (near) zero area,
	// which leaves its centroid undefined.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrInvalidParameter is returned by constructors for negative radii or
	// extents, non-finite coordinates, or too few polygon vertices.
	ErrInvalidParameter = errors.New("invalid parameter")
)

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}

func checkPoint(name string, v r2.Vec) error {
	if !isFinite(v) {
		return invalidf("%s is not finite: (%g, %g)", name, v.X, v.Y)
	}
	return nil
}

func checkScalar(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidf("%s is not finite: %g", name, v)
	}
	return nil
}

func checkNonNegative(name string, v float64) error {
	if err := checkScalar(name, v); err != nil {
		return err
	}
	if v < 0 {
		return invalidf("%s must be non-negative, got %g", name, v)
	}
	return nil
}
