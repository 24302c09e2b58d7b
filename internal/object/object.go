// Package object holds the drawable entities of the playground: colliders,
// the probe cursor and text, plus the camera that maps world units to the
// canvas.
package object

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/tomz197/colliders/internal/draw"
	"github.com/tomz197/colliders/internal/input"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta    time.Duration
	Input    Input
	Probe    r2.Vec  // Query point in world coordinates
	Rotation float64 // Radians to rotate by this frame

	// Pointer is the mouse position in world coordinates, valid if
	// PointerMoved.
	Pointer      r2.Vec
	PointerMoved bool
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas    *draw.Canvas      // High-resolution canvas (2x vertical)
	Writer    *draw.ChunkWriter // Direct terminal output (for text)
	Camera    Camera            // Maps world coordinates onto the canvas
	Threshold float64           // Proximity indicator range in world units
}

// Object is a drawable and updatable playground entity.
type Object interface {
	// Update updates the object state for one frame.
	Update(ctx UpdateContext) error

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

var (
	_ Object = (*Collider)(nil)
	_ Object = (*Probe)(nil)
	_ Object = Text{}
)
