package config

import "time"

// View resolution - the visible viewport in world units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 1400
	ViewHeight = 1000
)

// Max render resolution in terminal cells. Larger terminals get a centered
// render area with a border.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS

	RoundSegments   = 32  // Points used to outline circles and capsule caps
	ClosestDotSize  = 4.0 // Radius of the dot drawn at the closest point
	ProbeCrossSize  = 12.0
	CullMargin      = 10.0 // World units kept around the view before culling
	HoverListLength = 3    // Hovered shape names listed in the HUD
)

// Input
const (
	NudgeSpeed = 300.0 // World units per second while an arrow key is held
)
