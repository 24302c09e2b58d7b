package loop

import (
	"time"

	"github.com/tomz197/colliders/internal/draw"
	"github.com/tomz197/colliders/internal/object"
	"github.com/tomz197/colliders/internal/scene"
)

// State holds one session's playground: its own copy of the shapes, the
// probe and the view.
type State struct {
	Colliders []*object.Collider
	Probe     *object.Probe
	Camera    object.Camera
	Settings  scene.Settings
	Input     object.Input
	Paused    bool
	Running   bool
	Delta     time.Duration
}

// NewState creates a state around freshly built scene entries.
func NewState(entries []scene.Entry, settings scene.Settings) *State {
	colliders := make([]*object.Collider, len(entries))
	for i, e := range entries {
		colliders[i] = object.NewCollider(e.Name, e.Shape)
	}
	return &State{
		Colliders: colliders,
		Probe:     &object.Probe{},
		Camera:    object.NewCamera(),
		Settings:  settings,
		Running:   true,
	}
}

// UpdateContext creates an UpdateContext from the current state. Mouse
// reports are mapped through canvas and camera into world coordinates.
func (s *State) UpdateContext(canvas *draw.Canvas) object.UpdateContext {
	ctx := object.UpdateContext{
		Delta: s.Delta,
		Input: s.Input,
		Probe: s.Probe.Position,
	}
	if !s.Paused {
		ctx.Rotation = s.Settings.RotationPerFrame
	}
	if s.Input.MouseMoved {
		logical := canvas.TerminalToLogical(s.Input.Mouse.Col, s.Input.Mouse.Row)
		ctx.Pointer = s.Camera.ScreenToWorld(logical)
		ctx.PointerMoved = true
	}
	return ctx
}

// Update advances one frame: the probe moves first so that every collider is
// probed at the same, current position.
func (s *State) Update(canvas *draw.Canvas) error {
	if s.Input.Quit || s.Input.Closed {
		s.Running = false
		return nil
	}
	if s.Input.Pause {
		s.Paused = !s.Paused
	}

	ctx := s.UpdateContext(canvas)
	if err := s.Probe.Update(ctx); err != nil {
		return err
	}
	ctx.Probe = s.Probe.Position

	for _, c := range s.Colliders {
		if err := c.Update(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Hovered returns the names of the colliders containing the probe.
func (s *State) Hovered() []string {
	var names []string
	for _, c := range s.Colliders {
		if c.Hit.Inside {
			names = append(names, c.Name)
		}
	}
	return names
}

// Nearest returns the collider whose closest point is nearest to the probe,
// or nil if there are none.
func (s *State) Nearest() *object.Collider {
	var nearest *object.Collider
	for _, c := range s.Colliders {
		if nearest == nil || c.Hit.Distance < nearest.Hit.Distance {
			nearest = c
		}
	}
	return nearest
}
