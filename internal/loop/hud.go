package loop

import (
	"fmt"
	"strings"

	"github.com/tomz197/colliders/internal/config"
	"github.com/tomz197/colliders/internal/object"
)

const controlsHint = "mouse/arrows move  space pause  r reset  q quit"

// hudLines returns the overlay text for the current frame.
func hudLines(state *State, termHeight int) []object.Text {
	p := state.Probe.Position
	lines := []object.Text{
		{X: 2, Y: 1, Value: fmt.Sprintf("probe %.1f, %.1f", p.X, p.Y)},
		{X: 2, Y: 2, Value: "inside: " + hoveredSummary(state.Hovered())},
	}

	if n := state.Nearest(); n != nil {
		lines = append(lines, object.Text{
			X:     2,
			Y:     3,
			Value: fmt.Sprintf("nearest: %s (%.1f)", n.Name, n.Hit.Distance),
		})
	}

	hint := controlsHint
	if state.Paused {
		hint = "PAUSED  " + hint
	}
	lines = append(lines, object.Text{X: 2, Y: termHeight, Value: hint})
	return lines
}

// hoveredSummary lists up to HoverListLength names and counts the rest.
func hoveredSummary(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	if len(names) <= config.HoverListLength {
		return strings.Join(names, ", ")
	}
	shown := strings.Join(names[:config.HoverListLength], ", ")
	return fmt.Sprintf("%s +%d", shown, len(names)-config.HoverListLength)
}

// drawHUD writes the overlay after the canvas so it stays on top.
func drawHUD(state *State, ctx object.DrawContext) error {
	for _, line := range hudLines(state, ctx.Canvas.TerminalHeight()) {
		if err := line.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
