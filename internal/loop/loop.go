// Package loop provides the playground loop: Input → Update → Draw at a fixed
// frame rate for a single terminal session.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/tomz197/colliders/internal/config"
	"github.com/tomz197/colliders/internal/draw"
	"github.com/tomz197/colliders/internal/input"
	"github.com/tomz197/colliders/internal/object"
	"github.com/tomz197/colliders/internal/scene"
)

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Scene        *scene.Scene // Default scene if nil
	Logger       *log.Logger  // Discards if nil; never write logs to w
}

// Run starts the playground loop with the standard Input → Update → Draw
// cycle. It returns when the user quits, r reaches EOF or ctx is done.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sc := opts.Scene
	if sc == nil {
		sc = scene.Default()
	}

	entries, err := sc.Build()
	if err != nil {
		return errors.Wrap(err, "build scene")
	}
	state := NewState(entries, sc.Settings)
	stream := input.StartStream(r)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	if err := chunkWriter.Begin(); err != nil {
		return errors.Wrap(err, "set up terminal")
	}
	defer func() {
		if err := chunkWriter.End(); err != nil {
			logger.Debug("restore terminal", "err", err)
		}
	}()

	logger.Info("playground started", "shapes", len(entries), "width", termWidth, "height", termHeight)

	lastTime := time.Now()

	for state.Running {
		frameStart := time.Now()
		state.Delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		state.Input = input.ReadInput(stream)
		if state.Input.Closed {
			logger.Debug("input closed")
		}

		// ===== UPDATE PHASE =====
		updateScreen(termSizeFunc, canvas, chunkWriter)

		paused := state.Paused
		if err := state.Update(canvas); err != nil {
			return errors.Wrap(err, "update")
		}
		if state.Paused != paused {
			logger.Debug("rotation toggled", "paused", state.Paused)
		}
		if !state.Running {
			break
		}

		// ===== DRAW PHASE =====
		if err := drawFrame(state, canvas, chunkWriter); err != nil {
			return errors.Wrap(err, "draw")
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			select {
			case <-ctx.Done():
				logger.Info("playground stopped", "reason", ctx.Err())
				return nil
			case <-time.After(config.TargetFrameTime - elapsed):
			}
		} else if ctx.Err() != nil {
			logger.Info("playground stopped", "reason", ctx.Err())
			return nil
		}
	}

	logger.Info("playground finished")
	return nil
}

// updateScreen handles terminal resize, clamping to max render resolution.
func updateScreen(termSizeFunc draw.TermSizeFunc, canvas *draw.Canvas, cw *draw.ChunkWriter) {
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	canvas.Resize(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// drawFrame draws shapes, then proximity indicators on top, then the HUD.
func drawFrame(state *State, canvas *draw.Canvas, cw *draw.ChunkWriter) error {
	cw.ClearFrame()
	canvas.Clear()

	ctx := object.DrawContext{
		Canvas:    canvas,
		Writer:    cw,
		Camera:    state.Camera,
		Threshold: state.Settings.ProximityThreshold,
	}

	for _, c := range state.Colliders {
		if err := c.Draw(ctx); err != nil {
			return err
		}
	}
	for _, c := range state.Colliders {
		if err := c.DrawProximity(ctx); err != nil {
			return err
		}
	}
	if err := state.Probe.Draw(ctx); err != nil {
		return err
	}

	// Render canvas to terminal
	canvas.Render(cw)

	// Draw border when terminal exceeds max render resolution
	canvas.RenderBorder(cw)

	if err := drawHUD(state, ctx); err != nil {
		return err
	}
	return cw.Flush()
}
