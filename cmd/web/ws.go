package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

// maxProbeMessage bounds a single client message on /ws/probe.
const maxProbeMessage = 512

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// probeRequest is one message on /ws/probe. Rotate is applied to the
// connection's shapes before probing.
type probeRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Rotate float64 `json:"rotate"`
}

type streamError struct {
	Error string `json:"error"`
}

// handleProbeStream answers probe messages over a websocket. Every
// connection owns a freshly built copy of the scene, so rotations persist
// for the lifetime of the connection only.
func (a *api) handleProbeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxProbeMessage)

	entries, err := a.scene.Build()
	if err != nil {
		a.logger.Error("build scene", "err", err)
		_ = conn.WriteJSON(streamError{Error: err.Error()})
		return
	}

	a.logger.Debug("probe stream opened", "remote", r.RemoteAddr)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				a.logger.Debug("probe stream closed", "err", err)
			}
			return
		}

		var req probeRequest
		if err := json.Unmarshal(message, &req); err != nil {
			if werr := conn.WriteJSON(streamError{Error: errors.Wrap(err, "parse request").Error()}); werr != nil {
				return
			}
			continue
		}

		if req.Rotate != 0 {
			for _, e := range entries {
				e.Shape.Rotate(req.Rotate)
			}
		}
		if err := conn.WriteJSON(probeAll(entries, r2.Vec{X: req.X, Y: req.Y})); err != nil {
			a.logger.Debug("probe stream write failed", "err", err)
			return
		}
	}
}
