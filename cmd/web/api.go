package main

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/tomz197/colliders/internal/physics"
	"github.com/tomz197/colliders/internal/scene"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toPoint(v r2.Vec) point { return point{X: v.X, Y: v.Y} }

type bounds struct {
	Min point `json:"min"`
	Max point `json:"max"`
}

type shapeInfo struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Bounds bounds `json:"bounds"`
}

type sceneResponse struct {
	Settings scene.Settings `json:"settings"`
	Shapes   []shapeInfo    `json:"shapes"`
}

type hitInfo struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Inside   bool    `json:"inside"`
	Closest  point   `json:"closest"`
	Distance float64 `json:"distance"`
}

type probeResponse struct {
	Point point     `json:"point"`
	Hits  []hitInfo `json:"hits"`
}

type api struct {
	scene   *scene.Scene
	sshHost string
	logger  *log.Logger
}

// newRouter wires the landing page and the JSON API for sc.
func newRouter(sc *scene.Scene, sshHost string, logger *log.Logger) *mux.Router {
	a := &api{scene: sc, sshHost: sshHost, logger: logger}

	r := mux.NewRouter()
	r.Use(a.logRequests)
	r.HandleFunc("/", a.handleIndex).Methods("GET")
	r.HandleFunc("/api/scene", a.handleScene).Methods("GET")
	r.HandleFunc("/api/probe", a.handleProbe).Methods("GET")
	r.HandleFunc("/ws/probe", a.handleProbeStream).Methods("GET")
	return r
}

func (a *api) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func (a *api) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", a.sshHost)
	_, _ = w.Write([]byte(page))
}

func (a *api) handleScene(w http.ResponseWriter, r *http.Request) {
	etag := fmt.Sprintf(`"%016x"`, a.scene.Digest())
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	entries, err := a.scene.Build()
	if err != nil {
		a.fail(w, http.StatusInternalServerError, err)
		return
	}

	resp := sceneResponse{Settings: a.scene.Settings, Shapes: make([]shapeInfo, len(entries))}
	for i, e := range entries {
		b := e.Shape.Bounds()
		resp.Shapes[i] = shapeInfo{
			Name:   e.Name,
			Kind:   e.Shape.Kind().String(),
			Bounds: bounds{Min: toPoint(b.Min), Max: toPoint(b.Max)},
		}
	}
	a.writeJSON(w, resp)
}

func (a *api) handleProbe(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil || !finite(x) || !finite(y) {
		http.Error(w, "x and y must be finite numbers", http.StatusBadRequest)
		return
	}
	p := r2.Vec{X: x, Y: y}

	entries, err := a.scene.Build()
	if err != nil {
		a.fail(w, http.StatusInternalServerError, err)
		return
	}

	a.writeJSON(w, probeAll(entries, p))
}

// probeAll runs one query against every entry.
func probeAll(entries []scene.Entry, p r2.Vec) probeResponse {
	resp := probeResponse{Point: toPoint(p), Hits: make([]hitInfo, len(entries))}
	for i, e := range entries {
		hit := physics.Probe(e.Shape, p)
		resp.Hits[i] = hitInfo{
			Name:     e.Name,
			Kind:     e.Shape.Kind().String(),
			Inside:   hit.Inside,
			Closest:  toPoint(hit.Closest),
			Distance: hit.Distance,
		}
	}
	return resp
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (a *api) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encode response", "err", err)
	}
}

func (a *api) fail(w http.ResponseWriter, status int, err error) {
	a.logger.Error("request failed", "err", err)
	http.Error(w, err.Error(), status)
}
