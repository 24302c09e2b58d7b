// Package scene loads collider scenes from YAML documents.
//
// A document is checked against an embedded JSON schema before any shape is
// built, so structural mistakes are reported all at once. Geometric mistakes
// such as a negative radius surface from the physics constructors.
package scene

import (
	_ "embed"
	"math"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/colliders/internal/config"
	"github.com/tomz197/colliders/internal/physics"
)

//go:embed default.yaml
var defaultScene []byte

//go:embed scene.schema.json
var schemaSource string

var schema = gojsonschema.NewStringLoader(schemaSource)

// ErrInvalidScene is returned when a document is not valid YAML or does not
// match the scene schema.
var ErrInvalidScene = errors.New("invalid scene")

// Settings are the scene-wide tunables.
type Settings struct {
	LineTolerance      float64 `yaml:"line_tolerance" json:"line_tolerance"`
	ProximityThreshold float64 `yaml:"proximity_threshold" json:"proximity_threshold"`
	RotationPerFrame   float64 `yaml:"rotation_per_frame" json:"rotation_per_frame"`
}

// DefaultSettings returns the settings used for keys a document omits.
func DefaultSettings() Settings {
	return Settings{
		LineTolerance:      physics.DefaultLineTolerance,
		ProximityThreshold: 100,
		RotationPerFrame:   0.001,
	}
}

// Vec2 is a point written as a two element sequence.
type Vec2 [2]float64

func (v Vec2) Vec() r2.Vec { return r2.Vec{X: v[0], Y: v[1]} }

// ShapeSpec describes one shape. Which fields apply depends on Kind.
type ShapeSpec struct {
	Kind      string   `yaml:"kind"`
	Name      string   `yaml:"name"`
	Center    Vec2     `yaml:"center"`
	Size      Vec2     `yaml:"size"`
	Angle     *float64 `yaml:"angle"`
	AngleDeg  *float64 `yaml:"angle_deg"`
	Start     Vec2     `yaml:"start"`
	End       Vec2     `yaml:"end"`
	Radius    float64  `yaml:"radius"`
	Tolerance *float64 `yaml:"tolerance"`
	Position  Vec2     `yaml:"position"`
	Vertices  []Vec2   `yaml:"vertices"`
}

// Scene is a validated scene document. It is immutable; Build hands out
// fresh shapes on every call.
type Scene struct {
	Settings Settings
	Shapes   []ShapeSpec

	digest uint64
}

// Entry is a built shape with its display name.
type Entry struct {
	Name  string
	Shape physics.Shape
}

type document struct {
	Settings Settings    `yaml:"settings"`
	Shapes   []ShapeSpec `yaml:"shapes"`
}

// Parse validates and decodes a YAML scene document. Every shape is built
// once so that a scene that parses also builds.
func Parse(data []byte) (*Scene, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(ErrInvalidScene, "yaml: %v", err)
	}
	if raw == nil {
		return nil, errors.Wrap(ErrInvalidScene, "empty document")
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidScene, "schema: %v", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, errors.Wrap(ErrInvalidScene, strings.Join(msgs, "; "))
	}

	doc := document{Settings: DefaultSettings()}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrInvalidScene, "yaml: %v", err)
	}

	s := &Scene{Settings: doc.Settings, Shapes: doc.Shapes, digest: xxhash.Sum64(data)}
	if _, err := s.Build(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads and parses the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return s, nil
}

// Default returns the built-in scene with one shape of every kind.
func Default() *Scene {
	s, err := Parse(defaultScene)
	if err != nil {
		panic(errors.Wrap(err, "embedded default scene"))
	}
	return s
}

// FromEnv loads the scene named by SCENE_FILE, or the default scene when it
// is unset, then applies the ROTATION_PER_FRAME and PROXIMITY_THRESHOLD
// overrides.
func FromEnv() (*Scene, error) {
	s := Default()
	if path := config.GetEnv("SCENE_FILE", ""); path != "" {
		var err error
		if s, err = Load(path); err != nil {
			return nil, err
		}
	}
	s.Settings.RotationPerFrame = config.GetEnvFloat("ROTATION_PER_FRAME", s.Settings.RotationPerFrame)
	s.Settings.ProximityThreshold = config.GetEnvFloat("PROXIMITY_THRESHOLD", s.Settings.ProximityThreshold)
	return s, nil
}

// Digest identifies the source document. Overrides applied by FromEnv are
// not part of it.
func (s *Scene) Digest() uint64 {
	return s.digest
}

// Build constructs a new set of shapes. Shapes carry their own rotation, so
// concurrent sessions must each call Build.
func (s *Scene) Build() ([]Entry, error) {
	entries := make([]Entry, 0, len(s.Shapes))
	for i, spec := range s.Shapes {
		shape, err := s.build(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "shape %d (%s)", i, spec.Kind)
		}
		name := spec.Name
		if name == "" {
			name = spec.Kind
		}
		entries = append(entries, Entry{Name: name, Shape: shape})
	}
	return entries, nil
}

func (s *Scene) build(spec ShapeSpec) (physics.Shape, error) {
	switch spec.Kind {
	case "circle":
		return physics.NewCircle(spec.Center.Vec(), spec.Radius)
	case "aabb":
		return physics.NewAABB(spec.Center.Vec(), halfSize(spec.Size))
	case "obb":
		return physics.NewOBB(spec.Center.Vec(), halfSize(spec.Size), spec.angle())
	case "capsule":
		return physics.NewCapsule(spec.Start.Vec(), spec.End.Vec(), spec.Radius)
	case "segment":
		tolerance := s.Settings.LineTolerance
		if spec.Tolerance != nil {
			tolerance = *spec.Tolerance
		}
		return physics.NewSegment(spec.Start.Vec(), spec.End.Vec(), tolerance)
	case "polygon":
		points := make([]r2.Vec, len(spec.Vertices))
		for i, v := range spec.Vertices {
			points[i] = v.Vec()
		}
		return physics.NewPolygon(points, spec.Position.Vec(), spec.angle())
	}
	return nil, errors.Wrapf(ErrInvalidScene, "unknown kind %q", spec.Kind)
}

func (spec ShapeSpec) angle() float64 {
	switch {
	case spec.Angle != nil:
		return *spec.Angle
	case spec.AngleDeg != nil:
		return *spec.AngleDeg * math.Pi / 180
	}
	return 0
}

func halfSize(size Vec2) r2.Vec {
	return r2.Scale(0.5, size.Vec())
}
