package compute

import (
	"errors"
	"fmt"

	"github.com/SharonMathew4/StellarForge/internal/collide"
	"github.com/SharonMathew4/StellarForge/internal/gravity"
	"github.com/SharonMathew4/StellarForge/internal/octree"
	"github.com/SharonMathew4/StellarForge/internal/particle"
)

// Params carries the physics configuration a backend needs for one step.
type Params struct {
	G          float32
	Softening  float32
	Theta      float32
	Collisions bool
}

// Backend runs one full simulation step: tree build, mass aggregation,
// acceleration evaluation, Verlet integration, and (when enabled) collision
// merging. Backends differ only in scheduling; the mathematical pipeline is
// identical.
type Backend interface {
	Name() string
	Available() bool
	Step(s *particle.System, p Params, dt float32)
	Cleanup()
}

// Recognized backend tags.
const (
	TagSingle = "single"
	TagOpenMP = "openmp"
	TagCUDA   = "cuda"
	TagOpenGL = "opengl"
)

// ErrUnknownBackend indicates a tag outside the recognized set.
var ErrUnknownBackend = errors.New("compute: unknown backend")

// New returns the backend for a tag.
func New(tag string) (Backend, error) {
	switch tag {
	case TagSingle:
		return NewSerial(), nil
	case TagOpenMP:
		return NewOpenMP(), nil
	case TagCUDA:
		return NewCUDA(), nil
	case TagOpenGL:
		return NewOpenGL(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, tag)
}

// Tags lists the recognized backend tags.
func Tags() []string {
	return []string{TagSingle, TagOpenMP, TagCUDA, TagOpenGL}
}

// Fallback is the backend substituted when a requested one is unavailable.
func Fallback() Backend { return NewOpenMP() }

// buildTree constructs and mass-aggregates the step's octree. Nil when the
// system is empty.
func buildTree(s *particle.System) *octree.Tree {
	t := octree.Build(s.Pos)
	if t != nil {
		t.AccumulateMass(s.Pos, s.Mass)
	}
	return t
}

func gravParams(p Params) gravity.Params {
	return gravity.Params{G: p.G, Softening: p.Softening, Theta: p.Theta}
}

func resolveCollisions(s *particle.System, p Params) {
	if p.Collisions {
		collide.Resolve(s, 2*p.Softening)
	}
}
