package engine

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SharonMathew4/StellarForge/internal/compute"
	"github.com/SharonMathew4/StellarForge/internal/particle"
)

// Parameter defaults.
const (
	DefaultG         = 1.0
	DefaultSoftening = 0.01
	DefaultTheta     = 0.5
	DefaultBackend   = compute.TagOpenMP

	maxTheta = 10.0
)

// Engine is the host boundary of the N-body simulation: bulk array
// ingress/egress, particle add/remove, parameter setters, and the per-step
// backend dispatch with wall-clock timing. It is a single-owner object;
// no method may be called concurrently with another on the same instance.
type Engine struct {
	sys *particle.System

	g          float32
	softening  float32
	theta      float32
	collisions bool

	tag     string
	backend compute.Backend

	lastStepMS float64
	warned     bool
}

// New creates an empty engine with default parameters and the default
// backend.
func New() *Engine {
	b, _ := compute.New(DefaultBackend)
	return &Engine{
		sys:       particle.NewSystem(0),
		g:         DefaultG,
		softening: DefaultSoftening,
		theta:     DefaultTheta,
		tag:       DefaultBackend,
		backend:   b,
	}
}

// Initialize sizes the store to n zeroed particles and selects a backend.
func (e *Engine) Initialize(n int, tag string) error {
	if err := e.SetBackend(tag); err != nil {
		return err
	}
	e.sys = particle.NewSystem(n)
	return nil
}

// SetPositions ingests a flat (k,3) buffer, resizing the store to k.
func (e *Engine) SetPositions(buf []float32) error { return e.sys.SetPositions(buf) }

// SetVelocities ingests a flat (N,3) buffer matching the current count.
func (e *Engine) SetVelocities(buf []float32) error { return e.sys.SetVelocities(buf) }

// SetMasses ingests a flat (N,) buffer matching the current count.
func (e *Engine) SetMasses(buf []float32) error { return e.sys.SetMasses(buf) }

// SetTypes ingests a flat (N,) buffer matching the current count.
func (e *Engine) SetTypes(buf []int32) error { return e.sys.SetTypes(buf) }

// Positions returns a fresh flat (N,3) copy.
func (e *Engine) Positions() []float32 { return e.sys.Positions() }

// Velocities returns a fresh flat (N,3) copy.
func (e *Engine) Velocities() []float32 { return e.sys.Velocities() }

// Masses returns a fresh flat (N,) copy.
func (e *Engine) Masses() []float32 { return e.sys.Masses() }

// Types returns a fresh flat (N,) copy.
func (e *Engine) Types() []int32 { return e.sys.Types() }

// ParticleCount returns the current number of particles.
func (e *Engine) ParticleCount() int { return e.sys.Len() }

// System exposes the underlying store for in-process hosts (metrics, TUI).
// Callers must not mutate it during a Step.
func (e *Engine) System() *particle.System { return e.sys }

// AddParticle appends one particle. pos and vel must have exactly three
// elements.
func (e *Engine) AddParticle(pos, vel []float32, mass float32, typ int32) error {
	if len(pos) != 3 || len(vel) != 3 {
		return particle.ErrShapeMismatch
	}
	e.sys.Add(mgl32.Vec3{pos[0], pos[1], pos[2]}, mgl32.Vec3{vel[0], vel[1], vel[2]}, mass, typ)
	return nil
}

// RemoveParticle drops particle i; out-of-range indices are a no-op.
func (e *Engine) RemoveParticle(i int) { e.sys.Remove(i) }

// Step advances the simulation by dt on the selected backend and records
// the elapsed wall time. Step never fails; numerical blow-up surfaces as
// non-finite particle state.
func (e *Engine) Step(dt float32) {
	start := time.Now()

	b := e.backend
	if !b.Available() {
		if !e.warned {
			log.Printf("backend %s not available, falling back to %s", e.tag, compute.TagOpenMP)
			e.warned = true
		}
		b = compute.Fallback()
	}

	b.Step(e.sys, compute.Params{
		G:          e.g,
		Softening:  e.softening,
		Theta:      e.theta,
		Collisions: e.collisions,
	}, dt)

	e.lastStepMS = float64(time.Since(start)) / float64(time.Millisecond)
}

// Reset zeroes all accelerations.
func (e *Engine) Reset() { e.sys.ZeroAccelerations() }

// SetGravitationalConstant takes effect on the next Step.
func (e *Engine) SetGravitationalConstant(g float32) { e.g = g }

// SetSofteningLength takes effect on the next Step. The merge radius is
// twice this length.
func (e *Engine) SetSofteningLength(eps float32) { e.softening = eps }

// SetTheta sets the Barnes-Hut opening parameter, clamped to [0, 10].
// Zero degenerates to a direct-sum evaluation.
func (e *Engine) SetTheta(theta float32) {
	if theta < 0 {
		theta = 0
	}
	if theta > maxTheta {
		theta = maxTheta
	}
	e.theta = theta
}

// EnableCollisions toggles the inelastic merge pass.
func (e *Engine) EnableCollisions(on bool) { e.collisions = on }

// SetBackend selects a backend by tag. Unknown tags error; recognized but
// unavailable backends are substituted at Step time with a logged warning.
func (e *Engine) SetBackend(tag string) error {
	b, err := compute.New(tag)
	if err != nil {
		return err
	}
	if e.backend != nil {
		e.backend.Cleanup()
	}
	e.backend = b
	e.tag = tag
	e.warned = false
	return nil
}

// Backend returns the selected backend tag.
func (e *Engine) Backend() string { return e.tag }

// LastStepTimeMS returns the wall-clock duration of the most recent Step.
func (e *Engine) LastStepTimeMS() float64 { return e.lastStepMS }
