//go:build !cuda

package compute

import "github.com/SharonMathew4/StellarForge/internal/particle"

// CUDA stub for builds without the cuda tag. Never available; callers fall
// back to the CPU backends.
type CUDA struct{}

func NewCUDA() *CUDA { return &CUDA{} }

func (b *CUDA) Name() string    { return TagCUDA + " (not available)" }
func (b *CUDA) Available() bool { return false }
func (b *CUDA) Cleanup()        {}

func (b *CUDA) Step(s *particle.System, p Params, dt float32) {
	Fallback().Step(s, p, dt)
}
