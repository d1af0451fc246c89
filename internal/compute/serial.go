package compute

import (
	"github.com/SharonMathew4/StellarForge/internal/gravity"
	"github.com/SharonMathew4/StellarForge/internal/integrate"
	"github.com/SharonMathew4/StellarForge/internal/particle"
)

// Serial runs the whole pipeline on the calling goroutine.
type Serial struct{}

func NewSerial() *Serial { return &Serial{} }

func (b *Serial) Name() string    { return TagSingle }
func (b *Serial) Available() bool { return true }
func (b *Serial) Cleanup()        {}

func (b *Serial) Step(s *particle.System, p Params, dt float32) {
	n := s.Len()
	t := buildTree(s)
	gravity.Solve(s, t, gravParams(p), 0, n)
	integrate.PositionVerlet(s, dt, 0, n)
	resolveCollisions(s, p)
}
