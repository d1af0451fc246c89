package integrate

import "github.com/SharonMathew4/StellarForge/internal/particle"

// PositionVerlet advances particles [lo, hi) by dt:
//
//	x += v·dt + ½·a·dt²
//	v += a·dt
//
// The kick-drift form consumes only the current step's acceleration.
// Updates are per-particle independent, so disjoint ranges can run
// concurrently.
func PositionVerlet(s *particle.System, dt float32, lo, hi int) {
	dt2 := dt * dt
	for i := lo; i < hi; i++ {
		s.Pos[i] = s.Pos[i].Add(s.Vel[i].Mul(dt)).Add(s.Acc[i].Mul(0.5 * dt2))
		s.Vel[i] = s.Vel[i].Add(s.Acc[i].Mul(dt))
	}
}
