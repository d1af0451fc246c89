package metrics

import (
	"math"

	"github.com/SharonMathew4/StellarForge/internal/particle"
)

// TotalEnergy returns kinetic plus softened potential energy, accumulated
// in double precision. The pairwise sum is O(N²); it is a diagnostic, not
// part of the step.
func TotalEnergy(s *particle.System, g, softening float32) float64 {
	n := s.Len()
	eps2 := float64(softening) * float64(softening)

	ke := 0.0
	for i := 0; i < n; i++ {
		v := s.Vel[i]
		v2 := float64(v[0])*float64(v[0]) + float64(v[1])*float64(v[1]) + float64(v[2])*float64(v[2])
		ke += 0.5 * float64(s.Mass[i]) * v2
	}

	pe := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := s.Pos[j].Sub(s.Pos[i])
			r := math.Sqrt(float64(d[0])*float64(d[0]) + float64(d[1])*float64(d[1]) + float64(d[2])*float64(d[2]) + eps2)
			pe -= float64(g) * float64(s.Mass[i]) * float64(s.Mass[j]) / r
		}
	}

	return ke + pe
}
