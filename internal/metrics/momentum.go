package metrics

import "github.com/SharonMathew4/StellarForge/internal/particle"

// Momentum returns total linear momentum Σ mᵢvᵢ, accumulated in double
// precision.
func Momentum(s *particle.System) (px, py, pz float64) {
	for i := 0; i < s.Len(); i++ {
		m := float64(s.Mass[i])
		px += m * float64(s.Vel[i][0])
		py += m * float64(s.Vel[i][1])
		pz += m * float64(s.Vel[i][2])
	}
	return
}

// AngularMomentum returns total angular momentum Σ mᵢ (rᵢ × vᵢ).
func AngularMomentum(s *particle.System) (lx, ly, lz float64) {
	for i := 0; i < s.Len(); i++ {
		m := float64(s.Mass[i])
		x, y, z := float64(s.Pos[i][0]), float64(s.Pos[i][1]), float64(s.Pos[i][2])
		vx, vy, vz := float64(s.Vel[i][0]), float64(s.Vel[i][1]), float64(s.Vel[i][2])
		lx += m * (y*vz - z*vy)
		ly += m * (z*vx - x*vz)
		lz += m * (x*vy - y*vx)
	}
	return
}
