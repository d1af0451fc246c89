package collide

import "github.com/SharonMathew4/StellarForge/internal/particle"

// Resolve merges particle pairs closer than radius as perfectly inelastic
// collisions. For a colliding pair i < j, particle i keeps its position and
// takes the combined mass and the momentum-conserving velocity; j is marked
// and cannot collide again in the same pass. Marked particles are removed
// in descending index order so survivor indices stay stable. Returns the
// number of particles removed.
func Resolve(s *particle.System, radius float32) int {
	n := s.Len()
	r2 := radius * radius
	removed := make([]bool, n)

	for i := 0; i < n; i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if removed[j] {
				continue
			}
			d := s.Pos[i].Sub(s.Pos[j])
			if d.Dot(d) >= r2 {
				continue
			}

			total := s.Mass[i] + s.Mass[j]
			if total > 0 {
				s.Vel[i] = s.Vel[i].Mul(s.Mass[i]).Add(s.Vel[j].Mul(s.Mass[j])).Mul(1 / total)
			}
			s.Mass[i] = total
			removed[j] = true
		}
	}

	count := 0
	for i := n - 1; i >= 0; i-- {
		if removed[i] {
			s.Remove(i)
			count++
		}
	}
	return count
}
