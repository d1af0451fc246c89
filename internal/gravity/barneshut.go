package gravity

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SharonMathew4/StellarForge/internal/octree"
	"github.com/SharonMathew4/StellarForge/internal/particle"
)

// Params are the physical constants of the force evaluation.
type Params struct {
	G         float32
	Softening float32
	Theta     float32
}

// Solve writes Barnes-Hut accelerations for particles [lo, hi). Each
// acceleration is zeroed before traversal, so the integrator sees only the
// current step's force. The tree is read-only here; disjoint index ranges
// can run concurrently.
//
// Traversal is iterative with an explicit stack, children pushed in reverse
// so they are visited in octant order. Summation order is therefore fixed
// for a given particle ordering.
func Solve(s *particle.System, t *octree.Tree, p Params, lo, hi int) {
	for i := lo; i < hi; i++ {
		s.Acc[i] = mgl32.Vec3{}
	}
	if t == nil {
		return
	}

	stack := make([]int32, 0, 64)
	for i := lo; i < hi; i++ {
		s.Acc[i] = accelOn(s, t, p, int32(i), stack[:0])
	}
}

func accelOn(s *particle.System, t *octree.Tree, p Params, i int32, stack []int32) mgl32.Vec3 {
	var acc mgl32.Vec3
	eps2 := p.Softening * p.Softening
	pos := s.Pos[i]

	stack = append(stack, 0)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.Nodes[idx]

		if n.TotalMass == 0 {
			continue
		}

		if n.IsLeaf() {
			// Leaves are summed particle by particle so a particle never
			// attracts itself, even when coincident particles share the
			// leaf at the depth cap.
			acc = acc.Add(pointAccel(pos, s.Pos[n.Particle], p.G*s.Mass[n.Particle], eps2, i == n.Particle))
			for _, q := range n.Overflow {
				acc = acc.Add(pointAccel(pos, s.Pos[q], p.G*s.Mass[q], eps2, i == q))
			}
			continue
		}

		d := n.COM.Sub(pos)
		r2 := d.Dot(d) + eps2
		r := float32(math.Sqrt(float64(r2)))

		if n.Size/r < p.Theta {
			f := p.G * n.TotalMass / (r2 * r)
			acc = acc.Add(d.Mul(f))
			continue
		}

		for k := 7; k >= 0; k-- {
			if c := n.Children[k]; c != octree.None {
				stack = append(stack, c)
			}
		}
	}
	return acc
}

func pointAccel(at, from mgl32.Vec3, gm, eps2 float32, self bool) mgl32.Vec3 {
	if self {
		return mgl32.Vec3{}
	}
	d := from.Sub(at)
	r2 := d.Dot(d) + eps2
	r := float32(math.Sqrt(float64(r2)))
	return d.Mul(gm / (r2 * r))
}

// Direct writes direct-sum O(N²) accelerations for particles [lo, hi).
// Reference evaluator for verifying the tree code.
func Direct(s *particle.System, p Params, lo, hi int) {
	eps2 := p.Softening * p.Softening
	for i := lo; i < hi; i++ {
		var acc mgl32.Vec3
		for j := 0; j < s.Len(); j++ {
			acc = acc.Add(pointAccel(s.Pos[i], s.Pos[j], p.G*s.Mass[j], eps2, i == j))
		}
		s.Acc[i] = acc
	}
}
