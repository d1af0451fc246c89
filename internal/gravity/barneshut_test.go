package gravity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SharonMathew4/StellarForge/internal/octree"
	"github.com/SharonMathew4/StellarForge/internal/particle"
)

func randomSystem(n int, seed int64) *particle.System {
	rng := rand.New(rand.NewSource(seed))
	s := particle.NewSystem(0)
	for i := 0; i < n; i++ {
		pos := mgl32.Vec3{rng.Float32()*20 - 10, rng.Float32()*20 - 10, rng.Float32()*20 - 10}
		s.Add(pos, mgl32.Vec3{}, 0.5+rng.Float32(), particle.TypeStar)
	}
	return s
}

func solveTree(s *particle.System, p Params) {
	t := octree.Build(s.Pos)
	if t != nil {
		t.AccumulateMass(s.Pos, s.Mass)
	}
	Solve(s, t, p, 0, s.Len())
}

func TestNoSelfForce(t *testing.T) {
	s := particle.NewSystem(0)
	s.Add(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, 100, particle.TypeStar)

	solveTree(s, Params{G: 1, Softening: 0.01, Theta: 0.5})

	if s.Acc[0] != (mgl32.Vec3{}) {
		t.Errorf("single particle has acceleration %v", s.Acc[0])
	}
}

func TestTreeMatchesDirect(t *testing.T) {
	tests := []struct {
		name  string
		theta float32
		tol   float64
	}{
		{"full opening", 0, 1e-5},
		{"default opening", 0.5, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := randomSystem(200, 7)
			p := Params{G: 1, Softening: 0.01, Theta: tt.theta}

			solveTree(s, p)
			tree := make([]mgl32.Vec3, s.Len())
			copy(tree, s.Acc)

			Direct(s, p, 0, s.Len())

			for i := 0; i < s.Len(); i++ {
				d := tree[i].Sub(s.Acc[i])
				ref := float64(s.Acc[i].Len())
				if ref == 0 {
					continue
				}
				rel := float64(d.Len()) / ref
				if rel > tt.tol {
					t.Fatalf("particle %d: relative error %g > %g", i, rel, tt.tol)
				}
			}
		})
	}
}

func TestZeroMassReceivesForce(t *testing.T) {
	s := particle.NewSystem(0)
	s.Add(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{}, 0, particle.TypeStar)
	s.Add(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, 1, particle.TypeStar)

	solveTree(s, Params{G: 1, Softening: 0.01, Theta: 0.5})

	if s.Acc[0][0] <= 0 {
		t.Error("zero-mass particle should still be attracted")
	}
	if s.Acc[1][0] != 0 || s.Acc[1][1] != 0 || s.Acc[1][2] != 0 {
		t.Errorf("zero-mass particle exerted force: %v", s.Acc[1])
	}
}

func TestDeterministic(t *testing.T) {
	p := Params{G: 1, Softening: 0.01, Theta: 0.5}

	a := randomSystem(100, 3)
	solveTree(a, p)

	b := randomSystem(100, 3)
	solveTree(b, p)

	for i := 0; i < a.Len(); i++ {
		if a.Acc[i] != b.Acc[i] {
			t.Fatalf("particle %d: %v != %v", i, a.Acc[i], b.Acc[i])
		}
	}
}

func TestSofteningAtCoincidence(t *testing.T) {
	// Two particles at the same point: softening must keep the force
	// finite (and by symmetry zero).
	s := particle.NewSystem(0)
	s.Add(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, 1, particle.TypeStar)
	s.Add(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, 1, particle.TypeStar)

	solveTree(s, Params{G: 1, Softening: 0.01, Theta: 0.5})

	for i := 0; i < 2; i++ {
		for k := 0; k < 3; k++ {
			if math.IsNaN(float64(s.Acc[i][k])) || math.IsInf(float64(s.Acc[i][k]), 0) {
				t.Fatalf("non-finite acceleration: %v", s.Acc[i])
			}
		}
		if s.Acc[i] != (mgl32.Vec3{}) {
			t.Errorf("coincident pair acceleration %v, want zero", s.Acc[i])
		}
	}
}

func BenchmarkSolveTree(b *testing.B) {
	s := randomSystem(1000, 1)
	p := Params{G: 1, Softening: 0.01, Theta: 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		solveTree(s, p)
	}
}

func BenchmarkSolveDirect(b *testing.B) {
	s := randomSystem(1000, 1)
	p := Params{G: 1, Softening: 0.01}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Direct(s, p, 0, s.Len())
	}
}
