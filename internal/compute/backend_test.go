package compute

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SharonMathew4/StellarForge/internal/particle"
)

func clusterSystem(n int, seed int64) *particle.System {
	rng := rand.New(rand.NewSource(seed))
	s := particle.NewSystem(0)
	for i := 0; i < n; i++ {
		pos := mgl32.Vec3{rng.Float32()*20 - 10, rng.Float32()*20 - 10, rng.Float32()*20 - 10}
		vel := mgl32.Vec3{rng.Float32() - 0.5, rng.Float32() - 0.5, rng.Float32() - 0.5}
		s.Add(pos, vel, 0.5+rng.Float32(), particle.TypeStar)
	}
	return s
}

func TestNewTags(t *testing.T) {
	for _, tag := range Tags() {
		b, err := New(tag)
		if err != nil {
			t.Errorf("tag %s: %v", tag, err)
		}
		if b == nil {
			t.Errorf("tag %s: nil backend", tag)
		}
	}
}

func TestNewUnknownTag(t *testing.T) {
	_, err := New("vulkan")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestCPUBackendsAlwaysAvailable(t *testing.T) {
	if !NewSerial().Available() {
		t.Error("serial backend should always be available")
	}
	if !NewOpenMP().Available() {
		t.Error("openmp backend should always be available")
	}
}

func TestGPUBackendsUnavailableWithoutDevice(t *testing.T) {
	if NewOpenGL().Available() {
		t.Error("opengl backend available without a GL context")
	}
}

func TestSerialOpenMPEquivalence(t *testing.T) {
	p := Params{G: 1, Softening: 0.01, Theta: 0.5}

	a := clusterSystem(256, 11)
	NewSerial().Step(a, p, 0.001)

	b := clusterSystem(256, 11)
	NewOpenMP().Step(b, p, 0.001)

	for i := 0; i < a.Len(); i++ {
		for k := 0; k < 3; k++ {
			ref := math.Abs(float64(a.Acc[i][k]))
			diff := math.Abs(float64(a.Acc[i][k] - b.Acc[i][k]))
			if ref > 0 && diff/ref > 1e-5 {
				t.Fatalf("particle %d acc axis %d: %g vs %g", i, k, a.Acc[i][k], b.Acc[i][k])
			}
			if a.Pos[i][k] != b.Pos[i][k] || a.Vel[i][k] != b.Vel[i][k] {
				t.Fatalf("particle %d state diverged between backends", i)
			}
		}
	}
}

func TestStepCollisions(t *testing.T) {
	s := particle.NewSystem(0)
	s.Add(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{}, 1, particle.TypeStar)
	s.Add(mgl32.Vec3{0.005, 0, 0}, mgl32.Vec3{}, 1, particle.TypeStar)

	NewSerial().Step(s, Params{G: 0, Softening: 0.01, Theta: 0.5, Collisions: true}, 0.001)

	if s.Len() != 1 {
		t.Errorf("expected merge during step, count %d", s.Len())
	}
}

func TestStepEmptySystem(t *testing.T) {
	s := particle.NewSystem(0)
	NewSerial().Step(s, Params{G: 1, Softening: 0.01, Theta: 0.5}, 0.001)
	NewOpenMP().Step(s, Params{G: 1, Softening: 0.01, Theta: 0.5}, 0.001)
}

func BenchmarkSerialStep(b *testing.B) {
	s := clusterSystem(1000, 1)
	p := Params{G: 1, Softening: 0.01, Theta: 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewSerial().Step(s, p, 0.0001)
	}
}

func BenchmarkOpenMPStep(b *testing.B) {
	s := clusterSystem(1000, 1)
	p := Params{G: 1, Softening: 0.01, Theta: 0.5}
	backend := NewOpenMP()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backend.Step(s, p, 0.0001)
	}
}
