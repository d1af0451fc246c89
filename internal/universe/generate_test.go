package universe

import (
	"testing"

	"github.com/SharonMathew4/StellarForge/internal/particle"
)

func TestGenerateCounts(t *testing.T) {
	for _, dist := range []string{DistRandom, DistSphere, DistDisk, DistGalaxy} {
		t.Run(dist, func(t *testing.T) {
			s, err := Generate(dist, 50, 10, 1, 1)
			if err != nil {
				t.Fatal(err)
			}
			if s.Len() != 50 {
				t.Errorf("count %d, want 50", s.Len())
			}
		})
	}
}

func TestGenerateUnknown(t *testing.T) {
	if _, err := Generate("torus", 10, 1, 1, 1); err == nil {
		t.Error("expected error for unknown distribution")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(DistSphere, 30, 10, 1, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(DistSphere, 30, 10, 1, 42)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < a.Len(); i++ {
		if a.Pos[i] != b.Pos[i] || a.Mass[i] != b.Mass[i] {
			t.Fatalf("seed did not reproduce particle %d", i)
		}
	}
}

func TestGalaxyHasCentralBlackHole(t *testing.T) {
	s, err := Generate(DistGalaxy, 100, 50, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if s.Type[0] != particle.TypeBlackHole {
		t.Error("first particle should be the central black hole")
	}
	if s.Pos[0][0] != 0 || s.Pos[0][1] != 0 || s.Pos[0][2] != 0 {
		t.Error("black hole should sit at the origin")
	}
	if s.Mass[0] <= s.Mass[1] {
		t.Error("central mass should dominate")
	}
}

func TestSphereWithinRadius(t *testing.T) {
	scale := 10.0
	s, err := Generate(DistSphere, 200, scale, 1, 3)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < s.Len(); i++ {
		r2 := float64(s.Pos[i].Dot(s.Pos[i]))
		if r2 > scale*scale*1.0001 {
			t.Errorf("particle %d outside sphere: r²=%f", i, r2)
		}
	}
}

func TestBinaryConfiguration(t *testing.T) {
	s, err := Generate(DistBinary, 2, 1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	if s.Len() != 2 {
		t.Fatalf("count %d, want 2", s.Len())
	}
	if s.Mass[0] != 1 {
		t.Errorf("primary mass %f, want 1", s.Mass[0])
	}
	if s.Pos[1][0] != 1 {
		t.Errorf("companion at x=%f, want 1", s.Pos[1][0])
	}
	// Circular orbit speed for G=1, M=1, r=1.
	if v := s.Vel[1][1]; v < 0.99 || v > 1.01 {
		t.Errorf("companion speed %f, want ~1", v)
	}
}
