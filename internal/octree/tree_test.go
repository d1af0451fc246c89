package octree

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBuildEmpty(t *testing.T) {
	if tree := Build(nil); tree != nil {
		t.Error("expected nil tree for zero particles")
	}
}

func TestBuildSingle(t *testing.T) {
	tree := Build([]mgl32.Vec3{{1, 2, 3}})
	if tree == nil {
		t.Fatal("expected tree")
	}
	root := &tree.Nodes[0]
	if !root.IsLeaf() || root.Particle != 0 {
		t.Error("root should be a leaf holding particle 0")
	}
}

func TestLeafPerParticle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pos := make([]mgl32.Vec3, 100)
	for i := range pos {
		pos[i] = mgl32.Vec3{rng.Float32()*10 - 5, rng.Float32()*10 - 5, rng.Float32()*10 - 5}
	}

	tree := Build(pos)

	seen := make(map[int32]bool)
	for i := range tree.Nodes {
		n := &tree.Nodes[i]
		if !n.IsLeaf() {
			continue
		}
		if seen[n.Particle] {
			t.Fatalf("particle %d appears in two leaves", n.Particle)
		}
		seen[n.Particle] = true
		for _, q := range n.Overflow {
			if seen[q] {
				t.Fatalf("particle %d appears twice", q)
			}
			seen[q] = true
		}
	}

	if len(seen) != len(pos) {
		t.Errorf("expected %d particles in leaves, found %d", len(pos), len(seen))
	}
}

func TestChildGeometry(t *testing.T) {
	pos := []mgl32.Vec3{{-1, -1, -1}, {1, 1, 1}}
	tree := Build(pos)

	root := &tree.Nodes[0]
	for oct, c := range root.Children {
		if c == None {
			continue
		}
		child := &tree.Nodes[c]
		if child.Size != root.Size*0.5 {
			t.Errorf("octant %d: size %f, want %f", oct, child.Size, root.Size*0.5)
		}
		for k := 0; k < 3; k++ {
			off := child.Center[k] - root.Center[k]
			want := root.Size * 0.25
			if off != want && off != -want {
				t.Errorf("octant %d axis %d: offset %f, want ±%f", oct, k, off, want)
			}
		}
	}
}

func TestOctantCodes(t *testing.T) {
	center := mgl32.Vec3{0, 0, 0}
	tests := []struct {
		p    mgl32.Vec3
		want int
	}{
		{mgl32.Vec3{1, 1, 1}, 7},
		{mgl32.Vec3{-1, -1, -1}, 0},
		{mgl32.Vec3{1, -1, -1}, 4},
		{mgl32.Vec3{-1, 1, -1}, 2},
		{mgl32.Vec3{-1, -1, 1}, 1},
		{mgl32.Vec3{0, 0, 0}, 7}, // >= goes high
	}
	for _, tt := range tests {
		if got := octant(tt.p, center); got != tt.want {
			t.Errorf("octant(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestAccumulateMass(t *testing.T) {
	pos := []mgl32.Vec3{{-1, 0, 0}, {1, 0, 0}}
	mass := []float32{1, 3}

	tree := Build(pos)
	tree.AccumulateMass(pos, mass)

	root := &tree.Nodes[0]
	if root.TotalMass != 4 {
		t.Errorf("root mass %f, want 4", root.TotalMass)
	}
	// COM at mass-weighted x: (-1*1 + 1*3)/4 = 0.5
	if root.COM[0] != 0.5 || root.COM[1] != 0 || root.COM[2] != 0 {
		t.Errorf("root com %v, want (0.5, 0, 0)", root.COM)
	}
}

func TestZeroMassNode(t *testing.T) {
	pos := []mgl32.Vec3{{-1, 0, 0}, {1, 0, 0}}
	mass := []float32{0, 0}

	tree := Build(pos)
	tree.AccumulateMass(pos, mass)

	root := &tree.Nodes[0]
	if root.TotalMass != 0 {
		t.Errorf("root mass %f, want 0", root.TotalMass)
	}
	if root.COM != (mgl32.Vec3{}) {
		t.Errorf("zero-mass com %v, want origin", root.COM)
	}
}

func TestCoincidentParticles(t *testing.T) {
	// Identical positions cannot be separated by subdivision; the depth cap
	// must terminate insertion and keep every particle accounted for.
	pos := []mgl32.Vec3{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {0, 0, 0}}
	mass := []float32{1, 1, 1, 1}

	tree := Build(pos)
	tree.AccumulateMass(pos, mass)

	if got := tree.Nodes[0].TotalMass; got != 4 {
		t.Errorf("root mass %f, want 4", got)
	}
}

func BenchmarkBuild(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	pos := make([]mgl32.Vec3, 1000)
	for i := range pos {
		pos[i] = mgl32.Vec3{rng.Float32() * 100, rng.Float32() * 100, rng.Float32() * 100}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Build(pos)
	}
}
