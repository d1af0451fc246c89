package particle

import "github.com/go-gl/mathgl/mgl32"

// Recognized particle type tags. The core physics carries them through
// untouched; they exist for host-side behavior.
const (
	TypeStar      int32 = 0
	TypePlanet    int32 = 1
	TypeBlackHole int32 = 2
)

// System holds per-particle state in structure-of-arrays form. All five
// arrays always have identical length; indices are dense in [0, N).
type System struct {
	Pos  []mgl32.Vec3
	Vel  []mgl32.Vec3
	Acc  []mgl32.Vec3
	Mass []float32
	Type []int32
}

// NewSystem creates a system of n particles with all state zeroed.
func NewSystem(n int) *System {
	s := &System{}
	s.Resize(n)
	return s
}

func (s *System) Len() int { return len(s.Pos) }

// Resize grows or shrinks the system to n particles. Existing state up to
// min(n, Len) is preserved; new slots are zero.
func (s *System) Resize(n int) {
	s.Pos = resizeVecs(s.Pos, n)
	s.Vel = resizeVecs(s.Vel, n)
	s.Acc = resizeVecs(s.Acc, n)

	if n <= len(s.Mass) {
		s.Mass = s.Mass[:n]
	} else {
		s.Mass = append(s.Mass, make([]float32, n-len(s.Mass))...)
	}
	if n <= len(s.Type) {
		s.Type = s.Type[:n]
	} else {
		s.Type = append(s.Type, make([]int32, n-len(s.Type))...)
	}
}

func resizeVecs(v []mgl32.Vec3, n int) []mgl32.Vec3 {
	if n <= len(v) {
		return v[:n]
	}
	return append(v, make([]mgl32.Vec3, n-len(v))...)
}

// ZeroAccelerations clears the acceleration array.
func (s *System) ZeroAccelerations() {
	for i := range s.Acc {
		s.Acc[i] = mgl32.Vec3{}
	}
}

// Add appends one particle with zero initial acceleration.
func (s *System) Add(pos, vel mgl32.Vec3, mass float32, typ int32) {
	s.Pos = append(s.Pos, pos)
	s.Vel = append(s.Vel, vel)
	s.Acc = append(s.Acc, mgl32.Vec3{})
	s.Mass = append(s.Mass, mass)
	s.Type = append(s.Type, typ)
}

// Remove drops particle i, shifting the tail down so indices stay dense.
// Out-of-range indices are a silent no-op.
func (s *System) Remove(i int) {
	n := s.Len()
	if i < 0 || i >= n {
		return
	}
	copy(s.Pos[i:], s.Pos[i+1:])
	copy(s.Vel[i:], s.Vel[i+1:])
	copy(s.Acc[i:], s.Acc[i+1:])
	copy(s.Mass[i:], s.Mass[i+1:])
	copy(s.Type[i:], s.Type[i+1:])
	s.Resize(n - 1)
}

// SetPositions replaces all positions from a flat (k,3) buffer and resizes
// the system to k particles. The buffer is copied.
func (s *System) SetPositions(buf []float32) error {
	if len(buf)%3 != 0 {
		return ErrShapeMismatch
	}
	n := len(buf) / 3
	s.Resize(n)
	for i := 0; i < n; i++ {
		s.Pos[i] = mgl32.Vec3{buf[i*3], buf[i*3+1], buf[i*3+2]}
	}
	return nil
}

// SetVelocities replaces all velocities from a flat (N,3) buffer. The row
// count must match the current particle count.
func (s *System) SetVelocities(buf []float32) error {
	if len(buf) != s.Len()*3 {
		return ErrShapeMismatch
	}
	for i := range s.Vel {
		s.Vel[i] = mgl32.Vec3{buf[i*3], buf[i*3+1], buf[i*3+2]}
	}
	return nil
}

// SetMasses replaces all masses from a flat (N,) buffer.
func (s *System) SetMasses(buf []float32) error {
	if len(buf) != s.Len() {
		return ErrShapeMismatch
	}
	copy(s.Mass, buf)
	return nil
}

// SetTypes replaces all type tags from a flat (N,) buffer.
func (s *System) SetTypes(buf []int32) error {
	if len(buf) != s.Len() {
		return ErrShapeMismatch
	}
	copy(s.Type, buf)
	return nil
}

// Positions returns a freshly allocated flat (N,3) copy.
func (s *System) Positions() []float32 { return flattenVecs(s.Pos) }

// Velocities returns a freshly allocated flat (N,3) copy.
func (s *System) Velocities() []float32 { return flattenVecs(s.Vel) }

// Accelerations returns a freshly allocated flat (N,3) copy.
func (s *System) Accelerations() []float32 { return flattenVecs(s.Acc) }

// Masses returns a freshly allocated (N,) copy.
func (s *System) Masses() []float32 {
	out := make([]float32, len(s.Mass))
	copy(out, s.Mass)
	return out
}

// Types returns a freshly allocated (N,) copy.
func (s *System) Types() []int32 {
	out := make([]int32, len(s.Type))
	copy(out, s.Type)
	return out
}

func flattenVecs(v []mgl32.Vec3) []float32 {
	out := make([]float32, len(v)*3)
	for i, p := range v {
		out[i*3] = p[0]
		out[i*3+1] = p[1]
		out[i*3+2] = p[2]
	}
	return out
}
