//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lkernels -lstdc++
#include <stdlib.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern void nbody_gravity_direct(float* positions, float* masses, float* accelerations, int n, float g, float softening);
extern void nbody_verlet_integrate(float* positions, float* velocities, float* accelerations, int n, float dt);
*/
import "C"
import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SharonMathew4/StellarForge/internal/particle"
)

// CUDA offloads gravity and integration to device kernels. The device path
// is direct-sum; collisions stay on the host. Host buffers are
// re-synchronized before Step returns.
type CUDA struct {
	available  bool
	deviceName string
}

func NewCUDA() *CUDA {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &CUDA{available: count > 0, deviceName: name}
}

func (b *CUDA) Name() string {
	if b.available {
		return TagCUDA + " (" + b.deviceName + ")"
	}
	return TagCUDA + " (not available)"
}

func (b *CUDA) Available() bool { return b.available }
func (b *CUDA) Cleanup()        {}

func (b *CUDA) Step(s *particle.System, p Params, dt float32) {
	if !b.available {
		Fallback().Step(s, p, dt)
		return
	}

	n := s.Len()
	if n == 0 {
		return
	}

	pos := s.Positions()
	vel := s.Velocities()
	acc := make([]float32, n*3)

	C.nbody_gravity_direct(
		(*C.float)(unsafe.Pointer(&pos[0])),
		(*C.float)(unsafe.Pointer(&s.Mass[0])),
		(*C.float)(unsafe.Pointer(&acc[0])),
		C.int(n),
		C.float(p.G),
		C.float(p.Softening),
	)
	C.nbody_verlet_integrate(
		(*C.float)(unsafe.Pointer(&pos[0])),
		(*C.float)(unsafe.Pointer(&vel[0])),
		(*C.float)(unsafe.Pointer(&acc[0])),
		C.int(n),
		C.float(dt),
	)

	for i := 0; i < n; i++ {
		s.Pos[i] = mgl32.Vec3{pos[i*3], pos[i*3+1], pos[i*3+2]}
		s.Vel[i] = mgl32.Vec3{vel[i*3], vel[i*3+1], vel[i*3+2]}
		s.Acc[i] = mgl32.Vec3{acc[i*3], acc[i*3+1], acc[i*3+2]}
	}

	resolveCollisions(s, p)
}
