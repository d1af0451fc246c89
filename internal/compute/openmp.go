package compute

import (
	"runtime"
	"sync"

	"github.com/SharonMathew4/StellarForge/internal/gravity"
	"github.com/SharonMathew4/StellarForge/internal/integrate"
	"github.com/SharonMathew4/StellarForge/internal/particle"
)

// parallelCutoff is the particle count below which goroutine fan-out costs
// more than it saves.
const parallelCutoff = 64

// OpenMP scatters the acceleration and integration loops across worker
// goroutines. Workers read the shared tree and write disjoint index ranges,
// so no locking is needed; the WaitGroup join after each phase is the
// memory barrier.
type OpenMP struct {
	workers int
}

func NewOpenMP() *OpenMP {
	return &OpenMP{workers: runtime.NumCPU()}
}

func (b *OpenMP) Name() string    { return TagOpenMP }
func (b *OpenMP) Available() bool { return true }
func (b *OpenMP) Cleanup()        {}

func (b *OpenMP) Step(s *particle.System, p Params, dt float32) {
	n := s.Len()
	t := buildTree(s)

	if n < parallelCutoff || b.workers <= 1 {
		gravity.Solve(s, t, gravParams(p), 0, n)
		integrate.PositionVerlet(s, dt, 0, n)
	} else {
		gp := gravParams(p)
		b.scatter(n, func(lo, hi int) {
			gravity.Solve(s, t, gp, lo, hi)
		})
		b.scatter(n, func(lo, hi int) {
			integrate.PositionVerlet(s, dt, lo, hi)
		})
	}

	resolveCollisions(s, p)
}

// scatter splits [0, n) into contiguous chunks, one per worker, and joins.
func (b *OpenMP) scatter(n int, fn func(lo, hi int)) {
	var wg sync.WaitGroup
	chunk := (n + b.workers - 1) / b.workers

	for w := 0; w < b.workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}

	wg.Wait()
}
