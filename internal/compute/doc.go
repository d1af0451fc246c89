// Package compute provides the simulation step backends.
//
// Every backend runs the same deterministic pipeline — octree build, mass
// aggregation, Barnes-Hut acceleration, position-Verlet integration,
// optional collision merging — and differs only in scheduling:
//
//   - single: everything on the calling goroutine
//   - openmp: per-particle fan-out across worker goroutines
//   - cuda:   device kernels behind the cuda build tag
//   - opengl: GL 4.3 compute shader gravity
//
// Unavailable backends are substituted with the openmp fallback by the
// engine, which logs a warning; results never differ beyond the documented
// summation-order guarantees.
package compute
