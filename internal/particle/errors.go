package particle

import "errors"

// Boundary errors for bulk array operations.
var (
	// ErrShapeMismatch indicates a host buffer whose dimensions do not match
	// the documented (N,3) or (N,) shape. State is left unchanged.
	ErrShapeMismatch = errors.New("particle: buffer shape mismatch")
)
