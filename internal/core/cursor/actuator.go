// Package cursor abstracts OS-level cursor-position writes.
package cursor

// Actuator performs cursor warps. Bounds are never pre-validated: the OS
// call is the source of truth and its failure is surfaced, not corrected.
// Failures are classified as model.ErrOutOfBounds or
// model.ErrPermissionDenied.
type Actuator interface {
	SetPosition(x, y int) error
}
