package model

import "errors"

// Error taxonomy shared by the input and cursor subsystems. Callers translate
// OS-level failures into these sentinels and forward them on the status feed;
// nothing below this layer is retried automatically.
var (
	// ErrPermissionDenied indicates the OS denied input-monitoring or
	// cursor-control capability. Fatal to the affected subsystem until the
	// user grants consent at the OS level.
	ErrPermissionDenied = errors.New("input monitoring permission denied by OS")

	// ErrBindingConflict indicates the requested hotkey could not be
	// registered because another process-level listener already claims it.
	// Fatal to hotkey registration only; tracking continues.
	ErrBindingConflict = errors.New("hotkey binding already claimed")

	// ErrOutOfBounds indicates a cursor warp targeted coordinates outside
	// every known display area.
	ErrOutOfBounds = errors.New("coordinates outside all display bounds")
)
