package model

import "time"

// StatusKind classifies entries on the read-only status feed consumed by the
// presentation layer.
type StatusKind int

const (
	StatusSnapshotSaved StatusKind = iota
	StatusSnapshotCleared
	StatusRestored
	StatusNothingToRestore
	StatusRestoreFailed
	StatusTrackingPaused
	StatusTrackingResumed
	StatusHotkeyRebound
	StatusHotkeyLost
	StatusPermissionDenied
)

// String returns a short machine-friendly name for logging.
func (k StatusKind) String() string {
	switch k {
	case StatusSnapshotSaved:
		return "snapshot_saved"
	case StatusSnapshotCleared:
		return "snapshot_cleared"
	case StatusRestored:
		return "restored"
	case StatusNothingToRestore:
		return "nothing_to_restore"
	case StatusRestoreFailed:
		return "restore_failed"
	case StatusTrackingPaused:
		return "tracking_paused"
	case StatusTrackingResumed:
		return "tracking_resumed"
	case StatusHotkeyRebound:
		return "hotkey_rebound"
	case StatusHotkeyLost:
		return "hotkey_lost"
	case StatusPermissionDenied:
		return "permission_denied"
	default:
		return "unknown"
	}
}

// StatusEvent is a single entry on the outbound status feed. The core only
// produces these; it never consumes them.
type StatusEvent struct {
	Kind     StatusKind
	At       time.Time
	Snapshot *Snapshot // set for StatusSnapshotSaved and StatusRestored
	Binding  string    // set for StatusHotkeyRebound
	Err      error     // set for StatusRestoreFailed, StatusHotkeyLost, StatusPermissionDenied
}
