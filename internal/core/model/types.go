package model

import "time"

// PositionSample represents a single observed cursor position. Samples are
// ephemeral: they exist only to feed the idle tracker and are never persisted
// individually.
type PositionSample struct {
	X         int
	Y         int
	Timestamp time.Time
}

// SamePoint reports whether two samples share the same screen coordinates.
func (s PositionSample) SamePoint(other PositionSample) bool {
	return s.X == other.X && s.Y == other.Y
}

// Snapshot represents the single saved restoration target. Exactly one live
// Snapshot exists at any time; it is overwritten, never appended.
type Snapshot struct {
	X           int       `json:"x"`
	Y           int       `json:"y"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// HotkeyEvent signals that the registered global hotkey fired.
type HotkeyEvent struct {
	FiredAt time.Time
}
