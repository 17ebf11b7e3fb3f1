// Package tracker watches position samples for inactivity and confirms idle
// positions into the snapshot store.
package tracker

import (
	"time"

	"github.com/mouseminder/mouseminder/internal/core/model"
	"github.com/mouseminder/mouseminder/internal/core/snapshot"
)

// State represents the idle tracker's state machine phase.
type State int

const (
	StateMoving State = iota
	StateIdle
)

// String returns the phase name.
func (s State) String() string {
	if s == StateIdle {
		return "IDLE"
	}
	return "MOVING"
}

// Tracker is the two-state idle detector. It consumes position samples and,
// when the cursor has held one point continuously for the idle threshold,
// writes that point into the snapshot store. Idleness is measured by elapsed
// time between sample timestamps, never by sample count, so the threshold
// behaves the same at any polling cadence.
//
// Tracker is not safe for concurrent use; the polling task is its only caller.
type Tracker struct {
	threshold time.Duration
	store     *snapshot.Store

	state          State
	lastSample     model.PositionSample
	lastMovementAt time.Time
	seeded         bool
}

// New creates a Tracker confirming positions held for at least threshold.
func New(threshold time.Duration, store *snapshot.Store) *Tracker {
	return &Tracker{
		threshold: threshold,
		store:     store,
		state:     StateMoving,
	}
}

// Advance feeds the next sample through the state machine. It returns the
// snapshot written on a MOVING -> IDLE transition, or nil when no snapshot
// was confirmed. Self-transitions never touch the store.
func (t *Tracker) Advance(sample model.PositionSample) *model.Snapshot {
	if !t.seeded {
		t.seeded = true
		t.lastSample = sample
		t.lastMovementAt = sample.Timestamp
		t.state = StateMoving
		return nil
	}

	if !sample.SamePoint(t.lastSample) {
		// Movement, regardless of the current phase. A sample carrying the
		// same timestamp as the previous one still counts: the later arrival
		// wins the comparison.
		t.lastSample = sample
		t.lastMovementAt = sample.Timestamp
		t.state = StateMoving
		return nil
	}

	t.lastSample = sample

	if t.state != StateMoving {
		return nil
	}

	if sample.Timestamp.Sub(t.lastMovementAt) < t.threshold {
		return nil
	}

	// The position was held for the whole threshold, so the snapshot is
	// confirmed at the threshold expiry instant rather than at whichever
	// tick happened to observe it.
	snap := model.Snapshot{
		X:           sample.X,
		Y:           sample.Y,
		ConfirmedAt: t.lastMovementAt.Add(t.threshold),
	}
	t.store.Write(snap)
	t.state = StateIdle
	return &snap
}

// Reset forgets the current sample history. The next sample re-seeds the
// tracker, so time elapsed before the reset never counts toward idleness.
func (t *Tracker) Reset() {
	t.seeded = false
	t.state = StateMoving
}

// State returns the current phase.
func (t *Tracker) State() State {
	return t.state
}

// LastSample returns the most recent sample fed into the tracker.
func (t *Tracker) LastSample() (model.PositionSample, bool) {
	return t.lastSample, t.seeded
}
