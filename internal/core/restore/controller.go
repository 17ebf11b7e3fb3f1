// Package restore drives the cursor actuator from hotkey-fired events.
package restore

import (
	"fmt"

	"github.com/mouseminder/mouseminder/internal/core/cursor"
	"github.com/mouseminder/mouseminder/internal/core/model"
	"github.com/mouseminder/mouseminder/internal/util"
)

// SnapshotReader is the read-only slice of the snapshot store the controller
// needs.
type SnapshotReader interface {
	Read() (model.Snapshot, bool)
}

// Controller performs restorations. Each hotkey press reads the last
// completed snapshot and reissues its coordinates; nothing is cached between
// presses, so repeated presses with no intervening snapshot update are
// idempotent and a failed attempt never poisons the next one.
type Controller struct {
	store    SnapshotReader
	actuator cursor.Actuator
	clock    util.Clock
	emit     func(model.StatusEvent)
}

// NewController creates a Controller. emit, if non-nil, receives the status
// events for the presentation feed.
func NewController(store SnapshotReader, actuator cursor.Actuator, clock util.Clock, emit func(model.StatusEvent)) *Controller {
	return &Controller{
		store:    store,
		actuator: actuator,
		clock:    clock,
		emit:     emit,
	}
}

// HandleHotkey executes one restoration attempt. No snapshot is an
// informational no-op, never an error. Actuator failures surface as a
// RestoreFailed status and are not retried; the snapshot store keeps its
// last-good value either way.
func (c *Controller) HandleHotkey() {
	snap, ok := c.store.Read()
	if !ok {
		c.send(model.StatusEvent{
			Kind: model.StatusNothingToRestore,
			At:   c.clock.Now(),
		})
		return
	}

	if err := c.actuator.SetPosition(snap.X, snap.Y); err != nil {
		c.send(model.StatusEvent{
			Kind: model.StatusRestoreFailed,
			At:   c.clock.Now(),
			Err:  fmt.Errorf("restore failed: %w", err),
		})
		return
	}

	c.send(model.StatusEvent{
		Kind:     model.StatusRestored,
		At:       c.clock.Now(),
		Snapshot: &snap,
	})
}

func (c *Controller) send(event model.StatusEvent) {
	if c.emit != nil {
		c.emit(event)
	}
}
