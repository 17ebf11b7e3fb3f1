package restore

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouseminder/mouseminder/internal/core/model"
	"github.com/mouseminder/mouseminder/internal/core/snapshot"
	"github.com/mouseminder/mouseminder/internal/util"
)

// recordingActuator captures SetPosition calls and fails on demand.
type recordingActuator struct {
	calls [][2]int
	err   error
}

func (a *recordingActuator) SetPosition(x, y int) error {
	a.calls = append(a.calls, [2]int{x, y})
	return a.err
}

type harness struct {
	store    *snapshot.Store
	actuator *recordingActuator
	clock    *util.ManualClock
	events   []model.StatusEvent
	ctrl     *Controller
}

func newHarness() *harness {
	h := &harness{
		store:    snapshot.NewStore(),
		actuator: &recordingActuator{},
		clock:    util.NewManualClock(time.Unix(1700000000, 0)),
	}
	h.ctrl = NewController(h.store, h.actuator, h.clock, func(e model.StatusEvent) {
		h.events = append(h.events, e)
	})
	return h
}

func TestRestoreWithSnapshot(t *testing.T) {
	h := newHarness()
	h.store.Write(model.Snapshot{X: 100, Y: 100, ConfirmedAt: h.clock.Now()})

	h.ctrl.HandleHotkey()

	require.Len(t, h.actuator.calls, 1)
	assert.Equal(t, [2]int{100, 100}, h.actuator.calls[0])

	require.Len(t, h.events, 1)
	assert.Equal(t, model.StatusRestored, h.events[0].Kind)
	require.NotNil(t, h.events[0].Snapshot)
	assert.Equal(t, 100, h.events[0].Snapshot.X)
}

func TestRestoreWithoutSnapshot(t *testing.T) {
	h := newHarness()

	h.ctrl.HandleHotkey()

	assert.Empty(t, h.actuator.calls, "no actuator call may happen before the first snapshot")
	require.Len(t, h.events, 1)
	assert.Equal(t, model.StatusNothingToRestore, h.events[0].Kind)
	assert.NoError(t, h.events[0].Err)
}

func TestRestoreIdempotence(t *testing.T) {
	h := newHarness()
	h.store.Write(model.Snapshot{X: 250, Y: 400, ConfirmedAt: h.clock.Now()})

	h.ctrl.HandleHotkey()
	h.clock.Advance(3 * time.Second)
	h.ctrl.HandleHotkey()

	require.Len(t, h.actuator.calls, 2)
	assert.Equal(t, h.actuator.calls[0], h.actuator.calls[1],
		"repeated presses with no snapshot update must reissue identical coordinates")
}

func TestRestoreFailureLeavesStoreIntact(t *testing.T) {
	h := newHarness()
	saved := model.Snapshot{X: 100, Y: 100, ConfirmedAt: h.clock.Now()}
	h.store.Write(saved)
	h.actuator.err = fmt.Errorf("set position (100,100): %w", model.ErrPermissionDenied)

	h.ctrl.HandleHotkey()

	require.Len(t, h.events, 1)
	assert.Equal(t, model.StatusRestoreFailed, h.events[0].Kind)
	assert.ErrorIs(t, h.events[0].Err, model.ErrPermissionDenied)

	stored, ok := h.store.Read()
	require.True(t, ok)
	assert.Equal(t, saved, stored, "a failed restore must not disturb the snapshot")

	// The next press is a fresh attempt.
	h.actuator.err = nil
	h.ctrl.HandleHotkey()
	require.Len(t, h.actuator.calls, 2)
	assert.Equal(t, model.StatusRestored, h.events[1].Kind)
}

func TestRestoreUsesLastCompletedWrite(t *testing.T) {
	h := newHarness()
	h.store.Write(model.Snapshot{X: 1, Y: 2, ConfirmedAt: h.clock.Now()})
	h.store.Write(model.Snapshot{X: 3, Y: 4, ConfirmedAt: h.clock.Now()})

	h.ctrl.HandleHotkey()

	require.Len(t, h.actuator.calls, 1)
	assert.Equal(t, [2]int{3, 4}, h.actuator.calls[0])
}
