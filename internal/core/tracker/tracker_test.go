package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouseminder/mouseminder/internal/core/model"
	"github.com/mouseminder/mouseminder/internal/core/snapshot"
)

const idleThreshold = 2 * time.Second

func sampleAt(base time.Time, offset time.Duration, x, y int) model.PositionSample {
	return model.PositionSample{X: x, Y: y, Timestamp: base.Add(offset)}
}

func TestTrackerConfirmsAfterThreshold(t *testing.T) {
	base := time.Now()
	store := snapshot.NewStore()
	tr := New(idleThreshold, store)

	// Stationary at (100,100) from t=0; next observation at t=2.1s.
	require.Nil(t, tr.Advance(sampleAt(base, 0, 100, 100)))
	snap := tr.Advance(sampleAt(base, 2100*time.Millisecond, 100, 100))

	require.NotNil(t, snap)
	assert.Equal(t, 100, snap.X)
	assert.Equal(t, 100, snap.Y)
	// Confirmed at threshold expiry (t=2.0s), not at the observing tick.
	assert.Equal(t, base.Add(idleThreshold), snap.ConfirmedAt)
	assert.Equal(t, StateIdle, tr.State())

	stored, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, *snap, stored)
}

func TestTrackerNoSnapshotWhileMoving(t *testing.T) {
	base := time.Now()
	store := snapshot.NewStore()
	tr := New(idleThreshold, store)

	// Continuous movement for 10 seconds at 10Hz.
	for i := 0; i < 100; i++ {
		snap := tr.Advance(sampleAt(base, time.Duration(i)*100*time.Millisecond, i, i*2))
		assert.Nil(t, snap)
	}

	assert.Equal(t, StateMoving, tr.State())
	_, ok := store.Read()
	assert.False(t, ok, "no snapshot may exist after continuous movement")
}

func TestTrackerSubThresholdPausesDoNotConfirm(t *testing.T) {
	base := time.Now()
	store := snapshot.NewStore()
	tr := New(idleThreshold, store)

	// Hold 1.9s, twitch, hold 1.9s again: never confirmed.
	require.Nil(t, tr.Advance(sampleAt(base, 0, 50, 50)))
	require.Nil(t, tr.Advance(sampleAt(base, 1900*time.Millisecond, 50, 50)))
	require.Nil(t, tr.Advance(sampleAt(base, 1950*time.Millisecond, 51, 50)))
	require.Nil(t, tr.Advance(sampleAt(base, 3850*time.Millisecond, 51, 50)))

	_, ok := store.Read()
	assert.False(t, ok)

	// One more tick past the second hold's threshold confirms.
	snap := tr.Advance(sampleAt(base, 3960*time.Millisecond, 51, 50))
	require.NotNil(t, snap)
	assert.Equal(t, 51, snap.X)
	assert.Equal(t, base.Add(1950*time.Millisecond).Add(idleThreshold), snap.ConfirmedAt)
}

func TestTrackerIdleSelfTransitionWritesOnce(t *testing.T) {
	base := time.Now()
	store := snapshot.NewStore()
	tr := New(idleThreshold, store)

	require.Nil(t, tr.Advance(sampleAt(base, 0, 10, 10)))
	first := tr.Advance(sampleAt(base, 2100*time.Millisecond, 10, 10))
	require.NotNil(t, first)

	// Still idle at the same point: no further store mutation.
	for i := 0; i < 20; i++ {
		offset := 2100*time.Millisecond + time.Duration(i+1)*50*time.Millisecond
		assert.Nil(t, tr.Advance(sampleAt(base, offset, 10, 10)))
	}

	stored, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, *first, stored)
}

func TestTrackerIdleToMovingOnFirstDifferingSample(t *testing.T) {
	base := time.Now()
	store := snapshot.NewStore()
	tr := New(idleThreshold, store)

	require.Nil(t, tr.Advance(sampleAt(base, 0, 10, 10)))
	require.NotNil(t, tr.Advance(sampleAt(base, 2100*time.Millisecond, 10, 10)))
	require.Equal(t, StateIdle, tr.State())

	assert.Nil(t, tr.Advance(sampleAt(base, 2150*time.Millisecond, 11, 10)))
	assert.Equal(t, StateMoving, tr.State())

	// Old snapshot stays authoritative until a new hold completes.
	stored, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, 10, stored.X)
}

func TestTrackerSecondIdlePeriodOverwrites(t *testing.T) {
	base := time.Now()
	store := snapshot.NewStore()
	tr := New(idleThreshold, store)

	require.Nil(t, tr.Advance(sampleAt(base, 0, 10, 10)))
	require.NotNil(t, tr.Advance(sampleAt(base, 2100*time.Millisecond, 10, 10)))

	// Move away, then hold a new point past the threshold.
	require.Nil(t, tr.Advance(sampleAt(base, 3*time.Second, 300, 200)))
	snap := tr.Advance(sampleAt(base, 5200*time.Millisecond, 300, 200))

	require.NotNil(t, snap)
	stored, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, 300, stored.X)
	assert.Equal(t, 200, stored.Y)
}

func TestTrackerCadenceIndependence(t *testing.T) {
	cadences := []time.Duration{20 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond}

	for _, cadence := range cadences {
		t.Run(cadence.String(), func(t *testing.T) {
			base := time.Now()
			store := snapshot.NewStore()
			tr := New(idleThreshold, store)

			var confirmed *model.Snapshot
			var confirmedOffset time.Duration
			for offset := time.Duration(0); offset <= 2200*time.Millisecond; offset += cadence {
				if snap := tr.Advance(sampleAt(base, offset, 64, 48)); snap != nil {
					confirmed = snap
					confirmedOffset = offset
					break
				}
			}

			require.NotNil(t, confirmed, "threshold never fired at cadence %s", cadence)
			assert.GreaterOrEqual(t, confirmedOffset, idleThreshold,
				"confirmed before the threshold elapsed")
			assert.Equal(t, base.Add(idleThreshold), confirmed.ConfirmedAt,
				"confirmation instant must not depend on cadence")
		})
	}
}

func TestTrackerIdenticalTimestampTieBreak(t *testing.T) {
	base := time.Now()
	store := snapshot.NewStore()
	tr := New(idleThreshold, store)

	require.Nil(t, tr.Advance(sampleAt(base, 0, 10, 10)))
	// Polling artifact: two samples with the same timestamp. The later
	// arrival wins the movement comparison.
	require.Nil(t, tr.Advance(sampleAt(base, time.Second, 20, 20)))
	require.Nil(t, tr.Advance(sampleAt(base, time.Second, 30, 30)))

	// Holding (30,30) confirms against the later arrival, not (20,20).
	snap := tr.Advance(sampleAt(base, 3100*time.Millisecond, 30, 30))
	require.NotNil(t, snap)
	assert.Equal(t, 30, snap.X)
}

func TestTrackerReset(t *testing.T) {
	base := time.Now()
	store := snapshot.NewStore()
	tr := New(idleThreshold, store)

	require.Nil(t, tr.Advance(sampleAt(base, 0, 10, 10)))
	tr.Reset()

	// Elapsed time before the reset no longer counts: a sample at t=2.1s
	// re-seeds instead of confirming.
	assert.Nil(t, tr.Advance(sampleAt(base, 2100*time.Millisecond, 10, 10)))
	_, ok := store.Read()
	assert.False(t, ok)

	// The hold measured from the re-seed confirms as usual.
	snap := tr.Advance(sampleAt(base, 4200*time.Millisecond, 10, 10))
	require.NotNil(t, snap)
	assert.Equal(t, base.Add(2100*time.Millisecond).Add(idleThreshold), snap.ConfirmedAt)
}
