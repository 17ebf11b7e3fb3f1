package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/mouseminder/mouseminder/internal/core/model"
)

// PositionSource is the slice of the input layer the polling task needs: a
// non-blocking read of the most recent known cursor coordinates.
type PositionSource interface {
	PollPosition() model.PositionSample
}

// Poller drives the Tracker at a fixed cadence on its own goroutine, sleeping
// between samples. It runs independently of the presentation path and talks
// to the rest of the engine only through the snapshot store and the
// onSnapshot callback.
type Poller struct {
	source     PositionSource
	tracker    *Tracker
	interval   time.Duration
	onSnapshot func(model.Snapshot)

	mu     sync.Mutex
	paused bool
}

// NewPoller creates a Poller sampling source every interval. onSnapshot, if
// non-nil, is invoked from the polling goroutine for each confirmed snapshot.
func NewPoller(source PositionSource, tracker *Tracker, interval time.Duration, onSnapshot func(model.Snapshot)) *Poller {
	return &Poller{
		source:     source,
		tracker:    tracker,
		interval:   interval,
		onSnapshot: onSnapshot,
	}
}

// Run samples until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick performs a single sample-and-advance step.
func (p *Poller) tick() {
	p.mu.Lock()
	if p.paused {
		p.mu.Unlock()
		return
	}
	sample := p.source.PollPosition()
	snap := p.tracker.Advance(sample)
	p.mu.Unlock()

	if snap != nil && p.onSnapshot != nil {
		p.onSnapshot(*snap)
	}
}

// Pause suspends sampling. The tracker keeps its last confirmed snapshot.
func (p *Poller) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = true
}

// Resume restarts sampling. The tracker is reset first so the pause duration
// never counts toward the idle threshold.
func (p *Poller) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.paused = false
		p.tracker.Reset()
	}
}

// Paused reports whether sampling is suspended.
func (p *Poller) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// CurrentPosition returns the tracker's most recent sample for live display.
func (p *Poller) CurrentPosition() (model.PositionSample, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tracker.LastSample()
}

// TrackerState returns the tracker's current phase.
func (p *Poller) TrackerState() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tracker.State()
}
