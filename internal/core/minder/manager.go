// Package minder wires the tracking engine together: the polling task, the
// hotkey event task, the snapshot store between them, and the outbound
// status feed.
package minder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	prefs "github.com/mouseminder/mouseminder/internal/config"
	"github.com/mouseminder/mouseminder/internal/core/cursor"
	"github.com/mouseminder/mouseminder/internal/core/hotkey"
	"github.com/mouseminder/mouseminder/internal/core/input"
	"github.com/mouseminder/mouseminder/internal/core/model"
	"github.com/mouseminder/mouseminder/internal/core/restore"
	"github.com/mouseminder/mouseminder/internal/core/snapshot"
	"github.com/mouseminder/mouseminder/internal/core/tracker"
	"github.com/mouseminder/mouseminder/internal/presentation/display"
	"github.com/mouseminder/mouseminder/internal/util"
)

const (
	defaultDisplayRefresh = 100 * time.Millisecond
	defaultFeedbackFor    = 2 * time.Second
)

// Config carries the engine's runtime settings.
type Config struct {
	Binding        hotkey.Binding
	PollInterval   time.Duration
	IdleThreshold  time.Duration
	DisplayRefresh time.Duration
	FeedbackFor    time.Duration
	Headless       bool
	ConfigPath     string // enables the rebind watcher when set
}

// Manager owns the engine's two concurrent tasks and the select loop that
// serves hotkey events, rebind requests, local keys, and display refreshes.
type Manager struct {
	config     *Config
	clock      util.Clock
	source     input.Source
	actuator   cursor.Actuator
	store      *snapshot.Store
	poller     *tracker.Poller
	controller *restore.Controller
	terminal   *display.Terminal

	status chan model.StatusEvent

	// Loop-owned presentation state, touched only from Run.
	binding     hotkey.Binding
	feedback    string
	feedbackEnd time.Time
}

// New creates a Manager backed by the real OS input and cursor subsystems.
func New(cfg *Config) *Manager {
	clock := util.RealClock{}
	return newWithDeps(cfg, input.NewRobotSource(clock), cursor.NewRobotActuator(), clock)
}

func newWithDeps(cfg *Config, source input.Source, actuator cursor.Actuator, clock util.Clock) *Manager {
	if cfg.Binding.IsZero() {
		cfg.Binding = hotkey.Default()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = prefs.DefaultPollIntervalMS * time.Millisecond
	}
	if cfg.IdleThreshold <= 0 {
		cfg.IdleThreshold = prefs.DefaultIdleThresholdMS * time.Millisecond
	}
	if cfg.DisplayRefresh <= 0 {
		cfg.DisplayRefresh = defaultDisplayRefresh
	}
	if cfg.FeedbackFor <= 0 {
		cfg.FeedbackFor = defaultFeedbackFor
	}

	m := &Manager{
		config:   cfg,
		clock:    clock,
		source:   source,
		actuator: actuator,
		store:    snapshot.NewStore(),
		status:   make(chan model.StatusEvent, 16),
	}

	tr := tracker.New(cfg.IdleThreshold, m.store)
	m.poller = tracker.NewPoller(source, tr, cfg.PollInterval, func(snap model.Snapshot) {
		m.emit(model.StatusEvent{
			Kind:     model.StatusSnapshotSaved,
			At:       clock.Now(),
			Snapshot: &snap,
		})
	})
	m.controller = restore.NewController(m.store, actuator, clock, m.emit)

	return m
}

// emit logs a status event and queues it for the presentation loop. It is
// called from the polling goroutine as well as the loop itself and never
// blocks.
func (m *Manager) emit(event model.StatusEvent) {
	logStatus(event)
	select {
	case m.status <- event:
	default:
	}
}

func logStatus(event model.StatusEvent) {
	if event.Err != nil {
		util.LogWarnf("%s: %v", event.Kind, event.Err)
		return
	}
	if event.Snapshot != nil {
		util.LogInfof("%s: (%d,%d)", event.Kind, event.Snapshot.X, event.Snapshot.Y)
		return
	}
	util.LogInfo(event.Kind.String())
}

// Run executes the engine until ctx is cancelled or quit is requested.
// Shutdown stops the polling task and deregisters the OS hook before
// returning.
func (m *Manager) Run(ctx context.Context) error {
	util.LogInfof("Starting tracker: hotkey=%s poll=%s threshold=%s",
		m.config.Binding, m.config.PollInterval, m.config.IdleThreshold)

	defer m.source.Close()

	// Hotkey subscription. Registration failures are fatal to the hotkey
	// path only; tracking continues without a restore trigger.
	m.binding = m.config.Binding
	hotkeyEvents, err := m.source.SubscribeHotkey(m.binding)
	var hookDown <-chan struct{}
	if err != nil {
		kind := model.StatusHotkeyLost
		if errors.Is(err, model.ErrPermissionDenied) {
			kind = model.StatusPermissionDenied
		}
		m.emit(model.StatusEvent{Kind: kind, At: m.clock.Now(), Err: err})
		hotkeyEvents = nil
	} else {
		hookDown = m.source.Done()
	}

	// Polling task.
	pollCtx, cancelPoll := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancelPoll()
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.poller.Run(pollCtx)
	}()

	// Rebind requests from externally-edited preferences.
	var rebinds <-chan hotkey.Binding
	if m.config.ConfigPath != "" {
		watcher, werr := prefs.NewWatcher(m.config.ConfigPath, m.binding)
		if werr != nil {
			util.LogWarnf("Config watcher disabled: %v", werr)
		} else {
			rebinds = watcher.Rebinds()
			defer watcher.Close()
		}
	}

	// Local control surface.
	var keys <-chan rune
	if !m.config.Headless {
		keyboard, kerr := NewKeyboardReader()
		if kerr != nil {
			util.LogWarnf("Keyboard input disabled: %v", kerr)
		} else {
			keys = keyboard.Events()
			defer keyboard.Close()
		}

		terminal := display.NewTerminal()
		if terminal.Interactive() {
			m.terminal = terminal
			m.terminal.EnterAlternateScreen()
			defer m.terminal.ExitAlternateScreen()
		}
	}

	displayTicker := time.NewTicker(m.config.DisplayRefresh)
	defer displayTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down tracker")
			return nil

		case <-hotkeyEvents:
			m.controller.HandleHotkey()

		case <-hookDown:
			hookDown = nil
			if ctx.Err() == nil {
				m.emit(model.StatusEvent{
					Kind: model.StatusHotkeyLost,
					At:   m.clock.Now(),
					Err:  fmt.Errorf("hotkey hook stopped delivering"),
				})
			}

		case binding := <-rebinds:
			hookDown = m.handleRebind(binding, hookDown)

		case event := <-m.status:
			if text := display.FeedbackText(event); text != "" {
				m.feedback = text
				m.feedbackEnd = m.clock.Now().Add(m.config.FeedbackFor)
			}

		case key := <-keys:
			if m.handleKey(key) {
				util.LogInfo("Quit requested")
				return nil
			}

		case <-displayTicker.C:
			m.render()
		}
	}
}

// handleRebind swaps the registered hotkey and returns the hook liveness
// channel to watch from now on.
func (m *Manager) handleRebind(binding hotkey.Binding, hookDown <-chan struct{}) <-chan struct{} {
	if err := m.source.Rebind(binding); err != nil {
		m.emit(model.StatusEvent{
			Kind: model.StatusHotkeyLost,
			At:   m.clock.Now(),
			Err:  fmt.Errorf("rebind to %s: %w", binding, err),
		})
		return hookDown
	}

	m.binding = binding
	m.emit(model.StatusEvent{
		Kind:    model.StatusHotkeyRebound,
		At:      m.clock.Now(),
		Binding: binding.String(),
	})
	return m.source.Done()
}

// handleKey serves the local control surface. Returns true on quit.
func (m *Manager) handleKey(key rune) bool {
	switch key {
	case 'q', 3: // q or Ctrl+C
		return true
	case 'p':
		if m.poller.Paused() {
			m.poller.Resume()
			m.emit(model.StatusEvent{Kind: model.StatusTrackingResumed, At: m.clock.Now()})
		} else {
			m.poller.Pause()
			m.emit(model.StatusEvent{Kind: model.StatusTrackingPaused, At: m.clock.Now()})
		}
	case 'r':
		m.controller.HandleHotkey()
	case 'c':
		m.store.Clear()
		m.emit(model.StatusEvent{Kind: model.StatusSnapshotCleared, At: m.clock.Now()})
	}
	return false
}

// render redraws the status screen from current engine state.
func (m *Manager) render() {
	if m.terminal == nil {
		return
	}

	state := display.State{
		Paused:  m.poller.Paused(),
		Binding: m.binding.String(),
	}
	if pos, ok := m.poller.CurrentPosition(); ok {
		state.Current = &pos
	}
	if snap, ok := m.store.Read(); ok {
		state.Snapshot = &snap
	}
	if m.clock.Now().Before(m.feedbackEnd) {
		state.Feedback = m.feedback
	}

	m.terminal.Render(state)
}
