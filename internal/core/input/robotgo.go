package input

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"

	"github.com/mouseminder/mouseminder/internal/core/hotkey"
	"github.com/mouseminder/mouseminder/internal/core/model"
	"github.com/mouseminder/mouseminder/internal/util"
)

// RobotSource implements Source on top of robotgo for position reads and the
// gohook global event hook for hotkey delivery.
type RobotSource struct {
	clock util.Clock

	mu      sync.Mutex
	binding hotkey.Binding
	events  chan model.HotkeyEvent
	done    chan struct{}
	running bool
	closed  bool

	// generation guards against stale hook callbacks: gohook keeps
	// registrations across restarts, so every (re)bind bumps the generation
	// and callbacks from older ones are ignored. Read lock-free from the
	// hook dispatch goroutine.
	generation atomic.Uint64
	active     atomic.Bool
}

// NewRobotSource creates an unsubscribed RobotSource stamping samples with
// the given clock.
func NewRobotSource(clock util.Clock) *RobotSource {
	return &RobotSource{clock: clock}
}

// PollPosition reads the cursor position from the OS.
func (s *RobotSource) PollPosition() model.PositionSample {
	x, y := robotgo.Location()
	return model.PositionSample{X: x, Y: y, Timestamp: s.clock.Now()}
}

// SubscribeHotkey registers the binding with the OS hook and starts the
// event pump.
func (s *RobotSource) SubscribeHotkey(binding hotkey.Binding) (<-chan model.HotkeyEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("subscribe %s: source closed", binding)
	}
	if s.running {
		return nil, fmt.Errorf("subscribe %s: hotkey already subscribed", binding)
	}
	if binding.IsZero() {
		return nil, fmt.Errorf("subscribe: empty binding")
	}

	s.events = make(chan model.HotkeyEvent, 8)
	if err := s.startHookLocked(binding); err != nil {
		return nil, err
	}
	return s.events, nil
}

// Rebind stops the running hook and re-registers it with the new binding.
// The event stream returned by SubscribeHotkey keeps delivering.
func (s *RobotSource) Rebind(binding hotkey.Binding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("rebind %s: source closed", binding)
	}
	if !s.running {
		return fmt.Errorf("rebind %s: no active subscription", binding)
	}
	if binding.IsZero() {
		return fmt.Errorf("rebind: empty binding")
	}
	if binding.Equal(s.binding) {
		return nil
	}

	s.stopHookLocked()
	return s.startHookLocked(binding)
}

// Binding returns the currently registered binding.
func (s *RobotSource) Binding() hotkey.Binding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binding
}

// Done is closed when the hook stops delivering, whether through Close or
// because the OS tore the hook down.
func (s *RobotSource) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return s.done
}

// Close deregisters the OS hook. The source cannot be reused afterwards.
func (s *RobotSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.running {
		s.stopHookLocked()
	}
	return nil
}

// startHookLocked registers the binding and starts the hook event loop.
// Callers hold s.mu.
func (s *RobotSource) startHookLocked(binding hotkey.Binding) error {
	gen := s.generation.Add(1)
	events := s.events
	clock := s.clock

	// The callback runs on the hook dispatch goroutine and must never block:
	// generation and activity are checked atomically and a busy receiver
	// simply loses the event. Restoration is idempotent and the next press
	// is a fresh attempt, so dropping is safe.
	hook.Register(hook.KeyDown, binding.HookSpec(), func(e hook.Event) {
		if !s.active.Load() || s.generation.Load() != gen {
			return
		}
		select {
		case events <- model.HotkeyEvent{FiredAt: clock.Now()}:
		default:
		}
	})

	stream := hook.Start()
	if stream == nil {
		return fmt.Errorf("register %s: %w", binding, model.ErrBindingConflict)
	}

	done := make(chan struct{})
	go func() {
		<-hook.Process(stream)
		close(done)
	}()

	s.binding = binding
	s.done = done
	s.running = true
	s.active.Store(true)
	return nil
}

// stopHookLocked tears the hook down and waits for its event loop to drain.
// Callers hold s.mu.
func (s *RobotSource) stopHookLocked() {
	s.active.Store(false)
	hook.End()
	if s.done != nil {
		<-s.done
	}
	s.running = false
}
