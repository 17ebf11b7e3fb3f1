// Package input abstracts OS-level mouse position polling and global hotkey
// delivery behind a uniform capability interface.
package input

import (
	"github.com/mouseminder/mouseminder/internal/core/hotkey"
	"github.com/mouseminder/mouseminder/internal/core/model"
)

// Source is the engine's view of the OS input subsystem.
//
// SubscribeHotkey registers a system-level hook; the hook is a scoped
// resource that must be released via Close on shutdown. Registration fails
// with model.ErrPermissionDenied when the OS denies input monitoring and
// with model.ErrBindingConflict when the combo cannot be claimed; neither is
// retried here.
type Source interface {
	// PollPosition returns the most recent known cursor coordinates without
	// blocking.
	PollPosition() model.PositionSample

	// SubscribeHotkey registers the binding and returns the stream of fired
	// events. A Source carries at most one subscription.
	SubscribeHotkey(binding hotkey.Binding) (<-chan model.HotkeyEvent, error)

	// Rebind atomically replaces the registered binding. The event stream
	// returned by SubscribeHotkey keeps delivering.
	Rebind(binding hotkey.Binding) error

	// Binding returns the currently registered binding.
	Binding() hotkey.Binding

	// Done is closed when the OS hook stops delivering, whether through
	// Close or because the OS tore the hook down.
	Done() <-chan struct{}

	// Close deregisters the OS hook.
	Close() error
}
