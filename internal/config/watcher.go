package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mouseminder/mouseminder/internal/core/hotkey"
	"github.com/mouseminder/mouseminder/internal/util"
)

// Watcher monitors the config file and turns externally-edited hotkey
// preferences into rebind requests for the engine. The parent directory is
// watched rather than the file itself because editors and settings panels
// replace the file on save.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	rebinds chan hotkey.Binding
	last    hotkey.Binding
}

// NewWatcher starts watching the config file at path. current is the binding
// already registered, so re-saving an unchanged file emits nothing.
func NewWatcher(path string, current hotkey.Binding) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: watcher,
		path:    abs,
		rebinds: make(chan hotkey.Binding, 4),
		last:    current,
	}

	go w.processEvents()

	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Config monitoring error: " + err.Error())
		}
	}
}

// reload re-reads the config and emits the binding if it changed. Malformed
// edits are logged and skipped; the registered binding stays in force.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		util.LogWarnf("Ignoring unreadable config edit: %v", err)
		return
	}

	binding, err := cfg.Binding()
	if err != nil {
		util.LogWarnf("Ignoring config edit with invalid hotkey: %v", err)
		return
	}

	if binding.Equal(w.last) {
		return
	}
	w.last = binding

	select {
	case w.rebinds <- binding:
	default:
		util.LogWarn("Dropping rebind request: engine is behind")
	}
}

// Rebinds returns the stream of rebind requests.
func (w *Watcher) Rebinds() <-chan hotkey.Binding {
	return w.rebinds
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
