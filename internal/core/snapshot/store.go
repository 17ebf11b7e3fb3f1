// Package snapshot holds the single last-confirmed cursor position under
// mutual exclusion. The idle tracker is the only writer; the restoration
// controller only reads.
package snapshot

import (
	"sync"

	"github.com/mouseminder/mouseminder/internal/core/model"
)

// Store owns the live Snapshot. Each write replaces the previous value as a
// single atomic unit, so a concurrent read observes either the old or the new
// snapshot in full, never a mixture.
type Store struct {
	mu      sync.RWMutex
	current model.Snapshot
	present bool
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Write replaces the current snapshot.
func (s *Store) Write(snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
	s.present = true
}

// Read returns the most recently completed snapshot. The second return is
// false until the first Write; that is absence, not an error.
func (s *Store) Read() (model.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.present
}

// Clear discards the current snapshot.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = model.Snapshot{}
	s.present = false
}
