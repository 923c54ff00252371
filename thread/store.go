// Package thread persists conversation state between turns, keyed by thread
// identity. The workflow treats stored states as opaque records; it never
// reaches into a thread it is not currently running.
package thread

import (
	"sync"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/graph"
)

// Store persists per-thread conversation state between turns.
type Store interface {
	// Load returns the state for a thread, or false if the thread is new.
	Load(id string) (graph.State, bool)

	// Save replaces the state for a thread.
	Save(id string, st graph.State)
}

// MemoryStore is an in-process Store. Distinct threads can be loaded and
// saved concurrently; the map is the only shared structure and is guarded by
// a single RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	threads map[string]graph.State
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{threads: make(map[string]graph.State)}
}

// Load returns the state for a thread, or false if the thread is new.
// The returned state is a clone; callers cannot alias the stored record.
func (s *MemoryStore) Load(id string) (graph.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.threads[id]
	if !ok {
		return graph.State{}, false
	}
	return st.Clone(), true
}

// Save replaces the state for a thread.
func (s *MemoryStore) Save(id string, st graph.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[id] = st.Clone()
}
