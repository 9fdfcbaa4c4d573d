package audit

import (
	"sync"

	"github.com/coder/quartz"
)

// MemStore is an in-memory audit log guarded by a reader/writer lock. It is
// the default store for servers that do not persist hand history.
type MemStore struct {
	mu      sync.RWMutex
	clock   quartz.Clock
	entries []Entry
}

// NewMemStore creates an in-memory store. A nil clock uses the real clock;
// tests inject a quartz mock for deterministic timestamps.
func NewMemStore(clock quartz.Clock) *MemStore {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &MemStore{clock: clock}
}

// AddEntry records an event. The timestamp is stamped here unless the caller
// already set one.
func (s *MemStore) AddEntry(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = s.clock.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// GetShowdownAudit returns the entries for one hand, oldest first.
func (s *MemStore) GetShowdownAudit(gameID string, handNumber int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.GameID == gameID && e.HandNumber == handNumber {
			out = append(out, e)
		}
	}
	return out
}

// GetGameShowdownAudits returns all entries for a game, oldest first.
func (s *MemStore) GetGameShowdownAudits(gameID string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.GameID == gameID {
			out = append(out, e)
		}
	}
	return out
}

// Close implements Store; a MemStore holds no resources.
func (s *MemStore) Close() error {
	return nil
}
