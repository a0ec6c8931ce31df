package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps windows in a map guarded by one mutex, which makes the
// start-or-increment step atomic per key. Expired windows are replaced on
// their next hit and removed in bulk by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*Window
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*Window)}
}

var _ Store = (*MemoryStore)(nil)

// Hit implements Store.
func (s *MemoryStore) Hit(_ context.Context, key string, now time.Time, window time.Duration) (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.Sub(w.Start) >= window {
		w = &Window{Count: 1, Start: now}
		s.windows[key] = w
		return *w, nil
	}
	w.Count++
	return *w, nil
}

// Sweep drops every window that expired before now and returns how many were
// removed.
func (s *MemoryStore) Sweep(now time.Time, window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, w := range s.windows {
		if now.Sub(w.Start) >= window {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked windows.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
