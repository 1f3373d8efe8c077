package lockout

import (
	"context"
	"sync"
	"time"
)

const (
	defaultMaxWindows = 100_000
	sweepInterval     = time.Minute
)

type window struct {
	count   int
	resetAt time.Time
}

// InMemoryStore keeps failure windows in process memory. Expired windows are
// swept at most once per sweepInterval, and the number of live windows is
// capped; at the cap the window closest to expiry is evicted.
type InMemoryStore struct {
	mu         sync.Mutex
	windows    map[string]window
	maxWindows int
	lastSweep  time.Time
}

// MemoryOption configures an InMemoryStore.
type MemoryOption func(*InMemoryStore)

// WithMaxWindows caps the number of tracked keys.
func WithMaxWindows(n int) MemoryOption {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.maxWindows = n
		}
	}
}

func NewInMemoryStore(opts ...MemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		windows:    make(map[string]window),
		maxWindows: defaultMaxWindows,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Failures(_ context.Context, key string, now time.Time) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.live(key, now)
	if !ok {
		return 0, time.Time{}, nil
	}
	return w.count, w.resetAt, nil
}

func (s *InMemoryStore) Increment(_ context.Context, key string, length time.Duration, now time.Time) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(now)
	w, ok := s.live(key, now)
	if !ok {
		if len(s.windows) >= s.maxWindows {
			s.evictSoonest()
		}
		w = window{resetAt: now.Add(length)}
	}
	w.count++
	s.windows[key] = w
	return w.count, w.resetAt, nil
}

func (s *InMemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}

// Len reports how many windows are held, expired or not.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func (s *InMemoryStore) live(key string, now time.Time) (window, bool) {
	w, ok := s.windows[key]
	if !ok {
		return window{}, false
	}
	if !now.Before(w.resetAt) {
		delete(s.windows, key)
		return window{}, false
	}
	return w, true
}

// sweep drops every expired window. Caller holds mu.
func (s *InMemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for key, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, key)
		}
	}
}

// evictSoonest removes the window that would expire first. Caller holds mu.
func (s *InMemoryStore) evictSoonest() {
	var (
		victim string
		first  time.Time
		found  bool
	)
	for key, w := range s.windows {
		if !found || w.resetAt.Before(first) {
			victim, first, found = key, w.resetAt, true
		}
	}
	if found {
		delete(s.windows, victim)
	}
}
