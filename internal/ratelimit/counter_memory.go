package ratelimit

import (
	"context"
	"sync"
	"time"
)

// memoryCounterStore is an in-process [CounterStore] used by tests and by
// development setups that want real limiting without a remote backend.
// Records are created lazily on first increment and dropped once their
// window elapses.
type memoryCounterStore struct {
	mu      sync.Mutex
	records map[string]*memoryRecord
	now     func() time.Time
}

type memoryRecord struct {
	count     int64
	windowEnd time.Time
}

// NewMemoryCounterStore constructs an empty in-memory counter store.
func NewMemoryCounterStore() CounterStore {
	return &memoryCounterStore{
		records: make(map[string]*memoryRecord),
		now:     time.Now,
	}
}

// Incr implements [CounterStore]. A record whose window has elapsed is
// replaced with a fresh one before counting — the count is never bumped on
// a stale window.
func (s *memoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec, ok := s.records[key]
	if !ok || !now.Before(rec.windowEnd) {
		rec = &memoryRecord{windowEnd: now.Add(window)}
		s.records[key] = rec
	}

	rec.count++
	return rec.count, rec.windowEnd.Sub(now), nil
}

// Reset implements [CounterStore].
func (s *memoryCounterStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}
