package cache

import (
	"context"
	"sync"
	"time"

	"github.com/venuehq/backend/internal/domain/shared"
)

// InMemoryIdempotencyStore implements IdempotencyStore with an in-process map.
// Suitable for single-instance deployments; distributed deployments should
// use RedisIdempotencyStore so replayed requests hit the same state.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// NewInMemoryIdempotencyStore creates a store whose entries live for ttl.
// A background goroutine evicts expired entries every 5 minutes.
func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s := &InMemoryIdempotencyStore{
		entries:  make(map[string]entry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Lookup returns the payload recorded for the key, if one exists and has not expired
func (s *InMemoryIdempotencyStore) Lookup(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.payload, true, nil
}

// Store records the result payload for the key with the store's TTL
func (s *InMemoryIdempotencyStore) Store(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{
		payload:   payload,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Size returns the number of entries currently held, expired or not
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stopChan:
			return
		}
	}
}

func (s *InMemoryIdempotencyStore) evictExpired() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Ensure InMemoryIdempotencyStore implements IdempotencyStore
var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
