package cache

import (
	"context"
	"sync"
	"time"

	"github.com/erp/warehouse-bot/internal/domain/shared"
)

// entry is one remembered save token with its expiry.
type entry struct {
	expiresAt time.Time
}

// InMemoryIdempotencyStore remembers processed save tokens in a local
// map. Good for a single service instance and for tests; tokens are
// not shared across processes, so distributed deployments use the
// Redis store instead.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates the store and starts a janitor
// goroutine that evicts expired tokens.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	store := &InMemoryIdempotencyStore{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}
	store.wg.Add(1)
	go store.cleanupLoop()
	return store
}

// MarkProcessed records a save token with the given TTL. Returns true
// when the token is new; false means this save was already committed
// and the caller must treat the trigger as a replay.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, token string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[token]; ok && time.Now().Before(e.expiresAt) {
		return false, nil
	}
	s.entries[token] = entry{expiresAt: time.Now().Add(ttl)}
	return true, nil
}

// IsProcessed reports whether a save token is still remembered. An
// expired token counts as unseen.
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[token]
	return ok && time.Now().Before(e.expiresAt), nil
}

// Close stops the janitor. Safe to call more than once.
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
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup drops every expired token.
func (s *InMemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, token)
		}
	}
}

// Size returns the number of remembered tokens.
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
