package session

import (
	"sync"

	"github.com/erp/warehouse-bot/internal/domain/workflow"
)

// InMemoryStore implements workflow.SessionStore with a mutex-guarded map.
// Sessions are process-local; a restart clears all in-flight conversations,
// which is acceptable because every committed line is already durable.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*workflow.Session
}

// NewInMemoryStore creates a new in-memory session store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[int64]*workflow.Session),
	}
}

// Get returns the session for a user, or nil if none exists
func (s *InMemoryStore) Get(userID int64) *workflow.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[userID]
}

// Put stores the session for a user, replacing any existing one
func (s *InMemoryStore) Put(userID int64, session *workflow.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
}

// Clear removes the session for a user
func (s *InMemoryStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Size returns the number of active sessions (for testing/monitoring)
func (s *InMemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Ensure InMemoryStore implements SessionStore
var _ workflow.SessionStore = (*InMemoryStore)(nil)
