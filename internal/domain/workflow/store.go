package workflow

// SessionStore holds one conversation session per user. Semantics are plain
// key-value with last-writer-wins per user; sessions never outlive the process.
type SessionStore interface {
	// Get returns the session for a user, or nil if none exists
	Get(userID int64) *Session
	// Put stores the session for a user, replacing any existing one
	Put(userID int64, session *Session)
	// Clear removes the session for a user
	Clear(userID int64)
}
