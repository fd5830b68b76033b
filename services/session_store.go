package services

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore hands out sessions keyed by opaque IDs. Sessions live for the
// lifetime of the process; there is no persistence.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session with the given id.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

// Create mints a new session with a fresh id.
func (st *SessionStore) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess := &Session{ID: uuid.NewString(), page: PageHome}
	st.sessions[sess.ID] = sess
	return sess
}

// GetOrCreate returns the session for id, creating a fresh one when the id is
// empty or unknown (e.g. after a server restart).
func (st *SessionStore) GetOrCreate(id string) *Session {
	if id != "" {
		if sess, ok := st.Get(id); ok {
			return sess
		}
	}
	return st.Create()
}
