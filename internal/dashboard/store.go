package dashboard

import (
	"sync"

	"github.com/google/uuid"
)

// Store holds the live sessions of the process.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	baseURL func() string
	factory ClientFactory
}

// NewStore creates a store whose sessions start at the URL baseURL returns
// at creation time.
func NewStore(baseURL func() string, factory ClientFactory) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		baseURL:  baseURL,
		factory:  factory,
	}
}

// New creates and registers a session.
func (st *Store) New() *Session {
	url := ""
	if st.baseURL != nil {
		url = st.baseURL()
	}
	s := NewSession(url, st.factory)

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	logf(s.id(), "session opened at %s", s.BaseURL())
	return s
}

// Get looks up a session.
func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete forgets a session. Unknown ids are ignored.
func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		logf(id.String(), "session closed")
	}
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
