// internal/session/store.go
package session

import (
	"sync"

	"bankist-ledger/internal/service"

	"github.com/google/uuid"
)

// Store keeps sessions by opaque token.
type Store struct {
	mu       sync.Mutex
	ledger   service.LedgerService
	sessions map[string]*Session
}

// NewStore creates an empty session store for ledger.
func NewStore(ledger service.LedgerService) *Store {
	return &Store{
		ledger:   ledger,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new logged-out session and returns its token.
func (st *Store) Create() (string, *Session) {
	token := uuid.NewString()
	sess := New(st.ledger)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[token] = sess
	return token, sess
}

// Get returns the session for token.
func (st *Store) Get(token string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[token]
	return sess, ok
}

// Delete forgets the session for token.
func (st *Store) Delete(token string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, token)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
