package auth

import (
	"sync"
	"time"
)

// Role is the authorization level attached to a session.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleReadOnly Role = "readonly"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleReadOnly
}

// Session is an opaque, time-bounded authorization handle. Sessions live
// only in memory and are never persisted across process restarts. There is
// no revoke path beyond expiry and no sliding renewal: once a session
// expires the caller re-authenticates for a fresh one.
type Session struct {
	ID        string    `json:"session_id"`
	Principal string    `json:"principal"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	TTL       time.Duration `json:"-"`
}

// ExpiresAt returns the instant at which validation starts failing.
func (s *Session) ExpiresAt() time.Time {
	return s.IssuedAt.Add(s.TTL)
}

// Expired reports whether the session is expired at the given instant.
// The boundary is inclusive: a session validated exactly at issuedAt+ttl
// is already expired.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt())
}

// SessionStore holds issued sessions. Implementations must support many
// concurrent readers with occasional writers.
type SessionStore interface {
	Put(s *Session)
	Get(id string) (*Session, bool)
	ActiveCount() int
}

// MemorySessionStore is a mutex-protected in-memory session map. Write
// contention is low (one write per authentication), so a single lock over
// the whole map is sufficient.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemorySessionStore creates an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// NewMemorySessionStoreWithClock creates a store with an injectable clock.
func NewMemorySessionStoreWithClock(now func() time.Time) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
		now:      now,
	}
}

// Put records a session under its identifier.
func (st *MemorySessionStore) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

// Get returns the session for an identifier, if one was issued.
func (st *MemorySessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// ActiveCount returns the number of unexpired sessions. Expired entries
// encountered on the way are dropped opportunistically.
func (st *MemorySessionStore) ActiveCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	count := 0
	for id, s := range st.sessions {
		if s.Expired(now) {
			delete(st.sessions, id)
			continue
		}
		count++
	}
	return count
}
