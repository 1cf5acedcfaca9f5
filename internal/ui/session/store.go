// Package session holds the current backend credential for an API client.
//
// The web layer binds a fresh store per request (the token lives in an
// HttpOnly cookie between requests); tests and CLI use keep a MemoryStore
// for the life of the process. The client reads the store before every
// authenticated call and clears it when the backend answers 401.
package session

import "sync"

// Store is the single source of truth for the current session credential.
type Store interface {
	// Get returns the stored access token, or "" when no session exists.
	Get() string
	Set(token string)
	Clear()
}

// MemoryStore is a mutex-guarded in-memory Store.
// Multiple requests can be in flight when one of them clears the token; the
// lock keeps reads consistent but no further coordination is attempted -
// subsequent calls simply fail auth and prompt a re-login.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
