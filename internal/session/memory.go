package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded in-process session store.  It is the
// test double for RedisStore and the fallback when Redis is not
// reachable at startup.  Sessions are lost on restart.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]memEntry
}

type memEntry struct {
	admin   Admin
	expires time.Time
}

// NewMemoryStore returns an empty in-memory store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, data: make(map[string]memEntry)}
}

// Create starts a session and returns the raw token.
func (s *MemoryStore) Create(_ context.Context, a Admin) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.data[hashToken(token)] = memEntry{admin: a, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// Get resolves a raw token to its admin record, dropping expired entries.
func (s *MemoryStore) Get(_ context.Context, token string) (Admin, error) {
	key := hashToken(token)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[key]
	if !ok {
		return Admin{}, ErrNoSession
	}
	if time.Now().After(e.expires) {
		delete(s.data, key)
		return Admin{}, ErrNoSession
	}
	return e.admin, nil
}

// Update replaces the admin record of an existing session.
func (s *MemoryStore) Update(_ context.Context, token string, a Admin) error {
	key := hashToken(token)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[key]
	if !ok || time.Now().After(e.expires) {
		delete(s.data, key)
		return ErrNoSession
	}
	e.admin = a
	s.data[key] = e
	return nil
}

// Destroy terminates the session.
func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.data, hashToken(token))
	s.mu.Unlock()
	return nil
}
