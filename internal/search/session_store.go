package search

import (
	"context"
	"sync"
)

// SessionStore persists search sessions. FindByID returns (nil, nil) when
// the session does not exist.
type SessionStore interface {
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]*Session)}
}

func (s *memorySessionStore) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *memorySessionStore) Save(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}
