package auth

import (
	"context"
	"sync"
	"time"
)

type memSession struct {
	identity  Identity
	createdAt time.Time
}

// MemSessions keeps login sessions in memory, for single node runs without redis.
type MemSessions struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memSession
}

func NewMemSessions(ttl time.Duration) *MemSessions {
	return &MemSessions{
		ttl:      ttl,
		sessions: make(map[string]memSession),
	}
}

func (s *MemSessions) Create(_ context.Context, token string, identity Identity, createdAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memSession{identity: identity, createdAt: createdAt}
	return nil
}

func (s *MemSessions) Get(_ context.Context, token string, now time.Time) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok || now.Sub(session.createdAt) > s.ttl {
		return nil, ErrNotLoggedIn
	}
	identity := session.identity
	return &identity, nil
}

func (s *MemSessions) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemSessions) ScanAndClean(_ context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, session := range s.sessions {
		if now.Sub(session.createdAt) > s.ttl {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}
