package session

import (
	"context"
	"sync"
)

// MemoryStore is the in-process store used in tests and when Redis is
// unavailable (sessions then survive only until restart)
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	subs     subscribers
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Save(_ context.Context, id string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok, nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Invalidate(ctx context.Context, id, reason string) error {
	err := s.Clear(ctx, id)
	s.subs.notify(id, reason)
	return err
}

func (s *MemoryStore) OnInvalidate(fn InvalidateFunc) {
	s.subs.add(fn)
}
