// Package session holds the portal's session state: the upstream API token
// and the user profile for each signed-in browser session. The store is
// injected into services rather than held as ambient global state, and
// exposes an invalidation hook so the presentation layer decides what to do
// when a session dies (e.g. on an upstream 401).
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"ncwcc-portal/internal/models"
)

// Session is what the portal remembers per signed-in browser
type Session struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// InvalidateFunc is notified when a session is wiped with a reason
// ("logout", "unauthorized", ...)
type InvalidateFunc func(sessionID, reason string)

type Store interface {
	Save(ctx context.Context, id string, s Session) error
	Get(ctx context.Context, id string) (Session, bool, error)
	Clear(ctx context.Context, id string) error
	// Invalidate clears the session and notifies subscribers
	Invalidate(ctx context.Context, id, reason string) error
	OnInvalidate(fn InvalidateFunc)
}

// NewID generates a random session identifier
func NewID() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

// Token returns the stored upstream token for a session, if any
func Token(ctx context.Context, store Store, id string) string {
	if id == "" {
		return ""
	}
	s, ok, err := store.Get(ctx, id)
	if err != nil || !ok {
		return ""
	}
	return s.Token
}

type contextKey string

const idKey contextKey = "session_id"

// WithID attaches a session id to the request context
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// IDFromContext extracts the session id from the request context
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(idKey).(string)
	return id, ok && id != ""
}

// subscribers is shared by store implementations
type subscribers struct {
	mu  sync.RWMutex
	fns []InvalidateFunc
}

func (s *subscribers) add(fn InvalidateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, fn)
}

func (s *subscribers) notify(id, reason string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fn := range s.fns {
		fn(id, reason)
	}
}
