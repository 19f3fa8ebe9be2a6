package middleware

import (
	"net/http"
	"strings"

	"ncwcc-portal/internal/session"
)

// SessionMiddleware resolves the portal session from the Authorization
// header and attaches it to the request context. Downstream calls to the
// core business API pick the upstream token up from the same session.
type SessionMiddleware struct {
	sessions session.Store
}

func NewSessionMiddleware(sessions session.Store) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Authenticate requires a live portal session
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := extractSessionID(r)
		if sessionID == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		_, ok, err := m.sessions.Get(r.Context(), sessionID)
		if err != nil || !ok {
			http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), sessionID)))
	})
}

// Resolve attaches the session when present but lets anonymous requests
// through (used by the auth endpoints themselves)
func (m *SessionMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionID := extractSessionID(r); sessionID != "" {
			r = r.WithContext(session.WithID(r.Context(), sessionID))
		}
		next.ServeHTTP(w, r)
	})
}

func extractSessionID(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
