package services

import (
	"context"

	"ncwcc-portal/internal/models"
)

// Derived accessors over the persisted session profile. All read-only;
// fallbacks follow the API's documented defaults.

func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) *models.UserProfile {
	sess, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil || !ok {
		return nil
	}
	return &sess.User
}

func (s *AuthService) IsAuthenticated(ctx context.Context, sessionID string) bool {
	sess, ok, err := s.sessions.Get(ctx, sessionID)
	return err == nil && ok && sess.Token != ""
}

func (s *AuthService) IsGoogleUser(ctx context.Context, sessionID string) bool {
	u := s.CurrentUser(ctx, sessionID)
	return u != nil && u.AuthProvider == "google"
}

func (s *AuthService) IsVerified(ctx context.Context, sessionID string) bool {
	u := s.CurrentUser(ctx, sessionID)
	return u != nil && u.EmailVerified
}

func (s *AuthService) UserType(ctx context.Context, sessionID string) string {
	u := s.CurrentUser(ctx, sessionID)
	if u == nil {
		return ""
	}
	return u.UserType
}

func (s *AuthService) ClientType(ctx context.Context, sessionID string) string {
	u := s.CurrentUser(ctx, sessionID)
	if u == nil {
		return ""
	}
	return u.ClientType
}

// IsNDISClient prefers the explicit flag and falls back to the client type
func (s *AuthService) IsNDISClient(ctx context.Context, sessionID string) bool {
	u := s.CurrentUser(ctx, sessionID)
	if u == nil {
		return false
	}
	if u.IsNDISClient != nil {
		return *u.IsNDISClient
	}
	return u.ClientType == "ndis"
}
