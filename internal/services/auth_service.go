package services

import (
	"context"
	"encoding/json"
	"log"

	"ncwcc-portal/internal/apiclient"
	"ncwcc-portal/internal/metrics"
	"ncwcc-portal/internal/models"
	"ncwcc-portal/internal/session"
)

// AuthService orchestrates the upstream authentication flows and persists
// the resulting session. Every method returns an AuthResult; failures are
// normalized, never raised.
type AuthService struct {
	api      *apiclient.Client
	sessions session.Store
}

func NewAuthService(api *apiclient.Client, sessions session.Store) *AuthService {
	return &AuthService{api: api, sessions: sessions}
}

// AuthResult is the normalized outcome of an authentication operation
type AuthResult struct {
	Success bool                `json:"success"`
	Status  int                 `json:"status,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string]any      `json:"errors,omitempty"`
	User    *models.UserProfile `json:"user,omitempty"`
	Data    json.RawMessage     `json:"data,omitempty"`
}

type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone,omitempty"`
	ClientType string `json:"client_type,omitempty"`
	NDISNumber string `json:"ndis_number,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authPayload is the shape upstream auth endpoints respond with
type authPayload struct {
	Token string              `json:"token"`
	Key   string              `json:"key"`
	User  *models.UserProfile `json:"user"`
}

func failureResult(res *apiclient.Result) AuthResult {
	return AuthResult{
		Success: false,
		Status:  res.Status,
		Message: res.Message,
		Errors:  res.Errors,
	}
}

// finishAuth persists the session when the payload carries a token and
// shapes the result
func (s *AuthService) finishAuth(ctx context.Context, sessionID string, res *apiclient.Result) AuthResult {
	if !res.Success {
		return failureResult(res)
	}

	var payload authPayload
	if err := res.Decode(&payload); err != nil {
		log.Printf("[Auth] unexpected auth payload: %v", err)
		return AuthResult{Success: true, Status: res.Status, Data: res.Data}
	}

	token := payload.Token
	if token == "" {
		token = payload.Key
	}
	if token != "" && sessionID != "" {
		sess := session.Session{Token: token}
		if payload.User != nil {
			sess.User = *payload.User
		}
		if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
			log.Printf("[Auth] failed to persist session: %v", err)
		}
	}

	return AuthResult{Success: true, Status: res.Status, User: payload.User, Data: res.Data}
}

func (s *AuthService) Register(ctx context.Context, sessionID string, req RegisterRequest) AuthResult {
	res := s.api.Post(ctx, "/auth/register/", req)
	return s.finishAuth(ctx, sessionID, res)
}

func (s *AuthService) Login(ctx context.Context, sessionID string, req LoginRequest) AuthResult {
	res := s.api.Post(ctx, "/auth/login/", req)
	return s.finishAuth(ctx, sessionID, res)
}

// Logout tells the upstream API to revoke the token, then clears the local
// session regardless of the upstream outcome
func (s *AuthService) Logout(ctx context.Context, sessionID string) AuthResult {
	res := s.api.Post(ctx, "/auth/logout/", nil)
	metrics.SessionInvalidations.WithLabelValues("logout").Inc()
	if err := s.sessions.Invalidate(ctx, sessionID, "logout"); err != nil {
		log.Printf("[Auth] failed to clear session on logout: %v", err)
	}
	if !res.Success && !res.IsClientError() {
		return failureResult(res)
	}
	return AuthResult{Success: true, Status: res.Status}
}

// GoogleAuth exchanges a Google credential for an upstream session
func (s *AuthService) GoogleAuth(ctx context.Context, sessionID, credential string) AuthResult {
	res := s.api.Post(ctx, "/auth/google/", map[string]string{"credential": credential})
	return s.finishAuth(ctx, sessionID, res)
}

type GoogleRegisterRequest struct {
	Credential string `json:"credential"`
	ClientType string `json:"client_type,omitempty"`
	NDISNumber string `json:"ndis_number,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

func (s *AuthService) GoogleRegister(ctx context.Context, sessionID string, req GoogleRegisterRequest) AuthResult {
	res := s.api.Post(ctx, "/auth/google/register/", req)
	return s.finishAuth(ctx, sessionID, res)
}

// SocialLogin is the generic provider flow (provider + provider token)
func (s *AuthService) SocialLogin(ctx context.Context, sessionID, provider, accessToken string) AuthResult {
	res := s.api.Post(ctx, "/auth/social/", map[string]string{
		"provider":     provider,
		"access_token": accessToken,
	})
	return s.finishAuth(ctx, sessionID, res)
}

func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword string) AuthResult {
	res := s.api.Post(ctx, "/auth/password/change/", map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	})
	if !res.Success {
		return failureResult(res)
	}
	return AuthResult{Success: true, Status: res.Status, Data: res.Data}
}

func (s *AuthService) ResetPassword(ctx context.Context, email string) AuthResult {
	res := s.api.Post(ctx, "/auth/password/reset/", map[string]string{"email": email})
	if !res.Success {
		return failureResult(res)
	}
	return AuthResult{Success: true, Status: res.Status, Data: res.Data}
}

func (s *AuthService) ConfirmResetPassword(ctx context.Context, uid, token, newPassword string) AuthResult {
	res := s.api.Post(ctx, "/auth/password/reset/confirm/", map[string]string{
		"uid":          uid,
		"token":        token,
		"new_password": newPassword,
	})
	if !res.Success {
		return failureResult(res)
	}
	return AuthResult{Success: true, Status: res.Status, Data: res.Data}
}

func (s *AuthService) VerifyEmail(ctx context.Context, key string) AuthResult {
	res := s.api.Post(ctx, "/auth/email/verify/", map[string]string{"key": key})
	if !res.Success {
		return failureResult(res)
	}
	return AuthResult{Success: true, Status: res.Status, Data: res.Data}
}

func (s *AuthService) ResendVerification(ctx context.Context, email string) AuthResult {
	res := s.api.Post(ctx, "/auth/email/resend/", map[string]string{"email": email})
	if !res.Success {
		return failureResult(res)
	}
	return AuthResult{Success: true, Status: res.Status, Data: res.Data}
}

func (s *AuthService) LinkSocialAccount(ctx context.Context, provider, accessToken string) AuthResult {
	res := s.api.Post(ctx, "/profile/social/link/", map[string]string{
		"provider":     provider,
		"access_token": accessToken,
	})
	if !res.Success {
		return failureResult(res)
	}
	return AuthResult{Success: true, Status: res.Status, Data: res.Data}
}

func (s *AuthService) UnlinkSocialAccount(ctx context.Context, provider string) AuthResult {
	res := s.api.Post(ctx, "/profile/social/unlink/", map[string]string{"provider": provider})
	if !res.Success {
		return failureResult(res)
	}
	return AuthResult{Success: true, Status: res.Status, Data: res.Data}
}

// HealthCheck probes the upstream API
func (s *AuthService) HealthCheck(ctx context.Context) AuthResult {
	res := s.api.Get(ctx, "/health/")
	if !res.Success {
		return failureResult(res)
	}
	return AuthResult{Success: true, Status: res.Status, Data: res.Data}
}
