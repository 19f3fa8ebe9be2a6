package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// GoogleService bridges the Google Identity credential into the auth flows.
// The credential payload is decoded without verifying the signature; the
// upstream API verifies it during the token exchange. Concurrent exchanges
// of the same credential are coalesced into one upstream call.
type GoogleService struct {
	auth     *AuthService
	clientID string
	flight   singleflight.Group
}

func NewGoogleService(auth *AuthService, clientID string) *GoogleService {
	return &GoogleService{auth: auth, clientID: clientID}
}

// GoogleClaims are the profile claims extracted from a Google ID token
type GoogleClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

// ClientID returns the configured Google client id for the sign-in widget
func (s *GoogleService) ClientID() string {
	return s.clientID
}

// DecodeCredential extracts profile claims from the credential's payload
// segment. No signature verification happens here.
func (s *GoogleService) DecodeCredential(credential string) (*GoogleClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return nil, fmt.Errorf("malformed google credential: %w", err)
	}

	out := &GoogleClaims{}
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	out.Subject = str("sub")
	out.Email = str("email")
	out.Name = str("name")
	out.GivenName = str("given_name")
	out.FamilyName = str("family_name")
	out.Picture = str("picture")
	out.Audience = str("aud")
	if v, ok := claims["email_verified"].(bool); ok {
		out.EmailVerified = v
	}

	if out.Subject == "" {
		return nil, fmt.Errorf("google credential has no subject claim")
	}
	return out, nil
}

func credentialKey(prefix, credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return prefix + ":" + hex.EncodeToString(sum[:16])
}

// SignIn exchanges the credential with the upstream API and persists the
// session. Duplicate concurrent sign-ins with the same credential share one
// exchange.
func (s *GoogleService) SignIn(ctx context.Context, sessionID, credential string) AuthResult {
	if _, err := s.DecodeCredential(credential); err != nil {
		return AuthResult{Success: false, Message: err.Error()}
	}
	v, _, _ := s.flight.Do(credentialKey("signin", credential), func() (any, error) {
		return s.auth.GoogleAuth(ctx, sessionID, credential), nil
	})
	return v.(AuthResult)
}

// Register creates an account from the credential plus portal-collected
// fields (client type, NDIS number, phone)
func (s *GoogleService) Register(ctx context.Context, sessionID string, req GoogleRegisterRequest) AuthResult {
	if _, err := s.DecodeCredential(req.Credential); err != nil {
		return AuthResult{Success: false, Message: err.Error()}
	}
	v, _, _ := s.flight.Do(credentialKey("register", req.Credential), func() (any, error) {
		return s.auth.GoogleRegister(ctx, sessionID, req), nil
	})
	return v.(AuthResult)
}

// Link attaches the Google account to the signed-in user
func (s *GoogleService) Link(ctx context.Context, credential string) AuthResult {
	if _, err := s.DecodeCredential(credential); err != nil {
		return AuthResult{Success: false, Message: err.Error()}
	}
	v, _, _ := s.flight.Do(credentialKey("link", credential), func() (any, error) {
		return s.auth.LinkSocialAccount(ctx, "google", credential), nil
	})
	return v.(AuthResult)
}
