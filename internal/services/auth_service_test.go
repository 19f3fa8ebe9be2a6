package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncwcc-portal/internal/apiclient"
	"ncwcc-portal/internal/session"
)

func newAuthService(t *testing.T, handler http.Handler) (*AuthService, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewMemoryStore()
	api := apiclient.New(srv.URL, 0, store)
	return NewAuthService(api, store), store
}

func TestLoginPersistsSession(t *testing.T) {
	svc, store := newAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login/", r.URL.Path)
		w.Write([]byte(`{"token":"tok123","user":{"email":"bob@example.com","client_type":"ndis"}}`))
	}))

	id := session.NewID()
	res := svc.Login(context.Background(), id, LoginRequest{Email: "bob@example.com", Password: "pw"})
	require.True(t, res.Success)
	require.NotNil(t, res.User)
	assert.Equal(t, "bob@example.com", res.User.Email)

	sess, ok, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok123", sess.Token)
	assert.Equal(t, "bob@example.com", sess.User.Email)
}

func TestLoginKeyFallback(t *testing.T) {
	// Some upstream endpoints respond with "key" instead of "token"
	svc, store := newAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"key":"key456"}`))
	}))

	id := session.NewID()
	res := svc.Login(context.Background(), id, LoginRequest{})
	require.True(t, res.Success)

	sess, ok, _ := store.Get(context.Background(), id)
	require.True(t, ok)
	assert.Equal(t, "key456", sess.Token)
}

func TestLoginFailureShape(t *testing.T) {
	svc, store := newAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid credentials","errors":{"password":["incorrect"]}}`))
	}))

	id := session.NewID()
	res := svc.Login(context.Background(), id, LoginRequest{})
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid credentials", res.Message)
	assert.Contains(t, res.Errors, "password")

	_, ok, _ := store.Get(context.Background(), id)
	assert.False(t, ok)
}

func TestLogoutClearsSessionEvenOnUpstreamFailure(t *testing.T) {
	svc, store := newAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Token already revoked"}`))
	}))

	id := session.NewID()
	require.NoError(t, store.Save(context.Background(), id, session.Session{Token: "tok"}))

	var reason string
	store.OnInvalidate(func(_, r string) { reason = r })

	res := svc.Logout(context.Background(), id)
	assert.True(t, res.Success)
	assert.Equal(t, "logout", reason)

	_, ok, _ := store.Get(context.Background(), id)
	assert.False(t, ok)
}

func TestAccessors(t *testing.T) {
	svc, store := newAuthService(t, http.NotFoundHandler())
	ctx := context.Background()
	id := session.NewID()

	assert.False(t, svc.IsAuthenticated(ctx, id))
	assert.Nil(t, svc.CurrentUser(ctx, id))
	assert.False(t, svc.IsNDISClient(ctx, id))

	sess := session.Session{Token: "tok"}
	sess.User.Email = "bob@example.com"
	sess.User.AuthProvider = "google"
	sess.User.EmailVerified = true
	sess.User.UserType = "client"
	sess.User.ClientType = "ndis"
	require.NoError(t, store.Save(ctx, id, sess))

	assert.True(t, svc.IsAuthenticated(ctx, id))
	assert.True(t, svc.IsGoogleUser(ctx, id))
	assert.True(t, svc.IsVerified(ctx, id))
	assert.Equal(t, "client", svc.UserType(ctx, id))
	assert.Equal(t, "ndis", svc.ClientType(ctx, id))
	// No explicit flag: falls back to client type
	assert.True(t, svc.IsNDISClient(ctx, id))

	// Explicit flag wins over client type
	no := false
	sess.User.IsNDISClient = &no
	require.NoError(t, store.Save(ctx, id, sess))
	assert.False(t, svc.IsNDISClient(ctx, id))
}

func TestResetPasswordRelaysOutcome(t *testing.T) {
	svc, _ := newAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/password/reset/", r.URL.Path)
		w.Write([]byte(`{"message":"Reset email sent"}`))
	}))

	res := svc.ResetPassword(context.Background(), "bob@example.com")
	assert.True(t, res.Success)
}
