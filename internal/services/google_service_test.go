package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncwcc-portal/internal/apiclient"
	"ncwcc-portal/internal/session"
)

// fakeCredential builds an unsigned JWT with the given payload claims
func fakeCredential(t *testing.T, claims map[string]any) string {
	t.Helper()
	enc := func(v any) string {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(b)
	}
	header := map[string]string{"alg": "RS256", "typ": "JWT"}
	return enc(header) + "." + enc(claims) + "." + base64.RawURLEncoding.EncodeToString([]byte("sig"))
}

func TestDecodeCredential(t *testing.T) {
	svc := NewGoogleService(nil, "client-id-1")
	cred := fakeCredential(t, map[string]any{
		"sub":            "10987",
		"email":          "bob@example.com",
		"email_verified": true,
		"name":           "Bob Nguyen",
		"given_name":     "Bob",
		"family_name":    "Nguyen",
		"picture":        "https://example.com/p.jpg",
		"aud":            "client-id-1",
	})

	claims, err := svc.DecodeCredential(cred)
	require.NoError(t, err)
	assert.Equal(t, "10987", claims.Subject)
	assert.Equal(t, "bob@example.com", claims.Email)
	assert.True(t, claims.EmailVerified)
	assert.Equal(t, "Bob Nguyen", claims.Name)
	assert.Equal(t, "client-id-1", claims.Audience)
}

func TestDecodeCredentialMalformed(t *testing.T) {
	svc := NewGoogleService(nil, "client-id-1")

	_, err := svc.DecodeCredential("not-a-jwt")
	assert.Error(t, err)

	// Structurally valid but missing the subject claim
	_, err = svc.DecodeCredential(fakeCredential(t, map[string]any{"email": "x@y.com"}))
	assert.Error(t, err)
}

func TestSignInMalformedCredentialNoUpstreamCall(t *testing.T) {
	var calls int32
	svc, _ := newAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	google := NewGoogleService(svc, "client-id-1")

	res := google.SignIn(context.Background(), session.NewID(), "garbage")
	assert.False(t, res.Success)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestSignInCoalescesConcurrentExchanges(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{"token":"tok123"}`))
	}))
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	auth := NewAuthService(apiclient.New(srv.URL, 0, store), store)
	google := NewGoogleService(auth, "client-id-1")

	cred := fakeCredential(t, map[string]any{"sub": "10987"})
	id := session.NewID()

	var wg sync.WaitGroup
	results := make([]AuthResult, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = google.SignIn(context.Background(), id, cred)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, res := range results {
		assert.True(t, res.Success)
	}
}

func TestRegisterPassesPortalFields(t *testing.T) {
	var got GoogleRegisterRequest
	auth, _ := newAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/google/register/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"token":"tok"}`))
	}))
	google := NewGoogleService(auth, "client-id-1")

	cred := fakeCredential(t, map[string]any{"sub": "10987"})
	res := google.Register(context.Background(), session.NewID(), GoogleRegisterRequest{
		Credential: cred,
		ClientType: "ndis",
		NDISNumber: "430111222",
	})
	require.True(t, res.Success)
	assert.Equal(t, cred, got.Credential)
	assert.Equal(t, "ndis", got.ClientType)
	assert.Equal(t, "430111222", got.NDISNumber)
}
