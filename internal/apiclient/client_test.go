package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncwcc-portal/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewMemoryStore()
	return New(srv.URL, 0, store), store
}

func TestAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	id := session.NewID()
	require.NoError(t, store.Save(context.Background(), id, session.Session{Token: "abc123"}))

	res := client.Get(session.WithID(context.Background(), id), "/invoices/my/")
	assert.True(t, res.Success)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestNoTokenWithoutSession(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	client.Get(context.Background(), "/invoices/my/")
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedWipesSession(t *testing.T) {
	calls := 0
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Token expired"}`))
			return
		}
		w.Write([]byte(`{}`))
	})

	var invalidatedID, invalidatedReason string
	store.OnInvalidate(func(id, reason string) {
		invalidatedID, invalidatedReason = id, reason
	})

	id := session.NewID()
	ctx := session.WithID(context.Background(), id)
	require.NoError(t, store.Save(ctx, id, session.Session{Token: "stale"}))

	res := client.Get(ctx, "/invoices/my/")
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Token expired", res.Message)

	// The session is gone and subscribers heard about it
	_, ok, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, id, invalidatedID)
	assert.Equal(t, "unauthorized", invalidatedReason)

	// A follow-up call on the same session goes out anonymous and succeeds
	res = client.Get(ctx, "/invoices/my/")
	assert.True(t, res.Success)
	assert.Equal(t, 2, calls)
}

func TestNetworkErrorResult(t *testing.T) {
	store := session.NewMemoryStore()
	client := New("http://127.0.0.1:1", 0, store)

	res := client.Get(context.Background(), "/health/")
	assert.False(t, res.Success)
	assert.True(t, res.IsNetworkError())
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.NotEmpty(t, res.Message)
}

func TestPostEncodesBody(t *testing.T) {
	var gotBody string
	var gotContentType string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	})

	res := client.Post(context.Background(), "/contact/", map[string]string{"name": "Bob"})
	assert.True(t, res.Success)
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.JSONEq(t, `{"name":"Bob"}`, gotBody)
	assert.Equal(t, "application/json", gotContentType)
}

func TestGetBinary(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	})

	data, contentType, res := client.GetBinary(context.Background(), "/invoices/1/download/")
	require.True(t, res.Success)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestGetBinaryFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"No PDF generated"}`))
	})

	data, _, res := client.GetBinary(context.Background(), "/invoices/1/download/")
	assert.Nil(t, data)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "No PDF generated", res.Message)
}
