// Package apiclient is the portal's transport to the core business API:
// a configured HTTP client with JSON content negotiation, bearer token
// attachment from the session store, and unconditional session invalidation
// on any 401 response. One attempt per call; no retry or backoff.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ncwcc-portal/internal/metrics"
	"ncwcc-portal/internal/session"
)

const DefaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Store
}

func New(baseURL string, timeout time.Duration, sessions session.Store) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		sessions:   sessions,
	}
}

func (c *Client) Get(ctx context.Context, path string) *Result {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) *Result {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) *Result {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) *Result {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) *Result {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) *Result {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return networkFailure(fmt.Errorf("failed to encode request body: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return networkFailure(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.attachToken(ctx, req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "network_error").Inc()
		log.Printf("[APIClient] %s %s failed: %v", method, path, err)
		return networkFailure(err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkFailure(err)
	}

	c.handleUnauthorized(ctx, resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return successResult(resp.StatusCode, data)
	}
	return ExtractError(resp.StatusCode, data)
}

// GetBinary fetches raw content (invoice PDFs). The returned Result is
// successful when bytes were delivered; data and content type are only
// meaningful then.
func (c *Client) GetBinary(ctx context.Context, path string) ([]byte, string, *Result) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", networkFailure(err)
	}
	c.attachToken(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[APIClient] GET %s failed: %v", path, err)
		return nil, "", networkFailure(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", networkFailure(err)
	}

	c.handleUnauthorized(ctx, resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, resp.Header.Get("Content-Type"), successResult(resp.StatusCode, nil)
	}
	return nil, "", ExtractError(resp.StatusCode, data)
}

// attachToken adds the session's upstream bearer token when one is stored.
// No side effect when the session is anonymous.
func (c *Client) attachToken(ctx context.Context, req *http.Request) {
	id, ok := session.IDFromContext(ctx)
	if !ok {
		return
	}
	if token := session.Token(ctx, c.sessions, id); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// handleUnauthorized wipes the calling session on any 401, regardless of
// which call produced it. Other in-flight requests on the same session will
// go out unauthenticated from this point on.
func (c *Client) handleUnauthorized(ctx context.Context, status int) {
	if status != http.StatusUnauthorized {
		return
	}
	id, ok := session.IDFromContext(ctx)
	if !ok {
		return
	}
	metrics.SessionInvalidations.WithLabelValues("unauthorized").Inc()
	if err := c.sessions.Invalidate(ctx, id, "unauthorized"); err != nil {
		log.Printf("[APIClient] failed to invalidate session after 401: %v", err)
	}
}
