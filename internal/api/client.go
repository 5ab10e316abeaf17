// Package api is the single point of outbound HTTP for the console.
// Every request carries the session's bearer token when one is
// present, every non-binary response is unwrapped from the uniform
// {data, message, success} envelope, and any 401 clears the session
// and emits a typed invalidation event. Navigation on that event is
// owned by a listener in the view layer, not by the transport.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/lorrc/merchant-support-console/internal/apperrors"
	"github.com/lorrc/merchant-support-console/internal/session"
)

// SessionInvalidated is emitted when any endpoint answers 401. The
// session has already been cleared by the time the event is delivered.
type SessionInvalidated struct {
	// Endpoint is the request path that produced the 401.
	Endpoint string
}

// Client issues requests against the remote support API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	sessions    *session.Store
	logger      *slog.Logger
	invalidated chan SessionInvalidated
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client (used by tests).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates an API client rooted at baseURL (e.g.
// "http://localhost:8080/api").
func NewClient(baseURL string, sessions *session.Store, logger *slog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  http.DefaultClient,
		sessions:    sessions,
		logger:      logger.With("component", "api"),
		invalidated: make(chan SessionInvalidated, 8),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Invalidated returns the channel carrying session invalidation
// events. The console drains it and navigates to the login screen.
func (c *Client) Invalidated() <-chan SessionInvalidated {
	return c.invalidated
}

// envelope is the uniform wrapper all non-binary responses use.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

// do performs a request and returns the raw data field of the
// response envelope. Callers never see the envelope itself.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	resp, err := c.roundTrip(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response for %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.handleFailure(path, resp.StatusCode, payload)
	}

	if len(payload) == 0 {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope for %s %s: %w", method, path, err)
	}
	return env.Data, nil
}

// doBinary performs a request whose response is a raw byte stream
// (no envelope), e.g. the spreadsheet export.
func (c *Client) doBinary(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	resp, err := c.roundTrip(ctx, method, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response for %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.handleFailure(path, resp.StatusCode, payload)
	}
	return payload, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body for %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("building request for %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// handleFailure converts a non-2xx response into an APIError. A 401
// additionally clears the session and emits a SessionInvalidated
// event, regardless of which endpoint produced it.
func (c *Client) handleFailure(path string, statusCode int, payload []byte) error {
	var env envelope
	_ = json.Unmarshal(payload, &env)

	if statusCode == http.StatusUnauthorized {
		c.logger.Info("session invalidated by 401", "endpoint", path)
		c.sessions.Logout()
		select {
		case c.invalidated <- SessionInvalidated{Endpoint: path}:
		default:
			// A listener is already pending on an earlier event;
			// one navigation to login is enough.
		}
	}

	return apperrors.NewAPIError(statusCode, env.Message)
}

// request decodes the envelope's data field into T.
func request[T any](c *Client, ctx context.Context, method, path string, query url.Values, body any) (T, error) {
	var result T
	data, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return result, err
	}
	if len(data) == 0 || string(data) == "null" {
		return result, nil
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decoding %s %s payload: %w", method, path, err)
	}
	return result, nil
}
