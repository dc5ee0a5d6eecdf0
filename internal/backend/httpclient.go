// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	apperr "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/logging"
)

// DefaultTimeout bounds every request unless WithTimeout or WithHTTPClient says otherwise.
const DefaultTimeout = 10 * time.Second

// TokenSource yields the bearer token to attach, or "" when there is none.
type TokenSource interface {
	LoadToken() (string, error)
}

// HTTP implements the API client over REST endpoints.
// It attaches the stored bearer token to every request and reports authorization-denied
// responses to a teardown handler instead of acting on them itself.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:8000/api")
	baseURL string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	// tokens supplies the bearer token read at request time
	tokens TokenSource
	// onUnauthorized runs when a request carrying a bearer token gets a 401
	onUnauthorized func()
	userAgent      string
	log            *pterm.Logger
}

// Option configures an HTTP client.
type Option func(*HTTP)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) {
		if d > 0 {
			h.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTokenSource sets where bearer tokens are read from.
func WithTokenSource(ts TokenSource) Option {
	return func(h *HTTP) { h.tokens = ts }
}

// WithUnauthorizedHandler registers the session-teardown hook.
func WithUnauthorizedHandler(fn func()) Option {
	return func(h *HTTP) { h.onUnauthorized = fn }
}

// WithLogger sets the request logger.
func WithLogger(l *pterm.Logger) Option {
	return func(h *HTTP) {
		if l != nil {
			h.log = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(h *HTTP) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// New creates a backend client rooted at baseURL.
func New(baseURL string, opts ...Option) *HTTP {
	h := &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: "taskdeck-cli/1.0",
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetUnauthorizedHandler replaces the teardown hook after construction.
// The session store and the client reference each other, so one side is wired late.
func (h *HTTP) SetUnauthorizedHandler(fn func()) {
	h.onUnauthorized = fn
}

// BaseURL returns the configured base URL.
func (h *HTTP) BaseURL() string { return h.baseURL }

// setStandardHeaders applies the headers every request carries and returns whether
// a bearer token was attached.
func (h *HTTP) setStandardHeaders(req *http.Request) bool {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	if h.tokens == nil {
		return false
	}
	token, err := h.tokens.LoadToken()
	if err != nil || token == "" {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return true
}

// doJSON sends in (if non-nil) as a JSON body and decodes the response into out (if non-nil).
func (h *HTTP) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return apperr.Wrap(apperr.RequestFailure, "encode request", err)
		}
		body = bytes.NewReader(b)
	}
	raw, err := h.do(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	if err := decodeBody(raw, out); err != nil {
		return apperr.Wrap(apperr.DecodeFailure, "unexpected response from "+path, err)
	}
	return nil
}

// do executes one request and returns the body of a 2xx response.
// Every other outcome is returned as an *apperr.E.
func (h *HTTP) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return nil, apperr.Wrap(apperr.RequestFailure, "build request", err)
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	bearer := h.setStandardHeaders(req)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Debug("backend request failed", h.log.Args(
			"method", method,
			"path", path,
			"request_id", req.Header.Get("X-Request-ID"),
			"error", logging.Mask(err.Error()),
		))
		return nil, apperr.Wrap(apperr.TransportFailure, method+" "+path, err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	h.log.Debug("backend request", h.log.Args(
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-ID"),
		"duration", time.Since(start).Round(time.Millisecond).String(),
	))
	if readErr != nil {
		return nil, apperr.Wrap(apperr.TransportFailure, "read response", readErr)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	e := decodeError(resp.StatusCode, raw, bearer)
	if e.Kind == apperr.AuthorizationExpired && h.onUnauthorized != nil {
		h.log.Debug("authorization denied, tearing down session", h.log.Args("path", path))
		h.onUnauthorized()
	}
	return nil, e
}
