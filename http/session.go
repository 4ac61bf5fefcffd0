// Package http provides a profilescan.SessionManager that fetches pages with
// plain HTTP requests. It does not execute JavaScript and suits profile pages
// that are server rendered.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fwojciec/profilescan"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultTimeout bounds one page request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is a current desktop Chrome user agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 10 << 20
)

var _ profilescan.SessionManager = (*SessionManager)(nil)

// SessionManager hands out sessions sharing one HTTP client.
type SessionManager struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a SessionManager.
type Option func(*SessionManager)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(m *SessionManager) {
		m.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(m *SessionManager) {
		m.userAgent = ua
	}
}

// WithClient sets the HTTP client. Its Timeout is left as is.
func WithClient(c *http.Client) Option {
	return func(m *SessionManager) {
		m.client = c
	}
}

// NewSessionManager creates a new HTTP-based SessionManager.
func NewSessionManager(opts ...Option) *SessionManager {
	m := &SessionManager{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.client == nil {
		m.client = &http.Client{Timeout: m.timeout}
	}
	return m
}

// Acquire returns a new session.
func (m *SessionManager) Acquire(ctx context.Context) (profilescan.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, profilescan.WrapError(profilescan.ESESSION, err, "session not acquired")
	}
	return &Session{manager: m}, nil
}

// Session fetches pages over HTTP.
type Session struct {
	manager *SessionManager
	closed  atomic.Bool
}

// Load fetches url and returns the decoded response body. Error statuses
// with an empty body fail with ENAVIGATION.
func (s *Session) Load(ctx context.Context, url string) (string, error) {
	if s.closed.Load() {
		return "", profilescan.Errorf(profilescan.ESESSION, "session closed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", profilescan.WrapError(profilescan.ENAVIGATION, err, "failed to build request for %s", url)
	}
	req.Header.Set("User-Agent", s.manager.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.manager.client.Do(req)
	if err != nil {
		return "", profilescan.WrapError(profilescan.ENAVIGATION, err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", profilescan.WrapError(profilescan.ENAVIGATION, err, "failed to read %s", url)
	}

	if resp.StatusCode >= http.StatusBadRequest && len(bytes.TrimSpace(b)) == 0 {
		return "", profilescan.Errorf(profilescan.ENAVIGATION, "HTTP %d for %s", resp.StatusCode, url)
	}
	// The charset reader cannot preview an empty body.
	if len(b) == 0 {
		return "", nil
	}

	body, err := charset.NewReader(bytes.NewReader(b), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", profilescan.WrapError(profilescan.ENAVIGATION, err, "unsupported charset for %s", url)
	}
	decoded, err := io.ReadAll(body)
	if err != nil {
		return "", profilescan.WrapError(profilescan.ENAVIGATION, err, "failed to decode %s", url)
	}
	html := string(decoded)

	return html, nil
}

// Close marks the session closed. It is safe to call more than once.
func (s *Session) Close() error {
	s.closed.Store(true)
	return nil
}
