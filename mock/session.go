package mock

import (
	"context"

	"github.com/fwojciec/profilescan"
)

// Compile-time interface verification.
var (
	_ profilescan.SessionManager = (*SessionManager)(nil)
	_ profilescan.Session        = (*Session)(nil)
)

// SessionManager is a mock implementation of profilescan.SessionManager.
type SessionManager struct {
	AcquireFn func(ctx context.Context) (profilescan.Session, error)
}

func (m *SessionManager) Acquire(ctx context.Context) (profilescan.Session, error) {
	return m.AcquireFn(ctx)
}

// Session is a mock implementation of profilescan.Session.
type Session struct {
	LoadFn  func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (s *Session) Load(ctx context.Context, url string) (string, error) {
	return s.LoadFn(ctx, url)
}

func (s *Session) Close() error {
	return s.CloseFn()
}
