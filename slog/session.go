package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/profilescan"
)

// Ensure LoggingSessionManager implements profilescan.SessionManager.
var _ profilescan.SessionManager = (*LoggingSessionManager)(nil)

// LoggingSessionManager wraps a SessionManager with debug logging of the
// browser session lifecycle.
type LoggingSessionManager struct {
	next   profilescan.SessionManager
	logger *slog.Logger
}

// NewLoggingSessionManager creates a new LoggingSessionManager.
func NewLoggingSessionManager(next profilescan.SessionManager, logger *slog.Logger) *LoggingSessionManager {
	return &LoggingSessionManager{next: next, logger: logger}
}

// Acquire logs the session launch and wraps the session for logging.
func (m *LoggingSessionManager) Acquire(ctx context.Context) (profilescan.Session, error) {
	logger := loggerFrom(ctx, m.logger)

	begin := time.Now()
	session, err := m.next.Acquire(ctx)
	logger.Debug("session acquire",
		"duration", time.Since(begin),
		"err", err,
	)
	if err != nil {
		return nil, err
	}
	return &loggingSession{next: session, logger: logger}, nil
}

type loggingSession struct {
	next   profilescan.Session
	logger *slog.Logger
}

func (s *loggingSession) Load(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("session load",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, url)
}

func (s *loggingSession) Close() (err error) {
	defer func() {
		if err != nil {
			s.logger.Warn("session close", "err", err)
			return
		}
		s.logger.Debug("session close")
	}()
	return s.next.Close()
}
