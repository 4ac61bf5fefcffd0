// Package slog provides log/slog decorators for profilescan services.
package slog

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// withLogger returns a context carrying logger, so that decorators further
// down the call chain log with the same request attributes.
func withLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerFrom returns the logger stored in ctx, or fallback.
func loggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return fallback
}
