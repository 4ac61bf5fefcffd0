package mock

import (
	"context"

	"github.com/fwojciec/profilescan"
)

var _ profilescan.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of profilescan.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, rawURL string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, rawURL string) error {
	return l.WaitFn(ctx, rawURL)
}
