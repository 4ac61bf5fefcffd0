package scrape

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/profilescan"
	"golang.org/x/time/rate"
)

var _ profilescan.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to the same platform at least interval
// apart. www.fiverr.com and fiverr.com count as one platform; URLs on no
// known platform are keyed by host.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing one request per interval
// per domain, without bursting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(interval),
	}
}

// Wait blocks until the domain of rawURL may be requested again.
func (d *DomainLimiter) Wait(ctx context.Context, rawURL string) error {
	return d.limiter(domainOf(rawURL)).Wait(ctx)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.limiters[domain]
	if !ok {
		l = rate.NewLimiter(d.every, 1)
		d.limiters[domain] = l
	}
	return l
}

// domainOf maps rawURL to its platform domain, then to its lowercased host,
// and finally to rawURL itself when it has no host.
func domainOf(rawURL string) string {
	if platform, err := profilescan.IdentifyPlatform(rawURL); err == nil {
		return platform.Domain()
	}
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return strings.ToLower(u.Hostname())
	}
	return rawURL
}
