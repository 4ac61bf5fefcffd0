package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/profilescan"
)

// ScrapeFunc is the signature for a single scrape attempt.
type ScrapeFunc func(ctx context.Context, url string) (*profilescan.ScrapedProfile, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for scrape retries: 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 4 * time.Second}
}

// ScrapeWithRetry runs scrape, retrying after each delay while the failure
// is ENAVIGATION. Other failure kinds are deterministic for a given URL and
// are returned immediately. The logger, if provided, is called for each retry.
func ScrapeWithRetry(ctx context.Context, url string, scrape ScrapeFunc, logger LogFunc, delays []time.Duration) (*profilescan.ScrapedProfile, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		profile, err := scrape(ctx, url)
		if err == nil {
			return profile, nil
		}
		lastErr = err

		if profilescan.ErrorCode(err) != profilescan.ENAVIGATION || attempt >= maxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			break
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
