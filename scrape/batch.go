package scrape

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/profilescan"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of browsers a Batch runs at once.
const DefaultConcurrency = 2

// Batch scrapes many URLs with bounded concurrency. Each scrape still owns
// its own browser session; Batch only decides how many run at once, how fast
// each platform is hit, and whether navigation failures are retried.
type Batch struct {
	Scraper     profilescan.ProfileScraper
	RateLimiter profilescan.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      LogFunc
}

// Result is the outcome of scraping one URL.
type Result struct {
	URL     string
	Profile *profilescan.ScrapedProfile
	Err     error
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// ScrapeAll scrapes urls and returns one Result per URL in input order.
// The progress callback, if provided, is called from a single goroutine.
func (b *Batch) ScrapeAll(ctx context.Context, urls []string, progress ProgressFunc) []Result {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	type indexed struct {
		position int
		result   Result
	}
	resultCh := make(chan indexed, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- indexed{position: i, result: b.scrapeOne(gctx, u)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]Result, len(urls))
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r.result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       r.result.URL,
		}
		if r.result.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.result.Err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: int(completed.Load()), Total: total})
	}

	return results
}

func (b *Batch) scrapeOne(ctx context.Context, rawURL string) Result {
	result := Result{URL: rawURL}

	scrape := func(ctx context.Context, u string) (*profilescan.ScrapedProfile, error) {
		if b.RateLimiter != nil {
			if err := b.RateLimiter.Wait(ctx, u); err != nil {
				return nil, profilescan.WrapError(profilescan.ENAVIGATION, err, "rate limit wait for %s", u)
			}
		}
		return b.Scraper.ScrapeProfile(ctx, u)
	}

	result.Profile, result.Err = ScrapeWithRetry(ctx, rawURL, scrape, b.Logger, b.RetryDelays)
	return result
}
