package scrape_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/profilescan"
	"github.com/fwojciec/profilescan/mock"
	"github.com/fwojciec/profilescan/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_ScrapeAll(t *testing.T) {
	t.Parallel()

	t.Run("returns results in input order", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://www.fiverr.com/a",
			"https://www.upwork.com/freelancers/~b",
			"https://example.com/c",
			"https://www.freelancer.com/u/d",
		}
		b := &scrape.Batch{
			Scraper: &mock.ProfileScraper{
				ScrapeProfileFn: func(_ context.Context, url string) (*profilescan.ScrapedProfile, error) {
					// Finish in reverse order.
					for i, u := range urls {
						if u == url {
							time.Sleep(time.Duration(len(urls)-i) * 10 * time.Millisecond)
						}
					}
					if url == "https://example.com/c" {
						return nil, profilescan.Errorf(profilescan.EUNSUPPORTED, "unsupported")
					}
					return &profilescan.ScrapedProfile{Title: url}, nil
				},
			},
			Concurrency: 4,
		}

		results := b.ScrapeAll(context.Background(), urls, nil)

		require.Len(t, results, len(urls))
		for i, r := range results {
			assert.Equal(t, urls[i], r.URL)
		}
		assert.Equal(t, "https://www.fiverr.com/a", results[0].Profile.Title)
		assert.Equal(t, profilescan.EUNSUPPORTED, profilescan.ErrorCode(results[2].Err))
		assert.Nil(t, results[2].Profile)
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		t.Parallel()

		var active, peak atomic.Int32
		b := &scrape.Batch{
			Scraper: &mock.ProfileScraper{
				ScrapeProfileFn: func(context.Context, string) (*profilescan.ScrapedProfile, error) {
					n := active.Add(1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					time.Sleep(20 * time.Millisecond)
					active.Add(-1)
					return &profilescan.ScrapedProfile{}, nil
				},
			},
			Concurrency: 2,
		}

		urls := make([]string, 8)
		for i := range urls {
			urls[i] = "https://www.fiverr.com/gig"
		}

		b.ScrapeAll(context.Background(), urls, nil)

		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		b := &scrape.Batch{
			Scraper: &mock.ProfileScraper{
				ScrapeProfileFn: func(_ context.Context, url string) (*profilescan.ScrapedProfile, error) {
					if url == "bad" {
						return nil, profilescan.Errorf(profilescan.EINVALIDURL, "bad")
					}
					return &profilescan.ScrapedProfile{}, nil
				},
			},
			Concurrency: 1,
		}

		var mu sync.Mutex
		var types []scrape.ProgressType
		b.ScrapeAll(context.Background(), []string{"https://www.fiverr.com/a", "bad"}, func(e scrape.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			types = append(types, e.Type)
			assert.Equal(t, 2, e.Total)
		})

		require.Len(t, types, 4)
		assert.Equal(t, scrape.ProgressStarted, types[0])
		assert.ElementsMatch(t, []scrape.ProgressType{scrape.ProgressCompleted, scrape.ProgressFailed}, types[1:3])
		assert.Equal(t, scrape.ProgressFinished, types[3])
	})

	t.Run("retries navigation failures", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		b := &scrape.Batch{
			Scraper: &mock.ProfileScraper{
				ScrapeProfileFn: func(context.Context, string) (*profilescan.ScrapedProfile, error) {
					if calls.Add(1) == 1 {
						return nil, profilescan.Errorf(profilescan.ENAVIGATION, "timeout")
					}
					return &profilescan.ScrapedProfile{Title: "ok"}, nil
				},
			},
			RetryDelays: []time.Duration{0},
		}

		results := b.ScrapeAll(context.Background(), []string{"https://www.fiverr.com/a"}, nil)

		require.NoError(t, results[0].Err)
		assert.Equal(t, "ok", results[0].Profile.Title)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("waits on the rate limiter with each URL", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var waited []string
		b := &scrape.Batch{
			Scraper: &mock.ProfileScraper{
				ScrapeProfileFn: func(context.Context, string) (*profilescan.ScrapedProfile, error) {
					return &profilescan.ScrapedProfile{}, nil
				},
			},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, rawURL string) error {
					mu.Lock()
					defer mu.Unlock()
					waited = append(waited, rawURL)
					return nil
				},
			},
			Concurrency: 1,
		}

		b.ScrapeAll(context.Background(), []string{
			"https://www.fiverr.com/a",
			"https://FIVERR.com/b",
			"https://example.org/c",
		}, nil)

		assert.Equal(t, []string{
			"https://www.fiverr.com/a",
			"https://FIVERR.com/b",
			"https://example.org/c",
		}, waited)
	})

	t.Run("rate limit cancellation is a navigation failure", func(t *testing.T) {
		t.Parallel()

		b := &scrape.Batch{
			Scraper: &mock.ProfileScraper{
				ScrapeProfileFn: func(context.Context, string) (*profilescan.ScrapedProfile, error) {
					return nil, errors.New("scrape should not run")
				},
			},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(context.Context, string) error { return context.Canceled },
			},
		}

		results := b.ScrapeAll(context.Background(), []string{"https://www.fiverr.com/a"}, nil)

		assert.Equal(t, profilescan.ENAVIGATION, profilescan.ErrorCode(results[0].Err))
		assert.True(t, errors.Is(results[0].Err, context.Canceled))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		b := &scrape.Batch{Scraper: &mock.ProfileScraper{}}

		assert.Empty(t, b.ScrapeAll(context.Background(), nil, nil))
	})
}
