package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/profilescan"
	"github.com/fwojciec/profilescan/fs"
	"github.com/fwojciec/profilescan/scrape"
)

// Run executes the scrape command. Each successful profile is written to
// stdout as one JSON line, in argument order.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	batch := &scrape.Batch{
		Scraper:     deps.Scraper,
		Concurrency: c.Concurrency,
		RetryDelays: retryDelays(c.Retries),
		Logger: func(format string, args ...any) {
			fmt.Fprintf(deps.Stderr, format+"\n", args...)
		},
	}
	if c.Interval > 0 {
		batch.RateLimiter = scrape.NewDomainLimiter(c.Interval)
	}

	results := batch.ScrapeAll(deps.Ctx, c.URLs, func(e scrape.ProgressEvent) {
		if e.Type == scrape.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", e.URL, profilescan.ErrorMessage(e.Error))
		}
	})

	var store profilescan.ProfileStore
	if c.Out != "" {
		store = fs.NewProfileStore(c.Out)
	}

	enc := json.NewEncoder(deps.Stdout)
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		if err := enc.Encode(r.Profile); err != nil {
			return fmt.Errorf("writing profile: %w", err)
		}
		if deps.Snapshots != nil {
			if err := saveSnapshot(deps, r.URL, r.Profile); err != nil {
				if store != nil {
					_ = store.Abort()
				}
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, profilescan.ErrorMessage(err))
				return err
			}
		}
		if store != nil {
			if err := store.Save(deps.Ctx, r.URL, r.Profile); err != nil {
				_ = store.Abort()
				return fmt.Errorf("writing profile file: %w", err)
			}
		}
	}

	if store != nil {
		if err := store.Commit(); err != nil {
			return fmt.Errorf("publishing profile files: %w", err)
		}
	}

	if failed > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return profilescan.Errorf(profilescan.ErrorCode(firstErr(results)), "%d of %d scrapes failed", failed, len(results))
	}
	return nil
}

// saveSnapshot stores profile and logs whether it changed since the
// previous snapshot of url.
func saveSnapshot(deps *Dependencies, url string, profile *profilescan.ScrapedProfile) error {
	previous, err := deps.Snapshots.FindSnapshots(deps.Ctx, profilescan.SnapshotFilter{URL: &url, Limit: 1})
	if err != nil {
		return err
	}

	snapshot := profilescan.NewSnapshot(url, profile)
	if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snapshot); err != nil {
		return err
	}

	status := "new"
	if len(previous) > 0 {
		status = changeStatus(snapshot, previous[0])
	}
	deps.Logger.Info("snapshot saved", "url", url, "id", snapshot.ID, "status", status)
	return nil
}

// retryDelays doubles from 2s for each retry.
func retryDelays(retries int) []time.Duration {
	delays := make([]time.Duration, 0, retries)
	d := 2 * time.Second
	for range retries {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

func firstErr(results []scrape.Result) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
