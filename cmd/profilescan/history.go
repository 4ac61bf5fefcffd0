package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/profilescan"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Clear {
		n, err := deps.Snapshots.DeleteSnapshots(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", profilescan.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted %d snapshots of %s\n", n, c.URL)
		return nil
	}

	// One extra snapshot tells whether the oldest listed one changed.
	filter := profilescan.SnapshotFilter{URL: &c.URL}
	if c.Limit > 0 {
		filter.Limit = c.Limit + 1
	}
	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", profilescan.ErrorMessage(err))
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintf(deps.Stdout, "No snapshots of %s. Use 'profilescan scrape --save' to store one.\n", c.URL)
		return nil
	}

	shown := snapshots
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[:c.Limit]
	}
	for i, s := range shown {
		status := "new"
		if i+1 < len(snapshots) {
			status = changeStatus(s, snapshots[i+1])
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %-9s  %s\n",
			s.ScrapedAt.Format(time.RFC3339), s.Fingerprint, status, s.Profile.Title)
	}

	return nil
}

// changeStatus compares a snapshot with the one stored before it.
func changeStatus(s, previous *profilescan.Snapshot) string {
	if s.Fingerprint == previous.Fingerprint {
		return "unchanged"
	}
	return "changed"
}
