package profilescan

import (
	"context"
	"time"
)

// Snapshot is a stored result of one successful scrape. Successive
// snapshots of the same URL show how a profile changed over time.
type Snapshot struct {
	ID          string          `json:"id"`
	URL         string          `json:"url"`
	Platform    Platform        `json:"platform"`
	Fingerprint string          `json:"fingerprint"`
	Profile     *ScrapedProfile `json:"profile"`
	ScrapedAt   time.Time       `json:"scrapedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "snapshot URL required")
	}
	if s.Profile == nil {
		return Errorf(EINVALID, "snapshot profile required")
	}
	if s.Platform != s.Profile.Platform {
		return Errorf(EINVALID, "snapshot platform %q does not match profile platform %q", s.Platform, s.Profile.Platform)
	}
	return s.Profile.Validate()
}

// SnapshotService stores scrape snapshots.
type SnapshotService interface {
	// CreateSnapshot stores a new snapshot. ID, Fingerprint and ScrapedAt
	// are assigned by the service.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindSnapshotByID retrieves a snapshot by ID.
	// Returns ENOTFOUND if the snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshots removes every snapshot of url and returns how many
	// were removed.
	DeleteSnapshots(ctx context.Context, url string) (int, error)
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	URL         *string   `json:"url"`
	Platform    *Platform `json:"platform"`
	Fingerprint *string   `json:"fingerprint"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewSnapshot returns an unsaved snapshot of profile scraped from url.
func NewSnapshot(url string, profile *ScrapedProfile) *Snapshot {
	return &Snapshot{
		URL:      url,
		Platform: profile.Platform,
		Profile:  profile,
	}
}

// ProfileStore writes scraped profiles to an output location. Saved
// profiles become visible together on Commit; Abort discards them.
type ProfileStore interface {
	Save(ctx context.Context, url string, profile *ScrapedProfile) error
	Commit() error
	Abort() error
}
