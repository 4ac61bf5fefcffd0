package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/profilescan"
	"github.com/google/uuid"
)

var _ profilescan.SnapshotService = (*SnapshotService)(nil)

// timeFormat has a fixed width so stored timestamps sort as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

const snapshotColumns = "id, url, platform, fingerprint, profile, scraped_at"

// SnapshotService implements profilescan.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// CreateSnapshot stores a new snapshot.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *profilescan.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	profile, err := json.Marshal(snapshot.Profile)
	if err != nil {
		return profilescan.WrapError(profilescan.EINTERNAL, err, "failed to encode profile")
	}

	snapshot.ID = uuid.New().String()
	snapshot.Fingerprint = snapshot.Profile.Fingerprint()
	snapshot.ScrapedAt = s.db.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (`+snapshotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snapshot.ID, snapshot.URL, string(snapshot.Platform), snapshot.Fingerprint,
		string(profile), snapshot.ScrapedAt.Format(timeFormat))

	return err
}

// FindSnapshotByID retrieves a snapshot by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*profilescan.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+snapshotColumns+" FROM snapshots WHERE id = ?", id)

	snapshot, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profilescan.Errorf(profilescan.ENOTFOUND, "snapshot not found")
	}
	return snapshot, err
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter profilescan.SnapshotFilter) ([]*profilescan.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + snapshotColumns + " FROM snapshots WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Platform != nil {
		query.WriteString(" AND platform = ?")
		args = append(args, string(*filter.Platform))
	}
	if filter.Fingerprint != nil {
		query.WriteString(" AND fingerprint = ?")
		args = append(args, *filter.Fingerprint)
	}

	query.WriteString(" ORDER BY scraped_at DESC, rowid DESC")

	// SQLite requires a LIMIT before OFFSET; -1 means no limit.
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []*profilescan.Snapshot{}
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

// DeleteSnapshots removes every snapshot of url.
func (s *SnapshotService) DeleteSnapshots(ctx context.Context, url string) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE url = ?", url)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*profilescan.Snapshot, error) {
	var (
		snapshot  profilescan.Snapshot
		platform  string
		profile   string
		scrapedAt string
	)

	if err := row.Scan(&snapshot.ID, &snapshot.URL, &platform, &snapshot.Fingerprint, &profile, &scrapedAt); err != nil {
		return nil, err
	}
	snapshot.Platform = profilescan.Platform(platform)

	if err := json.Unmarshal([]byte(profile), &snapshot.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile of snapshot %s: %w", snapshot.ID, err)
	}

	t, err := time.Parse(timeFormat, scrapedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scraped_at: %w", err)
	}
	snapshot.ScrapedAt = t

	return &snapshot, nil
}
