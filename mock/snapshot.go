package mock

import (
	"context"

	"github.com/fwojciec/profilescan"
)

var _ profilescan.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of profilescan.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn   func(ctx context.Context, snapshot *profilescan.Snapshot) error
	FindSnapshotByIDFn func(ctx context.Context, id string) (*profilescan.Snapshot, error)
	FindSnapshotsFn    func(ctx context.Context, filter profilescan.SnapshotFilter) ([]*profilescan.Snapshot, error)
	DeleteSnapshotsFn  func(ctx context.Context, url string) (int, error)
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *profilescan.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snapshot)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*profilescan.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter profilescan.SnapshotFilter) ([]*profilescan.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshots(ctx context.Context, url string) (int, error) {
	return s.DeleteSnapshotsFn(ctx, url)
}
