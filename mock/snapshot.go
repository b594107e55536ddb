package mock

import (
	"context"

	"demonchart"
)

var _ demonchart.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of demonchart.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn     func(ctx context.Context, snapshot *demonchart.Snapshot, records []*demonchart.Record) error
	FindSnapshotByIDFn   func(ctx context.Context, id string) (*demonchart.Snapshot, error)
	FindLatestSnapshotFn func(ctx context.Context, sourceURL string) (*demonchart.Snapshot, error)
	FindSnapshotsFn      func(ctx context.Context, filter demonchart.SnapshotFilter) ([]*demonchart.Snapshot, error)
	DeleteSnapshotFn     func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *demonchart.Snapshot, records []*demonchart.Record) error {
	return s.CreateSnapshotFn(ctx, snapshot, records)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*demonchart.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindLatestSnapshot(ctx context.Context, sourceURL string) (*demonchart.Snapshot, error) {
	return s.FindLatestSnapshotFn(ctx, sourceURL)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter demonchart.SnapshotFilter) ([]*demonchart.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}
