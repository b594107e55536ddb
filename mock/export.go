package mock

import (
	"context"

	"demonchart"
)

var _ demonchart.ExportStore = (*ExportStore)(nil)

// ExportStore is a mock implementation of demonchart.ExportStore.
type ExportStore struct {
	SaveFn   func(ctx context.Context, rec *demonchart.Record, markdown string) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ExportStore) Save(ctx context.Context, rec *demonchart.Record, markdown string) error {
	return s.SaveFn(ctx, rec, markdown)
}

func (s *ExportStore) Commit() error {
	if s.CommitFn == nil {
		return nil
	}
	return s.CommitFn()
}

func (s *ExportStore) Abort() error {
	if s.AbortFn == nil {
		return nil
	}
	return s.AbortFn()
}
