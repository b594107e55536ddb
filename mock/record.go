package mock

import (
	"context"

	"demonchart"
)

var _ demonchart.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of demonchart.RecordService.
type RecordService struct {
	FindRecordByIDFn func(ctx context.Context, id string) (*demonchart.Record, error)
	FindRecordsFn    func(ctx context.Context, filter demonchart.RecordFilter) ([]*demonchart.Record, error)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*demonchart.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecords(ctx context.Context, filter demonchart.RecordFilter) ([]*demonchart.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}
