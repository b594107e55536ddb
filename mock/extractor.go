package mock

import "demonchart"

var _ demonchart.RecordExtractor = (*RecordExtractor)(nil)

// RecordExtractor is a mock implementation of demonchart.RecordExtractor.
type RecordExtractor struct {
	ExtractFn func(html string) ([]*demonchart.Record, error)
}

func (e *RecordExtractor) Extract(html string) ([]*demonchart.Record, error) {
	return e.ExtractFn(html)
}
