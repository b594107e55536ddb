package slog

import (
	"log/slog"
	"time"

	"demonchart"
)

// Ensure LoggingExtractor implements demonchart.RecordExtractor.
var _ demonchart.RecordExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RecordExtractor with extraction logging.
type LoggingExtractor struct {
	next   demonchart.RecordExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next demonchart.RecordExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string) ([]*demonchart.Record, error) {
	begin := time.Now()
	records, err := e.next.Extract(html)
	if err != nil {
		e.logger.Error("extract",
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	e.logger.Info("extract",
		"records", len(records),
		"duration", time.Since(begin),
	)
	return records, nil
}
