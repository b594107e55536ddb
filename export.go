package demonchart

import "context"

// ExportStore persists rendered records to files with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ExportStore interface {
	Save(ctx context.Context, rec *Record, markdown string) error
	Commit() error
	Abort() error
}
