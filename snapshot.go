package demonchart

import (
	"context"
	"time"
)

// Snapshot represents one extraction run against the source post.
// The content hash covers the raw fetched HTML and is used to skip
// storing a new snapshot when the source has not changed.
type Snapshot struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	ContentHash string    `json:"contentHash"`
	RecordCount int       `json:"recordCount"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.SourceURL == "" {
		return Errorf(EINVALID, "snapshot source URL required")
	}
	return nil
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID          *string `json:"id"`
	SourceURL   *string `json:"sourceUrl"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SnapshotService manages snapshots and their records.
type SnapshotService interface {
	// CreateSnapshot stores a snapshot together with its records, assigning
	// IDs and timestamps. The write is atomic: either the snapshot and all
	// of its records are stored, or nothing is.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot, records []*Record) error

	// FindSnapshotByID retrieves a snapshot by ID.
	// Returns ENOTFOUND if the snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindLatestSnapshot returns the most recently fetched snapshot,
	// optionally restricted to one source URL (empty matches any).
	// Returns ENOTFOUND if no snapshot exists.
	FindLatestSnapshot(ctx context.Context, sourceURL string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshot permanently removes a snapshot and all its records.
	// Returns ENOTFOUND if the snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}
