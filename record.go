package demonchart

import (
	"context"
	"time"
)

// Record represents one rated level parsed from the source post.
// Records are immutable after extraction; storage assigns ID and CreatedAt.
type Record struct {
	ID         string `json:"id"`
	SnapshotID string `json:"snapshotId"`

	// Position is the zero-based heading order in the source document.
	Position int `json:"position"`

	Name   string  `json:"name"`
	Author string  `json:"author"`
	Value  float64 `json:"value"`

	// PrimaryLinkURL points at the showcase video, SecondaryLinkURL at the
	// level browser page. Empty means the section carried no such link.
	PrimaryLinkURL   string `json:"primaryLinkUrl,omitempty"`
	SecondaryLinkURL string `json:"secondaryLinkUrl,omitempty"`

	// CommentaryHTML is a sanitized rich-text fragment: category links that
	// shared an element with the difficulty line are removed, and footnote
	// references are resolved into an appended ordered list.
	CommentaryHTML string `json:"commentaryHtml"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "record name required")
	}
	if r.SnapshotID == "" {
		return Errorf(EINVALID, "record snapshot ID required")
	}
	return nil
}

// RecordExtractor parses an HTML document into an ordered record list.
// Record order equals heading order in the source; sections lacking a
// difficulty value are silently skipped. Implementations never fail on
// malformed markup as long as a tree can be built from the input.
type RecordExtractor interface {
	Extract(html string) ([]*Record, error)
}

// SortOrder represents the sort order for record queries.
type SortOrder string

// SortOrder constants for RecordFilter.
const (
	SortByPosition SortOrder = "position"
	SortByValue    SortOrder = "value"
)

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID         *string `json:"id"`
	SnapshotID *string `json:"snapshotId"`
	Name       *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// RecordService provides read access to stored records.
type RecordService interface {
	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecords retrieves records matching the filter.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)
}
