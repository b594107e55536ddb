package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"demonchart"

	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ demonchart.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements demonchart.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// CreateSnapshot stores a snapshot and its records in one transaction.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *demonchart.Snapshot, records []*demonchart.Record) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	snapshot.ID = uuid.New().String()
	snapshot.RecordCount = len(records)
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, source_url, title, content_hash, record_count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snapshot.ID, snapshot.SourceURL, snapshot.Title, snapshot.ContentHash,
		snapshot.RecordCount, snapshot.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, rec := range records {
		rec.ID = uuid.New().String()
		rec.SnapshotID = snapshot.ID
		rec.CreatedAt = now

		if err := rec.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO records (id, snapshot_id, position, name, author, value,
				primary_link_url, secondary_link_url, commentary_html, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, rec.SnapshotID, rec.Position, rec.Name, rec.Author, rec.Value,
			rec.PrimaryLinkURL, rec.SecondaryLinkURL, rec.CommentaryHTML,
			rec.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindSnapshotByID retrieves a snapshot by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*demonchart.Snapshot, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, content_hash, record_count, fetched_at
		FROM snapshots
		WHERE id = ?
	`, id))
}

// FindLatestSnapshot returns the most recently fetched snapshot, optionally
// restricted to one source URL.
func (s *SnapshotService) FindLatestSnapshot(ctx context.Context, sourceURL string) (*demonchart.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, title, content_hash, record_count, fetched_at FROM snapshots WHERE 1=1")
	if sourceURL != "" {
		query.WriteString(" AND source_url = ?")
		args = append(args, sourceURL)
	}
	query.WriteString(" ORDER BY fetched_at DESC, id LIMIT 1")

	return s.scanOne(s.db.QueryRowContext(ctx, query.String(), args...))
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter demonchart.SnapshotFilter) ([]*demonchart.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, title, content_hash, record_count, fetched_at FROM snapshots WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY fetched_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*demonchart.Snapshot
	for rows.Next() {
		var snapshot demonchart.Snapshot
		var fetchedAt string

		if err := rows.Scan(&snapshot.ID, &snapshot.SourceURL, &snapshot.Title,
			&snapshot.ContentHash, &snapshot.RecordCount, &fetchedAt); err != nil {
			return nil, err
		}

		snapshot.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, &snapshot)
	}

	return snapshots, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot. Records cascade.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return demonchart.Errorf(demonchart.ENOTFOUND, "snapshot not found")
	}

	return nil
}

func (s *SnapshotService) scanOne(row *sql.Row) (*demonchart.Snapshot, error) {
	var snapshot demonchart.Snapshot
	var fetchedAt string

	err := row.Scan(&snapshot.ID, &snapshot.SourceURL, &snapshot.Title,
		&snapshot.ContentHash, &snapshot.RecordCount, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, demonchart.Errorf(demonchart.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}

	snapshot.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}
