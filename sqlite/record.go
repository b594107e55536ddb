package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"demonchart"
)

// Compile-time interface verification.
var _ demonchart.RecordService = (*RecordService)(nil)

// RecordService implements demonchart.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

const recordColumns = `id, snapshot_id, position, name, author, value,
	primary_link_url, secondary_link_url, commentary_html, created_at`

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*demonchart.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE id = ?", id)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, demonchart.Errorf(demonchart.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// FindRecords retrieves records matching the filter. The default sort is
// heading order; SortByValue sorts hardest first.
func (s *RecordService) FindRecords(ctx context.Context, filter demonchart.RecordFilter) ([]*demonchart.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM records WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SnapshotID != nil {
		query.WriteString(" AND snapshot_id = ?")
		args = append(args, *filter.SnapshotID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	switch filter.SortBy {
	case demonchart.SortByValue:
		query.WriteString(" ORDER BY value DESC, position")
	default:
		query.WriteString(" ORDER BY position")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*demonchart.Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// scanRecord scans one record row via the given scan function.
func scanRecord(scan func(dest ...any) error) (*demonchart.Record, error) {
	var rec demonchart.Record
	var createdAt string

	err := scan(&rec.ID, &rec.SnapshotID, &rec.Position, &rec.Name, &rec.Author,
		&rec.Value, &rec.PrimaryLinkURL, &rec.SecondaryLinkURL,
		&rec.CommentaryHTML, &createdAt)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &rec, nil
}
