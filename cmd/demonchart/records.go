package main

import (
	"fmt"

	"demonchart"
)

// resolveSnapshot returns the snapshot named by id, or the latest one when
// id is empty.
func resolveSnapshot(deps *Dependencies, id string) (*demonchart.Snapshot, error) {
	if id != "" {
		return deps.Snapshots.FindSnapshotByID(deps.Ctx, id)
	}
	return deps.Snapshots.FindLatestSnapshot(deps.Ctx, "")
}

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	snapshot, err := resolveSnapshot(deps, c.Snapshot)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'demonchart fetch' to create a snapshot.\n", demonchart.ErrorMessage(err))
		return err
	}

	sortBy := demonchart.SortByPosition
	if c.ByValue {
		sortBy = demonchart.SortByValue
	}

	records, err := deps.Records.FindRecords(deps.Ctx, demonchart.RecordFilter{
		SnapshotID: &snapshot.ID,
		SortBy:     sortBy,
		Limit:      c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", demonchart.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintf(deps.Stderr, "error: snapshot %s has no records\n", snapshot.ID)
		return demonchart.Errorf(demonchart.ENOTFOUND, "snapshot %s has no records", snapshot.ID)
	}

	title := snapshot.Title
	if title == "" {
		title = snapshot.SourceURL
	}
	fmt.Fprintf(deps.Stdout, "Records for %s (%d total):\n\n", title, len(records))
	for _, rec := range records {
		name := rec.Name
		if rec.Author != "" {
			name = fmt.Sprintf("%s by %s", rec.Name, rec.Author)
		}
		fmt.Fprintf(deps.Stdout, "  %3d. %-40s %10.2f\n", rec.Position+1, name, rec.Value)
	}

	return nil
}
