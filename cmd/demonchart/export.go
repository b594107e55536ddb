package main

import (
	"fmt"

	"demonchart"
	"demonchart/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	snapshot, err := resolveSnapshot(deps, c.Snapshot)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'demonchart fetch' to create a snapshot.\n", demonchart.ErrorMessage(err))
		return err
	}

	records, err := deps.Records.FindRecords(deps.Ctx, demonchart.RecordFilter{SnapshotID: &snapshot.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", demonchart.ErrorMessage(err))
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(deps.Stderr, "error: snapshot %s has no records\n", snapshot.ID)
		return demonchart.Errorf(demonchart.ENOTFOUND, "snapshot %s has no records", snapshot.ID)
	}

	store := fs.NewFileStore(c.Dir, c.Name)
	for _, rec := range records {
		md, err := deps.Converter.ConvertRecord(rec)
		if err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error rendering %q: %s\n", rec.Name, demonchart.ErrorMessage(err))
			return err
		}
		if err := store.Save(deps.Ctx, rec, md); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error saving %q: %s\n", rec.Name, demonchart.ErrorMessage(err))
			return err
		}
	}

	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", demonchart.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d records to %s/%s\n", len(records), c.Dir, c.Name)
	return nil
}
