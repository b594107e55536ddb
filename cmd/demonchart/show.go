package main

import (
	"fmt"

	"demonchart"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	snapshot, err := resolveSnapshot(deps, c.Snapshot)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'demonchart fetch' to create a snapshot.\n", demonchart.ErrorMessage(err))
		return err
	}

	if c.Position < 1 {
		fmt.Fprintf(deps.Stderr, "error: position must be 1 or higher\n")
		return demonchart.Errorf(demonchart.EINVALID, "position must be 1 or higher")
	}

	records, err := deps.Records.FindRecords(deps.Ctx, demonchart.RecordFilter{
		SnapshotID: &snapshot.ID,
		Offset:     c.Position - 1,
		Limit:      1,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", demonchart.ErrorMessage(err))
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no record at position %d. Run 'demonchart records' to see the chart.\n", c.Position)
		return demonchart.Errorf(demonchart.ENOTFOUND, "no record at position %d", c.Position)
	}

	md, err := deps.Converter.ConvertRecord(records[0])
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", demonchart.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, md)
	return nil
}
