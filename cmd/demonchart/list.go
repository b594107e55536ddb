package main

import (
	"fmt"

	"demonchart"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, demonchart.SnapshotFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", demonchart.ErrorMessage(err))
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'demonchart fetch' to create one.")
		return nil
	}

	for _, s := range snapshots {
		title := s.Title
		if title == "" {
			title = s.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d records\n",
			s.ID, s.FetchedAt.Format("2006-01-02 15:04"), title, s.RecordCount)
	}

	return nil
}
