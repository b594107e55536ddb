package main

import (
	"fmt"

	"demonchart"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return demonchart.Errorf(demonchart.EINVALID, "use --force to confirm deletion")
	}

	snapshot, err := deps.Snapshots.FindSnapshotByID(deps.Ctx, c.Snapshot)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: snapshot %q not found. Use 'demonchart list' to see stored snapshots.\n", c.Snapshot)
		return err
	}

	if err := deps.Snapshots.DeleteSnapshot(deps.Ctx, snapshot.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", demonchart.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted snapshot %s (%d records)\n", snapshot.ID, snapshot.RecordCount)
	return nil
}
