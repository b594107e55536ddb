package main

import (
	"fmt"

	"demonchart"
	"demonchart/refresh"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if deps.Refresher == nil {
		fmt.Fprintf(deps.Stderr, "error: fetch pipeline is not configured\n")
		return demonchart.Errorf(demonchart.EINTERNAL, "fetch pipeline is not configured")
	}

	if c.Feed {
		return c.runFeed(deps)
	}

	result, err := deps.Refresher.Refresh(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", demonchart.ErrorMessage(err))
		return err
	}

	printResult(deps, c.URL, result)
	return nil
}

// runFeed refreshes every feed entry matching the title filter.
func (c *FetchCmd) runFeed(deps *Dependencies) error {
	progress := func(event refresh.ProgressEvent) {
		switch event.Type {
		case refresh.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d matching posts\n", event.Total)
		case refresh.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", refresh.TruncateURL(event.URL, 60), event.Error)
		}
	}

	results, err := deps.Refresher.RefreshAll(deps.Ctx, c.URL, c.Filter, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", demonchart.ErrorMessage(err))
		return err
	}

	for _, result := range results {
		if result == nil {
			continue
		}
		printResult(deps, result.Snapshot.SourceURL, result)
	}
	return nil
}

func printResult(deps *Dependencies, url string, result *refresh.Result) {
	if result.Skipped {
		fmt.Fprintf(deps.Stdout, "Unchanged %s (snapshot %s)\n", url, result.Snapshot.ID)
		return
	}
	fmt.Fprintf(deps.Stdout, "Stored snapshot %s for %s (%d records)\n",
		result.Snapshot.ID, url, len(result.Records))
}
