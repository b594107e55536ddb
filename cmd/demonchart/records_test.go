package main_test

import (
	"bytes"
	"context"
	"testing"

	"demonchart"
	main "demonchart/cmd/demonchart"
	"demonchart/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartServices(records []*demonchart.Record) (*mock.SnapshotService, *mock.RecordService) {
	snapshots := &mock.SnapshotService{
		FindLatestSnapshotFn: func(_ context.Context, _ string) (*demonchart.Snapshot, error) {
			return &demonchart.Snapshot{
				ID:          "snap-1",
				SourceURL:   "https://example.com/chart",
				Title:       "The Chart",
				RecordCount: len(records),
			}, nil
		},
		FindSnapshotByIDFn: func(_ context.Context, id string) (*demonchart.Snapshot, error) {
			if id != "snap-1" {
				return nil, demonchart.Errorf(demonchart.ENOTFOUND, "snapshot not found")
			}
			return &demonchart.Snapshot{ID: "snap-1", Title: "The Chart"}, nil
		},
	}
	recordSvc := &mock.RecordService{
		FindRecordsFn: func(_ context.Context, filter demonchart.RecordFilter) ([]*demonchart.Record, error) {
			out := records
			if filter.SortBy == demonchart.SortByValue {
				sorted := make([]*demonchart.Record, len(out))
				copy(sorted, out)
				for i := 0; i < len(sorted); i++ {
					for j := i + 1; j < len(sorted); j++ {
						if sorted[j].Value > sorted[i].Value {
							sorted[i], sorted[j] = sorted[j], sorted[i]
						}
					}
				}
				out = sorted
			}
			if filter.Offset > 0 {
				if filter.Offset >= len(out) {
					return nil, nil
				}
				out = out[filter.Offset:]
			}
			if filter.Limit > 0 && filter.Limit < len(out) {
				out = out[:filter.Limit]
			}
			return out, nil
		},
	}
	return snapshots, recordSvc
}

func TestRecordsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists records of the latest snapshot in heading order", func(t *testing.T) {
		t.Parallel()

		snapshots, records := chartServices([]*demonchart.Record{
			{Position: 0, Name: "Bloodbath", Author: "Riot", Value: 95},
			{Position: 1, Name: "Tartarus", Author: "Riot", Value: 99.5},
		})

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Snapshots: snapshots,
			Records:   records,
		}

		err := (&main.RecordsCmd{}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Records for The Chart (2 total)")
		assert.Contains(t, output, "Bloodbath by Riot")
		assert.Contains(t, output, "Tartarus by Riot")
		assert.Contains(t, output, "99.50")
	})

	t.Run("sorts by value when requested", func(t *testing.T) {
		t.Parallel()

		snapshots, records := chartServices([]*demonchart.Record{
			{Position: 0, Name: "Easy Start", Value: 10},
			{Position: 1, Name: "Finale", Value: 90},
		})

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Snapshots: snapshots,
			Records:   records,
		}

		err := (&main.RecordsCmd{ByValue: true}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Less(t, bytes.Index(stdout.Bytes(), []byte("Finale")), bytes.Index(stdout.Bytes(), []byte("Easy Start")))
		assert.Contains(t, output, "Finale")
	})

	t.Run("errors when no snapshot exists", func(t *testing.T) {
		t.Parallel()

		snapshots := &mock.SnapshotService{
			FindLatestSnapshotFn: func(_ context.Context, _ string) (*demonchart.Snapshot, error) {
				return nil, demonchart.Errorf(demonchart.ENOTFOUND, "snapshot not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Snapshots: snapshots,
		}

		err := (&main.RecordsCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, demonchart.ENOTFOUND, demonchart.ErrorCode(err))
		assert.Contains(t, stderr.String(), "demonchart fetch")
	})

	t.Run("errors when snapshot has no records", func(t *testing.T) {
		t.Parallel()

		snapshots, records := chartServices(nil)

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Snapshots: snapshots,
			Records:   records,
		}

		err := (&main.RecordsCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, demonchart.ENOTFOUND, demonchart.ErrorCode(err))
	})
}
