package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"demonchart"
	demonhttp "demonchart/http"
	"demonchart/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServices() (*mock.SnapshotService, *mock.RecordService) {
	snapshot := &demonchart.Snapshot{ID: "snap-1", SourceURL: "https://blog.example.com/chart.html", RecordCount: 2}
	records := []*demonchart.Record{
		{ID: "rec-1", SnapshotID: "snap-1", Position: 0, Name: "Level Alpha", Author: "Coder1", Value: 2.0, PrimaryLinkURL: "https://youtu.be/a"},
		{ID: "rec-2", SnapshotID: "snap-1", Position: 1, Name: "Level Beta", Value: 7.5, CommentaryHTML: "<p>rough</p>"},
	}

	snapshots := &mock.SnapshotService{
		FindLatestSnapshotFn: func(_ context.Context, _ string) (*demonchart.Snapshot, error) {
			return snapshot, nil
		},
	}
	recordSvc := &mock.RecordService{
		FindRecordsFn: func(_ context.Context, filter demonchart.RecordFilter) ([]*demonchart.Record, error) {
			return records, nil
		},
	}
	return snapshots, recordSvc
}

func TestServer_Chart(t *testing.T) {
	t.Parallel()

	t.Run("serves the full chart payload", func(t *testing.T) {
		t.Parallel()

		snapshots, records := testServices()
		srv := httptest.NewServer(demonhttp.NewServer(snapshots, records))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/api/chart")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var data demonchart.ChartData
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		require.Len(t, data.Points, 2)
		assert.Equal(t, "Level Alpha", data.Points[0].Label)
		assert.Equal(t, 2.0, data.Points[0].Value)
		assert.Equal(t, "<p>rough</p>", data.Details[1].CommentaryHTML)
	})

	t.Run("limit parameter slices for progressive reveal", func(t *testing.T) {
		t.Parallel()

		snapshots, records := testServices()
		srv := httptest.NewServer(demonhttp.NewServer(snapshots, records))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/api/chart?limit=1")
		require.NoError(t, err)
		defer resp.Body.Close()

		var data demonchart.ChartData
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		require.Len(t, data.Points, 1)
		assert.Equal(t, "Level Alpha", data.Points[0].Label)
	})

	t.Run("rejects a malformed limit", func(t *testing.T) {
		t.Parallel()

		snapshots, records := testServices()
		srv := httptest.NewServer(demonhttp.NewServer(snapshots, records))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/api/chart?limit=banana")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("maps a missing snapshot to 404", func(t *testing.T) {
		t.Parallel()

		snapshots := &mock.SnapshotService{
			FindLatestSnapshotFn: func(_ context.Context, _ string) (*demonchart.Snapshot, error) {
				return nil, demonchart.Errorf(demonchart.ENOTFOUND, "no snapshots found")
			},
		}
		srv := httptest.NewServer(demonhttp.NewServer(snapshots, &mock.RecordService{}))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/api/chart")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_Records(t *testing.T) {
	t.Parallel()

	t.Run("serves the record list", func(t *testing.T) {
		t.Parallel()

		snapshots, records := testServices()
		srv := httptest.NewServer(demonhttp.NewServer(snapshots, records))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/api/records")
		require.NoError(t, err)
		defer resp.Body.Close()

		var got []*demonchart.Record
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got, 2)
		assert.Equal(t, "Level Alpha", got[0].Name)
	})

	t.Run("serves one record by position", func(t *testing.T) {
		t.Parallel()

		snapshots, records := testServices()
		srv := httptest.NewServer(demonhttp.NewServer(snapshots, records))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/api/records/1")
		require.NoError(t, err)
		defer resp.Body.Close()

		var got demonchart.Record
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "Level Beta", got.Name)
	})

	t.Run("unknown position is 404", func(t *testing.T) {
		t.Parallel()

		snapshots, records := testServices()
		srv := httptest.NewServer(demonhttp.NewServer(snapshots, records))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/api/records/99")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("runs the refresh function", func(t *testing.T) {
		t.Parallel()

		snapshots, records := testServices()
		refreshed := &demonchart.Snapshot{ID: "snap-2", SourceURL: "https://blog.example.com/chart.html"}
		srv := httptest.NewServer(demonhttp.NewServer(snapshots, records,
			demonhttp.WithRefresh(func(ctx context.Context) (*demonchart.Snapshot, error) {
				return refreshed, nil
			}),
			demonhttp.WithRefreshLimit(100),
		))
		defer srv.Close()

		resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got demonchart.Snapshot
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "snap-2", got.ID)
	})

	t.Run("throttles repeated refreshes", func(t *testing.T) {
		t.Parallel()

		snapshots, records := testServices()
		srv := httptest.NewServer(demonhttp.NewServer(snapshots, records,
			demonhttp.WithRefresh(func(ctx context.Context) (*demonchart.Snapshot, error) {
				return &demonchart.Snapshot{ID: "snap-2"}, nil
			}),
			demonhttp.WithRefreshLimit(0.001),
		))
		defer srv.Close()

		first, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
		require.NoError(t, err)
		first.Body.Close()
		require.Equal(t, http.StatusOK, first.StatusCode)

		second, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
		require.NoError(t, err)
		second.Body.Close()
		assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	})

	t.Run("refresh disabled without a configured function", func(t *testing.T) {
		t.Parallel()

		snapshots, records := testServices()
		srv := httptest.NewServer(demonhttp.NewServer(snapshots, records))
		defer srv.Close()

		resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
