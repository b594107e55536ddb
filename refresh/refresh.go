// Package refresh provides chart refresh orchestration.
// It coordinates fetching the source post, cleaning, record extraction,
// and snapshot storage.
package refresh

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sync/atomic"
	"time"

	"demonchart"

	"golang.org/x/sync/errgroup"
)

// Refresher orchestrates refreshing chart snapshots from the source blog.
type Refresher struct {
	Fetcher   demonchart.Fetcher
	Cleaner   demonchart.Cleaner // optional; skipped when nil
	Extractor demonchart.RecordExtractor
	Snapshots demonchart.SnapshotService
	Records   demonchart.RecordService // optional; used to return records for skipped refreshes
	Feeds     demonchart.FeedService
	Limiter   demonchart.RefreshLimiter

	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of refreshing a single post.
type Result struct {
	// Skipped is true when the fetched content matched the latest stored
	// snapshot's hash and no new snapshot was created.
	Skipped bool

	Snapshot *demonchart.Snapshot
	Records  []*demonchart.Record
}

// ProgressEvent reports progress during a feed-wide refresh.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Skipped   bool
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting refresh progress.
type ProgressFunc func(event ProgressEvent)

// Refresh fetches one post, extracts its records, and stores a snapshot.
// When the fetched content hashes identically to the latest stored
// snapshot for the URL, no new snapshot is created and the stored one is
// returned with Skipped set.
func (r *Refresher) Refresh(ctx context.Context, postURL string) (*Result, error) {
	if r.Limiter != nil {
		u, err := url.Parse(postURL)
		if err != nil {
			return nil, demonchart.Errorf(demonchart.EINVALID, "invalid post URL %q", postURL)
		}
		if err := r.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, postURL, r.Fetcher.Fetch, nil, delays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", postURL, err)
	}

	hash := ComputeHash(html)

	// Unchanged source means nothing to store.
	latest, err := r.Snapshots.FindLatestSnapshot(ctx, postURL)
	if err == nil && latest.ContentHash == hash {
		var records []*demonchart.Record
		if r.Records != nil {
			records, err = r.Records.FindRecords(ctx, demonchart.RecordFilter{SnapshotID: &latest.ID})
			if err != nil {
				return nil, err
			}
		}
		return &Result{Skipped: true, Snapshot: latest, Records: records}, nil
	}
	if err != nil && demonchart.ErrorCode(err) != demonchart.ENOTFOUND {
		return nil, err
	}

	title := ""
	content := html
	if r.Cleaner != nil {
		cleaned, err := r.Cleaner.Clean(html)
		if err != nil {
			return nil, fmt.Errorf("clean %s: %w", postURL, err)
		}
		title = cleaned.Title
		content = cleaned.ContentHTML
	}

	records, err := r.Extractor.Extract(content)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", postURL, err)
	}

	snapshot := &demonchart.Snapshot{
		SourceURL:   postURL,
		Title:       title,
		ContentHash: hash,
	}
	if err := r.Snapshots.CreateSnapshot(ctx, snapshot, records); err != nil {
		return nil, err
	}

	return &Result{Snapshot: snapshot, Records: records}, nil
}

// RefreshAll discovers posts from the feed and refreshes each matching one.
// titlePattern, when non-empty, is a regular expression that selects which
// feed entries to refresh; empty refreshes everything. The progress
// callback, if provided, receives events as posts complete.
func (r *Refresher) RefreshAll(ctx context.Context, feedURL, titlePattern string, progress ProgressFunc) ([]*Result, error) {
	var titleRe *regexp.Regexp
	if titlePattern != "" {
		var err error
		titleRe, err = regexp.Compile(titlePattern)
		if err != nil {
			return nil, demonchart.Errorf(demonchart.EINVALID, "invalid title pattern %q", titlePattern)
		}
	}

	posts, err := r.Feeds.DiscoverPosts(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("feed discovery: %w", err)
	}

	var selected []demonchart.FeedPost
	for _, post := range posts {
		if titleRe != nil && !titleRe.MatchString(post.Title) {
			continue
		}
		selected = append(selected, post)
	}

	total := len(selected)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}
	if total == 0 {
		if progress != nil {
			progress(ProgressEvent{Type: ProgressFinished})
		}
		return nil, nil
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]*Result, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, post := range selected {
		i, post := i, post
		g.Go(func() error {
			result, err := r.Refresh(gctx, post.URL)
			done := int(completed.Add(1))
			if err != nil {
				if progress != nil {
					progress(ProgressEvent{
						Type:      ProgressFailed,
						Completed: done,
						Total:     total,
						URL:       post.URL,
						Error:     err,
					})
				}
				return err
			}
			results[i] = result
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: done,
					Total:     total,
					URL:       post.URL,
					Skipped:   result.Skipped,
				})
			}
			return nil
		})
	}

	err = g.Wait()
	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	if err != nil {
		return nil, err
	}

	return results, nil
}
