package demonchart

import (
	"context"
	"time"
)

// FeedPost represents one entry in the source blog's feed.
type FeedPost struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
}

// FeedService discovers rating posts from the blog's Atom or RSS feed,
// so callers can resolve "the latest edition" instead of hard-coding a
// post URL.
type FeedService interface {
	// DiscoverPosts returns feed entries in feed order (newest first for
	// typical generators). Entries without a resolvable link are skipped.
	// Returns an empty slice if the feed has no entries.
	DiscoverPosts(ctx context.Context, feedURL string) ([]FeedPost, error)
}
