package mock

import (
	"context"

	"demonchart"
)

var _ demonchart.FeedService = (*FeedService)(nil)

// FeedService is a mock implementation of demonchart.FeedService.
type FeedService struct {
	DiscoverPostsFn func(ctx context.Context, feedURL string) ([]demonchart.FeedPost, error)
}

func (s *FeedService) DiscoverPosts(ctx context.Context, feedURL string) ([]demonchart.FeedPost, error) {
	return s.DiscoverPostsFn(ctx, feedURL)
}
