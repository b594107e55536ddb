package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"demonchart"
	demonhttp "demonchart/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Level Ratings Blog</title>
  <entry>
    <title>Difficulty chart, 2026 edition</title>
    <link rel="self" href="https://blog.example.com/feeds/1"/>
    <link rel="alternate" href="https://blog.example.com/2026/chart.html"/>
    <published>2026-01-10T12:00:00Z</published>
  </entry>
  <entry>
    <title>Difficulty chart, 2025 edition</title>
    <link rel="alternate" href="https://blog.example.com/2025/chart.html"/>
    <published>2025-01-11T09:30:00Z</published>
  </entry>
  <entry>
    <title>Linkless entry</title>
    <published>2024-01-01T00:00:00Z</published>
  </entry>
</feed>`

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Level Ratings Blog</title>
    <item>
      <title>Difficulty chart</title>
      <link>https://blog.example.com/chart.html</link>
      <pubDate>Sat, 10 Jan 2026 12:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func TestFeedService_DiscoverPosts(t *testing.T) {
	t.Parallel()

	t.Run("parses Atom feeds and skips linkless entries", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/atom+xml")
			_, _ = w.Write([]byte(atomFeed))
		}))
		defer server.Close()

		svc := demonhttp.NewFeedService(nil)
		posts, err := svc.DiscoverPosts(context.Background(), server.URL)

		require.NoError(t, err)
		require.Len(t, posts, 2)

		assert.Equal(t, "Difficulty chart, 2026 edition", posts[0].Title)
		assert.Equal(t, "https://blog.example.com/2026/chart.html", posts[0].URL)
		assert.Equal(t, time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC), posts[0].Published)

		assert.Equal(t, "https://blog.example.com/2025/chart.html", posts[1].URL)
	})

	t.Run("parses RSS feeds", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(rssFeed))
		}))
		defer server.Close()

		svc := demonhttp.NewFeedService(nil)
		posts, err := svc.DiscoverPosts(context.Background(), server.URL)

		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Difficulty chart", posts[0].Title)
		assert.Equal(t, "https://blog.example.com/chart.html", posts[0].URL)
		assert.False(t, posts[0].Published.IsZero())
	})

	t.Run("non-success status is a transport error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer server.Close()

		svc := demonhttp.NewFeedService(nil)
		_, err := svc.DiscoverPosts(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, demonchart.EUNAVAILABLE, demonchart.ErrorCode(err))
	})

	t.Run("rejects non-feed XML", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?><sitemap></sitemap>`))
		}))
		defer server.Close()

		svc := demonhttp.NewFeedService(nil)
		_, err := svc.DiscoverPosts(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, demonchart.EINVALID, demonchart.ErrorCode(err))
	})
}
