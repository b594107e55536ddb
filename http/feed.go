package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"demonchart"

	"github.com/beevik/etree"
)

// Ensure FeedService implements demonchart.FeedService at compile time.
var _ demonchart.FeedService = (*FeedService)(nil)

// FeedService discovers rating posts from the blog's Atom or RSS feed.
type FeedService struct {
	client *http.Client
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedService{client: client}
}

// DiscoverPosts fetches and parses the feed at feedURL.
// Entries without a resolvable link are skipped.
func (s *FeedService) DiscoverPosts(ctx context.Context, feedURL string) ([]demonchart.FeedPost, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, demonchart.Errorf(demonchart.EUNAVAILABLE, "HTTP %d fetching feed %s", resp.StatusCode, feedURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, demonchart.Errorf(demonchart.EINVALID, "failed to parse feed: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, demonchart.Errorf(demonchart.EINVALID, "feed %s is empty", feedURL)
	}

	switch root.Tag {
	case "feed":
		return atomPosts(root), nil
	case "rss":
		return rssPosts(root), nil
	default:
		return nil, demonchart.Errorf(demonchart.EINVALID, "unsupported feed root element %q", root.Tag)
	}
}

// atomPosts extracts entries from an Atom feed root.
func atomPosts(root *etree.Element) []demonchart.FeedPost {
	posts := []demonchart.FeedPost{}
	for _, entry := range root.SelectElements("entry") {
		var post demonchart.FeedPost
		if el := entry.SelectElement("title"); el != nil {
			post.Title = strings.TrimSpace(el.Text())
		}
		for _, link := range entry.SelectElements("link") {
			// Blogger emits several link relations per entry; the post page
			// is the alternate one.
			if link.SelectAttrValue("rel", "alternate") == "alternate" {
				post.URL = link.SelectAttrValue("href", "")
				break
			}
		}
		if el := entry.SelectElement("published"); el != nil {
			post.Published, _ = time.Parse(time.RFC3339, strings.TrimSpace(el.Text()))
		} else if el := entry.SelectElement("updated"); el != nil {
			post.Published, _ = time.Parse(time.RFC3339, strings.TrimSpace(el.Text()))
		}
		if post.URL == "" {
			continue
		}
		posts = append(posts, post)
	}
	return posts
}

// rssPosts extracts items from an RSS 2.0 feed root.
func rssPosts(root *etree.Element) []demonchart.FeedPost {
	posts := []demonchart.FeedPost{}
	channel := root.SelectElement("channel")
	if channel == nil {
		return posts
	}
	for _, item := range channel.SelectElements("item") {
		var post demonchart.FeedPost
		if el := item.SelectElement("title"); el != nil {
			post.Title = strings.TrimSpace(el.Text())
		}
		if el := item.SelectElement("link"); el != nil {
			post.URL = strings.TrimSpace(el.Text())
		}
		if el := item.SelectElement("pubDate"); el != nil {
			raw := strings.TrimSpace(el.Text())
			if ts, err := time.Parse(time.RFC1123Z, raw); err == nil {
				post.Published = ts
			} else if ts, err := time.Parse(time.RFC1123, raw); err == nil {
				post.Published = ts
			}
		}
		if post.URL == "" {
			continue
		}
		posts = append(posts, post)
	}
	return posts
}
