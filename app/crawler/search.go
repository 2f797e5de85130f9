package crawler

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mmcdole/gofeed"
)

const defaultFeedBaseURL = "https://news.google.com/rss/search"

// FeedItem is one search hit from the news feed, before article extraction.
type FeedItem struct {
	Title     string
	Link      string
	Published string
}

// Search queries the news feed for a topic and returns up to limit items.
func (c *Crawler) Search(ctx context.Context, query string, limit int) ([]FeedItem, error) {
	feedURL := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", c.feedBaseURL, url.QueryEscape(query))

	data, err := c.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search feed for %q: %w", query, err)
	}

	feed, err := gofeed.NewParser().ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search feed for %q: %w", query, err)
	}

	items := make([]FeedItem, 0, limit)
	for _, item := range feed.Items {
		if len(items) >= limit {
			break
		}
		if item.Link == "" {
			continue
		}
		items = append(items, FeedItem{
			Title:     item.Title,
			Link:      item.Link,
			Published: item.Published,
		})
	}

	return items, nil
}
