package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"newsatlas/app/pipeline"
)

// errorPlaceholderTitle marks records whose article fetch or extraction
// failed. The pipeline drops them later on the length check, but the raw
// checkpoint keeps a trace of every discovered URL.
const errorPlaceholderTitle = "Error: Could not crawl"

// Crawler discovers article URLs through a news search feed and extracts the
// article content from each publisher page.
type Crawler struct {
	httpClient   *http.Client
	userAgent    string
	fetchTimeout time.Duration
	requestDelay time.Duration
	feedBaseURL  string
}

func New(userAgent string, fetchTimeout time.Duration) *Crawler {
	return &Crawler{
		httpClient:   &http.Client{Timeout: fetchTimeout},
		userAgent:    userAgent,
		fetchTimeout: fetchTimeout,
		requestDelay: 1500 * time.Millisecond,
		feedBaseURL:  defaultFeedBaseURL,
	}
}

// Crawl runs every query against the search feed and extracts each
// discovered article. A failed query logs a warning and contributes nothing;
// a failed article extraction contributes a placeholder record so the run
// keeps a trace of the URL. Duplicate URLs across queries are fetched once.
func (c *Crawler) Crawl(ctx context.Context, queries []string, perQuery int) ([]pipeline.RawArticle, error) {
	articles := make([]pipeline.RawArticle, 0, len(queries)*perQuery)
	seen := make(map[string]struct{})

	for _, query := range queries {
		select {
		case <-ctx.Done():
			return articles, ctx.Err()
		default:
		}

		items, err := c.Search(ctx, query, perQuery)
		if err != nil {
			slog.Warn("Search query failed", "query", query, "error", err)
			continue
		}
		slog.Info("Search query completed", "query", query, "items", len(items))

		for _, item := range items {
			if _, dup := seen[item.Link]; dup {
				continue
			}
			seen[item.Link] = struct{}{}

			select {
			case <-ctx.Done():
				return articles, ctx.Err()
			default:
			}

			article, err := c.Extract(ctx, item.Link)
			if err != nil {
				slog.Warn("Article extraction failed", "url", item.Link, "error", err)
				article = pipeline.RawArticle{Title: errorPlaceholderTitle, URL: item.Link}
			}
			if article.PublishedDate == "" {
				article.PublishedDate = item.Published
			}
			articles = append(articles, article)

			if c.requestDelay > 0 {
				select {
				case <-ctx.Done():
					return articles, ctx.Err()
				case <-time.After(c.requestDelay):
				}
			}
		}
	}

	return articles, nil
}

func (c *Crawler) fetch(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
