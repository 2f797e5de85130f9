package crawler

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"newsatlas/app/pipeline"
)

// Extract fetches a publisher page and pulls out the article fields: the
// readable title and text via readability, plus publication metadata from
// the page's meta tags.
func (c *Crawler) Extract(ctx context.Context, pageURL string) (pipeline.RawArticle, error) {
	data, err := c.fetch(ctx, pageURL)
	if err != nil {
		return pipeline.RawArticle{}, fmt.Errorf("failed to fetch article: %w", err)
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return pipeline.RawArticle{}, fmt.Errorf("invalid article URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(data), parsedURL)
	if err != nil {
		return pipeline.RawArticle{}, fmt.Errorf("failed to extract content: %w", err)
	}

	raw := pipeline.RawArticle{
		Title:    strings.TrimSpace(article.Title),
		Authors:  strings.TrimSpace(article.Byline),
		Body:     strings.TrimSpace(article.TextContent),
		ImageURL: article.Image,
		Summary:  strings.TrimSpace(article.Excerpt),
		URL:      pageURL,
	}

	// Readability does not surface publication dates or keywords, so read
	// those straight from the document's meta tags.
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data)); err == nil {
		raw.PublishedDate = metaContent(doc,
			`meta[property="article:published_time"]`,
			`meta[name="article:published_time"]`,
			`meta[name="date"]`,
			`meta[name="pubdate"]`)
		raw.Keywords = metaContent(doc,
			`meta[name="keywords"]`,
			`meta[name="news_keywords"]`)
		if raw.ImageURL == "" {
			raw.ImageURL = metaContent(doc, `meta[property="og:image"]`)
		}
	}

	return raw, nil
}

func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}
