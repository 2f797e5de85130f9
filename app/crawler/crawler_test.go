package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testArticleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Ukraine war escalates</title>
  <meta property="article:published_time" content="2024-05-26T13:41:00Z">
  <meta property="og:image" content="https://example.com/img.jpg">
  <meta name="keywords" content="war, ukraine, conflict">
</head>
<body>
  <article>
    <h1>Ukraine war escalates</h1>
    <p>Military forces report heavy fighting and casualties near the eastern border.
    Officials said the offensive continued overnight with artillery shelling and
    air strikes reported across several towns in the region.</p>
    <p>International observers warned of further escalation as troops mobilize
    along the frontline, while humanitarian groups counted civilian casualties.</p>
  </article>
</body>
</html>`

func testFeedXML(links ...string) string {
	var items strings.Builder
	for i, link := range links {
		fmt.Fprintf(&items, `<item>
  <title>Item %d</title>
  <link>%s</link>
  <pubDate>Sun, 26 May 2024 13:41:00 GMT</pubDate>
</item>
`, i+1, link)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Search results</title>
` + items.String() + `</channel></rss>`
}

func testCrawler(feedURL string) *Crawler {
	c := New("NewsAtlas/1.0 test", 5*time.Second)
	c.feedBaseURL = feedURL
	c.requestDelay = 0
	return c
}

func TestSearchParsesFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "ukraine war" {
			t.Errorf("Unexpected query parameter: %q", r.URL.Query().Get("q"))
		}
		fmt.Fprint(w, testFeedXML("http://example.com/a", "http://example.com/b", "http://example.com/c"))
	}))
	defer server.Close()

	c := testCrawler(server.URL)
	items, err := c.Search(context.Background(), "ukraine war", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected limit of 2 items, got %d", len(items))
	}
	if items[0].Link != "http://example.com/a" {
		t.Errorf("Unexpected first link: %q", items[0].Link)
	}
	if items[0].Published == "" {
		t.Error("Expected published date from feed")
	}
}

func TestExtractReadsArticleAndMeta(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testArticleHTML)
	}))
	defer server.Close()

	c := testCrawler(server.URL)
	article, err := c.Extract(context.Background(), server.URL+"/article")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if article.Title != "Ukraine war escalates" {
		t.Errorf("Unexpected title: %q", article.Title)
	}
	if !strings.Contains(article.Body, "Military forces report heavy fighting") {
		t.Errorf("Expected body text, got %q", article.Body)
	}
	if article.PublishedDate != "2024-05-26T13:41:00Z" {
		t.Errorf("Unexpected published date: %q", article.PublishedDate)
	}
	if article.ImageURL != "https://example.com/img.jpg" {
		t.Errorf("Unexpected image URL: %q", article.ImageURL)
	}
	if article.Keywords != "war, ukraine, conflict" {
		t.Errorf("Unexpected keywords: %q", article.Keywords)
	}
	if article.URL != server.URL+"/article" {
		t.Errorf("Unexpected URL: %q", article.URL)
	}
}

func TestCrawlEmitsPlaceholderOnExtractionFailure(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeedXML(server.URL+"/good", server.URL+"/broken"))
	})
	mux.HandleFunc("/good", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testArticleHTML)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	c := testCrawler(server.URL + "/feed")
	articles, err := c.Crawl(context.Background(), []string{"ukraine war"}, 5)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "Ukraine war escalates" {
		t.Errorf("Unexpected first article title: %q", articles[0].Title)
	}
	if articles[1].Title != errorPlaceholderTitle {
		t.Errorf("Expected placeholder title, got %q", articles[1].Title)
	}
	if articles[1].URL != server.URL+"/broken" {
		t.Errorf("Placeholder should keep the URL, got %q", articles[1].URL)
	}
}

func TestCrawlSkipsDuplicateURLsAcrossQueries(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	fetches := 0
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeedXML(server.URL+"/article"))
	})
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		fetches++
		fmt.Fprint(w, testArticleHTML)
	})

	c := testCrawler(server.URL + "/feed")
	articles, err := c.Crawl(context.Background(), []string{"first query", "second query"}, 5)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	if len(articles) != 1 {
		t.Errorf("Expected 1 deduplicated article, got %d", len(articles))
	}
	if fetches != 1 {
		t.Errorf("Expected 1 article fetch, got %d", fetches)
	}
}

func TestCrawlContinuesAfterFailedQuery(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	calls := 0
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, testFeedXML(server.URL+"/article"))
	})
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testArticleHTML)
	})

	c := testCrawler(server.URL + "/feed")
	articles, err := c.Crawl(context.Background(), []string{"failing", "working"}, 5)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	if len(articles) != 1 {
		t.Errorf("Expected 1 article from the surviving query, got %d", len(articles))
	}
}
