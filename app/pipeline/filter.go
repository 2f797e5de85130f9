package pipeline

import (
	"log/slog"
	"math"
	"strings"

	"newsatlas/app/geo"
	"newsatlas/app/lang"
	"newsatlas/app/scoring"
	"newsatlas/app/textnorm"
)

// Filter is the preprocessing orchestrator: it cleans, scores, geo-tags and
// deduplicates a batch of raw crawled articles into cleaned records ready
// for storage.
type Filter struct {
	analyzer lang.Analyzer
	scorer   *scoring.Scorer
	table    *geo.Table
	config   *Config
}

func NewFilter(analyzer lang.Analyzer, table *geo.Table, config *Config) *Filter {
	return &Filter{
		analyzer: analyzer,
		scorer:   scoring.NewScorer(config.Groups, config.Negatives, config.TitleMultiplier),
		table:    table,
		config:   config,
	}
}

// Run processes raw articles in input order and returns the surviving
// cleaned articles, still in input order, plus batch statistics.
// Deduplication by URL is batch-local; cross-run deduplication is the
// datastore's upsert-by-url concern.
func (f *Filter) Run(raw []RawArticle) ([]CleanedArticle, Stats) {
	stats := Stats{Input: len(raw)}

	if f.analyzer == nil {
		// Degraded mode: no language analysis available, emit an empty but
		// well-formed batch rather than failing the run.
		slog.Warn("Language analyzer unavailable, emitting empty batch", "input", len(raw))
		return []CleanedArticle{}, stats
	}

	cleaned := make([]CleanedArticle, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, article := range raw {
		url := strings.TrimSpace(article.URL)
		if url == "" {
			stats.SkippedURL++
			continue
		}
		if _, dup := seen[url]; dup {
			stats.SkippedURL++
			continue
		}

		title := textnorm.StripMarkup(article.Title)
		body := textnorm.StripMarkup(article.Body)

		if title == "" || len([]rune(body)) < f.config.MinTextLength {
			stats.SkippedShort++
			continue
		}

		titleDoc, err := f.analyzer.Analyze(title)
		if err != nil {
			slog.Warn("Failed to analyze title", "url", url, "error", err)
			stats.Errors++
			continue
		}
		bodyDoc, err := f.analyzer.Analyze(body)
		if err != nil {
			slog.Warn("Failed to analyze body", "url", url, "error", err)
			stats.Errors++
			continue
		}

		score := math.Round(f.scorer.Score(titleDoc, bodyDoc)*100) / 100
		if score < f.config.RelevanceThreshold {
			stats.SkippedScore++
			continue
		}

		cleaned = append(cleaned, CleanedArticle{
			Title:          title,
			PublishedDate:  textnorm.CanonicalDate(article.PublishedDate),
			URL:            url,
			BodySnippet:    textnorm.Snippet(body, f.config.SnippetMaxLength),
			RelevanceScore: score,
			ImageURL:       strings.TrimSpace(article.ImageURL),
			CountryISOCode: geo.Resolve(titleDoc, bodyDoc, f.table),
			FullBody:       body,
		})
		seen[url] = struct{}{}
		stats.Retained++
	}

	return cleaned, stats
}
