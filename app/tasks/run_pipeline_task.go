package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"newsatlas/app/checkpoint"
	"newsatlas/app/database"
	"newsatlas/app/pipeline"
	"newsatlas/app/search"
)

// RunPipelineTask executes one full aggregation cycle: crawl the configured
// queries, checkpoint the raw batch, filter it, checkpoint the cleaned batch,
// upsert the survivors into the datastore and rebuild the search index.
type RunPipelineTask struct {
	Task
	crawler     CrawlerInterface
	filter      FilterInterface
	checkpoints *checkpoint.Store
	articleRepo database.ArticleRepository
	index       *search.Index
	config      *pipeline.Config
}

func NewRunPipelineTask(crawler CrawlerInterface, filter FilterInterface,
	checkpoints *checkpoint.Store, articleRepo database.ArticleRepository,
	index *search.Index, config *pipeline.Config) *RunPipelineTask {
	return &RunPipelineTask{
		Task:        NewTask(TaskTypeRunPipeline, "pipeline"),
		crawler:     crawler,
		filter:      filter,
		checkpoints: checkpoints,
		articleRepo: articleRepo,
		index:       index,
		config:      config,
	}
}

func (t *RunPipelineTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	raw, err := t.crawler.Crawl(ctx, t.config.Queries, t.config.ArticlesPerQuery)
	if err != nil {
		return fmt.Errorf("failed to crawl articles: %w", err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("crawl produced no articles, aborting run")
	}

	if err := t.checkpoints.WriteRaw(raw); err != nil {
		return fmt.Errorf("failed to write raw checkpoint: %w", err)
	}

	cleaned, stats := t.filter.Run(raw)

	if err := t.checkpoints.WriteCleaned(cleaned); err != nil {
		return fmt.Errorf("failed to write cleaned checkpoint: %w", err)
	}

	// Datastore failures degrade to warnings: the checkpoints already hold
	// this run's output, so the next successful run can catch up.
	storeErrors := 0
	for _, article := range cleaned {
		if err := t.articleRepo.UpsertArticle(article); err != nil {
			slog.Warn("Failed to store article", "url", article.URL, "error", err)
			storeErrors++
		}
	}

	if err := RebuildIndex(t.articleRepo, t.index); err != nil {
		slog.Warn("Failed to rebuild search index", "error", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"crawled", stats.Input,
		"retained", stats.Retained,
		"skipped_url", stats.SkippedURL,
		"skipped_short", stats.SkippedShort,
		"skipped_score", stats.SkippedScore,
		"errors", stats.Errors,
		"store_errors", storeErrors)

	return nil
}

// RebuildIndex replaces the search index contents with the full datastore
// snapshot. Also used at startup to serve searches before the first run.
func RebuildIndex(articleRepo database.ArticleRepository, index *search.Index) error {
	articles, err := articleRepo.GetAllArticles()
	if err != nil {
		return fmt.Errorf("failed to load articles for indexing: %w", err)
	}

	docs := make([]search.Document, 0, len(articles))
	for _, article := range articles {
		doc := search.Document{
			ID:    article.ID,
			Title: article.Title,
			Body:  article.FullBody,
			URL:   article.URL,
		}
		if article.PublishedDate != nil {
			doc.PublishedDate = *article.PublishedDate
		}
		docs = append(docs, doc)
	}

	index.Build(docs)
	return nil
}
