package tasks

import (
	"context"

	"newsatlas/app/pipeline"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// CrawlerInterface abstracts the article crawler so pipeline runs can be
// exercised without network access.
type CrawlerInterface interface {
	Crawl(ctx context.Context, queries []string, perQuery int) ([]pipeline.RawArticle, error)
}

// FilterInterface abstracts the preprocessing filter.
type FilterInterface interface {
	Run(raw []pipeline.RawArticle) ([]pipeline.CleanedArticle, pipeline.Stats)
}
