package database

import (
	"newsatlas/app/pipeline"
)

// ListFilter narrows and pages an article listing. Zero values mean "no
// constraint" except Page and Limit, which the repository normalizes.
type ListFilter struct {
	Page           int
	Limit          int
	Date           string // exact canonical date YYYY-MM-DD
	Keyword        string // case-insensitive substring over title and snippet
	CountryISOCode string
}

type ArticleRepository interface {
	UpsertArticle(article pipeline.CleanedArticle) error
	ListArticles(filter ListFilter) ([]Article, error)
	CountArticles(filter ListFilter) (int, error)
	GetAllArticles() ([]Article, error)
	GetArticleCount() (int, error)
}
