package api

import (
	"newsatlas/app/database"
	"newsatlas/app/search"
)

type SearchIndexInterface interface {
	Query(text string) []search.Document
	DocCount() int
}

var _ SearchIndexInterface = (*search.Index)(nil)

type Handler struct {
	articleRepo database.ArticleRepository
	index       SearchIndexInterface
}

// NewsItem is the wire shape of one article in listing and search responses.
type NewsItem struct {
	ID             int64   `json:"id"`
	Time           *string `json:"time"`
	Title          string  `json:"title"`
	Link           string  `json:"link"`
	Description    string  `json:"description"`
	RelevanceScore float64 `json:"relevance_score"`
	ImageURL       string  `json:"image_url"`
	Location       string  `json:"location"`
}

type NewsResponse struct {
	News       []NewsItem `json:"news"`
	TotalCount int        `json:"total_count"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
}

type SearchResponse struct {
	Query   string       `json:"query"`
	Results []SearchItem `json:"results"`
	Count   int          `json:"count"`
}

type SearchItem struct {
	ID    int64  `json:"id"`
	Time  string `json:"time,omitempty"`
	Title string `json:"title"`
	Link  string `json:"link"`
}
