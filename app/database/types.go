package database

import (
	"time"
)

type Article struct {
	ID             int64
	Title          string
	PublishedDate  *string // canonical YYYY-MM-DD, nil when the source had no usable date
	URL            string
	BodySnippet    string
	RelevanceScore float64
	ImageURL       string
	CountryISOCode string
	FullBody       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
