package pipeline

// RawArticle is one crawled article prior to cleaning. URL is the only
// stable identity: two RawArticles with equal URL are the same article.
type RawArticle struct {
	Title         string
	Authors       string
	PublishedDate string
	Body          string
	ImageURL      string
	Keywords      string
	Summary       string
	URL           string
}

// CleanedArticle is the output of preprocessing, one per surviving
// RawArticle. Created once per pipeline run and immutable thereafter.
type CleanedArticle struct {
	Title          string
	PublishedDate  string // YYYY-MM-DD, empty when unknown
	URL            string
	BodySnippet    string
	RelevanceScore float64
	ImageURL       string
	CountryISOCode string
	FullBody       string
}

// Stats counts the outcome of one Filter.Run batch.
type Stats struct {
	Input        int
	Retained     int
	SkippedURL   int
	SkippedShort int
	SkippedScore int
	Errors       int
}
