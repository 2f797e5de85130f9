package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"newsatlas/app/database"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func NewHandler(articleRepo database.ArticleRepository, index SearchIndexInterface) *Handler {
	return &Handler{
		articleRepo: articleRepo,
		index:       index,
	}
}

// GetNews serves the paginated article listing, filterable by exact
// published date, keyword substring and country ISO code.
func (h *Handler) GetNews(c *gin.Context) {
	page, err := positiveIntParam(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}
	limit, err := positiveIntParam(c, "limit", defaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := database.ListFilter{
		Page:           page,
		Limit:          limit,
		Date:           c.Query("date"),
		Keyword:        c.Query("keyword"),
		CountryISOCode: c.Query("country_iso"),
	}

	articles, err := h.articleRepo.ListArticles(filter)
	if err != nil {
		slog.Error("Database error", "operation", "list_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	totalCount, err := h.articleRepo.CountArticles(filter)
	if err != nil {
		slog.Error("Database error", "operation", "count_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	news := make([]NewsItem, 0, len(articles))
	for _, article := range articles {
		news = append(news, NewsItem{
			ID:             article.ID,
			Time:           article.PublishedDate,
			Title:          article.Title,
			Link:           article.URL,
			Description:    article.BodySnippet,
			RelevanceScore: article.RelevanceScore,
			ImageURL:       article.ImageURL,
			Location:       article.CountryISOCode,
		})
	}

	c.JSON(http.StatusOK, NewsResponse{
		News:       news,
		TotalCount: totalCount,
		Page:       page,
		PerPage:    limit,
	})
}

// SearchArticles serves full-text lookups against the in-memory index.
func (h *Handler) SearchArticles(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing q parameter"})
		return
	}

	docs := h.index.Query(query)

	results := make([]SearchItem, 0, len(docs))
	for _, doc := range docs {
		results = append(results, SearchItem{
			ID:    doc.ID,
			Time:  doc.PublishedDate,
			Title: doc.Title,
			Link:  doc.URL,
		})
	}

	c.JSON(http.StatusOK, SearchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if articleCount, err := h.articleRepo.GetArticleCount(); err == nil {
		health["articles"] = articleCount
	}

	health["indexed_documents"] = h.index.DocCount()

	c.JSON(http.StatusOK, health)
}

func positiveIntParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}
