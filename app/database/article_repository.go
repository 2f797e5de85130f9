package database

import (
	"database/sql"
	"fmt"
	"strings"

	"newsatlas/app/pipeline"
)

// SQLiteArticleRepository handles database operations for cleaned articles
type SQLiteArticleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) *SQLiteArticleRepository {
	return &SQLiteArticleRepository{db: db}
}

// UpsertArticle inserts a cleaned article or refreshes the existing row with
// the same URL.
func (r *SQLiteArticleRepository) UpsertArticle(article pipeline.CleanedArticle) error {
	var publishedDate interface{}
	if article.PublishedDate != "" {
		publishedDate = article.PublishedDate
	}

	_, err := r.db.Exec(`
		INSERT INTO articles (
			title, published_date, url, body_snippet, relevance_score,
			image_url, country_iso_code, full_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			title = excluded.title,
			published_date = excluded.published_date,
			body_snippet = excluded.body_snippet,
			relevance_score = excluded.relevance_score,
			image_url = excluded.image_url,
			country_iso_code = excluded.country_iso_code,
			full_body = excluded.full_body,
			updated_at = CURRENT_TIMESTAMP
	`, article.Title, publishedDate, article.URL, article.BodySnippet,
		article.RelevanceScore, article.ImageURL, article.CountryISOCode,
		article.FullBody)

	if err != nil {
		return fmt.Errorf("failed to upsert article: %w", err)
	}

	return nil
}

// ListArticles returns one page of articles matching the filter, most
// relevant first, newer articles breaking ties and dateless rows last.
func (r *SQLiteArticleRepository) ListArticles(filter ListFilter) ([]Article, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	where, args := buildWhere(filter)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(`
		SELECT id, title, published_date, url, body_snippet, relevance_score,
			image_url, country_iso_code, full_body, created_at, updated_at
		FROM articles
		`+where+`
		ORDER BY relevance_score DESC, published_date DESC NULLS LAST, id ASC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// CountArticles returns the total number of articles matching the filter,
// ignoring pagination.
func (r *SQLiteArticleRepository) CountArticles(filter ListFilter) (int, error) {
	where, args := buildWhere(filter)

	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM articles `+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return count, nil
}

// GetAllArticles returns every stored article in insertion order, used to
// rebuild the search index.
func (r *SQLiteArticleRepository) GetAllArticles() ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, published_date, url, body_snippet, relevance_score,
			image_url, country_iso_code, full_body, created_at, updated_at
		FROM articles
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

func (r *SQLiteArticleRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}

	return count, nil
}

func buildWhere(filter ListFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Date != "" {
		conditions = append(conditions, "published_date = ?")
		args = append(args, filter.Date)
	}
	if filter.Keyword != "" {
		conditions = append(conditions, "(title LIKE ? COLLATE NOCASE OR body_snippet LIKE ? COLLATE NOCASE)")
		pattern := "%" + filter.Keyword + "%"
		args = append(args, pattern, pattern)
	}
	if filter.CountryISOCode != "" {
		conditions = append(conditions, "country_iso_code = ?")
		args = append(args, strings.ToUpper(filter.CountryISOCode))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		var article Article
		var publishedDate sql.NullString

		err := rows.Scan(&article.ID, &article.Title, &publishedDate,
			&article.URL, &article.BodySnippet, &article.RelevanceScore,
			&article.ImageURL, &article.CountryISOCode, &article.FullBody,
			&article.CreatedAt, &article.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}

		if publishedDate.Valid {
			article.PublishedDate = &publishedDate.String
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}
