package checkpoint

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"newsatlas/app/pipeline"
)

// utf8BOM is prepended to checkpoint files so spreadsheet tools detect the
// encoding correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var rawHeader = []string{"title", "authors", "published_date", "body", "image_url", "keywords", "summary", "url"}

var cleanedHeader = []string{"Title", "Published Date", "URL", "Body_Snippet", "Relevance_Score", "Image_URL", "Country_ISO_Code", "Full_Body"}

// Store persists pipeline checkpoints as CSV files under a data directory.
// Raw checkpoints capture the crawl output before preprocessing; cleaned
// checkpoints capture the filtered result.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) RawPath() string {
	return filepath.Join(s.dir, "raw_articles.csv")
}

func (s *Store) CleanedPath() string {
	return filepath.Join(s.dir, "cleaned_articles.csv")
}

// WriteRaw writes the raw crawl checkpoint, replacing any previous one.
func (s *Store) WriteRaw(articles []pipeline.RawArticle) error {
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []string{
			a.Title, a.Authors, a.PublishedDate, a.Body,
			a.ImageURL, a.Keywords, a.Summary, a.URL,
		})
	}
	return writeFile(s.RawPath(), rawHeader, rows)
}

// WriteCleaned writes the cleaned checkpoint, replacing any previous one.
func (s *Store) WriteCleaned(articles []pipeline.CleanedArticle) error {
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []string{
			a.Title, a.PublishedDate, a.URL, a.BodySnippet,
			strconv.FormatFloat(a.RelevanceScore, 'f', 2, 64),
			a.ImageURL, a.CountryISOCode, a.FullBody,
		})
	}
	return writeFile(s.CleanedPath(), cleanedHeader, rows)
}

// ReadRaw loads the raw checkpoint back. A missing file is not an error, it
// just yields an empty batch.
func (s *Store) ReadRaw() ([]pipeline.RawArticle, error) {
	rows, err := readFile(s.RawPath(), len(rawHeader))
	if err != nil || rows == nil {
		return nil, err
	}

	articles := make([]pipeline.RawArticle, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, pipeline.RawArticle{
			Title: row[0], Authors: row[1], PublishedDate: row[2], Body: row[3],
			ImageURL: row[4], Keywords: row[5], Summary: row[6], URL: row[7],
		})
	}
	return articles, nil
}

// ReadCleaned loads the cleaned checkpoint back, e.g. to seed the search
// index on startup.
func (s *Store) ReadCleaned() ([]pipeline.CleanedArticle, error) {
	rows, err := readFile(s.CleanedPath(), len(cleanedHeader))
	if err != nil || rows == nil {
		return nil, err
	}

	articles := make([]pipeline.CleanedArticle, 0, len(rows))
	for _, row := range rows {
		score, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid relevance score %q in %s: %w", row[4], s.CleanedPath(), err)
		}
		articles = append(articles, pipeline.CleanedArticle{
			Title: row[0], PublishedDate: row[1], URL: row[2], BodySnippet: row[3],
			RelevanceScore: score, ImageURL: row[5], CountryISOCode: row[6], FullBody: row[7],
		})
	}
	return articles, nil
}

func writeFile(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write checkpoint %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write checkpoint %s: %w", path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write checkpoint %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush checkpoint %s: %w", path, err)
	}

	return file.Close()
}

func readFile(path string, columns int) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read checkpoint %s: %w", path, err)
	}

	if len(data) >= len(utf8BOM) && data[0] == utf8BOM[0] && data[1] == utf8BOM[1] && data[2] == utf8BOM[2] {
		data = data[len(utf8BOM):]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = columns
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First record is the header
	return records[1:], nil
}
