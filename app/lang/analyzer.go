package lang

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// DefaultMaxInputLen caps analyzer input, in runes.
const DefaultMaxInputLen = 1_000_000

// ProseAnalyzer tokenizes and NER-tags text with prose and lemmatizes tokens
// with the golem English dictionary.
type ProseAnalyzer struct {
	lemmatizer *golem.Lemmatizer
	maxLen     int
}

func NewProseAnalyzer() (*ProseAnalyzer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemmatizer dictionary: %w", err)
	}

	return &ProseAnalyzer{
		lemmatizer: lemmatizer,
		maxLen:     DefaultMaxInputLen,
	}, nil
}

func (a *ProseAnalyzer) Analyze(text string) (*Doc, error) {
	doc, err := prose.NewDocument(Truncate(text, a.maxLen), prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to analyze text: %w", err)
	}

	result := &Doc{}

	for _, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)
		if !isAlphabetic(word) || isStopword(word) {
			continue
		}
		result.Lemmas = append(result.Lemmas, strings.ToLower(a.lemmatizer.Lemma(word)))
	}

	for _, ent := range doc.Entities() {
		result.Entities = append(result.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}

	return result, nil
}

// Truncate limits text to maxLen runes.
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}

func isAlphabetic(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
