package search

import (
	"strings"
	"sync"
	"unicode"
)

// Document is one searchable article in the in-memory index.
type Document struct {
	ID            int64
	Title         string
	Body          string
	URL           string
	PublishedDate string
}

// Index is an in-memory inverted index over article title+body text,
// answering OR-term queries. It is rebuilt wholesale after each pipeline
// run; reads and rebuilds may happen concurrently.
type Index struct {
	mu       sync.RWMutex
	postings map[string]map[int]struct{}
	docs     []Document
}

func NewIndex() *Index {
	return &Index{postings: map[string]map[int]struct{}{}}
}

// Build replaces the index contents with the given documents, in a single
// pass over their concatenated title and body text.
func (idx *Index) Build(docs []Document) {
	postings := make(map[string]map[int]struct{})

	for pos, doc := range docs {
		for _, token := range Tokenize(doc.Title + " " + doc.Body) {
			set, ok := postings[token]
			if !ok {
				set = make(map[int]struct{})
				postings[token] = set
			}
			set[pos] = struct{}{}
		}
	}

	idx.mu.Lock()
	idx.postings = postings
	idx.docs = docs
	idx.mu.Unlock()
}

// Add appends a single document to the index without touching existing
// entries.
func (idx *Index) Add(doc Document) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	pos := len(idx.docs)
	idx.docs = append(idx.docs, doc)
	for _, token := range Tokenize(doc.Title + " " + doc.Body) {
		set, ok := idx.postings[token]
		if !ok {
			set = make(map[int]struct{})
			idx.postings[token] = set
		}
		set[pos] = struct{}{}
	}
}

// Query tokenizes the query text and returns the union of the matching
// posting sets (pure OR semantics), in stored document order. A query whose
// tokens all miss the index, or that reduces to no tokens, returns nil.
func (idx *Index) Query(text string) []Document {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matched := make(map[int]struct{})
	found := false
	for _, token := range tokens {
		set, ok := idx.postings[token]
		if !ok {
			continue
		}
		found = true
		for pos := range set {
			matched[pos] = struct{}{}
		}
	}
	if !found {
		return nil
	}

	results := make([]Document, 0, len(matched))
	for pos, doc := range idx.docs {
		if _, ok := matched[pos]; ok {
			results = append(results, doc)
		}
	}

	return results
}

// TokenCount returns the number of unique indexed tokens.
func (idx *Index) TokenCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.postings)
}

func (idx *Index) DocCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// Tokenize lower-cases text, strips everything but ASCII letters, digits and
// whitespace, splits on whitespace and discards tokens of length <= 1.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := fields[:0]
	for _, field := range fields {
		if len(field) > 1 {
			tokens = append(tokens, field)
		}
	}

	return tokens
}
