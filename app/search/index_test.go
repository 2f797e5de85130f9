package search

import (
	"reflect"
	"testing"
)

func testDocs() []Document {
	return []Document{
		{ID: 1, Title: "War in Ukraine escalates", Body: "Fighting near the border", URL: "http://x/1"},
		{ID: 2, Title: "Trade summit concludes", Body: "Leaders discuss tariffs", URL: "http://x/2"},
		{ID: 3, Title: "Ukraine aid package", Body: "Humanitarian support announced", URL: "http://x/3"},
		{ID: 4, Title: "Border war intensifies", Body: "Shelling reported overnight", URL: "http://x/4"},
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"War in Ukraine!", []string{"war", "in", "ukraine"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"C++ & Go, 2024", []string{"go", "2024"}},
		{"a b c", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := Tokenize(tt.input)
		if len(got) == 0 && len(tt.expected) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Tokenize(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestQueryUnionSemantics(t *testing.T) {
	idx := NewIndex()
	idx.Build(testDocs())

	// "war" hits docs 1 and 4, "ukraine" hits docs 1 and 3; union in
	// stored order
	results := idx.Query("war in ukraine")

	expected := []int64{1, 3, 4}
	if len(results) != len(expected) {
		t.Fatalf("Expected %d results, got %d", len(expected), len(results))
	}
	for i, id := range expected {
		if results[i].ID != id {
			t.Errorf("Position %d: expected doc %d, got %d", i, id, results[i].ID)
		}
	}
}

func TestQueryNoMatchingTokens(t *testing.T) {
	idx := NewIndex()
	idx.Build(testDocs())

	if results := idx.Query("zebra quantum"); results != nil {
		t.Errorf("Expected nil for unmatched tokens, got %v", results)
	}
}

func TestQueryEmptyAfterTokenization(t *testing.T) {
	idx := NewIndex()
	idx.Build(testDocs())

	if results := idx.Query("a ! ?"); results != nil {
		t.Errorf("Expected nil for token-free query, got %v", results)
	}
}

func TestBuildReplacesContents(t *testing.T) {
	idx := NewIndex()
	idx.Build(testDocs())

	idx.Build([]Document{{ID: 9, Title: "Solo entry", Body: "nothing else"}})

	if idx.DocCount() != 1 {
		t.Errorf("Expected 1 document after rebuild, got %d", idx.DocCount())
	}
	if results := idx.Query("ukraine"); results != nil {
		t.Errorf("Expected old contents gone, got %v", results)
	}
}

func TestAddExtendsIndex(t *testing.T) {
	idx := NewIndex()
	idx.Build(testDocs())

	idx.Add(Document{ID: 5, Title: "Ceasefire negotiations", Body: "Talks continue in Ukraine"})

	if idx.DocCount() != 5 {
		t.Errorf("Expected 5 documents, got %d", idx.DocCount())
	}
	if results := idx.Query("ceasefire"); len(results) != 1 || results[0].ID != 5 {
		t.Errorf("Expected the added document, got %v", results)
	}
	// Added documents join existing posting sets
	if results := idx.Query("ukraine"); len(results) != 3 {
		t.Errorf("Expected 3 results after add, got %d", len(results))
	}
}

func TestQueryCaseInsensitive(t *testing.T) {
	idx := NewIndex()
	idx.Build(testDocs())

	if results := idx.Query("UKRAINE"); len(results) != 2 {
		t.Errorf("Expected 2 results for upper-case query, got %d", len(results))
	}
}
