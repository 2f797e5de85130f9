package geo

import (
	"testing"

	"newsatlas/app/lang"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable()
	if err != nil {
		t.Fatalf("Failed to build country table: %v", err)
	}
	return table
}

func placeDoc(names ...string) *lang.Doc {
	doc := &lang.Doc{}
	for _, name := range names {
		doc.Entities = append(doc.Entities, lang.Entity{Text: name, Label: lang.LabelPlace})
	}
	return doc
}

func TestResolveDirectMatch(t *testing.T) {
	table := testTable(t)

	code := Resolve(placeDoc("Ukraine"), &lang.Doc{}, table)
	if code != "UA" {
		t.Errorf("Expected UA, got %q", code)
	}
}

func TestResolveAliases(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		entity   string
		expected string
	}{
		{"USA", "US"},
		{"United States", "US"},
		{"U.S.", "US"},
		{"Britain", "GB"},
		{"Russian Federation", "RU"},
		{"DPRK", "KP"},
	}

	for _, tt := range tests {
		code := Resolve(placeDoc(tt.entity), &lang.Doc{}, table)
		if code != tt.expected {
			t.Errorf("Resolve(%q) = %q, expected %q", tt.entity, code, tt.expected)
		}
	}
}

func TestResolveFallbackContainment(t *testing.T) {
	table := testTable(t)

	// No direct table entry; the containment scan finds "ukraine" inside
	code := Resolve(placeDoc("eastern Ukraine region"), &lang.Doc{}, table)
	if code != "UA" {
		t.Errorf("Expected UA via containment fallback, got %q", code)
	}
}

func TestResolveMajorityVote(t *testing.T) {
	table := testTable(t)

	titleDoc := placeDoc("Ukraine")
	bodyDoc := placeDoc("Russia", "Ukraine")

	code := Resolve(titleDoc, bodyDoc, table)
	if code != "UA" {
		t.Errorf("Expected majority code UA, got %q", code)
	}
}

func TestResolveTieBreaksAlphabetically(t *testing.T) {
	table := testTable(t)

	code := Resolve(placeDoc("Ukraine", "Russia"), &lang.Doc{}, table)
	if code != "RU" {
		t.Errorf("Expected RU on tie (ascending code order), got %q", code)
	}
}

func TestResolveIgnoresNonPlaceEntities(t *testing.T) {
	table := testTable(t)

	doc := &lang.Doc{Entities: []lang.Entity{
		{Text: "Ukraine", Label: lang.LabelOrg},
		{Text: "France", Label: lang.LabelPerson},
	}}

	if code := Resolve(doc, &lang.Doc{}, table); code != "" {
		t.Errorf("Expected empty code for non-place entities, got %q", code)
	}
}

func TestResolveEmpty(t *testing.T) {
	table := testTable(t)

	if code := Resolve(&lang.Doc{}, &lang.Doc{}, table); code != "" {
		t.Errorf("Expected empty code, got %q", code)
	}
	if code := Resolve(nil, nil, table); code != "" {
		t.Errorf("Expected empty code for nil docs, got %q", code)
	}
}

func TestNormalizeNameStripsDiacritics(t *testing.T) {
	if got := NormalizeName("  Côte d'Ivoire "); got != "cote d'ivoire" {
		t.Errorf("Expected normalized name without diacritics, got %q", got)
	}
}
