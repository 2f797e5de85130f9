package geo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//go:embed countries.json
var countriesJSON []byte

type datasetEntry struct {
	ISO2    string   `json:"iso2"`
	Aliases []string `json:"aliases"`
}

// Table maps lower-cased country names and aliases to ISO-3166 alpha-2
// codes. It is built once at startup and read-only afterwards, so it can be
// shared across any number of concurrent resolution calls.
type Table struct {
	codes map[string]string
	names []string // sorted keys, for the fallback containment scan
}

// NewTable builds the table from the embedded country dataset.
func NewTable() (*Table, error) {
	return newTableFromJSON(countriesJSON)
}

func newTableFromJSON(data []byte) (*Table, error) {
	raw := map[string]datasetEntry{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse country dataset: %w", err)
	}

	codes := make(map[string]string, len(raw)*2)
	for name, entry := range raw {
		code := strings.ToUpper(strings.TrimSpace(entry.ISO2))
		if code == "" {
			continue
		}

		add := func(s string) {
			key := NormalizeName(s)
			if key == "" {
				return
			}
			if _, exists := codes[key]; !exists {
				codes[key] = code
			}
		}

		add(name)
		for _, alias := range entry.Aliases {
			add(alias)
		}
	}

	if len(codes) == 0 {
		return nil, fmt.Errorf("country dataset contains no usable entries")
	}

	names := make([]string, 0, len(codes))
	for name := range codes {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Table{codes: codes, names: names}, nil
}

// Lookup returns the code for an exact normalized name.
func (t *Table) Lookup(name string) (string, bool) {
	code, ok := t.codes[name]
	return code, ok
}

// Names returns all known normalized names in sorted order.
func (t *Table) Names() []string {
	return t.names
}

func (t *Table) Size() int {
	return len(t.codes)
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lower-cases, trims and strips diacritics from a country name
// or entity mention so dataset and NER spellings compare equal.
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	return s
}
