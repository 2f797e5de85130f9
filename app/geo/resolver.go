package geo

import (
	"strings"

	"newsatlas/app/lang"
)

// Resolve maps the place-labelled entity mentions of the title and body docs
// to a single best-guess ISO alpha-2 code. Each entity occurrence casts one
// vote for the code it resolves to; the code with the most votes wins, ties
// broken by ascending code order. Returns "" when nothing resolves.
//
// Mentions without a direct table hit fall back to a linear containment scan
// over all known names, either direction. The scan is intentionally
// permissive and can over-match short names inside longer entity strings;
// that precision/recall trade-off is part of the contract.
func Resolve(titleDoc, bodyDoc *lang.Doc, table *Table) string {
	votes := map[string]int{}

	for _, doc := range []*lang.Doc{titleDoc, bodyDoc} {
		if doc == nil {
			continue
		}
		for _, entity := range doc.Entities {
			if entity.Label != lang.LabelPlace {
				continue
			}
			key := NormalizeName(entity.Text)
			if key == "" {
				continue
			}

			if code, ok := table.Lookup(key); ok {
				votes[code]++
				continue
			}

			for _, name := range table.Names() {
				if strings.Contains(key, name) || strings.Contains(name, key) {
					if code, ok := table.Lookup(name); ok {
						votes[code]++
					}
					break
				}
			}
		}
	}

	best := ""
	bestVotes := 0
	for code, count := range votes {
		if count > bestVotes || (count == bestVotes && code < best) {
			best = code
			bestVotes = count
		}
	}

	return best
}
