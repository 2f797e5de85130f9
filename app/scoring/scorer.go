package scoring

import (
	"strings"

	"newsatlas/app/lang"
)

// Scorer computes a non-negative relevance score for a (title, body) pair
// from weighted keyword groups, entity-tag bonuses and negative-keyword
// penalties. A Scorer is read-only after construction and safe for
// concurrent use.
type Scorer struct {
	groups          []KeywordGroup
	negatives       map[string]float64
	titleMultiplier float64
}

func NewScorer(groups []KeywordGroup, negatives map[string]float64, titleMultiplier float64) *Scorer {
	normalized := make([]KeywordGroup, 0, len(groups))
	for _, group := range groups {
		g := group
		g.Keywords = make([]string, 0, len(group.Keywords))
		for _, keyword := range group.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword != "" {
				g.Keywords = append(g.Keywords, keyword)
			}
		}
		normalized = append(normalized, g)
	}

	return &Scorer{
		groups:          normalized,
		negatives:       negatives,
		titleMultiplier: titleMultiplier,
	}
}

// Score runs the keyword, entity and negative-keyword passes and clamps the
// total at zero. Title and body matches are independent: both can fire for
// the same keyword.
func (s *Scorer) Score(titleDoc, bodyDoc *lang.Doc) float64 {
	score := 0.0

	for _, group := range s.groups {
		groupScore := 0.0
		for _, keyword := range group.Keywords {
			if containsPhrase(titleDoc.Lemmas, keyword) {
				groupScore += group.Weight * s.titleMultiplier
			}
			if containsPhrase(bodyDoc.Lemmas, keyword) {
				groupScore += group.Weight
			}
		}
		score += groupScore
	}

	for _, doc := range []*lang.Doc{titleDoc, bodyDoc} {
		for _, entity := range doc.Entities {
			for _, group := range s.groups {
				if hasTag(group.NERTags, entity.Label) {
					score += group.Weight * entityBonusFactor
				}
			}
		}
	}

	combined := make([]string, 0, len(titleDoc.Lemmas)+len(bodyDoc.Lemmas))
	combined = append(combined, titleDoc.Lemmas...)
	combined = append(combined, bodyDoc.Lemmas...)
	padded := " " + strings.Join(combined, " ") + " "
	for phrase, penalty := range s.negatives {
		if strings.Contains(padded, " "+phrase+" ") {
			score += penalty
		}
	}

	return max(score, 0)
}

// containsPhrase reports whether the keyword phrase occurs in the lemma
// sequence. A window the size of the phrase is slid over the lemmas and
// checked by substring containment, which tolerates stop-word removal
// without fuzzy matching.
func containsPhrase(lemmas []string, keyword string) bool {
	size := len(strings.Fields(keyword))
	if size == 0 {
		return false
	}

	for i := range lemmas {
		end := min(i+size, len(lemmas))
		window := strings.Join(lemmas[i:end], " ")
		if strings.Contains(window, keyword) {
			return true
		}
	}

	return false
}

func hasTag(tags []string, label string) bool {
	for _, tag := range tags {
		if tag == label {
			return true
		}
	}
	return false
}
