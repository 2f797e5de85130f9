package scoring

import "newsatlas/app/lang"

// KeywordGroup is a named bucket of domain keywords with a weight and the
// entity labels that also count toward the bucket.
type KeywordGroup struct {
	Name     string   `yaml:"-"`
	Keywords []string `yaml:"keywords"`
	Weight   float64  `yaml:"weight"`
	NERTags  []string `yaml:"ner_tags"`
}

const (
	DefaultTitleMultiplier = 1.5

	// Entity matches contribute a fraction of the group weight.
	entityBonusFactor = 0.2
)

// DefaultGroups returns the built-in conflict-news keyword configuration,
// used when the pipeline configuration file defines no groups of its own.
func DefaultGroups() []KeywordGroup {
	return []KeywordGroup{
		{
			Name:     "direct_combat",
			Keywords: []string{"war", "battle", "invasion", "airstrike", "shelling", "offensive", "fighting", "combat"},
			Weight:   3.0,
			NERTags:  []string{lang.LabelEvent, lang.LabelGroup, lang.LabelPlace},
		},
		{
			Name:     "military_ops",
			Keywords: []string{"military", "troops", "forces", "deployment", "mobilization", "defense", "weapon"},
			Weight:   2.0,
			NERTags:  []string{lang.LabelOrg, lang.LabelGroup},
		},
		{
			Name:     "casualties_impact",
			Keywords: []string{"casualties", "killed", "wounded", "refugees", "displacement", "humanitarian crisis", "civilians"},
			Weight:   2.5,
			NERTags:  []string{lang.LabelPerson, lang.LabelPlace},
		},
		{
			Name:     "diplomacy_tension",
			Keywords: []string{"ceasefire", "negotiation", "sanctions", "escalation", "tensions", "conflict resolution", "diplomacy"},
			Weight:   1.5,
			NERTags:  []string{lang.LabelEvent, lang.LabelPlace, lang.LabelOrg},
		},
		{
			Name:     "geopolitical_context",
			Keywords: []string{"geopolitics", "border dispute", "territory", "sovereignty", "insurgency", "uprising"},
			Weight:   1.0,
			NERTags:  []string{lang.LabelLocation, lang.LabelPlace},
		},
	}
}

// DefaultNegatives returns the built-in negative keyword penalties.
func DefaultNegatives() map[string]float64 {
	return map[string]float64{
		"peace talks":     -1.0,
		"peace agreement": -2.0,
		"sports match":    -3.0,
		"war on drugs":    -2.0,
		"trade war":       -2.0,
		"historical war":  -1.5,
	}
}
