package lang

// Doc is the structured linguistic annotation over a text: an ordered
// sequence of lemmatized, stop-word and punctuation filtered tokens plus the
// tagged entity spans found in the text. Docs are created per title and per
// body, consumed by the scorer and the country resolver, and discarded.
type Doc struct {
	Lemmas   []string
	Entities []Entity
}

type Entity struct {
	Text  string
	Label string
}

// Entity label vocabulary shared with the keyword group configuration.
// A backend may emit any subset of these.
const (
	LabelPlace    = "GPE"
	LabelLocation = "LOC"
	LabelOrg      = "ORG"
	LabelPerson   = "PERSON"
	LabelEvent    = "EVENT"
	LabelGroup    = "NORP"
)

// Analyzer is the language-analysis capability contract. Implementations
// must truncate input exceeding their maximum supported length rather than
// fail on it.
type Analyzer interface {
	Analyze(text string) (*Doc, error)
}
