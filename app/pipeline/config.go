package pipeline

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"newsatlas/app/scoring"
)

const (
	DefaultRelevanceThreshold = 2.0
	DefaultMinTextLength      = 30
	DefaultSnippetMaxLength   = 250
	DefaultArticlesPerQuery   = 7
)

// Config holds the pipeline run parameters: what to search for and how to
// score what comes back.
type Config struct {
	Queries            []string
	ArticlesPerQuery   int
	RelevanceThreshold float64
	MinTextLength      int
	SnippetMaxLength   int
	TitleMultiplier    float64
	Groups             []scoring.KeywordGroup
	Negatives          map[string]float64
}

type rawConfig struct {
	Queries            []string                        `yaml:"queries"`
	ArticlesPerQuery   int                             `yaml:"articles_per_query"`
	RelevanceThreshold *float64                        `yaml:"relevance_threshold"`
	MinTextLength      int                             `yaml:"min_text_length"`
	SnippetMaxLength   int                             `yaml:"snippet_max_length"`
	TitleMultiplier    *float64                        `yaml:"title_multiplier"`
	KeywordGroups      map[string]scoring.KeywordGroup `yaml:"keyword_groups"`
	NegativeKeywords   map[string]float64              `yaml:"negative_keywords"`
}

// DefaultConfig returns the built-in configuration used when no pipeline
// file exists.
func DefaultConfig() *Config {
	return &Config{
		Queries: []string{
			"global conflict overview",
			"ukraine war updates",
			"middle east security situation",
			"political instability in africa",
			"asia pacific tensions",
			"global humanitarian aid efforts",
			"major international disputes",
		},
		ArticlesPerQuery:   DefaultArticlesPerQuery,
		RelevanceThreshold: DefaultRelevanceThreshold,
		MinTextLength:      DefaultMinTextLength,
		SnippetMaxLength:   DefaultSnippetMaxLength,
		TitleMultiplier:    scoring.DefaultTitleMultiplier,
		Groups:             scoring.DefaultGroups(),
		Negatives:          scoring.DefaultNegatives(),
	}
}

// LoadConfig reads the pipeline YAML file, falling back to built-in
// defaults for the file as a whole and for any field it leaves unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline config: %w", err)
	}

	config := DefaultConfig()

	if len(raw.Queries) > 0 {
		config.Queries = raw.Queries
	}
	if raw.ArticlesPerQuery > 0 {
		config.ArticlesPerQuery = raw.ArticlesPerQuery
	}
	if raw.RelevanceThreshold != nil {
		config.RelevanceThreshold = *raw.RelevanceThreshold
	}
	if raw.MinTextLength > 0 {
		config.MinTextLength = raw.MinTextLength
	}
	if raw.SnippetMaxLength > 0 {
		config.SnippetMaxLength = raw.SnippetMaxLength
	}
	if raw.TitleMultiplier != nil {
		config.TitleMultiplier = *raw.TitleMultiplier
	}
	if len(raw.KeywordGroups) > 0 {
		names := make([]string, 0, len(raw.KeywordGroups))
		for name := range raw.KeywordGroups {
			names = append(names, name)
		}
		sort.Strings(names)

		groups := make([]scoring.KeywordGroup, 0, len(names))
		for _, name := range names {
			group := raw.KeywordGroups[name]
			group.Name = name
			if len(group.Keywords) == 0 {
				return nil, fmt.Errorf("keyword group %q has no keywords", name)
			}
			if group.Weight <= 0 {
				return nil, fmt.Errorf("keyword group %q has non-positive weight", name)
			}
			groups = append(groups, group)
		}
		config.Groups = groups
	}
	if len(raw.NegativeKeywords) > 0 {
		config.Negatives = raw.NegativeKeywords
	}

	return config, nil
}
