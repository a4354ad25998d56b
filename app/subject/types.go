package subject

import "strings"

type Config struct {
	Subject Subject       `yaml:"subject"`
	Sources SourcesConfig `yaml:"sources"`
	Summary SummaryConfig `yaml:"summary"`
	Enrich  EnrichConfig  `yaml:"enrich"`
	Limits  LimitsConfig  `yaml:"limits"`
}

type Subject struct {
	Name     string   `yaml:"name"`
	Query    string   `yaml:"query"`
	Keywords []string `yaml:"keywords"`
	Language string   `yaml:"language"`
}

type SourcesConfig struct {
	NewsAPI    NewsAPIConfig    `yaml:"newsapi"`
	GoogleNews GoogleNewsConfig `yaml:"google_news"`
	PYMNTS     PYMNTSConfig     `yaml:"pymnts"`
}

type NewsAPIConfig struct {
	Enabled  bool `yaml:"enabled"`
	PageSize int  `yaml:"page_size"`
}

type GoogleNewsConfig struct {
	Enabled bool   `yaml:"enabled"`
	FeedURL string `yaml:"feed_url"`
}

type PYMNTSConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListingURL string `yaml:"listing_url"`
}

type SummaryConfig struct {
	Sentences int `yaml:"sentences"`
}

type EnrichConfig struct {
	MaxChars int `yaml:"max_chars"`
}

type LimitsConfig struct {
	MaxItems int `yaml:"max_items"`
}

// Matches reports whether the text mentions the subject: a case-insensitive
// containment check against any configured keyword.
func (s Subject) Matches(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range s.Keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// Slug returns the subject name in file-name form, used to build the
// digest file name.
func (s Subject) Slug() string {
	return strings.ToLower(strings.Join(strings.Fields(s.Name), "-"))
}
