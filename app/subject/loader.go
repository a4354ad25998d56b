package subject

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const defaultPYMNTSListingURL = "https://www.pymnts.com/company/paypal/"

// Default returns the built-in PayPal configuration. Load layers a YAML
// file on top of it, so a missing or partial file keeps these values.
func Default() *Config {
	return &Config{
		Subject: Subject{
			Name:     "PayPal",
			Query:    "PayPal OR PYPL",
			Keywords: []string{"paypal", "pypl"},
			Language: "en",
		},
		Sources: SourcesConfig{
			NewsAPI:    NewsAPIConfig{Enabled: true, PageSize: 30},
			GoogleNews: GoogleNewsConfig{Enabled: true},
			PYMNTS:     PYMNTSConfig{Enabled: true, ListingURL: defaultPYMNTSListingURL},
		},
		Summary: SummaryConfig{Sentences: 3},
		Enrich:  EnrichConfig{MaxChars: 2000},
		Limits:  LimitsConfig{MaxItems: 30},
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("Subject file not found, using built-in defaults", "path", path)
			applyDerived(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read subject file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse subject file: %w", err)
	}

	applyDerived(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid subject config %s: %w", path, err)
	}

	slog.Debug("Subject configuration loaded", "path", path, "subject", cfg.Subject.Name, "keywords", len(cfg.Subject.Keywords))

	return cfg, nil
}

func applyDerived(cfg *Config) {
	if cfg.Subject.Query == "" {
		cfg.Subject.Query = cfg.Subject.Name
	}
	if len(cfg.Subject.Keywords) == 0 {
		cfg.Subject.Keywords = []string{strings.ToLower(cfg.Subject.Name)}
	}
	if _, err := language.Parse(cfg.Subject.Language); err != nil {
		slog.Warn("Invalid language tag, falling back to 'en'", "language", cfg.Subject.Language, "error", err)
		cfg.Subject.Language = "en"
	}
}

func validate(cfg *Config) error {
	if cfg.Subject.Name == "" {
		return fmt.Errorf("subject name is required")
	}

	positiveFields := map[string]int{
		"summary sentences": cfg.Summary.Sentences,
		"enrich max_chars":  cfg.Enrich.MaxChars,
		"max items":         cfg.Limits.MaxItems,
		"newsapi page_size": cfg.Sources.NewsAPI.PageSize,
	}

	for fieldName, fieldValue := range positiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	if cfg.Sources.PYMNTS.Enabled && cfg.Sources.PYMNTS.ListingURL == "" {
		return fmt.Errorf("pymnts listing_url is required when the source is enabled")
	}

	return nil
}
