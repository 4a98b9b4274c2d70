package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is looked up in the templates directory.
const FileName = ".templatize.yaml"

var knownExtractors = map[string]bool{"regex": true, "dom": true, "syntax": true}

// Config holds the settings of a conversion run.
type Config struct {
	// Template the generated fragments extend.
	BaseTemplate string `yaml:"base_template"`
	// Title used when a page has no <title>.
	DefaultTitle string `yaml:"default_title"`
	// Extraction strategy: regex, dom or syntax.
	Extractor string `yaml:"extractor"`
	// Extra gitignore-style rules appended after .templatizeignore.
	Exclude []string `yaml:"exclude"`

	Recursive bool `yaml:"recursive"`
	Backup    bool `yaml:"backup"`
	Jobs      int  `yaml:"jobs"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		BaseTemplate: "base.html",
		DefaultTitle: "ShopX - Thương mại điện tử",
		Extractor:    "regex",
		Backup:       true,
		Jobs:         4,
	}
}

// Load reads dir/.templatize.yaml over the defaults. A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// Validate checks value ranges and normalizes string fields.
func (c *Config) Validate() error {
	c.Extractor = strings.ToLower(strings.TrimSpace(c.Extractor))
	c.BaseTemplate = strings.TrimSpace(c.BaseTemplate)

	if c.BaseTemplate == "" {
		return fmt.Errorf("base_template must not be empty")
	}
	if !knownExtractors[c.Extractor] {
		return fmt.Errorf("unsupported extractor %q (supported: dom, regex, syntax)", c.Extractor)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be >= 1, got %d", c.Jobs)
	}
	return nil
}
