// Package runtimeconfig aggregates the settings for one conversion run.
// Fields intentionally use simple types so host applications can construct a
// Config directly or load it from a YAML file.
package runtimeconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docmark/internal/util"
	"github.com/goliatone/go-docmark/resolve"
)

var ErrSourceDirRequired = errors.New("docmark config: source directory is required")
var ErrOutputDirRequired = errors.New("docmark config: output directory is required")
var ErrEntityTypesRequired = errors.New("docmark config: at least one entity type is required")
var ErrFallbackStyleInvalid = errors.New("docmark config: fallback style is invalid")
var ErrMaxMatchStepInvalid = errors.New("docmark config: max match step must be between 0 and 12")
var ErrWorkersInvalid = errors.New("docmark config: workers must be zero or positive")
var ErrLoggingLevelInvalid = errors.New("docmark config: logging level is invalid")

// Config is the full runtime configuration for a run.
type Config struct {
	// SourceDir holds the input HTML batch.
	SourceDir string `yaml:"source_dir"`
	// OutputDir receives the converted Markdown batch.
	OutputDir string `yaml:"output_dir"`
	// SiteURL is the external domain stripped during URL normalization.
	SiteURL string `yaml:"site_url"`
	// OutputExt is the extension of generated files, ".md" by default.
	OutputExt string `yaml:"output_ext"`
	// ContentSelector picks the HTML element converted to Markdown.
	ContentSelector string `yaml:"content_selector"`
	// Workers bounds the resolve worker pool; zero means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// EntityTypes is the closed set of recognized entity path segments.
	EntityTypes []string `yaml:"entity_types"`
	// SourcePrefix marks book/collection URLs.
	SourcePrefix string `yaml:"source_prefix"`
	// Aliases maps raw URLs to the canonical URL the batch uses.
	Aliases map[string]string `yaml:"aliases"`
	// EntityLocations restricts, per entity type, where entity headings may
	// live. Missing types search every document.
	EntityLocations map[string][]string `yaml:"entity_locations"`
	// Excluded lists paths intentionally left unresolved.
	Excluded []string `yaml:"excluded"`
	// Books enumerates the collections in the batch.
	Books []BookConfig `yaml:"books"`

	Fallback FallbackConfig `yaml:"fallback"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BookConfig identifies one collection.
type BookConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FallbackConfig controls how unresolvable links are rendered.
type FallbackConfig struct {
	Style string `yaml:"style"`
	// Strong and Emphasis are the delimiters used for bold/italic fallback
	// text.
	Strong   string `yaml:"strong"`
	Emphasis string `yaml:"emphasis"`
	// MaxMatchStep truncates the anchor-matching cascade; zero means the
	// full cascade.
	MaxMatchStep int `yaml:"max_match_step"`
}

// LoggingConfig wires the go-logger provider.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// DefaultConfig returns the baseline configuration a run starts from.
func DefaultConfig() Config {
	return Config{
		SourceDir:       "source",
		OutputDir:       "output",
		OutputExt:       ".md",
		ContentSelector: "body",
		SourcePrefix:    "/sources",
		Fallback: FallbackConfig{
			Style:    string(resolve.FallbackBold),
			Strong:   "**",
			Emphasis: "*",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file over DefaultConfig.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("docmark config read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("docmark config parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.SourceDir == "" {
		return ErrSourceDirRequired
	}
	if c.OutputDir == "" {
		return ErrOutputDirRequired
	}
	if len(c.EntityTypes) == 0 {
		return ErrEntityTypesRequired
	}
	if _, err := resolve.ParseFallbackStyle(c.Fallback.Style); err != nil {
		return ErrFallbackStyleInvalid
	}
	if c.Fallback.MaxMatchStep < 0 || c.Fallback.MaxMatchStep > 12 {
		return ErrMaxMatchStepInvalid
	}
	if c.Workers < 0 {
		return ErrWorkersInvalid
	}

	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	return nil
}

// Normalized returns a copy with defaults filled in for optional fields.
func (c Config) Normalized() Config {
	c.OutputExt = util.FirstNonEmpty(c.OutputExt, ".md")
	c.ContentSelector = util.FirstNonEmpty(c.ContentSelector, "body")
	c.Fallback.Style = util.FirstNonEmpty(c.Fallback.Style, string(resolve.FallbackNone))
	c.Fallback.Strong = util.FirstNonEmpty(c.Fallback.Strong, "**")
	c.Fallback.Emphasis = util.FirstNonEmpty(c.Fallback.Emphasis, "*")
	c.Aliases = util.CloneStringMap(c.Aliases)
	return c
}
