package runtimeconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.EntityTypes = []string{"spells"}
	return cfg
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"missing source", func(c *Config) { c.SourceDir = "" }, ErrSourceDirRequired},
		{"missing output", func(c *Config) { c.OutputDir = "" }, ErrOutputDirRequired},
		{"no entity types", func(c *Config) { c.EntityTypes = nil }, ErrEntityTypesRequired},
		{"bad style", func(c *Config) { c.Fallback.Style = "sparkly" }, ErrFallbackStyleInvalid},
		{"bad step", func(c *Config) { c.Fallback.MaxMatchStep = 13 }, ErrMaxMatchStepInvalid},
		{"bad workers", func(c *Config) { c.Workers = -1 }, ErrWorkersInvalid},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, ErrLoggingLevelInvalid},
	}

	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docmark.yml")
	data := `
source_dir: htmlsrc
site_url: https://www.example.com
entity_types: [spells, monsters]
aliases:
  /sources/basic-rules-2014: /sources/basic-rules
fallback:
  style: italic
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SourceDir != "htmlsrc" {
		t.Fatalf("SourceDir = %q", cfg.SourceDir)
	}
	if cfg.OutputDir != "output" {
		t.Fatalf("defaults not preserved, OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Fallback.Style != "italic" {
		t.Fatalf("Fallback.Style = %q", cfg.Fallback.Style)
	}
	if cfg.Aliases["/sources/basic-rules-2014"] != "/sources/basic-rules" {
		t.Fatalf("Aliases = %#v", cfg.Aliases)
	}
}

func TestNormalizedFillsOptionalFields(t *testing.T) {
	cfg := Config{SourceDir: "a", OutputDir: "b"}.Normalized()
	if cfg.OutputExt != ".md" || cfg.ContentSelector != "body" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Fallback.Strong != "**" || cfg.Fallback.Emphasis != "*" {
		t.Fatalf("fallback = %+v", cfg.Fallback)
	}
	if cfg.Aliases == nil {
		t.Fatal("Aliases must be non-nil after Normalized")
	}
}
