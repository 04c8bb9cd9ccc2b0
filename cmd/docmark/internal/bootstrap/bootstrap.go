// Package bootstrap wires the shared runtime the docmark CLI verbs build on:
// a configured logger provider and a module builder bound to it.
package bootstrap

import (
	"fmt"

	"github.com/goliatone/go-docmark"
	"github.com/goliatone/go-docmark/internal/commands"
	"github.com/goliatone/go-docmark/internal/commands/batch"
	"github.com/goliatone/go-docmark/internal/logging/gologger"
	"github.com/goliatone/go-docmark/pkg/interfaces"
)

// Options captures configuration for docmark CLI bootstraps.
type Options struct {
	LogLevel  string
	LogFormat string
	AddSource bool
	// LoggerProvider overrides the default go-logger backed provider.
	LoggerProvider interfaces.LoggerProvider
}

// Runtime bundles what a CLI verb needs to dispatch batch commands.
type Runtime struct {
	Builder  batch.ModuleBuilder
	Logger   interfaces.Logger
	Provider interfaces.LoggerProvider
}

// BuildRuntime assembles the CLI runtime from the supplied options.
func BuildRuntime(opts Options) (*Runtime, error) {
	provider := opts.LoggerProvider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     opts.LogLevel,
			Format:    opts.LogFormat,
			AddSource: opts.AddSource,
		})
		if err != nil {
			return nil, fmt.Errorf("initialise logger: %w", err)
		}
		provider = built
	}

	builder := func(cfg docmark.Config) (*docmark.Module, error) {
		return docmark.New(cfg, docmark.WithLoggerProvider(provider))
	}

	return &Runtime{
		Builder:  builder,
		Logger:   commands.CommandLogger(provider, "batch"),
		Provider: provider,
	}, nil
}
