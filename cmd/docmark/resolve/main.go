package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-docmark/cmd/docmark/internal/bootstrap"
	"github.com/goliatone/go-docmark/internal/commands/batch"
)

var runtimeBuilder = bootstrap.BuildRuntime

func main() {
	if err := runResolve(os.Args[1:]); err != nil {
		log.Fatalf("docmark resolve: %v", err)
	}
}

func runResolve(args []string) error {
	fs := flag.NewFlagSet("docmark-resolve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	outputDir := fs.String("output", "", "Directory holding the converted Markdown batch")
	fallback := fs.String("fallback", "", "Fallback style for unresolvable links (bold, italic, plain, none)")
	verbose := fs.Bool("verbose", false, "Log every recorded issue instead of per-reason counts")
	logLevel := fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (console, json)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	runtime, err := runtimeBuilder(bootstrap.Options{
		LogLevel:  *logLevel,
		LogFormat: *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap runtime: %w", err)
	}

	handler := batch.NewResolveHandler(runtime.Builder, runtime.Logger)
	cmd := batch.ResolveCommand{
		ConfigPath:    *configPath,
		OutputDir:     *outputDir,
		FallbackStyle: *fallback,
		Verbose:       *verbose,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute resolve command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "link resolution completed")
	return nil
}
