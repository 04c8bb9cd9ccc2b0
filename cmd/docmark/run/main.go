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
	if err := runPipeline(os.Args[1:]); err != nil {
		log.Fatalf("docmark run: %v", err)
	}
}

func runPipeline(args []string) error {
	fs := flag.NewFlagSet("docmark-run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	sourceDir := fs.String("source", "", "Directory holding the HTML batch")
	outputDir := fs.String("output", "", "Directory receiving the Markdown batch")
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

	handler := batch.NewRunHandler(runtime.Builder, runtime.Logger)
	cmd := batch.RunCommand{
		ConfigPath: *configPath,
		SourceDir:  *sourceDir,
		OutputDir:  *outputDir,
		Verbose:    *verbose,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute run command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "pipeline completed")
	return nil
}
