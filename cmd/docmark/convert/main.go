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
	if err := runConvert(os.Args[1:]); err != nil {
		log.Fatalf("docmark convert: %v", err)
	}
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("docmark-convert", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	sourceDir := fs.String("source", "", "Directory holding the HTML batch")
	outputDir := fs.String("output", "", "Directory receiving the Markdown batch")
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

	handler := batch.NewConvertHandler(runtime.Builder, runtime.Logger)
	cmd := batch.ConvertCommand{
		ConfigPath: *configPath,
		SourceDir:  *sourceDir,
		OutputDir:  *outputDir,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute convert command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "conversion completed")
	return nil
}
