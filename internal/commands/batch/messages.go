// Package batch exposes the conversion pipeline's operations as go-command
// messages so hosts can dispatch them through a shared command runtime.
package batch

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-docmark/resolve"
)

const (
	convertMessageType = "docmark.batch.convert"
	resolveMessageType = "docmark.batch.resolve"
	runMessageType     = "docmark.batch.run"
)

// ConvertCommand converts the HTML batch under SourceDir into Markdown under
// OutputDir without resolving links. ConfigPath, when set, loads the base
// configuration the directory fields override.
type ConvertCommand struct {
	// ConfigPath selects a YAML configuration file to load defaults from.
	ConfigPath string `json:"config_path,omitempty"`
	// SourceDir overrides the configured input directory.
	SourceDir string `json:"source_dir,omitempty"`
	// OutputDir overrides the configured output directory.
	OutputDir string `json:"output_dir,omitempty"`
}

// Type implements command.Message.
func (ConvertCommand) Type() string { return convertMessageType }

// Validate ensures the command can produce a runnable configuration.
func (cmd ConvertCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ConfigPath, validation.By(func(any) error {
			if strings.TrimSpace(cmd.ConfigPath) == "" &&
				(strings.TrimSpace(cmd.SourceDir) == "" || strings.TrimSpace(cmd.OutputDir) == "") {
				return validation.NewError(
					"docmark.batch.convert.target_required",
					"config path or both source and output directories are required",
				)
			}
			return nil
		})),
	)
}

// ResolveCommand rewrites links in an already converted output directory,
// rebuilding the document set and entity index from the written files.
type ResolveCommand struct {
	// ConfigPath selects a YAML configuration file to load defaults from.
	ConfigPath string `json:"config_path,omitempty"`
	// OutputDir overrides the configured output directory.
	OutputDir string `json:"output_dir,omitempty"`
	// FallbackStyle overrides how unresolvable links are rendered.
	FallbackStyle string `json:"fallback_style,omitempty"`
	// Verbose logs every recorded issue instead of per-reason counts.
	Verbose bool `json:"verbose,omitempty"`
}

// Type implements command.Message.
func (ResolveCommand) Type() string { return resolveMessageType }

// Validate ensures the command names a resolvable output batch.
func (cmd ResolveCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ConfigPath, validation.By(func(any) error {
			if strings.TrimSpace(cmd.ConfigPath) == "" && strings.TrimSpace(cmd.OutputDir) == "" {
				return validation.NewError(
					"docmark.batch.resolve.target_required",
					"config path or output directory is required",
				)
			}
			return nil
		})),
		validation.Field(&cmd.FallbackStyle, validation.By(func(any) error {
			if _, err := resolve.ParseFallbackStyle(cmd.FallbackStyle); err != nil {
				return validation.NewError(
					"docmark.batch.resolve.fallback_style_invalid",
					"fallback style must be bold, italic, plain, or none",
				)
			}
			return nil
		})),
	)
}

// RunCommand executes the full pipeline: convert the batch, build the entity
// index, resolve every link.
type RunCommand struct {
	// ConfigPath selects a YAML configuration file to load defaults from.
	ConfigPath string `json:"config_path,omitempty"`
	// SourceDir overrides the configured input directory.
	SourceDir string `json:"source_dir,omitempty"`
	// OutputDir overrides the configured output directory.
	OutputDir string `json:"output_dir,omitempty"`
	// Verbose logs every recorded issue instead of per-reason counts.
	Verbose bool `json:"verbose,omitempty"`
}

// Type implements command.Message.
func (RunCommand) Type() string { return runMessageType }

// Validate ensures the command can produce a runnable configuration.
func (cmd RunCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ConfigPath, validation.By(func(any) error {
			if strings.TrimSpace(cmd.ConfigPath) == "" &&
				(strings.TrimSpace(cmd.SourceDir) == "" || strings.TrimSpace(cmd.OutputDir) == "") {
				return validation.NewError(
					"docmark.batch.run.target_required",
					"config path or both source and output directories are required",
				)
			}
			return nil
		})),
	)
}
