package batch

import (
	"context"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-docmark"
	"github.com/goliatone/go-docmark/internal/commands"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/pkg/interfaces"
)

const (
	convertOperation = "batch.convert"
	resolveOperation = "batch.resolve"
	runOperation     = "batch.run"
)

var (
	_ command.Commander[ConvertCommand] = (*ConvertHandler)(nil)
	_ command.Commander[ResolveCommand] = (*ResolveHandler)(nil)
	_ command.Commander[RunCommand]     = (*RunHandler)(nil)
)

// ModuleBuilder assembles a pipeline module from a resolved configuration.
// Hosts supply it so handlers stay decoupled from logger wiring.
type ModuleBuilder func(cfg docmark.Config) (*docmark.Module, error)

func buildConfig(path string) (docmark.Config, error) {
	if strings.TrimSpace(path) == "" {
		return docmark.DefaultConfig(), nil
	}
	return docmark.LoadConfig(path)
}

// ConvertHandler runs the HTML to Markdown conversion pass.
type ConvertHandler struct {
	inner *commands.Handler[ConvertCommand]
}

// NewConvertHandler creates a handler bound to the supplied module builder.
func NewConvertHandler(builder ModuleBuilder, logger interfaces.Logger, opts ...commands.HandlerOption[ConvertCommand]) *ConvertHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ConvertCommand) error {
		cfg, err := buildConfig(msg.ConfigPath)
		if err != nil {
			return err
		}
		if msg.SourceDir != "" {
			cfg.SourceDir = msg.SourceDir
		}
		if msg.OutputDir != "" {
			cfg.OutputDir = msg.OutputDir
		}

		module, err := builder(cfg)
		if err != nil {
			return err
		}

		result, err := module.Convert(ctx)
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"converted":   result.Converted,
			"entity_refs": len(result.Refs),
			"error_count": len(result.Errors),
		}).Info("batch.convert.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertCommand]{
		commands.WithLogger[ConvertCommand](baseLogger),
		commands.WithOperation[ConvertCommand](convertOperation),
		commands.WithMessageFields(func(msg ConvertCommand) map[string]any {
			return commandFields(msg.ConfigPath, msg.SourceDir, msg.OutputDir)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ConvertCommand].
func (h *ConvertHandler) Execute(ctx context.Context, msg ConvertCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ResolveHandler rewrites links in an already converted output directory.
type ResolveHandler struct {
	inner *commands.Handler[ResolveCommand]
}

// NewResolveHandler creates a handler bound to the supplied module builder.
func NewResolveHandler(builder ModuleBuilder, logger interfaces.Logger, opts ...commands.HandlerOption[ResolveCommand]) *ResolveHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ResolveCommand) error {
		cfg, err := buildConfig(msg.ConfigPath)
		if err != nil {
			return err
		}
		if msg.OutputDir != "" {
			cfg.OutputDir = msg.OutputDir
		}
		if msg.FallbackStyle != "" {
			cfg.Fallback.Style = msg.FallbackStyle
		}

		module, err := builder(cfg)
		if err != nil {
			return err
		}

		set, loadErrs := module.LoadOutput(ctx)
		for _, loadErr := range loadErrs {
			baseLogger.Warn("batch.resolve.load_skipped", "error", loadErr)
		}

		refs, refErrs := module.CollectEntityRefs(set)
		for _, refErr := range refErrs {
			baseLogger.Warn("batch.resolve.refs_skipped", "error", refErr)
		}

		index := module.BuildEntityIndex(refs, set)
		report, err := module.Resolve(ctx, set, index)
		if err != nil {
			return err
		}

		report.Log(baseLogger, msg.Verbose)
		return nil
	}

	handlerOpts := []commands.HandlerOption[ResolveCommand]{
		commands.WithLogger[ResolveCommand](baseLogger),
		commands.WithOperation[ResolveCommand](resolveOperation),
		commands.WithMessageFields(func(msg ResolveCommand) map[string]any {
			fields := commandFields(msg.ConfigPath, "", msg.OutputDir)
			if msg.FallbackStyle != "" {
				fields["fallback_style"] = msg.FallbackStyle
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ResolveHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ResolveCommand].
func (h *ResolveHandler) Execute(ctx context.Context, msg ResolveCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RunHandler executes the full pipeline in one pass.
type RunHandler struct {
	inner *commands.Handler[RunCommand]
}

// NewRunHandler creates a handler bound to the supplied module builder.
func NewRunHandler(builder ModuleBuilder, logger interfaces.Logger, opts ...commands.HandlerOption[RunCommand]) *RunHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RunCommand) error {
		cfg, err := buildConfig(msg.ConfigPath)
		if err != nil {
			return err
		}
		if msg.SourceDir != "" {
			cfg.SourceDir = msg.SourceDir
		}
		if msg.OutputDir != "" {
			cfg.OutputDir = msg.OutputDir
		}

		module, err := builder(cfg)
		if err != nil {
			return err
		}

		result, err := module.Run(ctx)
		if err != nil {
			return err
		}

		result.Report.Log(baseLogger, msg.Verbose)
		return nil
	}

	handlerOpts := []commands.HandlerOption[RunCommand]{
		commands.WithLogger[RunCommand](baseLogger),
		commands.WithOperation[RunCommand](runOperation),
		commands.WithMessageFields(func(msg RunCommand) map[string]any {
			return commandFields(msg.ConfigPath, msg.SourceDir, msg.OutputDir)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RunHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RunCommand].
func (h *RunHandler) Execute(ctx context.Context, msg RunCommand) error {
	return h.inner.Execute(ctx, msg)
}

func commandFields(configPath, sourceDir, outputDir string) map[string]any {
	fields := map[string]any{}
	if configPath != "" {
		fields["config_path"] = configPath
	}
	if sourceDir != "" {
		fields["source_dir"] = sourceDir
	}
	if outputDir != "" {
		fields["output_dir"] = outputDir
	}
	return fields
}
