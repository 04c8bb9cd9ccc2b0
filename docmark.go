// Package docmark converts a batch of cross-linked HTML documents into a
// batch of cross-linked Markdown documents, rewriting every internal
// hyperlink so it points at the correct local output file and heading. The
// conversion pass builds every lookup structure the link resolver needs; the
// resolve pass then rewrites the written documents in place.
package docmark

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goliatone/go-docmark/documents"
	"github.com/goliatone/go-docmark/entities"
	"github.com/goliatone/go-docmark/internal/htmlconv"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/internal/markdown"
	"github.com/goliatone/go-docmark/pkg/interfaces"
	"github.com/goliatone/go-docmark/resolve"
	"github.com/goliatone/go-docmark/urls"
)

// Module wires the conversion pipeline for one run.
type Module struct {
	cfg        Config
	classifier *urls.Classifier
	aliases    urls.AliasTable
	converter  *htmlconv.Converter
	logs       interfaces.LoggerProvider
}

// Option customizes module construction.
type Option func(*Module)

// WithLoggerProvider injects the logging provider used by every pipeline
// stage.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.logs = provider
	}
}

// New validates cfg and assembles a Module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()

	m := &Module{
		cfg:     cfg,
		aliases: urls.AliasTable(cfg.Aliases),
		classifier: urls.NewClassifier(urls.Config{
			SiteURL:      cfg.SiteURL,
			EntityTypes:  cfg.EntityTypes,
			SourcePrefix: cfg.SourcePrefix,
		}),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.converter = htmlconv.New(m.classifier, htmlconv.Config{
		ContentSelector: cfg.ContentSelector,
		Logger:          logging.ConvertLogger(m.logs),
	})

	return m, nil
}

// Config returns the normalized configuration the module runs with.
func (m *Module) Config() Config {
	return m.cfg
}

// BuildEntityIndex locates every referenced entity inside the frozen document
// set. It must complete before Resolve starts.
func (m *Module) BuildEntityIndex(refs []urls.EntityRef, set *documents.Set) *entities.Index {
	builder := entities.NewBuilder(entities.BuilderConfig{
		Locations: m.cfg.EntityLocations,
		Aliases:   m.aliases,
		Logger:    logging.EntitiesLogger(m.logs),
	})
	return builder.Build(refs, set)
}

// Resolve rewrites every written document's links against the frozen set and
// entity index.
func (m *Module) Resolve(ctx context.Context, set *documents.Set, index *entities.Index) (*resolve.Report, error) {
	style, err := resolve.ParseFallbackStyle(m.cfg.Fallback.Style)
	if err != nil {
		return nil, err
	}

	resolver := resolve.New(resolve.Config{
		Style:     style,
		Strong:    m.cfg.Fallback.Strong,
		Emphasis:  m.cfg.Fallback.Emphasis,
		MaxStep:   m.cfg.Fallback.MaxMatchStep,
		Excluded:  m.cfg.Excluded,
		Workers:   m.cfg.Workers,
		OutputExt: m.cfg.OutputExt,
		Logger:    logging.ResolveLogger(m.logs),
	}, m.classifier, set, index, m.aliases)

	return resolver.Run(ctx)
}

// Run executes the full pipeline: convert the HTML batch, build the entity
// index, then resolve every link.
func (m *Module) Run(ctx context.Context) (*RunResult, error) {
	converted, err := m.Convert(ctx)
	if err != nil {
		return nil, err
	}

	index := m.BuildEntityIndex(converted.Refs, converted.Set)
	report, err := m.Resolve(ctx, converted.Set, index)
	if err != nil {
		return nil, err
	}

	return &RunResult{Convert: converted, Index: index, Report: report}, nil
}

// LoadOutput rebuilds the document set from a previously converted output
// directory, for resolve-only reruns.
func (m *Module) LoadOutput(ctx context.Context) (*documents.Set, []error) {
	loader := markdown.NewLoader(os.DirFS(m.cfg.OutputDir), markdown.LoaderConfig{
		Extension: m.cfg.OutputExt,
	})
	docs, errs := loader.LoadDirectory(ctx, ".")
	for _, doc := range docs {
		doc.Path = filepath.Join(m.cfg.OutputDir, doc.Path)
	}

	return documents.NewSet(docs, m.books(), m.aliases), errs
}

// RunResult aggregates the outcome of a full pipeline run.
type RunResult struct {
	Convert *ConvertResult
	Index   *entities.Index
	Report  *resolve.Report
}
