// Package resolve rewrites every internal Markdown link in the converted
// batch so it points at the correct local output file and heading. Resolution
// runs one pass over the written documents; the document set, entity index,
// and alias table are fully built and frozen before the pass starts, which
// makes each document's read-resolve-write cycle independent and safe to run
// on a bounded worker pool.
package resolve

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-docmark/anchors"
	"github.com/goliatone/go-docmark/documents"
	"github.com/goliatone/go-docmark/entities"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/match"
	"github.com/goliatone/go-docmark/pkg/interfaces"
	"github.com/goliatone/go-docmark/urls"
)

var (
	linkPattern = regexp.MustCompile(`\[([^\[\]]*)\]\(([^()\s]+)\)`)

	imageExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true,
		".gif": true, ".webp": true, ".svg": true,
	}
)

// Config tunes one resolution pass.
type Config struct {
	Style FallbackStyle
	// Strong and Emphasis are the delimiters used to render fallback text.
	Strong   string
	Emphasis string
	// MaxStep truncates the anchor-matching cascade; zero means the full
	// cascade.
	MaxStep int
	// Excluded lists canonical paths that are intentionally left unresolved.
	Excluded []string
	// Workers bounds the per-document worker pool; zero means GOMAXPROCS.
	Workers int
	// OutputExt is the extension of local output files, ".md" by default.
	OutputExt string
	Logger    interfaces.Logger
}

// Resolver drives the link rewrite pass.
type Resolver struct {
	cfg        Config
	classifier *urls.Classifier
	set        *documents.Set
	index      *entities.Index
	aliases    urls.AliasTable
	excluded   map[string]bool
	logger     interfaces.Logger
}

// New builds a Resolver over frozen lookup structures. The set, index, and
// alias table must not be mutated once Run is called.
func New(cfg Config, classifier *urls.Classifier, set *documents.Set, index *entities.Index, aliases urls.AliasTable) *Resolver {
	if cfg.Style == "" {
		cfg.Style = FallbackNone
	}
	if cfg.Strong == "" {
		cfg.Strong = "**"
	}
	if cfg.Emphasis == "" {
		cfg.Emphasis = "*"
	}
	if cfg.OutputExt == "" {
		cfg.OutputExt = ".md"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	excluded := make(map[string]bool, len(cfg.Excluded))
	for _, path := range cfg.Excluded {
		excluded[aliases.Apply(path)] = true
	}

	return &Resolver{
		cfg:        cfg,
		classifier: classifier,
		set:        set,
		index:      index,
		aliases:    aliases,
		excluded:   excluded,
		logger:     logger,
	}
}

type fileResult struct {
	issues    []Issue
	rewritten bool
	err       *DocumentError
}

// Run resolves every written document concurrently. I/O failures are recorded
// per document and never abort the pass; the only returned error is context
// cancellation.
func (r *Resolver) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for _, doc := range r.set.Docs() {
		if !doc.Written {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result := r.processFile(doc)
			mu.Lock()
			report.merge(result)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

func (r *Resolver) processFile(doc *documents.Descriptor) fileResult {
	logger := logging.DocumentLogger(r.logger, doc.Path)

	content, err := os.ReadFile(doc.Path)
	if err != nil {
		return fileResult{err: &DocumentError{Path: doc.Path, Err: fmt.Errorf("read: %w", err)}}
	}

	resolved, issues := r.ResolveContent(doc, string(content))
	if resolved == string(content) {
		logger.Debug("document unchanged")
		return fileResult{issues: issues}
	}

	if err := os.WriteFile(doc.Path, []byte(resolved), 0o644); err != nil {
		return fileResult{issues: issues, err: &DocumentError{Path: doc.Path, Err: fmt.Errorf("write: %w", err)}}
	}
	logger.Debug("document rewritten", "issues", len(issues))
	return fileResult{issues: issues, rewritten: true}
}

// ResolveContent rewrites every Markdown link in content that resolution can
// map to a local target, and reports the links it could not map. Lines whose
// first non-blank character is "!" carry image syntax and are skipped
// verbatim.
func (r *Resolver) ResolveContent(doc *documents.Descriptor, content string) (string, []Issue) {
	var issues []Issue

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if isImageLine(line) {
			continue
		}
		lines[i] = linkPattern.ReplaceAllStringFunc(line, func(link string) string {
			m := linkPattern.FindStringSubmatch(link)
			replacement, issue := r.resolveLink(doc, m[1], m[2])
			if issue != nil {
				issues = append(issues, *issue)
			}
			return replacement
		})
	}

	return strings.Join(lines, "\n"), issues
}

func (r *Resolver) resolveLink(doc *documents.Descriptor, text, target string) (string, *Issue) {
	original := fmt.Sprintf("[%s](%s)", text, target)

	// Already-resolved navigation links and image/local file references are
	// never reclassified.
	if r.isLocalFile(target) || isImageFile(target) {
		return original, nil
	}

	// Same-page anchors use the exact HTML id mapping; a miss stays a dead
	// same-page link rather than degrading to text.
	if strings.HasPrefix(target, "#") {
		return r.resolveSamePage(doc, text, target), nil
	}

	normalized := r.classifier.Normalize(target)
	if r.classifier.Classify(normalized) == urls.KindExternal {
		return original, nil
	}

	path, anchor := urls.SplitAnchor(normalized)
	path = r.aliases.Apply(path)

	if r.excluded[path] {
		// Intentionally unresolved; formatted like a failure but not
		// reported as one.
		return r.fallbackText(text, original), nil
	}

	switch r.classifier.Classify(path) {
	case urls.KindEntity:
		return r.resolveEntity(doc, text, original, path, anchor)
	case urls.KindSource:
		return r.resolveSource(doc, text, original, path, anchor)
	default:
		return original, nil
	}
}

func (r *Resolver) resolveSamePage(doc *documents.Descriptor, text, target string) string {
	id := strings.TrimPrefix(target, "#")
	if doc.Anchors == nil {
		return fmt.Sprintf("[%s](%s)", text, target)
	}
	anchor, ok := doc.Anchors.HTMLIDToAnchor[id]
	if !ok {
		return fmt.Sprintf("[%s](%s)", text, target)
	}
	return fmt.Sprintf("[%s](#%s)", text, anchors.Public(anchor))
}

func (r *Resolver) resolveEntity(doc *documents.Descriptor, text, original, path, anchor string) (string, *Issue) {
	target, ok := r.index.Lookup(path)
	if !ok {
		return r.fallback(doc, text, original, ReasonEntityNotFound)
	}

	resolvedAnchor := target.Anchor
	if anchor != "" {
		// An explicit per-link anchor overrides the indexed one when it
		// resolves against the target document.
		if targetDoc := r.set.ByID(target.FileID); targetDoc != nil {
			if override, ok := r.matchAnchor(targetDoc, anchor); ok {
				resolvedAnchor = override
			}
		}
	}

	return r.link(doc, text, target.FileID, resolvedAnchor), nil
}

func (r *Resolver) resolveSource(doc *documents.Descriptor, text, original, path, anchor string) (string, *Issue) {
	if anchor == "" {
		if book := r.set.BookByURL(path); book != nil {
			return fmt.Sprintf("[%s](%s%s)", text, book.ID, r.cfg.OutputExt), nil
		}
		if r.set.ByURL(path) != nil {
			// A document-level link with no anchor has no valid Markdown
			// target; downgrade it to formatted text.
			return r.fallback(doc, text, original, ReasonHeaderLink)
		}
		return r.fallback(doc, text, original, ReasonURLNotInMapping)
	}

	targetDoc := r.set.ByURL(path)
	if targetDoc == nil {
		return r.fallback(doc, text, original, ReasonURLNotInMapping)
	}
	if targetDoc.Anchors.Empty() {
		return r.fallback(doc, text, original, ReasonNoAnchors)
	}

	resolvedAnchor, ok := r.matchAnchor(targetDoc, anchor)
	if !ok {
		return r.fallback(doc, text, original, ReasonAnchorNotFound)
	}

	return r.link(doc, text, targetDoc.ID, resolvedAnchor), nil
}

// matchAnchor resolves a link anchor against a target document: the exact
// HTML id mapping first, then the matching cascade over the valid anchor set.
func (r *Resolver) matchAnchor(targetDoc *documents.Descriptor, anchor string) (string, bool) {
	if targetDoc.Anchors == nil {
		return "", false
	}
	if mapped, ok := targetDoc.Anchors.HTMLIDToAnchor[anchor]; ok {
		return mapped, true
	}

	search := anchors.Generate(anchor)
	if search == "" {
		return "", false
	}
	if m, ok := match.Find(search, targetDoc.Anchors.Valid, r.cfg.MaxStep); ok {
		return m.Anchor, true
	}
	return "", false
}

// link renders a resolved target, collapsing self-references to a same-page
// anchor link.
func (r *Resolver) link(doc *documents.Descriptor, text, fileID, anchor string) string {
	public := anchors.Public(anchor)
	if fileID == doc.ID {
		return fmt.Sprintf("[%s](#%s)", text, public)
	}
	if anchor == "" {
		return fmt.Sprintf("[%s](%s%s)", text, fileID, r.cfg.OutputExt)
	}
	return fmt.Sprintf("[%s](%s%s#%s)", text, fileID, r.cfg.OutputExt, public)
}

func (r *Resolver) fallback(doc *documents.Descriptor, text, original, reason string) (string, *Issue) {
	if r.cfg.Style == FallbackNone {
		return original, nil
	}
	issue := &Issue{Path: doc.Path, Text: original, Reason: reason}
	return r.fallbackText(text, original), issue
}

func (r *Resolver) fallbackText(text, original string) string {
	switch r.cfg.Style {
	case FallbackBold:
		return r.cfg.Strong + text + r.cfg.Strong
	case FallbackItalic:
		return r.cfg.Emphasis + text + r.cfg.Emphasis
	case FallbackPlain:
		return text
	default:
		return original
	}
}

// isLocalFile reports whether target already denotes a local output file,
// optionally with an anchor.
func (r *Resolver) isLocalFile(target string) bool {
	path, _ := urls.SplitAnchor(target)
	return strings.HasSuffix(path, r.cfg.OutputExt) && !strings.Contains(path, "/")
}

func isImageFile(target string) bool {
	path, _ := urls.SplitAnchor(target)
	if i := strings.LastIndex(path, "."); i >= 0 {
		return imageExtensions[strings.ToLower(path[i:])]
	}
	return false
}

func isImageLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "!")
}
