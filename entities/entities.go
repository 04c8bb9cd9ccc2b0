// Package entities builds the cross-reference index that maps entity URLs
// (spells, monsters, items, ...) to the document and anchor where each entity
// is actually described. The index is built exactly once per run, after every
// document has been processed and before any link is rewritten, because a
// document may reference an entity whose heading lives anywhere in the batch.
package entities

import (
	"github.com/goliatone/go-docmark/documents"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/match"
	"github.com/goliatone/go-docmark/pkg/interfaces"
	"github.com/goliatone/go-docmark/urls"
)

// Target is where an entity URL resolves to.
type Target struct {
	FileID string
	Anchor string
}

// Index is the completed, read-only entity lookup.
type Index struct {
	targets    map[string]Target
	unresolved []urls.EntityRef
}

// Lookup returns the target for a canonical entity URL.
func (i *Index) Lookup(canonicalURL string) (Target, bool) {
	if i == nil {
		return Target{}, false
	}
	t, ok := i.targets[canonicalURL]
	return t, ok
}

// Len reports how many entity URLs resolved.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.targets)
}

// Unresolved lists the references that matched no document anchor. Tracked for
// reporting; never fatal.
func (i *Index) Unresolved() []urls.EntityRef {
	if i == nil {
		return nil
	}
	return i.unresolved
}

// BuilderConfig configures index construction.
type BuilderConfig struct {
	// Locations restricts, per entity type, the canonical URL prefixes of the
	// documents allowed to host that type. A missing entry means every
	// document is searched.
	Locations map[string][]string
	// Aliases canonicalizes the location prefixes and reference URLs.
	Aliases urls.AliasTable
	Logger  interfaces.Logger
}

// Builder locates the best (file, anchor) pair for every distinct entity URL.
type Builder struct {
	locations map[string][]string
	aliases   urls.AliasTable
	logger    interfaces.Logger
}

// NewBuilder constructs a Builder. Location prefixes are aliased up front so
// candidate filtering always compares canonical keys.
func NewBuilder(cfg BuilderConfig) *Builder {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	locations := make(map[string][]string, len(cfg.Locations))
	for entityType, prefixes := range cfg.Locations {
		aliased := make([]string, 0, len(prefixes))
		for _, prefix := range prefixes {
			aliased = append(aliased, cfg.Aliases.Apply(prefix))
		}
		locations[entityType] = aliased
	}

	return &Builder{
		locations: locations,
		aliases:   cfg.Aliases,
		logger:    logger,
	}
}

// Build resolves every reference against the frozen document set. References
// are deduplicated by canonical URL; the first occurrence wins. For each URL
// the builder keeps the lowest-step match across all candidate documents,
// short-circuiting on a step-1 exact hit.
func (b *Builder) Build(refs []urls.EntityRef, set *documents.Set) *Index {
	index := &Index{targets: make(map[string]Target, len(refs))}

	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		canonical := b.aliases.Apply(ref.URL)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true

		target, step, ok := b.locate(ref, set)
		if !ok {
			ref.URL = canonical
			index.unresolved = append(index.unresolved, ref)
			b.logger.Debug("entity unresolved", "url", canonical, "type", ref.Type, "slug", ref.Slug)
			continue
		}
		index.targets[canonical] = target
		b.logger.Debug("entity located",
			"url", canonical,
			"file", target.FileID,
			"anchor", target.Anchor,
			"strategy", match.StepName(step),
		)
	}

	b.logger.Info("entity index built", "resolved", len(index.targets), "unresolved", len(index.unresolved))
	return index
}

func (b *Builder) locate(ref urls.EntityRef, set *documents.Set) (Target, int, bool) {
	if ref.Slug == "" {
		return Target{}, 0, false
	}

	candidates := set.DocsUnderPrefix(b.locations[ref.Type])

	best := Target{}
	bestStep := match.MaxStep + 1
	for _, doc := range candidates {
		if doc.Anchors.Empty() {
			continue
		}
		m, ok := match.Find(ref.Slug, doc.Anchors.Valid, 0)
		if !ok || m.Step >= bestStep {
			continue
		}
		best = Target{FileID: doc.ID, Anchor: m.Anchor}
		bestStep = m.Step
		if bestStep == 1 {
			break
		}
	}

	return best, bestStep, bestStep <= match.MaxStep
}
