// Package urls classifies and canonicalizes the hyperlinks found in source
// documents. Every key used against the entity index or a document lookup must
// pass through Normalize and Alias first; raw URLs are never valid map keys.
package urls

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind is the classification of a link target.
type Kind int

const (
	// KindExternal links stay untouched; they point outside the batch.
	KindExternal Kind = iota
	// KindAnchor is a same-page "#id" link.
	KindAnchor
	// KindEntity references a typed entity page (spell, monster, item, ...).
	KindEntity
	// KindSource references a book or one of its pages.
	KindSource
)

func (k Kind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindEntity:
		return "entity"
	case KindSource:
		return "source"
	default:
		return "external"
	}
}

var entityPattern = regexp.MustCompile(`^/([a-z][a-z-]*)/(\d+)(?:-([^/#]+))?/?$`)

// EntityRef is the typed reference extracted from an entity URL.
type EntityRef struct {
	Type      string
	NumericID int
	Slug      string
	URL       string
}

// AliasTable maps raw canonical paths to the canonical path the batch actually
// uses, so multiple spellings of one logical target converge on a single key.
type AliasTable map[string]string

// Apply canonicalizes path through the table; unknown paths pass through.
func (t AliasTable) Apply(path string) string {
	if t == nil {
		return path
	}
	if canonical, ok := t[path]; ok {
		return canonical
	}
	return path
}

// Config describes the site layout the classifier works against.
type Config struct {
	// SiteURL is the external domain prefix stripped during normalization,
	// e.g. "https://www.example.com".
	SiteURL string
	// EntityTypes is the closed set of first path segments recognized as
	// entity references.
	EntityTypes []string
	// SourcePrefix marks book/collection URLs, e.g. "/sources".
	SourcePrefix string
}

// Classifier normalizes and classifies link targets for one run.
type Classifier struct {
	siteURL      string
	entityTypes  map[string]bool
	sourcePrefix string
}

// NewClassifier builds a Classifier from cfg.
func NewClassifier(cfg Config) *Classifier {
	types := make(map[string]bool, len(cfg.EntityTypes))
	for _, t := range cfg.EntityTypes {
		if t = strings.TrimSpace(t); t != "" {
			types[t] = true
		}
	}
	return &Classifier{
		siteURL:      strings.TrimSuffix(strings.TrimSpace(cfg.SiteURL), "/"),
		entityTypes:  types,
		sourcePrefix: strings.TrimSpace(cfg.SourcePrefix),
	}
}

// Normalize strips the site domain, ensures a leading slash, and removes a
// trailing slash everywhere except immediately before a "#anchor".
func (c *Classifier) Normalize(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" || strings.HasPrefix(url, "#") {
		return url
	}

	if c.siteURL != "" {
		if rest, ok := strings.CutPrefix(url, c.siteURL); ok {
			url = rest
		} else if host := withoutScheme(c.siteURL); host != "" {
			if rest, ok := strings.CutPrefix(withoutScheme(url), host); ok {
				url = rest
			}
		}
	}

	if url == "" {
		return "/"
	}
	if strings.Contains(url, "://") || strings.HasPrefix(url, "//") {
		// Different domain entirely; leave it for Classify to reject.
		return url
	}
	if !strings.HasPrefix(url, "/") && !strings.HasPrefix(url, "#") {
		url = "/" + url
	}

	path, anchor := SplitAnchor(url)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if anchor == "" {
		return path
	}
	return path + "#" + anchor
}

// Classify decides what a normalized path points at.
func (c *Classifier) Classify(path string) Kind {
	switch {
	case path == "":
		return KindExternal
	case strings.HasPrefix(path, "#"):
		return KindAnchor
	case strings.Contains(path, "://"), strings.HasPrefix(path, "//"):
		return KindExternal
	}

	if c.entityTypes[firstSegment(path)] {
		return KindEntity
	}
	if c.sourcePrefix != "" && strings.HasPrefix(path, c.sourcePrefix) {
		return KindSource
	}
	return KindExternal
}

// ParseEntity extracts the typed reference from an entity path shaped like
// "/{type}/{digits}(-{slug})?". It fails when the numeric ID is absent or the
// type is not recognized.
func (c *Classifier) ParseEntity(path string) (EntityRef, bool) {
	clean, _ := SplitAnchor(path)
	m := entityPattern.FindStringSubmatch(clean)
	if m == nil || !c.entityTypes[m[1]] {
		return EntityRef{}, false
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return EntityRef{}, false
	}
	return EntityRef{
		Type:      m[1],
		NumericID: id,
		Slug:      m[3],
		URL:       clean,
	}, true
}

// SplitAnchor separates "path#anchor" into its two halves. The anchor comes
// back without the "#".
func SplitAnchor(url string) (path, anchor string) {
	path, anchor, _ = strings.Cut(url, "#")
	return path, anchor
}

func firstSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	segment, _, _ := strings.Cut(trimmed, "/")
	return segment
}

func withoutScheme(url string) string {
	if _, rest, ok := strings.Cut(url, "://"); ok {
		return rest
	}
	return strings.TrimPrefix(url, "//")
}
