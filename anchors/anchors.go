// Package anchors turns heading text into the canonical Markdown anchor slugs
// the rest of the pipeline matches against. Every document gets a FileAnchors
// value built once at conversion time and treated as immutable afterwards.
package anchors

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var duplicateSuffix = regexp.MustCompile(`--(\d+)$`)

// Generate produces the canonical slug for a heading: lowercase, Unicode
// letters and digits preserved, whitespace runs collapsed to single hyphens,
// repeated hyphens collapsed, leading/trailing hyphens trimmed.
func Generate(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			b.WriteByte('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// Plural appends a trailing "s" unless the slug already ends in one.
func Plural(slug string) string {
	if slug == "" || strings.HasSuffix(slug, "s") {
		return slug
	}
	return slug + "s"
}

// Singular strips a trailing "s" when present and the slug is longer than one
// character.
func Singular(slug string) string {
	if len(slug) > 1 && strings.HasSuffix(slug, "s") {
		return slug[:len(slug)-1]
	}
	return slug
}

// Public rewrites the internal duplicate-suffix notation ("--N") to the public
// anchor convention ("-N"). The internal notation exists only to disambiguate
// duplicate headings inside the matching engine and must never reach output.
func Public(anchor string) string {
	return duplicateSuffix.ReplaceAllString(anchor, "-$1")
}

// Heading is one heading encountered while converting a source document.
type Heading struct {
	Text   string
	HTMLID string
}

// FileAnchors holds the acceptable anchors for one output document. Valid
// keeps insertion order; HTMLIDToAnchor maps original HTML element ids to
// generated anchors and is consulted only for same-page "#id" links.
type FileAnchors struct {
	Valid          []string
	HTMLIDToAnchor map[string]string
}

// Empty reports whether the document has no usable anchor data.
func (fa *FileAnchors) Empty() bool {
	return fa == nil || len(fa.Valid) == 0
}

// Builder accumulates headings for one document and produces its FileAnchors.
// Duplicate heading slugs are disambiguated with a "--N" suffix in generation
// order.
type Builder struct {
	anchors FileAnchors
	seen    map[string]int
	valid   map[string]bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		anchors: FileAnchors{
			HTMLIDToAnchor: map[string]string{},
		},
		seen:  map[string]int{},
		valid: map[string]bool{},
	}
}

// Add registers one heading. It returns the anchor generated for it,
// duplicate suffix included.
func (b *Builder) Add(h Heading) string {
	slug := Generate(h.Text)
	if slug == "" {
		return ""
	}

	anchor := slug
	if n := b.seen[slug]; n > 0 {
		anchor = fmt.Sprintf("%s--%d", slug, n)
	}
	b.seen[slug]++

	b.addValid(anchor)
	b.addValid(Plural(anchor))
	b.addValid(Singular(anchor))

	if id := strings.TrimSpace(h.HTMLID); id != "" {
		if _, taken := b.anchors.HTMLIDToAnchor[id]; !taken {
			b.anchors.HTMLIDToAnchor[id] = anchor
		}
	}
	return anchor
}

// Anchors returns the accumulated FileAnchors. The builder must not be used
// after this call.
func (b *Builder) Anchors() *FileAnchors {
	out := b.anchors
	b.seen = nil
	b.valid = nil
	return &out
}

func (b *Builder) addValid(anchor string) {
	if anchor == "" || b.valid[anchor] {
		return
	}
	b.valid[anchor] = true
	b.anchors.Valid = append(b.anchors.Valid, anchor)
}
