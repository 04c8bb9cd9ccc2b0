package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/goliatone/go-docmark/anchors"
	"github.com/goliatone/go-docmark/documents"
)

var (
	atxHeading  = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*\s*$`)
	inlineLinks = regexp.MustCompile(`\[([^\[\]]*)\]\([^()\s]+\)`)
)

// LoaderConfig configures how converted Markdown files are discovered.
type LoaderConfig struct {
	// Extension limits discovery to files with the supplied extension
	// (defaults to ".md").
	Extension string
}

// Loader rebuilds document descriptors from previously written output files,
// so a resolve-only rerun does not need the source HTML. Anchor sets are
// regenerated from the Markdown headings; the HTML id mapping comes from
// frontmatter.
type Loader struct {
	fs  fs.FS
	ext string
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = ".md"
	}
	return &Loader{fs: filesystem, ext: ext}
}

// LoadFile reads one converted document and rebuilds its descriptor.
func (l *Loader) LoadFile(ctx context.Context, name string) (*documents.Descriptor, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", name, err)
	}
	if meta.ID == "" {
		return nil, fmt.Errorf("markdown loader %s: frontmatter id is required", name)
	}

	return &documents.Descriptor{
		ID:           meta.ID,
		Title:        meta.Title,
		Slug:         meta.Slug,
		Path:         name,
		CanonicalURL: meta.URL,
		Anchors:      rebuildAnchors(body, meta.HTMLIDs),
		Written:      true,
	}, nil
}

// LoadDirectory discovers every converted document under dir. Files that fail
// to parse are skipped with an error entry so one bad file cannot sink a
// rerun.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*documents.Descriptor, []error) {
	var (
		docs []*documents.Descriptor
		errs []error
	)

	walkErr := fs.WalkDir(l.fs, dir, func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || path.Ext(name) != l.ext {
			return nil
		}

		doc, err := l.LoadFile(ctx, name)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Errorf("markdown loader walk %s: %w", dir, walkErr))
	}

	return docs, errs
}

// rebuildAnchors regenerates a document's anchor set from its Markdown
// headings, merging the exact HTML id mapping persisted in frontmatter.
// Heading text is unwrapped from inline link syntax first so anchors come out
// identical to the ones generated at conversion time.
func rebuildAnchors(body []byte, htmlIDs map[string]string) *anchors.FileAnchors {
	builder := anchors.NewBuilder()
	for _, line := range strings.Split(string(body), "\n") {
		if m := atxHeading.FindStringSubmatch(line); m != nil {
			text := inlineLinks.ReplaceAllString(m[1], "$1")
			builder.Add(anchors.Heading{Text: text})
		}
	}

	fa := builder.Anchors()
	for id, anchor := range htmlIDs {
		if _, taken := fa.HTMLIDToAnchor[id]; !taken {
			fa.HTMLIDToAnchor[id] = anchor
		}
	}
	return fa
}
