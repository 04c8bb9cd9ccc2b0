package docmark

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-docmark/anchors"
	"github.com/goliatone/go-docmark/documents"
	"github.com/goliatone/go-docmark/internal/identity"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/internal/markdown"
	"github.com/goliatone/go-docmark/internal/util"
	"github.com/goliatone/go-docmark/urls"
)

// ConvertResult is the outcome of the conversion pass: the frozen document
// set the resolver works against, plus every entity reference collected from
// headings across the batch.
type ConvertResult struct {
	Set       *documents.Set
	Refs      []urls.EntityRef
	Converted int
	// Errors lists per-document failures; the pass continues past them.
	Errors []error
}

// Convert walks the source directory, converts every HTML document to
// Markdown with frontmatter, writes the output batch (book index pages
// included), and returns the frozen document set.
func (m *Module) Convert(ctx context.Context) (*ConvertResult, error) {
	logger := logging.ConvertLogger(m.logs)

	if err := os.MkdirAll(m.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("docmark convert: create output dir: %w", err)
	}

	result := &ConvertResult{}
	var docs []*documents.Descriptor

	sourceFS := os.DirFS(m.cfg.SourceDir)
	walkErr := fs.WalkDir(sourceFS, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !isHTMLFile(name) {
			return nil
		}

		doc, refs, convErr := m.convertFile(sourceFS, name)
		if convErr != nil {
			logger.Error("document conversion failed", "source", name, "error", convErr)
			result.Errors = append(result.Errors, convErr)
			return nil
		}

		docs = append(docs, doc)
		result.Refs = append(result.Refs, refs...)
		result.Converted++
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("docmark convert: walk %s: %w", m.cfg.SourceDir, walkErr)
	}

	books := m.books()
	result.Set = documents.NewSet(docs, books, m.aliases)

	for _, book := range result.Set.Books() {
		if err := m.writeBookIndex(book, result.Set); err != nil {
			logger.Error("book index failed", "book", book.ID, "error", err)
			result.Errors = append(result.Errors, err)
		}
	}

	logger.Info("conversion finished",
		"converted", result.Converted,
		"entity_refs", len(result.Refs),
		"books", len(books),
		"errors", len(result.Errors),
	)
	return result, nil
}

func (m *Module) convertFile(sourceFS fs.FS, name string) (*documents.Descriptor, []urls.EntityRef, error) {
	data, err := fs.ReadFile(sourceFS, name)
	if err != nil {
		return nil, nil, fmt.Errorf("docmark convert: read %s: %w", name, err)
	}

	page, err := m.converter.Convert(data)
	if err != nil {
		return nil, nil, fmt.Errorf("docmark convert: %s: %w", name, err)
	}

	canonical := util.FirstNonEmpty(page.CanonicalURL, urlFromPath(name))
	canonical = m.aliases.Apply(m.classifier.Normalize(canonical))

	id := identity.DocumentID(canonical)

	builder := anchors.NewBuilder()
	for _, heading := range page.Headings {
		builder.Add(heading)
	}
	fileAnchors := builder.Anchors()

	title := util.FirstNonEmpty(page.Title, filepath.Base(name))
	meta := markdown.FrontMatter{
		ID:      id,
		Title:   title,
		Slug:    documentSlug(title),
		URL:     canonical,
		HTMLIDs: fileAnchors.HTMLIDToAnchor,
	}

	encoded, err := markdown.EncodeDocument(meta, page.Markdown)
	if err != nil {
		return nil, nil, fmt.Errorf("docmark convert: %s: %w", name, err)
	}

	outPath := filepath.Join(m.cfg.OutputDir, id+m.cfg.OutputExt)
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return nil, nil, fmt.Errorf("docmark convert: write %s: %w", outPath, err)
	}

	return &documents.Descriptor{
		ID:           id,
		Title:        title,
		Slug:         meta.Slug,
		Path:         outPath,
		CanonicalURL: canonical,
		Anchors:      fileAnchors,
		Written:      true,
	}, page.EntityRefs, nil
}

// writeBookIndex renders a book's index page: an ordered list of the book's
// documents, already linked by output ID so resolution never needs to touch
// it. The page carries the same frontmatter shape as converted documents so
// resolve-only reruns can load it back.
func (m *Module) writeBookIndex(book *documents.Book, set *documents.Set) error {
	title := util.FirstNonEmpty(book.Name, book.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, doc := range set.DocsUnderPrefix([]string{book.URL}) {
		fmt.Fprintf(&b, "- [%s](%s%s)\n", doc.Title, doc.ID, m.cfg.OutputExt)
	}

	meta := markdown.FrontMatter{
		ID:    book.ID,
		Title: title,
		Slug:  documentSlug(title),
		URL:   book.URL,
	}
	encoded, err := markdown.EncodeDocument(meta, b.String())
	if err != nil {
		return fmt.Errorf("docmark convert: book index %s: %w", book.ID, err)
	}

	path := filepath.Join(m.cfg.OutputDir, book.ID+m.cfg.OutputExt)
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("docmark convert: write book index %s: %w", path, err)
	}
	return nil
}

func (m *Module) books() []*documents.Book {
	books := make([]*documents.Book, 0, len(m.cfg.Books))
	for _, bc := range m.cfg.Books {
		id := util.FirstNonEmpty(bc.ID, identity.BookID(bc.URL))
		books = append(books, &documents.Book{ID: id, Name: bc.Name, URL: bc.URL})
	}
	return books
}

// documentSlug normalizes a title into the slug recorded in frontmatter,
// falling back to the anchor generator for titles go-slug rejects.
func documentSlug(title string) string {
	if normalized, err := slug.Normalize(title); err == nil && normalized != "" {
		return normalized
	}
	return anchors.Generate(title)
}

func isHTMLFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// urlFromPath derives a fallback canonical URL for pages that do not declare
// one, from the source file's batch-relative path.
func urlFromPath(name string) string {
	trimmed := strings.TrimSuffix(name, filepath.Ext(name))
	return "/" + filepath.ToSlash(trimmed)
}
