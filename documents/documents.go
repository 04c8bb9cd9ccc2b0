// Package documents holds the descriptors for every output document and book
// in a run. A Set is assembled completely before link resolution starts and is
// read-only afterwards, which is what makes the per-document resolve pass safe
// to run concurrently.
package documents

import (
	"sort"
	"strings"

	"github.com/goliatone/go-docmark/anchors"
	"github.com/goliatone/go-docmark/urls"
)

// Descriptor carries everything resolution needs to know about one output
// document.
type Descriptor struct {
	// ID is the stable output filename stem.
	ID string
	// Title is the document's display title.
	Title string
	// Slug is the normalized document slug recorded in frontmatter.
	Slug string
	// Path is the output file location on disk.
	Path string
	// CanonicalURL is the page's own logical URL, already normalized and
	// aliased. Other documents link to this document through it.
	CanonicalURL string
	// Anchors is the document's frozen anchor set.
	Anchors *anchors.FileAnchors
	// Written reports whether the output file exists on disk yet.
	Written bool
}

// Book describes one collection. A link to the bare book URL resolves to the
// book's generated index file rather than to any individual document.
type Book struct {
	ID   string
	Name string
	URL  string
}

// Set is the frozen lookup structure handed to the entity index builder and
// the resolver. Canonical URLs are aliased once at construction so every
// later lookup uses canonical keys.
type Set struct {
	docs      []*Descriptor
	byID      map[string]*Descriptor
	byURL     map[string]*Descriptor
	books     []*Book
	bookByURL map[string]*Book
}

// NewSet freezes the supplied descriptors and books. Canonical URLs pass
// through the alias table; documents without a canonical URL are still listed
// but unreachable by URL lookup. Iteration order is deterministic (sorted by
// ID).
func NewSet(docs []*Descriptor, books []*Book, aliases urls.AliasTable) *Set {
	s := &Set{
		byID:      make(map[string]*Descriptor, len(docs)),
		byURL:     make(map[string]*Descriptor, len(docs)),
		bookByURL: make(map[string]*Book, len(books)),
	}

	s.docs = append(s.docs, docs...)
	sort.Slice(s.docs, func(i, j int) bool { return s.docs[i].ID < s.docs[j].ID })

	for _, doc := range s.docs {
		doc.CanonicalURL = aliases.Apply(doc.CanonicalURL)
		if doc.ID != "" {
			s.byID[doc.ID] = doc
		}
		if doc.CanonicalURL != "" {
			if _, taken := s.byURL[doc.CanonicalURL]; !taken {
				s.byURL[doc.CanonicalURL] = doc
			}
		}
	}

	s.books = append(s.books, books...)
	sort.Slice(s.books, func(i, j int) bool { return s.books[i].ID < s.books[j].ID })
	for _, book := range s.books {
		book.URL = aliases.Apply(book.URL)
		if book.URL != "" {
			s.bookByURL[book.URL] = book
		}
	}

	return s
}

// Docs returns every descriptor in deterministic order. Callers must not
// mutate the returned slice.
func (s *Set) Docs() []*Descriptor {
	return s.docs
}

// Books returns every book in deterministic order.
func (s *Set) Books() []*Book {
	return s.books
}

// ByID looks a document up by its output filename stem.
func (s *Set) ByID(id string) *Descriptor {
	return s.byID[id]
}

// ByURL looks a document up by canonical URL. The key must already be
// normalized and aliased.
func (s *Set) ByURL(canonical string) *Descriptor {
	return s.byURL[canonical]
}

// BookByURL looks a book up by its canonical top-level URL.
func (s *Set) BookByURL(canonical string) *Book {
	return s.bookByURL[canonical]
}

// DocsUnderPrefix returns the documents whose canonical URL starts with any of
// the given prefixes, in set order. Empty prefixes mean "every document".
func (s *Set) DocsUnderPrefix(prefixes []string) []*Descriptor {
	if len(prefixes) == 0 {
		return s.docs
	}
	var out []*Descriptor
	for _, doc := range s.docs {
		if doc.CanonicalURL == "" {
			continue
		}
		for _, prefix := range prefixes {
			if prefix != "" && strings.HasPrefix(doc.CanonicalURL, prefix) {
				out = append(out, doc)
				break
			}
		}
	}
	return out
}
