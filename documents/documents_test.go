package documents

import (
	"testing"

	"github.com/goliatone/go-docmark/urls"
)

func TestNewSetAliasesCanonicalURLs(t *testing.T) {
	docs := []*Descriptor{
		{ID: "b1", CanonicalURL: "/sources/basic-rules-2014/combat"},
		{ID: "a1", CanonicalURL: "/sources/phb/races"},
	}
	books := []*Book{
		{ID: "basic", URL: "/sources/basic-rules-2014"},
	}
	aliases := urls.AliasTable{
		"/sources/basic-rules-2014/combat": "/sources/basic-rules/combat",
		"/sources/basic-rules-2014":        "/sources/basic-rules",
	}

	set := NewSet(docs, books, aliases)

	if doc := set.ByURL("/sources/basic-rules/combat"); doc == nil || doc.ID != "b1" {
		t.Fatalf("aliased lookup failed: %+v", doc)
	}
	if doc := set.ByURL("/sources/basic-rules-2014/combat"); doc != nil {
		t.Fatal("raw URL must not be a valid key after aliasing")
	}
	if book := set.BookByURL("/sources/basic-rules"); book == nil || book.ID != "basic" {
		t.Fatalf("book alias lookup failed: %+v", book)
	}
}

func TestSetDeterministicOrder(t *testing.T) {
	set := NewSet([]*Descriptor{
		{ID: "zz"}, {ID: "aa"}, {ID: "mm"},
	}, nil, nil)

	ids := []string{}
	for _, doc := range set.Docs() {
		ids = append(ids, doc.ID)
	}
	want := []string{"aa", "mm", "zz"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
}

func TestDocsUnderPrefix(t *testing.T) {
	set := NewSet([]*Descriptor{
		{ID: "a", CanonicalURL: "/sources/phb/equipment"},
		{ID: "b", CanonicalURL: "/sources/phb/spells"},
		{ID: "c", CanonicalURL: "/sources/mm/bestiary"},
		{ID: "d"},
	}, nil, nil)

	under := set.DocsUnderPrefix([]string{"/sources/phb"})
	if len(under) != 2 || under[0].ID != "a" || under[1].ID != "b" {
		t.Fatalf("DocsUnderPrefix = %+v", under)
	}

	all := set.DocsUnderPrefix(nil)
	if len(all) != 4 {
		t.Fatalf("nil prefixes must return every document, got %d", len(all))
	}
}
