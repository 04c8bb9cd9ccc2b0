package entities

import (
	"testing"

	"github.com/goliatone/go-docmark/anchors"
	"github.com/goliatone/go-docmark/documents"
	"github.com/goliatone/go-docmark/urls"
)

func docWithHeadings(id, canonical string, headings ...string) *documents.Descriptor {
	b := anchors.NewBuilder()
	for _, h := range headings {
		b.Add(anchors.Heading{Text: h})
	}
	return &documents.Descriptor{
		ID:           id,
		CanonicalURL: canonical,
		Anchors:      b.Anchors(),
		Written:      true,
	}
}

func TestBuildRoundTrip(t *testing.T) {
	set := documents.NewSet([]*documents.Descriptor{
		docWithHeadings("spl1", "/sources/phb/spells-a-z", "Fireball", "Fire Bolt"),
		docWithHeadings("mon1", "/sources/mm/bestiary", "Bugbear"),
	}, nil, nil)

	builder := NewBuilder(BuilderConfig{})
	index := builder.Build([]urls.EntityRef{
		{Type: "spells", NumericID: 123, Slug: "fireball", URL: "/spells/123-fireball"},
	}, set)

	target, ok := index.Lookup("/spells/123-fireball")
	if !ok {
		t.Fatal("expected fireball to resolve")
	}
	if target.FileID != "spl1" || target.Anchor != "fireball" {
		t.Fatalf("target = %+v", target)
	}
}

func TestBuildRespectsAllowedLocations(t *testing.T) {
	// Both documents contain a matching heading; the location table must
	// restrict monsters to the bestiary document.
	set := documents.NewSet([]*documents.Descriptor{
		docWithHeadings("a", "/sources/phb/races", "Bugbear"),
		docWithHeadings("b", "/sources/mm/bestiary", "Bugbear"),
	}, nil, nil)

	builder := NewBuilder(BuilderConfig{
		Locations: map[string][]string{
			"monsters": {"/sources/mm"},
		},
	})
	index := builder.Build([]urls.EntityRef{
		{Type: "monsters", NumericID: 7, Slug: "bugbear", URL: "/monsters/7-bugbear"},
	}, set)

	target, ok := index.Lookup("/monsters/7-bugbear")
	if !ok || target.FileID != "b" {
		t.Fatalf("target = %+v, ok = %v", target, ok)
	}
}

func TestBuildKeepsLowestStepAcrossCandidates(t *testing.T) {
	// Document "loose" comes first in set order but only prefix-matches
	// (step 3); document "tight" exact-matches. The lower step must win
	// regardless of candidate order.
	set := documents.NewSet([]*documents.Descriptor{
		docWithHeadings("loose", "/sources/a", "Bugbear Chief"),
		docWithHeadings("tight", "/sources/b", "Bugbear"),
	}, nil, nil)

	builder := NewBuilder(BuilderConfig{})
	index := builder.Build([]urls.EntityRef{
		{Type: "monsters", NumericID: 1, Slug: "bugbear", URL: "/monsters/1-bugbear"},
	}, set)

	target, ok := index.Lookup("/monsters/1-bugbear")
	if !ok || target.FileID != "tight" || target.Anchor != "bugbear" {
		t.Fatalf("target = %+v, ok = %v", target, ok)
	}
}

func TestBuildDeduplicatesByCanonicalURL(t *testing.T) {
	set := documents.NewSet([]*documents.Descriptor{
		docWithHeadings("d", "/sources/phb/gear", "Bell (1 GP)"),
	}, nil, nil)

	aliases := urls.AliasTable{"/equipment/5-bell-old": "/equipment/5-bell"}
	builder := NewBuilder(BuilderConfig{Aliases: aliases})
	index := builder.Build([]urls.EntityRef{
		{Type: "equipment", NumericID: 5, Slug: "bell", URL: "/equipment/5-bell"},
		{Type: "equipment", NumericID: 5, Slug: "bell", URL: "/equipment/5-bell-old"},
	}, set)

	if index.Len() != 1 {
		t.Fatalf("expected one entry after dedupe, got %d", index.Len())
	}
	if _, ok := index.Lookup("/equipment/5-bell"); !ok {
		t.Fatal("canonical key missing")
	}
}

func TestBuildTracksUnresolved(t *testing.T) {
	set := documents.NewSet([]*documents.Descriptor{
		docWithHeadings("d", "/sources/phb/gear", "Rope"),
	}, nil, nil)

	builder := NewBuilder(BuilderConfig{})
	index := builder.Build([]urls.EntityRef{
		{Type: "spells", NumericID: 9, Slug: "wish", URL: "/spells/9-wish"},
	}, set)

	if index.Len() != 0 {
		t.Fatalf("expected no entries, got %d", index.Len())
	}
	unresolved := index.Unresolved()
	if len(unresolved) != 1 || unresolved[0].Slug != "wish" {
		t.Fatalf("unresolved = %+v", unresolved)
	}
}
