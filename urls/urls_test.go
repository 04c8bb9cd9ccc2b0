package urls

import "testing"

func testClassifier() *Classifier {
	return NewClassifier(Config{
		SiteURL:      "https://www.example.com",
		EntityTypes:  []string{"spells", "monsters", "equipment", "magic-items"},
		SourcePrefix: "/sources",
	})
}

func TestNormalize(t *testing.T) {
	c := testClassifier()

	cases := []struct {
		raw  string
		want string
	}{
		{"https://www.example.com/spells/123-fireball", "/spells/123-fireball"},
		{"//www.example.com/spells/123-fireball", "/spells/123-fireball"},
		{"/sources/basic-rules/", "/sources/basic-rules"},
		{"/sources/basic-rules/#SavingThrows", "/sources/basic-rules#SavingThrows"},
		{"sources/basic-rules", "/sources/basic-rules"},
		{"#SavingThrows", "#SavingThrows"},
		{"https://elsewhere.org/page", "https://elsewhere.org/page"},
		{"/", "/"},
	}

	for _, tc := range cases {
		if got := c.Normalize(tc.raw); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	c := testClassifier()

	cases := []struct {
		path string
		want Kind
	}{
		{"#SavingThrows", KindAnchor},
		{"/spells/123-fireball", KindEntity},
		{"/magic-items/9-bag-of-holding", KindEntity},
		{"/sources/basic-rules/combat", KindSource},
		{"/marketplace/stuff", KindExternal},
		{"https://elsewhere.org/page", KindExternal},
		{"", KindExternal},
	}

	for _, tc := range cases {
		if got := c.Classify(tc.path); got != tc.want {
			t.Fatalf("Classify(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestParseEntity(t *testing.T) {
	c := testClassifier()

	ref, ok := c.ParseEntity("/spells/123-fireball")
	if !ok {
		t.Fatalf("expected entity ref")
	}
	if ref.Type != "spells" || ref.NumericID != 123 || ref.Slug != "fireball" {
		t.Fatalf("ref = %+v", ref)
	}

	ref, ok = c.ParseEntity("/monsters/42")
	if !ok || ref.Slug != "" || ref.NumericID != 42 {
		t.Fatalf("slugless ref = %+v, ok=%v", ref, ok)
	}

	if _, ok := c.ParseEntity("/spells/fireball"); ok {
		t.Fatal("entity without numeric id must not parse")
	}
	if _, ok := c.ParseEntity("/feats/12-grappler"); ok {
		t.Fatal("unrecognized type must not parse")
	}
}

func TestAliasTable(t *testing.T) {
	aliases := AliasTable{
		"/sources/basic-rules-2014": "/sources/basic-rules",
	}

	if got := aliases.Apply("/sources/basic-rules-2014"); got != "/sources/basic-rules" {
		t.Fatalf("Apply = %q", got)
	}
	if got := aliases.Apply("/sources/phb"); got != "/sources/phb" {
		t.Fatalf("unknown path must pass through, got %q", got)
	}

	var nilTable AliasTable
	if got := nilTable.Apply("/x"); got != "/x" {
		t.Fatalf("nil table must pass through, got %q", got)
	}
}

func TestSplitAnchor(t *testing.T) {
	path, anchor := SplitAnchor("/sources/phb/combat#Attacks")
	if path != "/sources/phb/combat" || anchor != "Attacks" {
		t.Fatalf("got %q, %q", path, anchor)
	}

	path, anchor = SplitAnchor("/sources/phb/combat")
	if path != "/sources/phb/combat" || anchor != "" {
		t.Fatalf("got %q, %q", path, anchor)
	}
}
