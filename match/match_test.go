package match

import "testing"

func mustFind(t *testing.T, search string, candidates []string, maxStep int) Match {
	t.Helper()
	m, ok := Find(search, candidates, maxStep)
	if !ok {
		t.Fatalf("Find(%q, %v, %d): expected a match", search, candidates, maxStep)
	}
	return m
}

func mustMiss(t *testing.T, search string, candidates []string, maxStep int) {
	t.Helper()
	if m, ok := Find(search, candidates, maxStep); ok {
		t.Fatalf("Find(%q, %v, %d): expected no match, got %+v", search, candidates, maxStep, m)
	}
}

func TestStepExact(t *testing.T) {
	m := mustFind(t, "fireball", []string{"fireballs", "fireball"}, 0)
	if m.Anchor != "fireball" || m.Step != 1 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepExactStripsDuplicateSuffix(t *testing.T) {
	m := mustFind(t, "actions", []string{"actions--1"}, 0)
	if m.Anchor != "actions--1" || m.Step != 1 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepExactSingular(t *testing.T) {
	m := mustFind(t, "bugbear", []string{"bugbears"}, 0)
	if m.Anchor != "bugbears" || m.Step != 2 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepWordPrefix(t *testing.T) {
	m := mustFind(t, "holy-water", []string{"holy-water-25-gp", "holy-water-flask"}, 0)
	if m.Anchor != "holy-water-25-gp" || m.Step != 3 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepWordPrefixSingular(t *testing.T) {
	m := mustFind(t, "poisons-vial", []string{"poison-vials-basic"}, 0)
	if m.Anchor != "poison-vials-basic" || m.Step != 4 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepCollapsed(t *testing.T) {
	m := mustFind(t, "holy-water", []string{"holywater"}, 0)
	if m.Anchor != "holywater" || m.Step != 5 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepCollapsedSingular(t *testing.T) {
	m := mustFind(t, "holy-waters", []string{"holywater"}, 0)
	if m.Anchor != "holywater" || m.Step != 6 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepCollapsedPrefix(t *testing.T) {
	m := mustFind(t, "fire-bol", []string{"firebolt"}, 0)
	if m.Anchor != "firebolt" || m.Step != 7 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepCollapsedPrefixSingular(t *testing.T) {
	m := mustFind(t, "arrows", []string{"arrowcase"}, 0)
	if m.Anchor != "arrowcase" || m.Step != 8 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepReversePrefixPicksLongest(t *testing.T) {
	m := mustFind(t, "bracers-of-defense-varies", []string{"bracers", "bracers-of-defense"}, 0)
	if m.Anchor != "bracers-of-defense" || m.Step != 9 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepWordSubset(t *testing.T) {
	m := mustFind(t, "potion-of-greater-healing", []string{"potion-healing"}, 0)
	if m.Anchor != "potion-healing" || m.Step != 10 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepWordSubsetSingular(t *testing.T) {
	m := mustFind(t, "arrows-of-slaying", []string{"arrow-slayings"}, 0)
	if m.Anchor != "arrow-slayings" || m.Step != 11 {
		t.Fatalf("got %+v", m)
	}
}

func TestStepUnorderedWords(t *testing.T) {
	m := mustFind(t, "bolt-fire", []string{"fire-bolt"}, 0)
	if m.Anchor != "fire-bolt" || m.Step != 12 {
		t.Fatalf("got %+v", m)
	}
}

func TestPriorityOrdering(t *testing.T) {
	// Both a step-12 unordered match and a step-1 exact match exist; the
	// exact match must always win.
	m := mustFind(t, "fire-bolt", []string{"bolt-fire", "fire-bolt"}, 0)
	if m.Anchor != "fire-bolt" || m.Step != 1 {
		t.Fatalf("got %+v", m)
	}
}

func TestMaxStepTruncatesCascade(t *testing.T) {
	mustMiss(t, "bugbear", []string{"bugbears"}, 1)

	m := mustFind(t, "bugbear", []string{"bugbears"}, 2)
	if m.Step != 2 {
		t.Fatalf("got %+v", m)
	}
}

func TestNegativeControl(t *testing.T) {
	// "vial" never appears in the candidate, so even the loosest strategy
	// must reject it.
	mustMiss(t, "acid-vial", []string{"acid-25-gp"}, 0)
}

func TestOneWordGuards(t *testing.T) {
	// Single-word candidates are excluded from the subset and unordered
	// strategies.
	mustMiss(t, "vial-acid", []string{"acid"}, 0)
}

func TestDeterminism(t *testing.T) {
	candidates := []string{"holy-water-25-gp", "holy-water-flask", "holywater"}
	first, ok1 := Find("holy-water", candidates, 0)
	second, ok2 := Find("holy-water", candidates, 0)
	if ok1 != ok2 || first != second {
		t.Fatalf("Find is not deterministic: %+v vs %+v", first, second)
	}
}

func TestEmptyInputs(t *testing.T) {
	mustMiss(t, "", []string{"anything"}, 0)
	mustMiss(t, "anything", nil, 0)
}

func TestStepName(t *testing.T) {
	if got := StepName(1); got != "exact" {
		t.Fatalf("StepName(1) = %q", got)
	}
	if got := StepName(12); got != "unordered-words" {
		t.Fatalf("StepName(12) = %q", got)
	}
	if got := StepName(0); got != "" {
		t.Fatalf("StepName(0) = %q", got)
	}
}
