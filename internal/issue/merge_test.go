package issue

import (
	"reflect"
	"testing"
)

func spelling(source string, offset, length int, confidence float64, suggestions ...string) Issue {
	iss := Issue{
		Category:   CategorySpelling,
		Offset:     offset,
		Length:     length,
		Confidence: confidence,
		Source:     source,
	}
	for _, s := range suggestions {
		iss.Suggestions = append(iss.Suggestions, Suggestion{Text: s, Confidence: confidence})
	}
	return iss
}

func TestMerge_HigherConfidenceWins(t *testing.T) {
	weak := spelling("dictionary", 4, 5, 0.7)
	strong := spelling("langproc", 4, 5, 0.95, "their")

	merged := Merge([]Issue{weak, strong})
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged issue, got %d", len(merged))
	}
	if merged[0].Confidence != 0.95 {
		t.Errorf("expected the 0.95 issue to win, got %v", merged[0].Confidence)
	}
	if merged[0].Source != "langproc" {
		t.Errorf("expected langproc to win, got %q", merged[0].Source)
	}
}

func TestMerge_SuggestionPresenceBreaksTies(t *testing.T) {
	bare := spelling("dictionary", 0, 3, 0.8)
	withFix := spelling("fuzzy", 0, 3, 0.8, "the")

	merged := Merge([]Issue{bare, withFix})
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged issue, got %d", len(merged))
	}
	if len(merged[0].Suggestions) == 0 {
		t.Error("expected the issue with a suggestion to win the tie")
	}
}

func TestMerge_AdapterPriorityBreaksTies(t *testing.T) {
	fromRules := spelling("rules", 0, 3, 0.9, "the")
	fromLangproc := spelling("langproc", 0, 3, 0.9, "the")

	merged := Merge([]Issue{fromRules, fromLangproc})
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged issue, got %d", len(merged))
	}
	if merged[0].Source != "langproc" {
		t.Errorf("expected langproc to outrank rules, got %q", merged[0].Source)
	}
}

func TestMerge_DifferentCategoriesKept(t *testing.T) {
	spell := spelling("dictionary", 0, 3, 0.9)
	gram := Issue{Category: CategoryGrammar, Offset: 0, Length: 3, Confidence: 0.9, Source: "rules"}

	merged := Merge([]Issue{spell, gram})
	if len(merged) != 2 {
		t.Fatalf("same span, different categories must both survive; got %d", len(merged))
	}
}

func TestMerge_DisjointRangesKept(t *testing.T) {
	a := spelling("dictionary", 0, 3, 0.9)
	b := spelling("dictionary", 10, 3, 0.9)

	merged := Merge([]Issue{a, b})
	if len(merged) != 2 {
		t.Fatalf("expected both disjoint issues, got %d", len(merged))
	}
}

func TestMerge_PartialOverlapCollapses(t *testing.T) {
	a := spelling("dictionary", 0, 5, 0.7)
	b := spelling("fuzzy", 3, 5, 0.8, "their")

	merged := Merge([]Issue{a, b})
	if len(merged) != 1 {
		t.Fatalf("expected overlapping same-category issues to collapse, got %d", len(merged))
	}
	if merged[0].Source != "fuzzy" {
		t.Errorf("expected the stronger issue to survive, got %q", merged[0].Source)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	input := []Issue{
		spelling("dictionary", 0, 3, 0.6),
		spelling("fuzzy", 0, 3, 0.8, "the"),
		spelling("langproc", 10, 4, 0.85, "their"),
		{Category: CategoryGrammar, Offset: 0, Length: 3, Confidence: 0.9, Source: "rules"},
	}
	once := Merge(input)
	twice := Merge(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestMerge_DeterministicOrder(t *testing.T) {
	a := []Issue{
		spelling("dictionary", 10, 3, 0.9),
		spelling("fuzzy", 0, 3, 0.8, "the"),
	}
	b := []Issue{a[1], a[0]}
	if !reflect.DeepEqual(Merge(a), Merge(b)) {
		t.Error("merge output must not depend on input order")
	}
	merged := Merge(a)
	if merged[0].Offset > merged[1].Offset {
		t.Error("merged issues must be sorted by offset")
	}
}

func TestMerge_Empty(t *testing.T) {
	if got := Merge(nil); len(got) != 0 {
		t.Errorf("expected empty merge, got %v", got)
	}
}
