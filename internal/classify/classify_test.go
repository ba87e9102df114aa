package classify

import (
	"reflect"
	"strings"
	"testing"

	"github.com/blackwell-systems/prosecheck/internal/config"
	"github.com/blackwell-systems/prosecheck/internal/issue"
)

func defaults() config.Classifier {
	return config.DefaultClassifier
}

func grammarIssue(original string, confidence float64) issue.Issue {
	return issue.Issue{
		Category:     issue.CategoryGrammar,
		OriginalText: original,
		Confidence:   confidence,
	}
}

func TestClassify_Deterministic(t *testing.T) {
	iss := grammarIssue("has", 0.9)
	a := Classify(defaults(), iss, "have")
	b := Classify(defaults(), iss, "have")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs classified differently:\n%+v\n%+v", a, b)
	}
}

func TestClassify_CuratedGrammarPairIsAuto(t *testing.T) {
	res := Classify(defaults(), grammarIssue("has", 0.9), "have")
	if res.Classification != issue.AutoFixable {
		t.Fatalf("expected auto_fixable, got %s (%s)", res.Classification, res.Reasoning)
	}
	if res.SafetyScore < defaults().MinSafety {
		t.Errorf("expected safety >= %v, got %v", defaults().MinSafety, res.SafetyScore)
	}
}

func TestClassify_ListedMisspellingIsAuto(t *testing.T) {
	iss := issue.Issue{
		Category:     issue.CategorySpelling,
		OriginalText: "teh",
		Confidence:   0.95,
	}
	res := Classify(defaults(), iss, "the")
	if res.Classification != issue.AutoFixable {
		t.Fatalf("expected auto_fixable, got %s (%s)", res.Classification, res.Reasoning)
	}
}

func TestClassify_SingleCharTypoIsAuto(t *testing.T) {
	iss := issue.Issue{
		Category:     issue.CategorySpelling,
		OriginalText: "caat",
		Confidence:   0.9,
	}
	res := Classify(defaults(), iss, "cat")
	if res.Classification != issue.AutoFixable {
		t.Fatalf("expected auto_fixable for a one-edit typo, got %s (%s)", res.Classification, res.Reasoning)
	}
}

func TestClassify_LongReplacementIsManual(t *testing.T) {
	iss := issue.Issue{
		Category:     issue.CategoryStyle,
		OriginalText: "this phrasing",
		Confidence:   0.99,
	}
	long := strings.Repeat("reworded ", 8)
	res := Classify(defaults(), iss, long)
	if res.Classification != issue.ManualOnly {
		t.Fatalf("expected manual_only for a %d-char replacement, got %s", len(long), res.Classification)
	}
}

func TestClassify_SentenceBoundaryIsManual(t *testing.T) {
	iss := issue.Issue{
		Category:     issue.CategoryGrammar,
		OriginalText: "went. Then we",
		Confidence:   0.99,
	}
	res := Classify(defaults(), iss, "went, then we")
	if res.Classification != issue.ManualOnly {
		t.Fatalf("expected manual_only across a sentence boundary, got %s", res.Classification)
	}
}

func TestClassify_TrailingTerminatorIsNotABoundary(t *testing.T) {
	// A span that merely ends at a sentence terminator is still a local
	// edit; only a terminator inside the span marks a boundary crossing.
	iss := issue.Issue{
		Category:     issue.CategorySpelling,
		OriginalText: "wich?",
		Confidence:   0.9,
	}
	res := Classify(defaults(), iss, "which?")
	if res.Classification != issue.AutoFixable {
		t.Fatalf("expected auto_fixable for a typo at sentence end, got %s (%s)", res.Classification, res.Reasoning)
	}

	res = Classify(defaults(), issue.Issue{
		Category:     issue.CategorySpelling,
		OriginalText: "down!",
		Confidence:   0.9,
	}, "done!")
	if res.Classification == issue.ManualOnly {
		t.Fatalf("a trailing exclamation mark must not demote the edit, got %s (%s)", res.Classification, res.Reasoning)
	}
}

func TestClassify_ManyWordsIsManual(t *testing.T) {
	iss := issue.Issue{
		Category:     issue.CategoryStyle,
		OriginalText: "one two three four five six seven",
		Confidence:   0.99,
	}
	res := Classify(defaults(), iss, "short")
	if res.Classification != issue.ManualOnly {
		t.Fatalf("expected manual_only for a six-plus word span, got %s", res.Classification)
	}
}

func TestClassify_StyleSuggestionNeverAuto(t *testing.T) {
	iss := issue.Issue{
		Category:     issue.CategoryWordChoice,
		OriginalText: "in order to",
		Confidence:   0.7,
	}
	res := Classify(defaults(), iss, "to")
	if res.Classification == issue.AutoFixable {
		t.Fatalf("wordy rewrites are not safe to auto-apply, got %s (%s)", res.Classification, res.Reasoning)
	}
}

func TestClassify_LowConfidenceIsNotAuto(t *testing.T) {
	res := Classify(defaults(), grammarIssue("was", 0.3), "were")
	if res.Classification == issue.AutoFixable {
		t.Fatalf("expected low-confidence pair gated below auto, got %s", res.Classification)
	}
}

func TestClassify_ConservativeModeDemotes(t *testing.T) {
	cfg := defaults()
	res := Classify(cfg, grammarIssue("has", 0.9), "have")
	if res.Classification != issue.AutoFixable {
		t.Fatalf("setup: expected auto_fixable at defaults, got %s", res.Classification)
	}

	cfg.ConservativeMode = true
	res = Classify(cfg, grammarIssue("has", 0.9), "have")
	if res.Classification == issue.AutoFixable {
		t.Errorf("conservative mode must raise the bar; got %s (%s)", res.Classification, res.Reasoning)
	}
	if res.Classification == issue.ManualOnly {
		t.Errorf("a curated pair should still be at least semi_fixable, got %s", res.Classification)
	}
}

func TestClassify_ScoresInRange(t *testing.T) {
	cases := []struct {
		iss        issue.Issue
		suggestion string
	}{
		{grammarIssue("has", 0.9), "have"},
		{issue.Issue{Category: issue.CategorySpelling, OriginalText: "teh", Confidence: 0.95}, "the"},
		{issue.Issue{Category: issue.CategoryStyle, OriginalText: "basically", Confidence: 0.6}, ""},
		{issue.Issue{Category: issue.CategoryPunctuation, OriginalText: "!!", Confidence: 0.9}, "!"},
	}
	for _, c := range cases {
		res := Classify(defaults(), c.iss, c.suggestion)
		if res.SafetyScore < 0 || res.SafetyScore > 1 {
			t.Errorf("safety score out of range: %v", res.SafetyScore)
		}
		if res.ComplexityScore < 0 || res.ComplexityScore > 1 {
			t.Errorf("complexity score out of range: %v", res.ComplexityScore)
		}
		if res.Reasoning == "" {
			t.Error("every verdict needs a reasoning string")
		}
	}
}

func TestClassify_PunctuationNormalization(t *testing.T) {
	iss := issue.Issue{
		Category:     issue.CategoryPunctuation,
		OriginalText: "!!",
		Confidence:   0.9,
	}
	res := Classify(defaults(), iss, "!")
	if res.Classification != issue.AutoFixable {
		t.Fatalf("expected pure punctuation fix to be auto_fixable, got %s (%s)", res.Classification, res.Reasoning)
	}
}
