package engine

import (
	"context"
	"testing"
)

func analyzeRules(t *testing.T, text string, opts Options) []RawIssue {
	t.Helper()
	issues, err := NewRulesEngine().Analyze(context.Background(), text, opts)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return issues
}

func findRule(issues []RawIssue, rule string) (RawIssue, bool) {
	for _, iss := range issues {
		if iss.Rule == rule {
			return iss, true
		}
	}
	return RawIssue{}, false
}

func TestRules_SubjectVerbAgreement(t *testing.T) {
	text := "I has a dog."
	issues := analyzeRules(t, text, Options{})
	iss, ok := findRule(issues, "sva_plural_has")
	if !ok {
		t.Fatalf("expected sva_plural_has in %v", issues)
	}
	if got := text[iss.Start:iss.End]; got != "has" {
		t.Errorf("expected range to cover %q, got %q", "has", got)
	}
	if len(iss.Suggestions) != 1 || iss.Suggestions[0] != "have" {
		t.Errorf("expected suggestion [have], got %v", iss.Suggestions)
	}
	if iss.Category != CategoryGrammar {
		t.Errorf("expected grammar category, got %q", iss.Category)
	}
}

func TestRules_SingularHave(t *testing.T) {
	issues := analyzeRules(t, "She have two cats.", Options{})
	iss, ok := findRule(issues, "sva_singular_have")
	if !ok {
		t.Fatalf("expected sva_singular_have in %v", issues)
	}
	if iss.Suggestions[0] != "has" {
		t.Errorf("expected suggestion %q, got %q", "has", iss.Suggestions[0])
	}
}

func TestRules_NoFalsePositiveOnItHas(t *testing.T) {
	issues := analyzeRules(t, "It has a tail.", Options{})
	if _, ok := findRule(issues, "sva_plural_has"); ok {
		t.Error("'It has' must not trigger the plural rule")
	}
}

func TestRules_ModalOf(t *testing.T) {
	text := "You could of won."
	issues := analyzeRules(t, text, Options{})
	iss, ok := findRule(issues, "modal_of")
	if !ok {
		t.Fatalf("expected modal_of in %v", issues)
	}
	if got := text[iss.Start:iss.End]; got != "could of" {
		t.Errorf("expected range %q, got %q", "could of", got)
	}
	if iss.Suggestions[0] != "could have" {
		t.Errorf("expected suggestion %q, got %q", "could have", iss.Suggestions[0])
	}
	if iss.Category != CategoryIdiom {
		t.Errorf("expected idiom category, got %q", iss.Category)
	}
}

func TestRules_Alot(t *testing.T) {
	issues := analyzeRules(t, "We learned alot today.", Options{})
	iss, ok := findRule(issues, "alot")
	if !ok {
		t.Fatalf("expected alot in %v", issues)
	}
	if iss.Suggestions[0] != "a lot" {
		t.Errorf("expected suggestion %q, got %q", "a lot", iss.Suggestions[0])
	}
}

func TestRules_ArticleAn(t *testing.T) {
	text := "She ate a apple."
	issues := analyzeRules(t, text, Options{})
	iss, ok := findRule(issues, "article_an")
	if !ok {
		t.Fatalf("expected article_an in %v", issues)
	}
	if got := text[iss.Start:iss.End]; got != "a" {
		t.Errorf("expected range to cover the article, got %q", got)
	}
	if iss.Suggestions[0] != "an" {
		t.Errorf("expected suggestion %q, got %q", "an", iss.Suggestions[0])
	}
}

func TestRules_RepeatedWord(t *testing.T) {
	text := "the the cat"
	issues := analyzeRules(t, text, Options{})
	iss, ok := findRule(issues, "repeated_word")
	if !ok {
		t.Fatalf("expected repeated_word in %v", issues)
	}
	// The range covers the duplicate plus its separator so applying the
	// empty suggestion deletes cleanly.
	if got := text[iss.Start:iss.End]; got != " the" {
		t.Errorf("expected range %q, got %q", " the", got)
	}
	if len(iss.Suggestions) != 1 || iss.Suggestions[0] != "" {
		t.Errorf("expected empty-string deletion suggestion, got %v", iss.Suggestions)
	}
}

func TestRules_RepeatedWordCaseInsensitive(t *testing.T) {
	issues := analyzeRules(t, "The the cat sat.", Options{})
	if _, ok := findRule(issues, "repeated_word"); !ok {
		t.Error("expected case-insensitive repeated word detection")
	}
}

func TestRules_RepeatedWordAcrossPunctuationIgnored(t *testing.T) {
	issues := analyzeRules(t, "That is that, that much is clear.", Options{})
	if _, ok := findRule(issues, "repeated_word"); ok {
		t.Error("words separated by punctuation are not doublings")
	}
}

func TestRules_DoubledPunctuation(t *testing.T) {
	text := "Stop!! Now."
	issues := analyzeRules(t, text, Options{})
	iss, ok := findRule(issues, "doubled_punctuation")
	if !ok {
		t.Fatalf("expected doubled_punctuation in %v", issues)
	}
	if iss.Suggestions[0] != "!" {
		t.Errorf("expected suggestion %q, got %q", "!", iss.Suggestions[0])
	}
}

func TestRules_SpaceBeforePunctuation(t *testing.T) {
	text := "Hello , world"
	issues := analyzeRules(t, text, Options{})
	iss, ok := findRule(issues, "space_before_punctuation")
	if !ok {
		t.Fatalf("expected space_before_punctuation in %v", issues)
	}
	if iss.Suggestions[0] != "," {
		t.Errorf("expected suggestion %q, got %q", ",", iss.Suggestions[0])
	}
}

func TestRules_CategoryFilter(t *testing.T) {
	issues := analyzeRules(t, "I has a dog.", Options{Categories: []string{CategorySpelling}})
	if len(issues) != 0 {
		t.Errorf("expected no grammar issues when only spelling requested, got %v", issues)
	}
}

func TestRules_CleanText(t *testing.T) {
	issues := analyzeRules(t, "The quick brown fox jumps over the lazy dog.", Options{})
	if len(issues) != 0 {
		t.Errorf("expected no issues on clean text, got %v", issues)
	}
}

func TestRules_OffsetsInBounds(t *testing.T) {
	text := "I has a dog and you could of seen it,, really !"
	for _, iss := range analyzeRules(t, text, Options{}) {
		if iss.Start < 0 || iss.End <= iss.Start || iss.End > len(text) {
			t.Errorf("invalid range [%d, %d) for rule %q", iss.Start, iss.End, iss.Rule)
		}
	}
}
