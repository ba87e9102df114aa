package engine

import (
	"context"
	"testing"
)

func analyzeDict(t *testing.T, e *DictionaryEngine, text string) []RawIssue {
	t.Helper()
	issues, err := e.Analyze(context.Background(), text, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return issues
}

func TestDictionary_CleanText(t *testing.T) {
	e := NewDictionaryEngine("en-US", nil)
	issues := analyzeDict(t, e, "The quick brown fox jumps over the lazy dog.")
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestDictionary_CommonMisspelling(t *testing.T) {
	e := NewDictionaryEngine("en-US", nil)
	text := "teh cat sat"
	issues := analyzeDict(t, e, text)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d: %v", len(issues), issues)
	}
	iss := issues[0]
	if iss.Rule != "common_misspelling" {
		t.Errorf("expected rule common_misspelling, got %q", iss.Rule)
	}
	if got := text[iss.Start:iss.End]; got != "teh" {
		t.Errorf("expected range %q, got %q", "teh", got)
	}
	if len(iss.Suggestions) != 1 || iss.Suggestions[0] != "the" {
		t.Errorf("expected suggestion [the], got %v", iss.Suggestions)
	}
	if iss.Confidence != 0.95 {
		t.Errorf("expected confidence 0.95, got %v", iss.Confidence)
	}
}

func TestDictionary_MisspellingKeepsCase(t *testing.T) {
	e := NewDictionaryEngine("en-US", nil)
	issues := analyzeDict(t, e, "Teh cat sat")
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Suggestions[0] != "The" {
		t.Errorf("expected case-matched suggestion %q, got %q", "The", issues[0].Suggestions[0])
	}
}

func TestDictionary_UnknownWordHasNoSuggestions(t *testing.T) {
	e := NewDictionaryEngine("en-US", nil)
	issues := analyzeDict(t, e, "the florb sat")
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d: %v", len(issues), issues)
	}
	iss := issues[0]
	if iss.Rule != "unknown_word" {
		t.Errorf("expected rule unknown_word, got %q", iss.Rule)
	}
	if len(iss.Suggestions) != 0 {
		t.Errorf("the fuzzy engine owns candidates; got %v", iss.Suggestions)
	}
	if iss.Confidence != 0.6 {
		t.Errorf("expected confidence 0.6, got %v", iss.Confidence)
	}
}

func TestDictionary_UserWords(t *testing.T) {
	e := NewDictionaryEngine("en-US", []string{"Florb"})
	if issues := analyzeDict(t, e, "the florb sat"); len(issues) != 0 {
		t.Errorf("user word should be accepted, got %v", issues)
	}
}

func TestDictionary_AddUserWord(t *testing.T) {
	e := NewDictionaryEngine("en-US", nil)
	e.AddUserWord("Prosecheck")
	if issues := analyzeDict(t, e, "the prosecheck system"); len(issues) != 0 {
		t.Errorf("added word should be accepted, got %v", issues)
	}
}

func TestDictionary_Inflections(t *testing.T) {
	e := NewDictionaryEngine("en-US", nil)
	for _, word := range []string{"jumped", "cats", "making", "stopped", "quickly", "boxes"} {
		if !e.Known(word) {
			t.Errorf("expected inflected form %q to be known", word)
		}
	}
}

func TestDictionary_SkipsShortAndAcronyms(t *testing.T) {
	e := NewDictionaryEngine("en-US", nil)
	if issues := analyzeDict(t, e, "an XY and NASA thing"); len(issues) != 0 {
		t.Errorf("short tokens and acronyms are not spelling errors, got %v", issues)
	}
}

func TestDictionary_CategoryFilter(t *testing.T) {
	e := NewDictionaryEngine("en-US", nil)
	issues, err := e.Analyze(context.Background(), "teh cat", Options{Categories: []string{CategoryGrammar}})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues when spelling is filtered out, got %v", issues)
	}
}

func TestDictionary_Availability(t *testing.T) {
	if !NewDictionaryEngine("en-US", nil).IsAvailable() {
		t.Error("expected en-US to be available")
	}
	if !NewDictionaryEngine("en-GB", nil).IsAvailable() {
		t.Error("expected en-GB to be available")
	}
	if NewDictionaryEngine("fr-FR", nil).IsAvailable() {
		t.Error("expected fr-FR to be unavailable; no lexicon ships for it")
	}
}
