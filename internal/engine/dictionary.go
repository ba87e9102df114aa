package engine

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

// DictionaryEngine checks spelling against the built-in lexicon plus any
// user-added words. Known misspellings come back with a correction at high
// confidence; unknown words are flagged without suggestions and left for
// the fuzzy engine to propose candidates (the merger keeps the better one).
type DictionaryEngine struct {
	words     map[string]bool
	userWords map[string]bool
	language  string
}

// NewDictionaryEngine builds the dictionary engine for the given language.
// userWords are extra accepted words, typically loaded from the store;
// persistence of those words is the caller's concern.
func NewDictionaryEngine(language string, userWords []string) *DictionaryEngine {
	e := &DictionaryEngine{
		words:     make(map[string]bool, len(baseWords)),
		userWords: make(map[string]bool, len(userWords)),
		language:  language,
	}
	for _, w := range baseWords {
		e.words[w] = true
	}
	for _, w := range userWords {
		e.userWords[strings.ToLower(w)] = true
	}
	return e
}

// Name implements Adapter.
func (e *DictionaryEngine) Name() string { return "dictionary" }

// IsAvailable implements Adapter. Only the built-in en lexicon ships; other
// languages have no assets and the engine reports itself unavailable.
func (e *DictionaryEngine) IsAvailable() bool {
	return len(e.words) > 0 && (e.language == "" || strings.HasPrefix(e.language, "en"))
}

// AddUserWord accepts a word for the rest of this engine's lifetime.
func (e *DictionaryEngine) AddUserWord(word string) {
	e.userWords[strings.ToLower(word)] = true
}

// Known reports whether the word passes the lexicon, in raw, lowercased,
// or suffix-stripped form.
func (e *DictionaryEngine) Known(word string) bool {
	lower := strings.ToLower(word)
	if e.words[lower] || e.userWords[lower] {
		return true
	}
	for _, suffix := range inflectionSuffixes {
		base, ok := strings.CutSuffix(lower, suffix)
		if !ok || len(base) < 2 {
			continue
		}
		if e.words[base] || e.userWords[base] {
			return true
		}
		// Doubled final consonant: "stopped" -> "stopp" -> "stop".
		if len(base) >= 3 && base[len(base)-1] == base[len(base)-2] && e.words[base[:len(base)-1]] {
			return true
		}
		// Dropped final e: "making" -> "mak" -> "make".
		if e.words[base+"e"] {
			return true
		}
	}
	return false
}

var tokenRe = regexp.MustCompile(`[A-Za-z']+`)

// skipToken filters tokens that spelling checks should ignore: very short
// words, anything with a digit neighbor, acronyms, proper-noun-looking
// mid-sentence capitals are still checked lowercased.
func skipToken(word string) bool {
	if len(word) < 3 {
		return true
	}
	upper := 0
	for _, r := range word {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	// Acronyms and shouting are not spelling errors.
	return upper > 1
}

// Analyze implements Adapter.
func (e *DictionaryEngine) Analyze(ctx context.Context, text string, opts Options) ([]RawIssue, error) {
	if !opts.Wants(CategorySpelling) {
		return nil, nil
	}

	var issues []RawIssue
	for _, loc := range tokenRe.FindAllStringIndex(text, -1) {
		if err := ctx.Err(); err != nil {
			return issues, err
		}
		word := text[loc[0]:loc[1]]
		if skipToken(word) {
			continue
		}

		if fix, ok := commonMisspellings[strings.ToLower(word)]; ok {
			issues = append(issues, RawIssue{
				Start:       loc[0],
				End:         loc[1],
				Message:     "Common misspelling of \"" + fix + "\"",
				Suggestions: []string{matchCase(fix, word)},
				Confidence:  0.95,
				Category:    CategorySpelling,
				Rule:        "common_misspelling",
			})
			continue
		}

		if !e.Known(word) {
			issues = append(issues, RawIssue{
				Start:      loc[0],
				End:        loc[1],
				Message:    "Unknown word \"" + word + "\"",
				Confidence: 0.6,
				Category:   CategorySpelling,
				Rule:       "unknown_word",
			})
		}
	}
	return issues, nil
}

// matchCase transfers leading capitalization from the original token to the
// suggested replacement.
func matchCase(suggestion, original string) string {
	if suggestion == "" || original == "" {
		return suggestion
	}
	first := rune(original[0])
	if unicode.IsUpper(first) {
		return strings.ToUpper(suggestion[:1]) + suggestion[1:]
	}
	return suggestion
}
