package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxFuzzySuggestions bounds how many candidates a single unknown word gets.
const maxFuzzySuggestions = 3

// FuzzyEngine proposes spelling corrections for unknown words by edit
// distance against the lexicon. It covers what the dictionary engine flags
// but cannot fix; the merger prefers whichever of the two carries the
// stronger result for the same span.
type FuzzyEngine struct {
	dict *DictionaryEngine
}

// NewFuzzyEngine builds the fuzzy suggester on top of the given dictionary.
func NewFuzzyEngine(dict *DictionaryEngine) *FuzzyEngine {
	return &FuzzyEngine{dict: dict}
}

// Name implements Adapter.
func (e *FuzzyEngine) Name() string { return "fuzzy" }

// IsAvailable implements Adapter.
func (e *FuzzyEngine) IsAvailable() bool { return e.dict != nil && e.dict.IsAvailable() }

// candidate pairs a lexicon word with its edit distance from the token.
type candidate struct {
	word string
	dist int
}

// suggestions ranks lexicon words by edit distance from the token. Distance
// bound is 1 for short words, 2 otherwise; ties break by lexicon order,
// which roughly tracks word frequency.
func (e *FuzzyEngine) suggestions(word string) []candidate {
	lower := strings.ToLower(word)
	maxDist := 2
	if len(lower) <= 4 {
		maxDist = 1
	}

	var cands []candidate
	for _, w := range baseWords {
		if abs(len(w)-len(lower)) > maxDist {
			continue
		}
		if d := levenshtein.ComputeDistance(lower, w); d > 0 && d <= maxDist {
			cands = append(cands, candidate{word: w, dist: d})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	if len(cands) > maxFuzzySuggestions {
		cands = cands[:maxFuzzySuggestions]
	}
	return cands
}

// Analyze implements Adapter.
func (e *FuzzyEngine) Analyze(ctx context.Context, text string, opts Options) ([]RawIssue, error) {
	if !opts.Wants(CategorySpelling) {
		return nil, nil
	}

	var issues []RawIssue
	for _, loc := range tokenRe.FindAllStringIndex(text, -1) {
		if err := ctx.Err(); err != nil {
			return issues, err
		}
		word := text[loc[0]:loc[1]]
		if skipToken(word) || e.dict.Known(word) {
			continue
		}
		if _, ok := commonMisspellings[strings.ToLower(word)]; ok {
			// The dictionary engine already carries the exact fix.
			continue
		}

		cands := e.suggestions(word)
		if len(cands) == 0 {
			continue
		}
		suggestions := make([]string, len(cands))
		for i, c := range cands {
			suggestions[i] = matchCase(c.word, word)
		}

		// Closer matches are more trustworthy.
		confidence := 0.8
		if cands[0].dist > 1 {
			confidence = 0.65
		}

		issues = append(issues, RawIssue{
			Start:       loc[0],
			End:         loc[1],
			Message:     "Possible misspelling of \"" + suggestions[0] + "\"",
			Suggestions: suggestions,
			Confidence:  confidence,
			Category:    CategorySpelling,
			Rule:        "fuzzy_match",
		})
	}
	return issues, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
