package issue

import (
	"fmt"
	"unicode/utf8"

	"github.com/blackwell-systems/prosecheck/internal/engine"
)

// snippetRadius is how many bytes of context surround the issue range in
// ContextSnippet, widened outward to rune boundaries.
const snippetRadius = 30

// validCategories gates what adapters may claim.
var validCategories = map[string]Category{
	engine.CategorySpelling:    CategorySpelling,
	engine.CategoryGrammar:     CategoryGrammar,
	engine.CategoryPunctuation: CategoryPunctuation,
	engine.CategoryStyle:       CategoryStyle,
	engine.CategoryWordChoice:  CategoryWordChoice,
	engine.CategoryIdiom:       CategoryIdiom,
}

// Normalize converts raw engine findings into canonical Issues. Findings
// that fail validation (range out of bounds, mid-rune offsets, unknown
// category, zero length) are dropped and counted, never surfaced: a raw
// issue that cannot name its own text is an adapter bug, not a user problem.
//
// runID seeds unique issue IDs for this analysis run; source names the
// adapter the finding came from.
func Normalize(runID, source, text string, raw []engine.RawIssue, seq *int) (issues []Issue, dropped int) {
	for _, r := range raw {
		if !validRange(text, r.Start, r.End) {
			dropped++
			continue
		}
		category, ok := validCategories[r.Category]
		if !ok {
			dropped++
			continue
		}

		*seq++
		issues = append(issues, Issue{
			ID:             fmt.Sprintf("%s-%d", runID, *seq),
			Category:       category,
			Severity:       severityFor(category, r.Confidence),
			Offset:         r.Start,
			Length:         r.End - r.Start,
			OriginalText:   text[r.Start:r.End],
			Suggestions:    plainSuggestions(r),
			Confidence:     clamp01(r.Confidence),
			Source:         source,
			ContextSnippet: Snippet(text, r.Start, r.End),
		})
	}
	return issues, dropped
}

// plainSuggestions wraps raw suggestion strings; the classifier fills in
// scores and classification later in the pipeline.
func plainSuggestions(r engine.RawIssue) []Suggestion {
	if len(r.Suggestions) == 0 {
		return nil
	}
	out := make([]Suggestion, len(r.Suggestions))
	for i, s := range r.Suggestions {
		out[i] = Suggestion{Text: s, Confidence: clamp01(r.Confidence)}
	}
	return out
}

// validRange checks the offset invariant: half-open, in bounds, non-empty,
// and on rune boundaries.
func validRange(text string, start, end int) bool {
	if start < 0 || end <= start || end > len(text) {
		return false
	}
	if !utf8.RuneStart(text[start]) {
		return false
	}
	if end < len(text) && !utf8.RuneStart(text[end]) {
		return false
	}
	return true
}

// severityFor derives display severity from category and confidence.
// Spelling and grammar findings with strong confidence are errors; style
// findings are always advisory.
func severityFor(category Category, confidence float64) Severity {
	switch category {
	case CategorySpelling, CategoryGrammar:
		if confidence >= 0.8 {
			return SeverityError
		}
		return SeverityWarning
	case CategoryPunctuation, CategoryIdiom:
		return SeverityWarning
	default:
		return SeveritySuggestion
	}
}

// Snippet returns a fixed-radius context window around [start, end),
// widened outward to rune boundaries.
func Snippet(text string, start, end int) string {
	lo := start - snippetRadius
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	hi := end + snippetRadius
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
