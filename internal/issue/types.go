// Package issue defines the canonical issue model and the normalization and
// merge stages that turn heterogeneous raw engine findings into one stable,
// de-duplicated list.
package issue

// Category classifies what kind of writing problem an issue describes.
type Category string

const (
	CategorySpelling    Category = "spelling"
	CategoryGrammar     Category = "grammar"
	CategoryPunctuation Category = "punctuation"
	CategoryStyle       Category = "style"
	CategoryWordChoice  Category = "word_choice"
	CategoryIdiom       Category = "idiom"
)

// Severity ranks how strongly an issue should be surfaced.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Classification is the safety tier of a suggestion.
type Classification string

const (
	AutoFixable Classification = "auto_fixable"
	SemiFixable Classification = "semi_fixable"
	ManualOnly  Classification = "manual_only"
)

// Suggestion is one proposed replacement, scored for safety.
type Suggestion struct {
	Text            string         `json:"text"`
	Confidence      float64        `json:"confidence"`
	Classification  Classification `json:"classification"`
	SafetyScore     float64        `json:"safety_score"`
	ComplexityScore float64        `json:"complexity_score"`
	Reasoning       string         `json:"reasoning"`
}

// Issue is one canonical, positioned writing problem. Offsets are byte
// offsets into the analyzed text, half-open; OriginalText always equals
// text[Offset:Offset+Length]. Issues are immutable once returned.
type Issue struct {
	ID             string       `json:"id"`
	Category       Category     `json:"category"`
	Severity       Severity     `json:"severity"`
	Offset         int          `json:"offset"`
	Length         int          `json:"length"`
	OriginalText   string       `json:"original_text"`
	Suggestions    []Suggestion `json:"suggestions"`
	Confidence     float64      `json:"confidence"`
	Source         string       `json:"source"`
	ContextSnippet string       `json:"context_snippet"`
}

// End returns the exclusive end offset.
func (i Issue) End() int { return i.Offset + i.Length }

// Overlaps reports whether two issues' ranges intersect.
func (i Issue) Overlaps(other Issue) bool {
	return i.Offset < other.End() && other.Offset < i.End()
}
