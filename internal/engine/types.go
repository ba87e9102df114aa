// Package engine defines the uniform adapter contract for detection engines
// and ships the built-in engine set: pattern rules, dictionary lookup, fuzzy
// spelling suggestions, external linguistic analysis, and style heuristics.
package engine

import "context"

// Category labels understood by the issue normalizer. Adapters tag raw
// issues with one of these; anything else is dropped downstream.
const (
	CategorySpelling    = "spelling"
	CategoryGrammar     = "grammar"
	CategoryPunctuation = "punctuation"
	CategoryStyle       = "style"
	CategoryWordChoice  = "word_choice"
	CategoryIdiom       = "idiom"
)

// Options carries per-call analysis options down to adapters.
type Options struct {
	// Language is the locale for dictionary-backed engines, e.g. "en-US".
	Language string

	// Categories restricts which issue categories the caller wants.
	// Empty means all.
	Categories []string
}

// Wants reports whether the caller asked for the given category.
func (o Options) Wants(category string) bool {
	if len(o.Categories) == 0 {
		return true
	}
	for _, c := range o.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// RawIssue is the ephemeral, adapter-shaped finding before normalization.
// Start and End are byte offsets into the analyzed text, half-open.
type RawIssue struct {
	Start       int
	End         int
	Message     string
	Suggestions []string
	Confidence  float64
	Category    string
	Rule        string
}

// Adapter is the uniform wrapper around one detection engine.
//
// Analyze must not panic past its boundary: expected failures (missing
// assets, unreachable service) come back as an error and an empty slice.
// The orchestrator records latency and failure for every invocation.
type Adapter interface {
	// Name identifies the adapter in health records and merge tie-breaks.
	Name() string

	// IsAvailable reports whether the engine's assets are usable. The
	// orchestrator queries this once when building its active adapter
	// list rather than probing via failures.
	IsAvailable() bool

	Analyze(ctx context.Context, text string, opts Options) ([]RawIssue, error)
}
