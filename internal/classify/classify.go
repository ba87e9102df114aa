// Package classify scores suggestions for safety and decides whether they
// may be applied automatically. Classification is a pure function of the
// issue, the suggestion text, and the configured thresholds: identical
// inputs always classify identically.
package classify

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/blackwell-systems/prosecheck/internal/config"
	"github.com/blackwell-systems/prosecheck/internal/engine"
	"github.com/blackwell-systems/prosecheck/internal/issue"
)

// Result is the classifier's verdict on one suggestion.
type Result struct {
	Classification  issue.Classification `json:"classification"`
	Confidence      float64              `json:"confidence"`
	SafetyScore     float64              `json:"safety_score"`
	ComplexityScore float64              `json:"complexity_score"`
	Reasoning       string               `json:"reasoning"`
}

// categoryBaseSafety anchors how inherently safe an automated edit in each
// category is. Mechanical fixes rank high; meaning-adjacent ones low.
var categoryBaseSafety = map[issue.Category]float64{
	issue.CategoryPunctuation: 0.95,
	issue.CategorySpelling:    0.90,
	issue.CategoryIdiom:       0.75,
	issue.CategoryGrammar:     0.70,
	issue.CategoryWordChoice:  0.60,
	issue.CategoryStyle:       0.50,
}

// knownCorrectionPairs are curated single-token grammar corrections that
// count as a known high-confidence pattern alongside the misspelling table.
var knownCorrectionPairs = map[string]string{
	"has":     "have",
	"have":    "has",
	"does":    "do",
	"doesn't": "don't",
	"don't":   "doesn't",
	"a":       "an",
	"an":      "a",
	"is":      "are",
	"are":     "is",
	"was":     "were",
	"were":    "was",
}

// Classify scores one suggestion against its issue. It never propagates a
// failure: anything unexpected collapses to the most conservative verdict.
func Classify(cfg config.Classifier, iss issue.Issue, suggestion string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Classification:  issue.ManualOnly,
				SafetyScore:     0,
				ComplexityScore: 1,
				Reasoning:       "classification failed; requiring manual review",
			}
		}
	}()
	return classify(cfg, iss, suggestion)
}

func classify(cfg config.Classifier, iss issue.Issue, suggestion string) Result {
	original := iss.OriginalText
	confidence := iss.Confidence
	complexity := complexityScore(original, suggestion)
	safety := safetyScore(iss, original, suggestion)

	autoThreshold := cfg.AutoThreshold
	semiThreshold := cfg.SemiThreshold
	if cfg.ConservativeMode {
		autoThreshold = cfg.ConservativeAuto
		semiThreshold = cfg.ConservativeSemi
	}

	// Structurally complex changes never auto-apply, whatever the engine
	// claims about them.
	if reason, complex := complexPattern(cfg, original, suggestion); complex {
		return Result{
			Classification:  issue.ManualOnly,
			Confidence:      confidence,
			SafetyScore:     safety,
			ComplexityScore: complexity,
			Reasoning:       reason,
		}
	}

	if reason, known := knownSafePattern(iss, original, suggestion); known {
		if confidence >= autoThreshold && safety >= cfg.MinSafety && complexity <= cfg.MaxComplexity {
			return Result{
				Classification:  issue.AutoFixable,
				Confidence:      confidence,
				SafetyScore:     safety,
				ComplexityScore: complexity,
				Reasoning:       reason,
			}
		}
	}

	// Weighted combination for everything else.
	combined := 0.45*confidence + 0.35*safety + 0.20*(1-complexity)
	switch {
	case combined >= autoThreshold && safety >= cfg.MinSafety && complexity <= cfg.MaxComplexity:
		return Result{
			Classification:  issue.AutoFixable,
			Confidence:      combined,
			SafetyScore:     safety,
			ComplexityScore: complexity,
			Reasoning:       fmt.Sprintf("high combined score %.2f for a small %s edit", combined, iss.Category),
		}
	case combined >= semiThreshold:
		return Result{
			Classification:  issue.SemiFixable,
			Confidence:      combined,
			SafetyScore:     safety,
			ComplexityScore: complexity,
			Reasoning:       fmt.Sprintf("moderate combined score %.2f; apply with a glance at the context", combined),
		}
	default:
		return Result{
			Classification:  issue.ManualOnly,
			Confidence:      combined,
			SafetyScore:     safety,
			ComplexityScore: complexity,
			Reasoning:       fmt.Sprintf("combined score %.2f too low for unattended changes", combined),
		}
	}
}

// knownSafePattern reports whether the edit matches a curated
// high-confidence shape: a listed common misspelling, a curated correction
// pair, a single-character typo in a short word, or pure punctuation
// normalization.
func knownSafePattern(iss issue.Issue, original, suggestion string) (string, bool) {
	origLower := strings.ToLower(strings.TrimSpace(original))
	suggLower := strings.ToLower(strings.TrimSpace(suggestion))

	if engine.IsCommonMisspelling(origLower) {
		return "listed common misspelling", true
	}
	if knownCorrectionPairs[origLower] == suggLower {
		return "curated correction pair", true
	}
	if iss.Category == issue.CategoryPunctuation && isPunctuationOnly(original) && isPunctuationOnly(suggestion) {
		return "pure punctuation normalization", true
	}
	if len(original) <= 7 && !strings.ContainsAny(original, " \t") &&
		levenshtein.ComputeDistance(origLower, suggLower) == 1 {
		return "single-character typo in a short word", true
	}
	return "", false
}

// complexPattern reports edits that always need a human: multi-sentence
// spans, long replacement text, or heavy restructuring.
func complexPattern(cfg config.Classifier, original, suggestion string) (string, bool) {
	if len(suggestion) > cfg.MaxReplacementLen {
		return fmt.Sprintf("replacement longer than %d characters", cfg.MaxReplacementLen), true
	}
	// Trailing terminators are part of the edit itself, not a boundary the
	// span crosses; only interior ones demote.
	trimmed := strings.TrimRight(original, ".!?")
	if strings.Count(trimmed, ".")+strings.Count(trimmed, "!")+strings.Count(trimmed, "?") > 0 {
		return "edit spans a sentence boundary", true
	}
	origWords := len(strings.Fields(original))
	suggWords := len(strings.Fields(suggestion))
	if origWords >= 6 || suggWords >= 6 {
		return "multi-word restructuring", true
	}
	return "", false
}

// safetyScore combines category base safety, edit similarity, ambiguity,
// and a word-overlap semantic-preservation heuristic into [0,1].
func safetyScore(iss issue.Issue, original, suggestion string) float64 {
	base := categoryBaseSafety[iss.Category]
	if base == 0 {
		base = 0.5
	}

	similarity := editSimilarity(original, suggestion)

	unambiguous := 0.0
	if !strings.ContainsAny(suggestion, " \t") && len(suggestion) <= 12 {
		unambiguous = 1.0
	}

	score := 0.5*base + 0.3*similarity + 0.2*unambiguous

	// Matching a curated pattern is itself safety evidence.
	if _, known := knownSafePattern(iss, original, suggestion); known {
		score += 0.2
	} else {
		// Semantic preservation: shared words between original and
		// suggestion indicate the meaning survives.
		score += 0.1 * wordOverlap(original, suggestion)
	}

	return clamp01(score)
}

// complexityScore estimates how invasive an edit is, in [0,1].
func complexityScore(original, suggestion string) float64 {
	score := 0.0

	// Longer replacements are riskier.
	score += clamp01(float64(len(suggestion)) / 50.0 * 0.5)

	// Growing or shrinking the text a lot is riskier than swapping in place.
	delta := float64(abs(len(suggestion) - len(original)))
	longest := float64(max(len(suggestion), len(original), 1))
	score += 0.3 * clamp01(delta/longest)

	// Multi-word suggestions carry structural risk.
	if words := len(strings.Fields(suggestion)); words > 1 {
		score += 0.2 * clamp01(float64(words-1)/4.0)
	}

	return clamp01(score)
}

// editSimilarity is 1 minus normalized edit distance.
func editSimilarity(original, suggestion string) float64 {
	longest := max(len(original), len(suggestion))
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(strings.ToLower(original), strings.ToLower(suggestion))
	return clamp01(1 - float64(d)/float64(longest))
}

// wordOverlap is the Jaccard overlap of lowercase word sets.
func wordOverlap(a, b string) float64 {
	wa := strings.Fields(strings.ToLower(a))
	wb := strings.Fields(strings.ToLower(b))
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	set := make(map[string]bool, len(wa))
	for _, w := range wa {
		set[w] = true
	}
	shared := 0
	union := len(set)
	for _, w := range wb {
		if set[w] {
			shared++
		} else {
			union++
		}
	}
	return float64(shared) / float64(union)
}

func isPunctuationOnly(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsFunc(s, func(r rune) bool {
		return !strings.ContainsRune(".,;:!?'\"-— ", r)
	})
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

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
