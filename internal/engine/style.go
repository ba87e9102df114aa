package engine

import (
	"context"
	"regexp"
	"strings"
)

// longSentenceWords is the word count past which a sentence is flagged.
const longSentenceWords = 30

// wordyPhrases maps inflated phrasings to tighter replacements.
var wordyPhrases = map[string]string{
	"in order to":              "to",
	"due to the fact that":     "because",
	"at this point in time":    "now",
	"in the event that":        "if",
	"for the purpose of":       "for",
	"with regard to":           "about",
	"a large number of":        "many",
	"in spite of the fact":     "although",
	"on a daily basis":         "daily",
	"it should be noted that":  "",
	"basically":                "",
	"utilize":                  "use",
	"utilizes":                 "uses",
	"very unique":              "unique",
	"absolutely essential":     "essential",
	"completely eliminate":     "eliminate",
	"past history":             "history",
	"advance planning":         "planning",
	"end result":               "result",
}

// passiveRe matches the common be + past-participle frame. Heuristic: -ed
// participles plus a short irregular list.
var passiveRe = regexp.MustCompile(`(?i)\b(?:is|are|was|were|been|being|be)\s+(?:[a-z]+ed|done|made|seen|known|given|taken|found|shown|written|held|kept|left|told|brought|built|sent|spent|thought)\b`)

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]?`)

// StyleEngine flags readability problems: passive voice, wordy phrasing,
// and overlong sentences. Everything it reports is advisory.
type StyleEngine struct {
	wordyRe *regexp.Regexp
}

// NewStyleEngine compiles the wordy-phrase alternation once.
func NewStyleEngine() *StyleEngine {
	phrases := make([]string, 0, len(wordyPhrases))
	for p := range wordyPhrases {
		phrases = append(phrases, regexp.QuoteMeta(p))
	}
	// Longest first so "due to the fact that" wins over any prefix of it.
	sortByLengthDesc(phrases)
	return &StyleEngine{
		wordyRe: regexp.MustCompile(`(?i)\b(` + strings.Join(phrases, "|") + `)\b`),
	}
}

func sortByLengthDesc(ss []string) {
	for i := 1; i < len(ss); i++ {
		for j := i; j > 0 && len(ss[j]) > len(ss[j-1]); j-- {
			ss[j], ss[j-1] = ss[j-1], ss[j]
		}
	}
}

// Name implements Adapter.
func (e *StyleEngine) Name() string { return "style" }

// IsAvailable implements Adapter.
func (e *StyleEngine) IsAvailable() bool { return true }

// Analyze implements Adapter.
func (e *StyleEngine) Analyze(ctx context.Context, text string, opts Options) ([]RawIssue, error) {
	var issues []RawIssue
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Wants(CategoryStyle) {
		for _, loc := range passiveRe.FindAllStringIndex(text, -1) {
			issues = append(issues, RawIssue{
				Start:      loc[0],
				End:        loc[1],
				Message:    "Possible passive voice; consider the active form",
				Confidence: 0.5,
				Category:   CategoryStyle,
				Rule:       "passive_voice",
			})
		}

		for _, loc := range sentenceRe.FindAllStringIndex(text, -1) {
			sentence := text[loc[0]:loc[1]]
			if len(strings.Fields(sentence)) > longSentenceWords {
				issues = append(issues, RawIssue{
					Start:      loc[0],
					End:        loc[1],
					Message:    "Long sentence; consider splitting it",
					Confidence: 0.55,
					Category:   CategoryStyle,
					Rule:       "long_sentence",
				})
			}
		}
	}

	if opts.Wants(CategoryWordChoice) {
		for _, loc := range e.wordyRe.FindAllStringIndex(text, -1) {
			phrase := text[loc[0]:loc[1]]
			replacement := wordyPhrases[strings.ToLower(phrase)]
			ri := RawIssue{
				Start:      loc[0],
				End:        loc[1],
				Message:    "Wordy phrasing",
				Confidence: 0.6,
				Category:   CategoryWordChoice,
				Rule:       "wordy_phrase",
			}
			if replacement != "" {
				ri.Suggestions = []string{matchCase(replacement, phrase)}
				ri.Message = "Wordy phrasing; \"" + replacement + "\" is tighter"
				ri.Confidence = 0.7
			}
			issues = append(issues, ri)
		}
	}

	return issues, nil
}
