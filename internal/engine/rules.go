package engine

import (
	"context"
	"regexp"
	"strings"
)

// pattern is one compiled usage rule. The regexp's capture group `group`
// marks the offending span; suggest produces replacement candidates from
// the captured text.
type pattern struct {
	re         *regexp.Regexp
	group      int
	message    string
	suggest    func(match string) []string
	category   string
	confidence float64
	rule       string
}

// fixed returns a suggest func that ignores the match and proposes the
// given replacements.
func fixed(replacements ...string) func(string) []string {
	return func(string) []string { return replacements }
}

// patterns is the built-in usage rule table. Rules stay narrow on purpose:
// each targets one well-known error with an unambiguous correction.
var patterns = []pattern{
	{
		re:         regexp.MustCompile(`(?i)\b(?:I|you|we|they)\s+(has)\b`),
		group:      1,
		message:    "Subject-verb agreement: plural subject takes \"have\"",
		suggest:    fixed("have"),
		category:   CategoryGrammar,
		confidence: 0.9,
		rule:       "sva_plural_has",
	},
	{
		re:         regexp.MustCompile(`(?i)\b(?:he|she|it)\s+(have)\b`),
		group:      1,
		message:    "Subject-verb agreement: singular subject takes \"has\"",
		suggest:    fixed("has"),
		category:   CategoryGrammar,
		confidence: 0.9,
		rule:       "sva_singular_have",
	},
	{
		re:         regexp.MustCompile(`(?i)\b(?:I|you|we|they)\s+(doesn't|does)\b`),
		group:      1,
		message:    "Subject-verb agreement: plural subject takes \"do\"",
		suggest: func(m string) []string {
			if strings.EqualFold(m, "doesn't") {
				return []string{"don't"}
			}
			return []string{"do"}
		},
		category:   CategoryGrammar,
		confidence: 0.85,
		rule:       "sva_plural_does",
	},
	{
		re:         regexp.MustCompile(`\b([Aa])\s+[aeiouAEIOU][a-zA-Z]+\b`),
		group:      1,
		message:    "Use \"an\" before a vowel sound",
		suggest: func(m string) []string {
			if m == "A" {
				return []string{"An"}
			}
			return []string{"an"}
		},
		category:   CategoryGrammar,
		confidence: 0.75,
		rule:       "article_an",
	},
	{
		re:         regexp.MustCompile(`(?i)\b((?:could|should|would|must) of)\b`),
		group:      1,
		message:    "\"of\" mistaken for \"have\" after a modal verb",
		suggest: func(m string) []string {
			modal := strings.Fields(m)[0]
			return []string{modal + " have"}
		},
		category:   CategoryIdiom,
		confidence: 0.95,
		rule:       "modal_of",
	},
	{
		re:         regexp.MustCompile(`(?i)\b(alot)\b`),
		group:      1,
		message:    "\"alot\" is not a word",
		suggest:    fixed("a lot"),
		category:   CategorySpelling,
		confidence: 0.95,
		rule:       "alot",
	},
	{
		re:         regexp.MustCompile(`(?i)\b(irregardless)\b`),
		group:      1,
		message:    "Nonstandard word; use \"regardless\"",
		suggest:    fixed("regardless"),
		category:   CategoryWordChoice,
		confidence: 0.9,
		rule:       "irregardless",
	},
	{
		re:         regexp.MustCompile(`(?i)\b(for all intensive purposes)\b`),
		group:      1,
		message:    "Eggcorn: the idiom is \"for all intents and purposes\"",
		suggest:    fixed("for all intents and purposes"),
		category:   CategoryIdiom,
		confidence: 0.95,
		rule:       "intensive_purposes",
	},
	{
		re:         regexp.MustCompile(`(,{2,}|\.{4,}|!{2,}|\?{3,})`),
		group:      1,
		message:    "Doubled punctuation",
		suggest: func(m string) []string {
			return []string{m[:1]}
		},
		category:   CategoryPunctuation,
		confidence: 0.9,
		rule:       "doubled_punctuation",
	},
	{
		re:         regexp.MustCompile(`(\s+[,.;:!?])`),
		group:      1,
		message:    "Space before punctuation",
		suggest: func(m string) []string {
			return []string{strings.TrimLeft(m, " \t")}
		},
		category:   CategoryPunctuation,
		confidence: 0.9,
		rule:       "space_before_punctuation",
	},
}

// RulesEngine matches a table of compiled regex patterns for common usage
// errors. It needs no external assets and serves as the grammar failover
// when the langproc engine is down.
type RulesEngine struct{}

// NewRulesEngine creates the pattern rule engine.
func NewRulesEngine() *RulesEngine { return &RulesEngine{} }

// Name implements Adapter.
func (e *RulesEngine) Name() string { return "rules" }

// IsAvailable implements Adapter. The rule table is compiled in.
func (e *RulesEngine) IsAvailable() bool { return true }

// wordRe tokenizes words for the repeated-word scan.
var wordRe = regexp.MustCompile(`[A-Za-z']+`)

// repeatedWords flags immediate word doublings ("the the"). Backreferences
// are not expressible in RE2, so this is a token scan rather than a pattern
// table entry.
func repeatedWords(text string) []RawIssue {
	locs := wordRe.FindAllStringIndex(text, -1)
	var issues []RawIssue
	for i := 1; i < len(locs); i++ {
		prev := text[locs[i-1][0]:locs[i-1][1]]
		curr := text[locs[i][0]:locs[i][1]]
		if !strings.EqualFold(prev, curr) {
			continue
		}
		// Only adjacent doublings separated by plain spaces count.
		between := text[locs[i-1][1]:locs[i][0]]
		if strings.Trim(between, " ") != "" {
			continue
		}
		issues = append(issues, RawIssue{
			Start:       locs[i-1][1],
			End:         locs[i][1],
			Message:     "Repeated word",
			Suggestions: []string{""},
			Confidence:  0.85,
			Category:    CategoryGrammar,
			Rule:        "repeated_word",
		})
	}
	return issues
}

// Analyze implements Adapter.
func (e *RulesEngine) Analyze(ctx context.Context, text string, opts Options) ([]RawIssue, error) {
	var issues []RawIssue
	if opts.Wants(CategoryGrammar) {
		issues = append(issues, repeatedWords(text)...)
	}
	for _, p := range patterns {
		if !opts.Wants(p.category) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return issues, err
		}
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[2*p.group], loc[2*p.group+1]
			if start < 0 || end < 0 {
				continue
			}
			issues = append(issues, RawIssue{
				Start:       start,
				End:         end,
				Message:     p.message,
				Suggestions: p.suggest(text[start:end]),
				Confidence:  p.confidence,
				Category:    p.category,
				Rule:        p.rule,
			})
		}
	}
	return issues, nil
}
