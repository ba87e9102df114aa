package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// LangprocEngine calls an external linguistic-analysis service for grammar
// checking. It is the heaviest engine in the set; the orchestrator treats it
// as the primary grammar source with the rules engine as its failover.
type LangprocEngine struct {
	endpoint string
	client   *http.Client
}

// NewLangprocEngine creates the external engine for the given endpoint.
// An empty endpoint leaves the engine unavailable.
func NewLangprocEngine(endpoint string) *LangprocEngine {
	return &LangprocEngine{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements Adapter.
func (e *LangprocEngine) Name() string { return "langproc" }

// IsAvailable implements Adapter.
func (e *LangprocEngine) IsAvailable() bool { return e.endpoint != "" }

// Wire format of the remote service. Offsets arrive as offset+length with
// replacement objects; conversion to RawIssue happens here and nowhere else.
type langprocResponse struct {
	Matches []langprocMatch `json:"matches"`
}

type langprocMatch struct {
	Offset       int                   `json:"offset"`
	Length       int                   `json:"length"`
	Message      string                `json:"message"`
	Replacements []langprocReplacement `json:"replacements"`
	Rule         langprocRule          `json:"rule"`
}

type langprocReplacement struct {
	Value string `json:"value"`
}

type langprocRule struct {
	ID        string `json:"id"`
	IssueType string `json:"issueType"`
}

// issueTypeCategories maps the service's issue types onto our categories.
var issueTypeCategories = map[string]string{
	"misspelling":    CategorySpelling,
	"grammar":        CategoryGrammar,
	"typographical":  CategoryPunctuation,
	"punctuation":    CategoryPunctuation,
	"style":          CategoryStyle,
	"word_choice":    CategoryWordChoice,
	"terminology":    CategoryWordChoice,
	"non_conformity": CategoryIdiom,
}

// Analyze implements Adapter. Failures (network, non-200, bad payload) come
// back as errors for the orchestrator to record; they never panic through.
func (e *LangprocEngine) Analyze(ctx context.Context, text string, opts Options) ([]RawIssue, error) {
	if e.endpoint == "" {
		return nil, fmt.Errorf("langproc: no endpoint configured")
	}

	form := url.Values{}
	form.Set("text", text)
	if opts.Language != "" {
		form.Set("language", opts.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("langproc: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("langproc: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("langproc: unexpected status %d", resp.StatusCode)
	}

	var parsed langprocResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("langproc: decoding response: %w", err)
	}

	issues := make([]RawIssue, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		category, ok := issueTypeCategories[m.Rule.IssueType]
		if !ok {
			category = CategoryGrammar
		}
		if !opts.Wants(category) {
			continue
		}
		suggestions := make([]string, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			suggestions = append(suggestions, r.Value)
		}
		issues = append(issues, RawIssue{
			Start:       m.Offset,
			End:         m.Offset + m.Length,
			Message:     m.Message,
			Suggestions: suggestions,
			Confidence:  0.85,
			Category:    category,
			Rule:        m.Rule.ID,
		})
	}
	return issues, nil
}
