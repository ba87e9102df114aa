package output

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/prosecheck/internal/issue"
)

func init() {
	// Keep assertions about rendered text free of ANSI noise.
	SetNoColor(true)
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  int // expected length of output
	}{
		{"needs padding", "hi", 10, 10},
		{"exact width", "hello", 5, 5},
		{"over width", "toolong", 3, 7}, // no truncation
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pad(tc.input, tc.width)
			if len(got) != tc.want {
				t.Errorf("pad(%q, %d) len = %d, want %d", tc.input, tc.width, len(got), tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate under limit = %q", got)
	}
	if got := truncate("a very long string indeed", 10); len(got) > 13 {
		// The ellipsis rune is multi-byte; the visible width is what matters.
		t.Errorf("truncate over limit = %q", got)
	}
}

func TestTable_Render(t *testing.T) {
	tbl := NewTable("NAME", "COUNT")
	tbl.AddRow("rules", "3")
	tbl.AddRow("dictionary", "12")

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + separator + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "NAME") || !strings.Contains(lines[0], "COUNT") {
		t.Errorf("header missing: %q", lines[0])
	}
	if !strings.Contains(lines[3], "dictionary") {
		t.Errorf("expected row content, got %q", lines[3])
	}
}

func TestIssueTable(t *testing.T) {
	issues := []issue.Issue{{
		Category:     issue.CategorySpelling,
		Severity:     issue.SeverityError,
		Offset:       0,
		Length:       3,
		OriginalText: "teh",
		Suggestions: []issue.Suggestion{{
			Text:           "the",
			Classification: issue.AutoFixable,
		}},
	}}

	out := IssueTable(issues).Render()
	for _, want := range []string{"error", "spelling", "0-3", "teh", "the", "auto"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q:\n%s", want, out)
		}
	}
}

func TestIssueTable_NoSuggestions(t *testing.T) {
	issues := []issue.Issue{{
		Category:     issue.CategoryStyle,
		Severity:     issue.SeveritySuggestion,
		Offset:       4,
		Length:       11,
		OriginalText: "was written",
	}}
	out := IssueTable(issues).Render()
	if !strings.Contains(out, "was written") {
		t.Errorf("expected original text rendered:\n%s", out)
	}
}

func TestQualityBar(t *testing.T) {
	bar := QualityBar(80, 10)
	if !strings.Contains(bar, "80/100") {
		t.Errorf("expected score label, got %q", bar)
	}
	if n := strings.Count(bar, "█"); n != 8 {
		t.Errorf("expected 8 filled cells at 80%%, got %d in %q", n, bar)
	}
	if n := strings.Count(QualityBar(0, 10), "░"); n != 10 {
		t.Errorf("expected empty bar at 0, got %d empty cells", n)
	}
}

func TestLatencySummary(t *testing.T) {
	if got := LatencySummary(12.34, false); !strings.Contains(got, "12.3ms") {
		t.Errorf("expected latency, got %q", got)
	}
	if got := LatencySummary(0.2, true); !strings.Contains(got, "(cached)") {
		t.Errorf("expected cache marker, got %q", got)
	}
}

func TestClassificationBadge(t *testing.T) {
	if got := ClassificationBadge(issue.AutoFixable); got != "auto" {
		t.Errorf("expected auto, got %q", got)
	}
	if got := ClassificationBadge(issue.SemiFixable); got != "semi" {
		t.Errorf("expected semi, got %q", got)
	}
	if got := ClassificationBadge(issue.ManualOnly); got != "manual" {
		t.Errorf("expected manual, got %q", got)
	}
}
