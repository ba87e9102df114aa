package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/prosecheck/internal/issue"
)

// Table is a simple styled table renderer.
type Table struct {
	headers []string
	rows    [][]string
	styles  []func(string) string
	widths  []int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row of values to the table. The number of values should
// match the number of headers.
func (t *Table) AddRow(values ...string) {
	t.AddStyledRow(nil, values...)
}

// AddStyledRow adds a row whose first cell is rendered with the given
// style function (severity coloring, badges). A nil style leaves the row
// plain.
func (t *Table) AddStyledRow(style func(string) string, values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		if len(row[i]) > t.widths[i] {
			t.widths[i] = len(row[i])
		}
	}
	t.rows = append(t.rows, row)
	t.styles = append(t.styles, style)
}

// Render returns the formatted table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	var sb strings.Builder

	// Header row.
	for i, h := range t.headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleHeader.Render(pad(h, t.widths[i])))
	}
	sb.WriteString("\n")

	// Separator.
	for i, w := range t.widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")

	// Data rows.
	for r, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			padded := pad(cell, t.widths[i])
			if i == 0 && t.styles[r] != nil {
				padded = t.styles[r](pad(cell, t.widths[i]))
			}
			sb.WriteString(padded)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Print writes the table to stdout.
func (t *Table) Print() {
	fmt.Print(t.Render())
}

// IssueTable renders issues with severity-colored rows and the top
// suggestion's classification badge.
func IssueTable(issues []issue.Issue) *Table {
	t := NewTable("SEVERITY", "CATEGORY", "RANGE", "TEXT", "SUGGESTION", "FIX")
	for _, iss := range issues {
		suggestion, badge := "", ""
		if len(iss.Suggestions) > 0 {
			top := iss.Suggestions[0]
			suggestion = top.Text
			badge = ClassificationBadge(top.Classification)
		}
		sev := iss.Severity
		t.AddStyledRow(
			func(s string) string { return SeverityStyle(sev).Render(s) },
			string(iss.Severity),
			string(iss.Category),
			fmt.Sprintf("%d-%d", iss.Offset, iss.End()),
			truncate(iss.OriginalText, 24),
			truncate(suggestion, 24),
			badge,
		)
	}
	return t
}

// pad right-pads a string to the given width.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
