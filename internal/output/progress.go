package output

import (
	"fmt"
	"strings"
)

// QualityBar renders a visual bar for a 0-100 writing quality score.
// Example: "████████░░ 80/100"
func QualityBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case score >= 80:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case score >= 50:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleError.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%.0f/100", score)))
}

// LatencySummary formats a processing time for the statistics footer.
func LatencySummary(ms float64, fromCache bool) string {
	if fromCache {
		return StyleMuted.Render(fmt.Sprintf("%.1fms (cached)", ms))
	}
	return StyleMuted.Render(fmt.Sprintf("%.1fms", ms))
}
