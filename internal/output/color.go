// Package output provides styled terminal rendering for check results.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/prosecheck/internal/issue"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorError is used for error-severity issues.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for warning-severity issues.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorSuccess is used for clean results and auto-fixable badges.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles reused across commands.
var (
	StyleHeader  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBold    = lipgloss.NewStyle().Bold(true)
)

// noColor tracks whether color output is disabled.
var noColor bool

// Init decides color output once per process: an explicit flag wins,
// otherwise color is on only when stdout is a terminal.
func Init(disableFlag bool) {
	SetNoColor(disableFlag || !isatty.IsTerminal(os.Stdout.Fd()))
}

// SetNoColor disables or enables color output globally. When disabled, all
// package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleError = plain
		StyleWarning = plain
		StyleSuccess = plain
		StyleMuted = plain
		StyleBold = plain
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// SeverityStyle returns the style for an issue severity.
func SeverityStyle(s issue.Severity) lipgloss.Style {
	switch s {
	case issue.SeverityError:
		return StyleError
	case issue.SeverityWarning:
		return StyleWarning
	default:
		return StyleMuted
	}
}

// ClassificationBadge renders a suggestion's safety tier as a short badge.
func ClassificationBadge(c issue.Classification) string {
	switch c {
	case issue.AutoFixable:
		return StyleSuccess.Render("auto")
	case issue.SemiFixable:
		return StyleWarning.Render("semi")
	default:
		return StyleMuted.Render("manual")
	}
}
