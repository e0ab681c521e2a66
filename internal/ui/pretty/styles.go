// Package pretty provides lipgloss-based styled output for lint results.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette shared by the styled renderers.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorGray   = lipgloss.Color("8")
)

// Styles contains the styled renderers for terminal output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Message components
	FilePath lipgloss.Style
	Location lipgloss.Style
	RuleID   lipgloss.Style
	Message  lipgloss.Style

	// Summary styles
	Success lipgloss.Style
	Failure lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates the style set. With color disabled every style renders
// text untouched.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error:    plain,
			Warning:  plain,
			FilePath: plain,
			Location: plain,
			RuleID:   plain,
			Message:  plain,
			Success:  plain,
			Failure:  plain,
			Dim:      plain,
			Bold:     plain,
		}
	}

	bold := lipgloss.NewStyle().Bold(true)
	dim := lipgloss.NewStyle().Foreground(colorGray)
	return &Styles{
		Error:   bold.Foreground(colorRed),
		Warning: bold.Foreground(colorYellow),

		FilePath: bold,
		Location: dim,
		RuleID:   dim,
		Message:  lipgloss.NewStyle(),

		Success: bold.Foreground(colorGreen),
		Failure: bold.Foreground(colorRed),

		Dim:  dim,
		Bold: bold,
	}
}

// IsColorEnabled decides whether styled output should be colorized.
// Mode values: "auto" (default), "always", "never". Auto enables color only
// when the writer is a terminal and NO_COLOR (https://no-color.org/) is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
