// Package style provides terminal styling for dropsort's CLI output.
// Colors adapt to the terminal background and degrade to plain text
// when output is not a terminal.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

// Status indicators
var (
	SuccessIndicator = paint(SuccessStyle, "✓")
	ErrorIndicator   = paint(ErrorStyle, "✗")
	WarningIndicator = paint(WarningStyle, "!")
	InfoIndicator    = paint(InfoStyle, "•")
)

// Styled text helpers. All CLI output goes through these so piped
// output stays plain text.
func Success(s string) string { return paint(SuccessStyle, s) }
func Error(s string) string   { return paint(ErrorStyle, s) }
func Warning(s string) string { return paint(WarningStyle, s) }
func Info(s string) string    { return paint(InfoStyle, s) }
func Muted(s string) string   { return paint(MutedStyle, s) }
func Path(s string) string    { return paint(PathStyle, s) }
func Title(s string) string   { return paint(TitleStyle, s) }

// paint applies st only when stdout is a color-capable terminal.
func paint(st lipgloss.Style, s string) string {
	if !ColorEnabled() {
		return s
	}
	return st.Render(s)
}

// ColorEnabled reports whether stdout gets colored output.
func ColorEnabled() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
