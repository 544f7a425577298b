// Package ui renders sfxgen's terminal output: status lines, the effect
// table and highlighted source previews.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// Color palette - consistent colors used throughout the CLI
var (
	PrimaryColor = lipgloss.Color("#00D7FF") // Cyan - headings, identifiers
	SuccessColor = lipgloss.Color("#5AF78E") // Green - written, verified
	WarningColor = lipgloss.Color("#F3F99D") // Yellow - warnings
	ErrorColor   = lipgloss.Color("#FF5C57") // Red - failures
	MutedColor   = lipgloss.Color("#6C7086") // Gray - secondary detail
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	idStyle      = lipgloss.NewStyle().Foreground(PrimaryColor)
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(SuccessColor)
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(WarningColor)
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(ErrorColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(MutedColor)
)

// Heading renders a section title.
func Heading(s string) string { return headingStyle.Render(s) }

// ID renders an effect identifier.
func ID(s string) string { return idStyle.Render(s) }

// Muted renders secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// OK renders a success line: "✓ msg".
func OK(msg string) string { return okStyle.Render("✓") + " " + msg }

// Warn renders a warning line.
func Warn(msg string) string { return warnStyle.Render("!") + " " + msg }

// Fail renders a failure line.
func Fail(msg string) string { return failStyle.Render("✗") + " " + msg }

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 100

// TerminalWidth returns the width of stdout, or defaultWidth.
func TerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
