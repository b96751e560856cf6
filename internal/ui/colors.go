package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Accent palette.
const (
	ColorNeonPink   lipgloss.Color = "#ff6ac1"
	ColorNeonCyan   lipgloss.Color = "#5fd7ff"
	ColorNeonPurple lipgloss.Color = "#af87ff"
	ColorNeonGreen  lipgloss.Color = "#5fff87"
	ColorNeonOrange lipgloss.Color = "#ff875f"
	ColorNeonAmber  lipgloss.Color = "#ffd75f"
)

// Semantic colors for status indication.
const (
	ColorSuccess lipgloss.Color = "#22c55e"
	ColorError   lipgloss.Color = "#ef4444"
	ColorWarning lipgloss.Color = "#eab308"
	ColorInfo    lipgloss.Color = "#06b6d4"
)

// Text colors for content hierarchy.
const (
	ColorPrimary   lipgloss.Color = "#e5e7eb"
	ColorSecondary lipgloss.Color = "#3b82f6"
	ColorMuted     lipgloss.Color = "#6b7280"
)

// GradientColors cycle through the spinner animation.
var GradientColors = []lipgloss.Color{
	ColorNeonPink,
	ColorNeonPurple,
	ColorNeonCyan,
	ColorNeonGreen,
}

// SuccessStyle returns the style for success messages.
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// ErrorStyle returns the style for error messages.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}

// WarningStyle returns the style for warning messages.
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorWarning)
}

// InfoStyle returns the style for informational messages.
func InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorInfo)
}

// MutedStyle returns the style for secondary text.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// DisableColors switches all lipgloss rendering to plain ASCII. Used for
// --no-color and when output is piped.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// PrintWarning writes a styled warning line to stderr.
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", WarningStyle().Render(SymbolWarning), message)
}
