package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// GradientColors is the spinner color cycle.
var GradientColors = []lipgloss.Color{"5", "13", "6", "14", "2"}

// DisableColors switches all rendering to plain ASCII (--no-color, NO_COLOR).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ColorsEnabled reports whether styled output emits color codes.
func ColorsEnabled() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// PrintSuccess prints "✓ msg" in green.
func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, fg(ColorSuccess).Render(SymbolSuccess+" "+msg))
}

// PrintWarning prints "⚠ msg" in yellow.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, fg(ColorWarning).Render(SymbolWarning+" "+msg))
}

// PrintError prints "✗ msg" in red.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, fg(ColorError).Render(SymbolFail+" "+msg))
}

// PrintMuted prints msg in gray.
func PrintMuted(w io.Writer, msg string) {
	fmt.Fprintln(w, fg(ColorMuted).Render(msg))
}
