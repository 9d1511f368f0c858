package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of f, or DefaultWidth when f is
// not a terminal or its size cannot be read.
func TerminalWidth(f *os.File) int {
	if !IsTerminal(f) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// Centered pads msg so it sits in the middle of a line width columns wide.
// Messages wider than the line are returned unchanged.
func Centered(msg string, width int) string {
	if lipgloss.Width(msg) >= width {
		return msg
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, msg)
}
