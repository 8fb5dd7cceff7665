package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// styled reports whether stdout can usefully render color. Respects NO_COLOR
// and falls back to plain text for pipes and dumb terminals.
func styled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// Success renders text green
func Success(text string) string {
	if !styled() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(text)
}

// Accent renders text cyan, used for names and paths
func Accent(text string) string {
	if !styled() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}

// Warning renders text yellow
func Warning(text string) string {
	if !styled() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// Dim renders secondary text faint
func Dim(text string) string {
	if !styled() {
		return text
	}
	return lipgloss.NewStyle().
		Faint(true).
		Render(text)
}
