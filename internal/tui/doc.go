// Package tui provides the terminal output layer for gitup.
//
// It handles:
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - Interactivity and color-capability detection
package tui
