package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for command output
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles for command output
var (
	// HeaderStyle is for section headers (e.g. "Configured Symbol Libraries")
	HeaderStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// SuccessStyle is for success status lines
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle is for warning status lines
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle is for error status lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// MutedStyle is for secondary detail text
	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// KeyStyle is for detail keys in key/value listings
	KeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(24)
)

// Status markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	BulletMarker  = "•"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
