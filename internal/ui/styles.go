package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#6B7280") // Gray
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorMuted     = lipgloss.Color("#9CA3AF") // Light gray
)

// Text styles
var Muted = lipgloss.NewStyle().Foreground(ColorMuted)

// ID style - distinctive for todo IDs
var ID = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true)

// Completion text styles (for table use, no background/padding)
var (
	DoneText    = lipgloss.NewStyle().Foreground(ColorSecondary)
	PendingText = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
)

// RenderCompleted returns styled completion state text for tables.
func RenderCompleted(completed bool) string {
	if completed {
		return DoneText.Render("done")
	}
	return PendingText.Render("pending")
}

// RenderTitle renders a todo title, struck through once it is done.
func RenderTitle(title string, completed bool) string {
	if completed {
		return Muted.Strikethrough(true).Render(title)
	}
	return title
}
