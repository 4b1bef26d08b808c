package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ndang/mailgrep/internal/theme"
)

// Layout manages the terminal layout dimensions for the browser:
// a one-line header, the content area, and a one-line status bar.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentHeight returns the height available for the main content area.
func (l Layout) ContentHeight() int {
	return l.Height - 2
}

// RenderHeader renders the top header bar with a title on the left and
// a status note on the right.
func (l Layout) RenderHeader(title, note string) string {
	titleRendered := theme.HeaderStyle.Render(title)
	noteRendered := theme.HeaderStyle.Align(lipgloss.Right).Render(note)

	gap := l.Width - lipgloss.Width(titleRendered) - lipgloss.Width(noteRendered)
	if gap < 0 {
		gap = 0
	}
	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, titleRendered, filler, noteRendered)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}
	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}
