package components

import (
	"fmt"

	"studytrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status line: current plan week, data
// directory, and a transient status message (e.g. "saved").
func RenderStatusBar(width, week int, dataDir, msg string) string {
	t := theme.Active

	weekStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Bold(true).
		Padding(0, 1)

	dirStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	msgStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	weekStr := "before start"
	if week > 0 {
		weekStr = fmt.Sprintf("Week %d", week)
	}

	left := weekStyle.Render(weekStr) + " " + dirStyle.Render(dataDir)
	if msg != "" {
		left += "  " + msgStyle.Render(msg)
	}
	right := hintStyle.Render("? help · q quit ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}
