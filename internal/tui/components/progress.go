package components

import (
	"fmt"
	"strings"

	"studytrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a bar with percentage, colored by completion level.
func ProgressBar(pct float64, width int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	capped := pct
	if capped > 1 {
		capped = 1
	}
	filled := int(capped * float64(width))

	var barColor lipgloss.Color
	switch {
	case pct >= 1:
		barColor = t.Green
	case pct >= 0.6:
		barColor = t.Accent
	default:
		barColor = t.Orange
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Bold(true)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled)) +
		" " + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}
