package components

import (
	"fmt"
	"math"
	"strings"

	"studytrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return style.Render(b.String())
}

// MinutesChart renders a bar chart of daily minutes with a dashed marker row
// at the planned daily target. Falls back to a sparkline when too small.
func MinutesChart(values []float64, labels []string, target float64, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	if width < 15 || height < 3 {
		return Sparkline(values, t.Blue)
	}

	maxVal := target
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	ceiling := niceCeiling(maxVal)

	yLabelW := len(formatAxisLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// One column per day when it fits, otherwise sample the series down.
	n := len(values)
	if n > chartW {
		sampled := make([]float64, chartW)
		sampledLabels := make([]string, chartW)
		for i := range sampled {
			srcIdx := i * (n - 1) / (chartW - 1)
			sampled[i] = values[srcIdx]
			if len(labels) == n {
				sampledLabels[i] = labels[srcIdx]
			}
		}
		values, labels, n = sampled, sampledLabels, chartW
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	barStyle := lipgloss.NewStyle().Foreground(t.Blue)
	targetStyle := lipgloss.NewStyle().Foreground(t.Orange)

	targetRow := 0
	if target > 0 && target <= ceiling {
		targetRow = int(math.Ceil(target / ceiling * float64(height)))
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(height)
		rowBottom := ceiling * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = formatAxisLabel(ceiling)
		} else if row == targetRow {
			label = formatAxisLabel(target)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for _, v := range values {
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render("█"))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * float64(len(sparkBlocks)))
				if idx >= len(sparkBlocks) {
					idx = len(sparkBlocks) - 1
				}
				if idx < 0 {
					idx = 0
				}
				b.WriteString(barStyle.Render(string(sparkBlocks[idx])))
			case row == targetRow:
				b.WriteString(targetStyle.Render("┄"))
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	// X axis
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", n)))

	if len(labels) == n && n > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", yLabelW+1))
		b.WriteString(axisStyle.Render(spreadLabels(labels, n)))
	}

	return b.String()
}

// niceCeiling rounds v up to a round chart ceiling (1/2/5 x power of ten).
func niceCeiling(v float64) float64 {
	exp := math.Floor(math.Log10(v))
	base := math.Pow(10, exp)
	for _, mult := range []float64{1, 2, 5, 10} {
		if mult*base >= v {
			return mult * base
		}
	}
	return 10 * base
}

func formatAxisLabel(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("%.1fk", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}

// spreadLabels places as many labels as fit along an n-column axis,
// starting at their column and skipping ones that would collide.
func spreadLabels(labels []string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = ' '
	}

	lastEnd := -2
	for i, lbl := range labels {
		if lbl == "" {
			continue
		}
		end := i + len(lbl)
		if i <= lastEnd+1 || end > n {
			continue
		}
		copy(buf[i:end], lbl)
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}
