package tui

import (
	"fmt"
	"sort"
	"strings"

	"studytrack/internal/cli"
	"studytrack/internal/reconcile"
	"studytrack/internal/tui/components"
	"studytrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const recentLogRows = 8

func (a App) renderProgressTab(cw int) string {
	var sections []string
	sections = append(sections, a.renderProgressCards(cw))
	sections = append(sections, components.ContentCard("Daily minutes", a.renderDailyChart(cw), cw))
	sections = append(sections, components.ContentCard("By module", a.renderModuleTable(), cw))
	sections = append(sections, components.ContentCard("Recent sessions", a.renderRecentLogs(cw), cw))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) renderProgressCards(cw int) string {
	planned := a.plannedTot.Total()
	actual := a.actualTot.Total()
	delta := actual - planned

	deltaSub := "on track"
	if delta > 0 {
		deltaSub = "ahead of plan"
	} else if delta < 0 {
		deltaSub = "behind plan"
	}

	weekVal := fmt.Sprintf("%d", a.week)
	weekSub := "of the plan"
	if a.week < 1 {
		weekVal = "—"
		weekSub = "starts " + a.plan.StartDate().Format("Jan 2")
	}

	cards := components.MetricCardRow([]struct{ Label, Value, Sub string }{
		{"Planned", cli.FormatMinutes(planned), "since start"},
		{"Actual", cli.FormatMinutes(actual), "logged"},
		{"Delta", cli.FormatSignedMinutes(delta), deltaSub},
		{"Week", weekVal, weekSub},
	}, cw)

	if planned <= 0 {
		return cards
	}
	pace := float64(actual) / float64(planned)
	bar := "  " + components.ProgressBar(pace, cw-12)
	return lipgloss.JoinVertical(lipgloss.Left, cards, bar)
}

func (a App) renderDailyChart(cw int) string {
	if len(a.daily) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("No days in range yet.")
	}

	values := make([]float64, len(a.daily))
	labels := make([]string, len(a.daily))
	for i, d := range a.daily {
		values[i] = float64(d.Minutes)
		labels[i] = d.Date.Format("Jan 2")
	}

	// Dashed target line at the plan's total daily minutes.
	var target float64
	for _, per := range a.plannedDay {
		target += float64(per)
	}

	inner := components.CardInnerWidth(cw)
	return components.MinutesChart(values, labels, target, inner, 9)
}

func (a App) renderModuleTable() string {
	names := a.plan.ModuleNames()

	// CSV rows may mention modules the plan no longer lists.
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	var extra []string
	for name := range a.actualTot {
		if name != reconcile.TotalKey && !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	table := cli.Table{Headers: []string{"module", "planned", "actual", "delta", "pace"}}
	for _, name := range names {
		planned := a.plannedTot.Get(name)
		actual := a.actualTot.Get(name)
		pace := "—"
		if planned > 0 {
			pace = cli.FormatPercent(float64(actual) / float64(planned))
		}
		table.Rows = append(table.Rows, []string{
			name,
			cli.FormatMinutes(planned),
			cli.FormatMinutes(actual),
			cli.FormatSignedMinutes(actual - planned),
			pace,
		})
	}
	table.Rows = append(table.Rows, []string{"---"})
	table.Rows = append(table.Rows, []string{
		"total",
		cli.FormatMinutes(a.plannedTot.Total()),
		cli.FormatMinutes(a.actualTot.Total()),
		cli.FormatSignedMinutes(a.actualTot.Total() - a.plannedTot.Total()),
		"",
	})
	return cli.RenderTable(table)
}

func (a App) renderRecentLogs(cw int) string {
	t := theme.Active
	if len(a.entries) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("Nothing logged yet. Switch to the Log tab to add a session.")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	moduleStyle := lipgloss.NewStyle().Foreground(t.Blue)
	minStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	inner := components.CardInnerWidth(cw)
	start := len(a.entries) - recentLogRows
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for i := len(a.entries) - 1; i >= start; i-- {
		e := a.entries[i]
		line := fmt.Sprintf("%s  %s  %s",
			dateStyle.Render(e.Date.Format("2006-01-02")),
			moduleStyle.Render(fmt.Sprintf("%-10s", cli.TruncateText(e.Module, 10))),
			minStyle.Render(fmt.Sprintf("%7s", cli.FormatMinutes(e.Minutes))))
		if e.Note != "" {
			line += "  " + noteStyle.Render(cli.TruncateText(e.Note, inner-34))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
