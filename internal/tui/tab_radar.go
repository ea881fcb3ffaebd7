package tui

import (
	"fmt"
	"strings"

	"studytrack/internal/cli"
	"studytrack/internal/feed"
	"studytrack/internal/tui/components"
	"studytrack/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type feedResult struct {
	items []feed.Item
	err   string
}

type radarState struct {
	cursor   int
	expanded map[int]bool
	results  map[string]feedResult
	fetching map[string]bool
}

func newRadarState() radarState {
	return radarState{
		expanded: make(map[int]bool),
		results:  make(map[string]feedResult),
		fetching: make(map[string]bool),
	}
}

func (a App) updateRadarTab(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	s := a.radar
	n := len(a.feedCfg.Sections)
	if n == 0 {
		return a, nil, false
	}

	key := msg.String()
	if key == "space" {
		key = " "
	}
	switch key {
	case "j", "down":
		if s.cursor < n-1 {
			s.cursor++
		}
		a.radar = s
		return a, nil, true

	case "k", "up":
		if s.cursor > 0 {
			s.cursor--
		}
		a.radar = s
		return a, nil, true

	case "enter", " ":
		s.expanded[s.cursor] = !s.expanded[s.cursor]
		a.radar = s
		if !s.expanded[s.cursor] {
			return a, nil, true
		}
		return a.fetchSection(a.feedCfg.Sections[s.cursor])
	}

	return a, nil, false
}

// fetchSection kicks off fetches for every RSS source in the section
// that has no result yet.
func (a App) fetchSection(sec feed.Section) (App, tea.Cmd, bool) {
	var cmds []tea.Cmd
	for _, src := range sec.Items {
		if src.Type != feed.TypeRSS {
			continue
		}
		if _, done := a.radar.results[src.URL]; done || a.radar.fetching[src.URL] {
			continue
		}
		a.radar.fetching[src.URL] = true
		cmds = append(cmds, a.fetchFeedCmd(src.URL))
	}
	if len(cmds) == 0 {
		return a, nil, true
	}
	return a, tea.Batch(cmds...), true
}

// ─── Rendering ──────────────────────────────────────────────────

func (a App) renderRadarTab(cw int) string {
	t := theme.Active
	if len(a.feedCfg.Sections) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Render(
			"No feeds configured. Add sections to feeds.yaml in " + a.dataDir + ".")
		return components.ContentCard("Research radar", hint, cw)
	}

	var cards []string
	for i, sec := range a.feedCfg.Sections {
		cards = append(cards, components.ContentCard(a.radarSectionTitle(i, sec), a.renderRadarSection(i, sec, cw), cw))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (a App) radarSectionTitle(i int, sec feed.Section) string {
	marker := "▸"
	if a.radar.expanded[i] {
		marker = "▾"
	}
	title := fmt.Sprintf("%s %s", marker, sec.Name)
	if i == a.radar.cursor {
		return lipgloss.NewStyle().Foreground(theme.Active.AccentBright).Bold(true).Render(title)
	}
	return title
}

func (a App) renderRadarSection(i int, sec feed.Section, cw int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	link := lipgloss.NewStyle().Foreground(t.Blue)
	warn := lipgloss.NewStyle().Foreground(t.Orange)

	if !a.radar.expanded[i] {
		rss := 0
		for _, src := range sec.Items {
			if src.Type == feed.TypeRSS {
				rss++
			}
		}
		return dim.Render(fmt.Sprintf("%d sources (%d feeds) · enter to open", len(sec.Items), rss))
	}

	inner := components.CardInnerWidth(cw)
	var b strings.Builder
	for _, src := range sec.Items {
		fmt.Fprintf(&b, "%s %s\n", muted.Render(src.Title), dim.Render(src.URL))
		if src.Type != feed.TypeRSS {
			continue
		}

		if a.radar.fetching[src.URL] {
			b.WriteString(dim.Render("  fetching…"))
			b.WriteString("\n")
			continue
		}
		res, ok := a.radar.results[src.URL]
		if !ok {
			continue
		}
		if res.err != "" {
			b.WriteString(warn.Render("  ! " + cli.TruncateText(res.err, inner-4)))
			b.WriteString("\n")
			continue
		}
		if len(res.items) == 0 {
			b.WriteString(dim.Render("  (feed is empty)"))
			b.WriteString("\n")
			continue
		}
		for _, item := range res.items {
			when := ""
			if item.Published != "" {
				when = dim.Render("  " + item.Published)
			}
			fmt.Fprintf(&b, "  • %s%s\n", link.Render(cli.TruncateText(item.Title, inner-28)), when)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
