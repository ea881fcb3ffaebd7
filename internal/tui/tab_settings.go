package tui

import (
	"fmt"
	"strconv"
	"strings"

	"studytrack/internal/config"
	"studytrack/internal/tui/components"
	"studytrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsField int

const (
	settingsFieldDataDir settingsField = iota
	settingsFieldTheme
	settingsFieldChartDays
	settingsFieldSave
	settingsFieldCount
)

type settingsState struct {
	focus   settingsField
	editing bool
	input   textinput.Model
}

func (a App) updateSettingsTab(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	s := a.settings
	key := msg.String()

	if s.editing {
		switch key {
		case "enter":
			a = a.applySettingsEdit(s)
			return a, nil, true
		case "esc":
			s.editing = false
			a.settings = s
			return a, nil, true
		default:
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			a.settings = s
			return a, cmd, true
		}
	}

	switch key {
	case "tab", "down", "j":
		s.focus = (s.focus + 1) % settingsFieldCount
		a.settings = s
		return a, nil, true

	case "shift+tab", "up", "k":
		s.focus = (s.focus - 1 + settingsFieldCount) % settingsFieldCount
		a.settings = s
		return a, nil, true

	case "left", "h":
		if s.focus == settingsFieldTheme {
			a.cfg.Appearance.Theme = cycleTheme(a.cfg.Appearance.Theme, -1)
			theme.SetActive(a.cfg.Appearance.Theme)
			return a, nil, true
		}

	case "right":
		if s.focus == settingsFieldTheme {
			a.cfg.Appearance.Theme = cycleTheme(a.cfg.Appearance.Theme, 1)
			theme.SetActive(a.cfg.Appearance.Theme)
			return a, nil, true
		}

	case "enter":
		switch s.focus {
		case settingsFieldDataDir, settingsFieldChartDays:
			in := textinput.New()
			in.CharLimit = 200
			in.Width = 48
			if s.focus == settingsFieldDataDir {
				in.SetValue(config.DataDir(a.cfg))
			} else {
				in.SetValue(strconv.Itoa(a.cfg.General.ChartDays))
				in.CharLimit = 4
				in.Width = 6
			}
			in.Focus()
			s.input = in
			s.editing = true
			a.settings = s
			return a, nil, true

		case settingsFieldTheme:
			a.cfg.Appearance.Theme = cycleTheme(a.cfg.Appearance.Theme, 1)
			theme.SetActive(a.cfg.Appearance.Theme)
			return a, nil, true

		case settingsFieldSave:
			if err := config.Save(a.cfg); err != nil {
				a.setStatus("save failed: " + err.Error())
			} else {
				a.setStatus("config saved to " + config.ConfigPath())
			}
			return a, nil, true
		}
	}

	return a, nil, false
}

func (a App) applySettingsEdit(s settingsState) App {
	val := strings.TrimSpace(s.input.Value())
	switch s.focus {
	case settingsFieldDataDir:
		if val != "" {
			a.cfg.General.DataDir = val
			a.setStatus("data dir takes effect on restart")
		}
	case settingsFieldChartDays:
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			a.setStatus("chart days must be a positive number")
		} else {
			a.cfg.General.ChartDays = n
			a.recompute()
		}
	}
	s.editing = false
	a.settings = s
	return a
}

func cycleTheme(name string, dir int) string {
	idx := 0
	for i, t := range theme.All {
		if t.Name == name {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(theme.All)) % len(theme.All)
	return theme.All[idx].Name
}

// ─── Rendering ──────────────────────────────────────────────────

func (a App) renderSettingsTab(cw int) string {
	s := a.settings
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	focusStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	row := func(f settingsField, label, value string) string {
		vs := valueStyle
		if s.focus == f {
			vs = focusStyle
		}
		if s.editing && s.focus == f {
			value = s.input.View()
		}
		return labelStyle.Render(label) + " " + vs.Render(value)
	}

	var b strings.Builder
	b.WriteString(row(settingsFieldDataDir, "Data dir", config.DataDir(a.cfg)))
	b.WriteString("\n")
	b.WriteString(row(settingsFieldTheme, "Theme", a.cfg.Appearance.Theme))
	b.WriteString("\n")
	b.WriteString(row(settingsFieldChartDays, "Chart days", strconv.Itoa(a.cfg.General.ChartDays)))
	b.WriteString("\n\n")
	b.WriteString(renderButton("Save config", s.focus == settingsFieldSave))
	b.WriteString("\n\n")
	b.WriteString(dim.Render("enter edits a field, ←/→ cycle the theme, esc cancels"))

	form := components.ContentCard("Settings", b.String(), cw)
	about := components.ContentCard("Files", a.renderSettingsFiles(), cw)
	return lipgloss.JoinVertical(lipgloss.Left, form, about)
}

func (a App) renderSettingsFiles() string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", muted.Render("config  "), dim.Render(config.ConfigPath()))
	fmt.Fprintf(&b, "%s %s\n", muted.Render("plan    "), dim.Render(a.dataDir+"/plan.yaml"))
	fmt.Fprintf(&b, "%s %s\n", muted.Render("feeds   "), dim.Render(a.dataDir+"/feeds.yaml"))
	fmt.Fprintf(&b, "%s %s", muted.Render("ledgers "), dim.Render(a.dataDir+"/{progress,milestones,reflections}.csv"))
	return b.String()
}
