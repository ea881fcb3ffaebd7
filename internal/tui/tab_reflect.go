package tui

import (
	"fmt"
	"strings"

	"studytrack/internal/cli"
	"studytrack/internal/ledger"
	"studytrack/internal/tui/components"
	"studytrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type reflectField int

const (
	reflectFieldTopic reflectField = iota
	reflectFieldMood
	reflectFieldTags
	reflectFieldText
	reflectFieldSave
	reflectFieldCount
)

const recentReflections = 5

type reflectState struct {
	focus    reflectField
	topicIdx int
	moodIdx  int
	tags     textinput.Model
	text     textarea.Model
}

func newReflectState() reflectState {
	tags := textinput.New()
	tags.Placeholder = "comma,separated,tags"
	tags.CharLimit = 80
	tags.Width = 36

	text := textarea.New()
	text.Placeholder = "What did you learn? Where did you get stuck?"
	text.SetWidth(60)
	text.SetHeight(4)
	text.CharLimit = 2000

	return reflectState{tags: tags, text: text}
}

func (a App) updateReflectTab(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	s := a.journal
	key := msg.String()
	if key == "space" {
		key = " "
	}

	// The textarea wants enter for newlines, so field navigation is
	// tab/shift+tab only while it is focused.
	switch key {
	case "tab":
		s.focus = (s.focus + 1) % reflectFieldCount
		a.journal = a.syncReflectFocus(s)
		return a, nil, true
	case "shift+tab":
		s.focus = (s.focus - 1 + reflectFieldCount) % reflectFieldCount
		a.journal = a.syncReflectFocus(s)
		return a, nil, true
	}

	switch s.focus {
	case reflectFieldTopic:
		if next, ok := cycleIdx(key, s.topicIdx, len(ledger.Topics)); ok {
			s.topicIdx = next
			a.journal = s
			return a, nil, true
		}

	case reflectFieldMood:
		if next, ok := cycleIdx(key, s.moodIdx, len(ledger.Moods)); ok {
			s.moodIdx = next
			a.journal = s
			return a, nil, true
		}

	case reflectFieldTags:
		var cmd tea.Cmd
		s.tags, cmd = s.tags.Update(msg)
		a.journal = s
		return a, cmd, true

	case reflectFieldText:
		var cmd tea.Cmd
		s.text, cmd = s.text.Update(msg)
		a.journal = s
		return a, cmd, true

	case reflectFieldSave:
		if key == "enter" {
			a.journal = s
			return a.saveReflection(), nil, true
		}
	}

	a.journal = s
	return a, nil, false
}

func cycleIdx(key string, idx, n int) (int, bool) {
	if n == 0 {
		return idx, false
	}
	switch key {
	case "left", "h":
		return (idx - 1 + n) % n, true
	case "right", "l", " ":
		return (idx + 1) % n, true
	}
	return idx, false
}

func (a App) syncReflectFocus(s reflectState) reflectState {
	s.tags.Blur()
	s.text.Blur()
	switch s.focus {
	case reflectFieldTags:
		s.tags.Focus()
	case reflectFieldText:
		s.text.Focus()
	}
	return s
}

func (a App) saveReflection() App {
	s := a.journal
	text := strings.TrimSpace(s.text.Value())
	if text == "" {
		a.setStatus("reflection text is empty")
		return a
	}

	r := ledger.Reflection{
		Topic: ledger.Topics[s.topicIdx],
		Mood:  ledger.Moods[s.moodIdx],
		Text:  text,
		Tags:  strings.TrimSpace(s.tags.Value()),
	}
	if err := a.rfStore.Append(r); err != nil {
		a.setStatus("save failed: " + err.Error())
		return a
	}

	if rs, err := a.rfStore.Load(); err == nil {
		a.reflections = rs
	}
	s.text.Reset()
	s.tags.SetValue("")
	a.journal = s
	a.setStatus("reflection saved")
	return a
}

// ─── Rendering ──────────────────────────────────────────────────

func (a App) renderReflectTab(cw int) string {
	form := components.ContentCard("New reflection", a.renderReflectForm(), cw)
	recent := components.ContentCard("Recent reflections", a.renderRecentReflections(cw), cw)
	return lipgloss.JoinVertical(lipgloss.Left, form, recent)
}

func (a App) renderReflectForm() string {
	s := a.journal
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(8)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Topic"),
		renderSelector(ledger.Topics[s.topicIdx], s.focus == reflectFieldTopic))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Mood"),
		renderSelector(ledger.Moods[s.moodIdx], s.focus == reflectFieldMood))
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Tags"), s.tags.View())
	b.WriteString(s.text.View())
	b.WriteString("\n\n")
	b.WriteString(renderButton("Save reflection", s.focus == reflectFieldSave))
	return b.String()
}

func (a App) renderRecentReflections(cw int) string {
	t := theme.Active
	if len(a.reflections) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No reflections yet.")
	}

	tsStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	topicStyle := lipgloss.NewStyle().Foreground(t.Blue)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	tagStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	inner := components.CardInnerWidth(cw)
	start := len(a.reflections) - recentReflections
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for i := len(a.reflections) - 1; i >= start; i-- {
		r := a.reflections[i]
		fmt.Fprintf(&b, "%s  %s %s\n", tsStyle.Render(r.Date), topicStyle.Render(r.Topic), r.Mood)
		b.WriteString("  " + textStyle.Render(cli.TruncateText(r.Text, inner-2)))
		if r.Tags != "" {
			b.WriteString("  " + tagStyle.Render("#"+strings.ReplaceAll(r.Tags, ",", " #")))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
