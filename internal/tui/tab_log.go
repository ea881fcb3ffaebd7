package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"studytrack/internal/cli"
	"studytrack/internal/ledger"
	"studytrack/internal/plan"
	"studytrack/internal/reconcile"
	"studytrack/internal/tui/components"
	"studytrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Log-tab fields in navigation order.
type logField int

const (
	logFieldDate logField = iota
	logFieldModule
	logFieldMinutes
	logFieldNote
	logFieldAdd
	logFieldQuickAdd
	logFieldDeliv
	logFieldDelivNote
	logFieldDelivSave
	logFieldCount
)

type logState struct {
	focus     logField
	date      textinput.Model
	moduleIdx int
	minutes   textinput.Model
	note      textinput.Model
	delivDone bool
	delivNote textinput.Model
	modules   []string
}

func newLogState() logState {
	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Width = 12

	minutes := textinput.New()
	minutes.Placeholder = "45"
	minutes.CharLimit = 4
	minutes.Width = 6

	note := textinput.New()
	note.Placeholder = "optional note"
	note.CharLimit = 120
	note.Width = 36

	delivNote := textinput.New()
	delivNote.Placeholder = "short note"
	delivNote.CharLimit = 120
	delivNote.Width = 36

	return logState{
		date:      date,
		minutes:   minutes,
		note:      note,
		delivNote: delivNote,
	}
}

// withDefaults fills plan-dependent bits once the data is loaded.
func (s logState) withDefaults(a App) logState {
	if a.plan != nil {
		s.modules = a.plan.ModuleNames()
	}
	if s.date.Value() == "" {
		s.date.SetValue(time.Now().Format("2006-01-02"))
	}
	s.date.Focus()
	return s
}

// textInput needs a pointer receiver so callers mutate s itself, not a copy.
func (s *logState) textInput(f logField) (*textinput.Model, bool) {
	switch f {
	case logFieldDate:
		return &s.date, true
	case logFieldMinutes:
		return &s.minutes, true
	case logFieldNote:
		return &s.note, true
	case logFieldDelivNote:
		return &s.delivNote, true
	}
	return nil, false
}

func (a App) updateLogTab(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	s := a.logState
	key := msg.String()
	if key == "space" {
		key = " "
	}

	switch key {
	case "tab", "down":
		s.focus = (s.focus + 1) % logFieldCount
		a.logState = a.syncLogFocus(s)
		return a, nil, true
	case "shift+tab", "up":
		s.focus = (s.focus - 1 + logFieldCount) % logFieldCount
		a.logState = a.syncLogFocus(s)
		return a, nil, true
	}

	switch s.focus {
	case logFieldModule:
		switch key {
		case "left", "h":
			if len(s.modules) > 0 {
				s.moduleIdx = (s.moduleIdx - 1 + len(s.modules)) % len(s.modules)
			}
			a.logState = s
			return a, nil, true
		case "right", "l", " ":
			if len(s.modules) > 0 {
				s.moduleIdx = (s.moduleIdx + 1) % len(s.modules)
			}
			a.logState = s
			return a, nil, true
		}

	case logFieldAdd:
		if key == "enter" {
			a.logState = s
			return a.addLogEntry(), nil, true
		}

	case logFieldQuickAdd:
		if key == "enter" {
			a.logState = s
			return a.quickAddPlanned(), nil, true
		}

	case logFieldDeliv:
		if key == " " || key == "enter" {
			s.delivDone = !s.delivDone
			a.logState = s
			return a, nil, true
		}

	case logFieldDelivSave:
		if key == "enter" {
			a.logState = s
			return a.saveMilestone(), nil, true
		}

	default:
		// A focused text input owns every remaining key, including
		// arrows for cursor movement; tab/shift+tab above is the only
		// way out.
		if in, ok := s.textInput(s.focus); ok {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			a.logState = s
			return a, cmd, true
		}
	}

	a.logState = s
	return a, nil, false
}

// syncLogFocus blurs every text input except the focused one.
func (a App) syncLogFocus(s logState) logState {
	s.date.Blur()
	s.minutes.Blur()
	s.note.Blur()
	s.delivNote.Blur()
	if in, ok := s.textInput(s.focus); ok {
		in.Focus()
	}
	return s
}

// addLogEntry validates the form and appends to progress.csv.
func (a App) addLogEntry() App {
	s := a.logState

	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s.date.Value()), time.Local)
	if err != nil {
		a.setStatus("invalid date, use YYYY-MM-DD")
		return a
	}
	if len(s.modules) == 0 {
		a.setStatus("plan has no modules")
		return a
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(s.minutes.Value()))
	if err != nil || minutes <= 0 {
		a.setStatus("minutes must be a positive number")
		return a
	}

	entry := ledger.Entry{
		Date:    date,
		Module:  s.modules[s.moduleIdx],
		Minutes: minutes,
		Note:    strings.TrimSpace(s.note.Value()),
	}
	if err := a.progress.Append(entry); err != nil {
		a.setStatus("save failed: " + err.Error())
		return a
	}

	s.minutes.SetValue("")
	s.note.SetValue("")
	a.logState = s
	a.reloadProgress()
	a.setStatus(fmt.Sprintf("logged %s for %s", cli.FormatMinutes(minutes), entry.Module))
	return a
}

// quickAddPlanned logs today's planned minutes for every module.
func (a App) quickAddPlanned() App {
	if a.plan == nil {
		return a
	}
	today := time.Now()
	var batch []ledger.Entry
	for _, name := range a.plan.ModuleNames() {
		per := a.plannedDay[name]
		if per <= 0 {
			continue
		}
		batch = append(batch, ledger.Entry{
			Date:    today,
			Module:  name,
			Minutes: per,
			Note:    "planned",
		})
	}
	if len(batch) == 0 {
		a.setStatus("no planned minutes to add")
		return a
	}
	if err := a.progress.Append(batch...); err != nil {
		a.setStatus("save failed: " + err.Error())
		return a
	}
	a.reloadProgress()
	a.setStatus(fmt.Sprintf("quick-added %d planned entries", len(batch)))
	return a
}

// saveMilestone records the current week's deliverable when checked.
// Unchecking writes nothing: the ledger keeps no undo.
func (a App) saveMilestone() App {
	s := a.logState
	if !s.delivDone {
		a.setStatus("deliverable unchecked, nothing saved")
		return a
	}
	if a.week < 1 {
		a.setStatus("plan has not started yet")
		return a
	}
	doneDate := time.Now().Format("2006-01-02")
	if err := a.msStore.Upsert(a.week, doneDate, strings.TrimSpace(s.delivNote.Value())); err != nil {
		a.setStatus("save failed: " + err.Error())
		return a
	}
	ms, err := a.msStore.Load()
	if err == nil {
		a.milestones = ms
	}
	a.setStatus(fmt.Sprintf("week %d deliverable marked done", a.week))
	return a
}

// ─── Rendering ──────────────────────────────────────────────────

func (a App) renderLogTab(cw int) string {
	form := components.ContentCard("Log a session", a.renderLogForm(), cw)
	deliv := components.ContentCard("This week's deliverable", a.renderDeliverable(), cw)
	planCard := components.ContentCard(fmt.Sprintf("Week %d plan", a.week), a.renderWeekPlan(cw), cw)
	return lipgloss.JoinVertical(lipgloss.Left, form, deliv, planCard)
}

func (a App) renderLogForm() string {
	s := a.logState
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(10)

	moduleVal := "(none)"
	if len(s.modules) > 0 {
		moduleVal = s.modules[s.moduleIdx]
	}
	moduleLine := renderSelector(moduleVal, s.focus == logFieldModule)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Date"), s.date.View())
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Module"), moduleLine)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Minutes"), s.minutes.View())
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Note"), s.note.View())
	b.WriteString(renderButton("Add entry", s.focus == logFieldAdd))
	b.WriteString("  ")
	b.WriteString(renderButton("Quick-add today's planned", s.focus == logFieldQuickAdd))
	return b.String()
}

func (a App) renderDeliverable() string {
	s := a.logState
	t := theme.Active

	deliverable := "(no deliverable this week)"
	if w := a.currentWeekPlan(); w != nil && w.Deliverable != "" {
		deliverable = w.Deliverable
	}

	done := milestoneDone(a.milestones, a.week)

	box := "[ ]"
	if s.delivDone {
		box = "[x]"
	}
	boxStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	if s.focus == logFieldDeliv {
		boxStyle = boxStyle.Foreground(t.AccentBright).Bold(true)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Render(deliverable))
	if done {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Green).Render("  ✓ done"))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s mark done   note: %s\n\n", boxStyle.Render(box), s.delivNote.View())
	b.WriteString(renderButton("Save milestone", s.focus == logFieldDelivSave))
	return b.String()
}

func (a App) renderWeekPlan(cw int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	primary := lipgloss.NewStyle().Foreground(t.TextPrimary)

	w := a.currentWeekPlan()
	if w == nil {
		if a.week < 1 {
			return dim.Render("Plan starts " + a.plan.StartDate().Format("2006-01-02") + ".")
		}
		return dim.Render(fmt.Sprintf("No plan entry for week %d.", a.week))
	}

	inner := components.CardInnerWidth(cw)
	var b strings.Builder
	if len(w.Focus) > 0 {
		fmt.Fprintf(&b, "%s %s\n", muted.Render("Focus:"), primary.Render(strings.Join(w.Focus, ", ")))
	}
	for _, task := range w.OrderedTasks() {
		fmt.Fprintf(&b, "  %s %s\n", muted.Render(fmt.Sprintf("%-4s", task[0])),
			primary.Render(cli.TruncateText(task[1], inner-8)))
	}
	for _, r := range w.Resources {
		fmt.Fprintf(&b, "  %s %s\n", dim.Render("→"), dim.Render(r.Name+" "+r.URL))
	}
	if spark := a.weekSparkline(); spark != "" {
		fmt.Fprintf(&b, "\n%s %s\n", muted.Render("This week:"), spark)
	}
	return strings.TrimRight(b.String(), "\n")
}

// weekSparkline shows the current week's daily minutes at a glance.
func (a App) weekSparkline() string {
	if a.week < 1 {
		return ""
	}
	weekStart := a.plan.StartDate().AddDate(0, 0, (a.week-1)*7)
	daily := reconcile.DailyActual(a.entries, weekStart, weekStart.AddDate(0, 0, 6))
	values := make([]float64, len(daily))
	any := false
	for i, d := range daily {
		values[i] = float64(d.Minutes)
		if d.Minutes > 0 {
			any = true
		}
	}
	if !any {
		return ""
	}
	return components.Sparkline(values, theme.Active.Accent)
}

func (a App) currentWeekPlan() *plan.Week {
	if a.plan == nil {
		return nil
	}
	return a.plan.Week(a.week)
}

func milestoneDone(ms []ledger.Milestone, week int) bool {
	for _, m := range ms {
		if m.Week == week {
			return true
		}
	}
	return false
}

// Shared small widgets for form-style tabs.

func renderButton(label string, focused bool) string {
	t := theme.Active
	style := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(t.TextMuted).
		Background(t.Surface)
	if focused {
		style = style.Foreground(t.Background).Background(t.Accent).Bold(true)
	}
	return style.Render(label)
}

func renderSelector(value string, focused bool) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextPrimary)
	arrows := lipgloss.NewStyle().Foreground(t.TextDim)
	if focused {
		style = style.Foreground(t.AccentBright).Bold(true)
		arrows = arrows.Foreground(t.Accent)
	}
	return arrows.Render("◂ ") + style.Render(value) + arrows.Render(" ▸")
}
