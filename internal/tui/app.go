// Package tui provides the interactive Bubble Tea dashboard for studytrack.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"studytrack/internal/config"
	"studytrack/internal/feed"
	"studytrack/internal/ledger"
	"studytrack/internal/plan"
	"studytrack/internal/reconcile"
	"studytrack/internal/store"
	"studytrack/internal/tui/components"
	"studytrack/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tab indices, matching components.Tabs order.
const (
	tabLog = iota
	tabProgress
	tabRadar
	tabReflect
	tabSettings
)

// dataLoadedMsg is sent when the plan and all ledgers have been read.
type dataLoadedMsg struct {
	plan        *plan.Plan
	planErr     error
	entries     []ledger.Entry
	milestones  []ledger.Milestone
	reflections []ledger.Reflection
	feedCfg     feed.Config
	loadErr     error
}

// feedResultMsg reports one finished feed fetch.
type feedResultMsg struct {
	url   string
	items []feed.Item
	err   string
}

type tickMsg time.Time

// statusTTL is how long a transient status message stays visible.
const statusTTL = 4 * time.Second

// App is the root Bubble Tea model.
type App struct {
	dataDir string
	cfg     config.Config

	// Stores
	progress    *ledger.ProgressStore
	msStore     *ledger.MilestoneStore
	rfStore     *ledger.ReflectionStore
	fetcher     *feed.Fetcher
	cacheHandle *store.Cache // nil when the cache could not be opened

	// Loaded data
	plan        *plan.Plan
	planErr     error
	entries     []ledger.Entry
	milestones  []ledger.Milestone
	reflections []ledger.Reflection
	feedCfg     feed.Config
	loaded      bool
	loadErr     error

	// Computed for the current session
	today      time.Time
	week       int
	plannedDay map[string]int
	plannedTot reconcile.Totals
	actualTot  reconcile.Totals
	daily      []reconcile.DayTotal

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	statusMsg string
	statusAt  time.Time

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Per-tab state
	logState logState
	radar    radarState
	journal  reflectState
	settings settingsState
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates the dashboard model rooted at dataDir.
func NewApp(dataDir string, cfg config.Config) App {
	feedCfg := feed.DefaultConfig()

	var cache *store.Cache
	fetcherCache := feed.Cache(nil)
	if c, err := store.Open(filepath.Join(dataDir, "feedcache.db")); err == nil {
		cache = c
		fetcherCache = c
	}

	return App{
		dataDir:     dataDir,
		cfg:         cfg,
		progress:    ledger.NewProgressStore(dataDir),
		msStore:     ledger.NewMilestoneStore(dataDir),
		rfStore:     ledger.NewReflectionStore(dataDir),
		fetcher:     feed.NewFetcher(feedCfg.Fetch, fetcherCache),
		cacheHandle: cache,
		needSetup:   !config.Exists(),
		logState:    newLogState(),
		radar:       newRadarState(),
		journal:     newReflectState(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadDataCmd(), tickCmd())
}

// loadDataCmd reads the plan, all three ledgers, and the feed config.
func (a App) loadDataCmd() tea.Cmd {
	dataDir := a.dataDir
	progress, msStore, rfStore := a.progress, a.msStore, a.rfStore
	return func() tea.Msg {
		msg := dataLoadedMsg{}
		msg.plan, msg.planErr = plan.Load(filepath.Join(dataDir, "plan.yaml"))
		msg.feedCfg, _ = feed.LoadConfig(filepath.Join(dataDir, "feeds.yaml"))

		var err error
		if msg.entries, err = progress.Load(); err != nil {
			msg.loadErr = err
		}
		if msg.milestones, err = msStore.Load(); err != nil {
			msg.loadErr = err
		}
		if msg.reflections, err = rfStore.Load(); err != nil {
			msg.loadErr = err
		}
		return msg
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// recompute refreshes all derived reconciliation data after any write.
func (a *App) recompute() {
	if a.plan == nil {
		return
	}

	a.today = time.Now()
	a.week = reconcile.WeekIndex(a.plan, a.today)
	a.plannedDay = reconcile.PlannedPerDay(a.plan)

	start := a.plan.StartDate()
	a.plannedTot = reconcile.CumulativePlanned(a.plan, start, a.today)
	a.actualTot = reconcile.CumulativeActual(a.entries, start, a.today)

	// Daily chart window: the configured trailing number of days,
	// clipped to the plan start.
	chartDays := a.cfg.General.ChartDays
	if chartDays <= 0 {
		chartDays = 30
	}
	chartStart := a.today.AddDate(0, 0, -(chartDays - 1))
	if chartStart.Before(start) {
		chartStart = start
	}
	a.daily = reconcile.DailyActual(a.entries, chartStart, a.today)
}

func (a *App) setStatus(msg string) {
	a.statusMsg = msg
	a.statusAt = time.Now()
}

// reloadProgress re-reads progress.csv and recomputes derived data.
func (a *App) reloadProgress() {
	entries, err := a.progress.Load()
	if err != nil {
		a.setStatus("load failed: " + err.Error())
		return
	}
	a.entries = entries
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case dataLoadedMsg:
		a.plan = msg.plan
		a.planErr = msg.planErr
		a.entries = msg.entries
		a.milestones = msg.milestones
		a.reflections = msg.reflections
		a.feedCfg = msg.feedCfg
		a.loadErr = msg.loadErr
		a.loaded = true
		a.fetcher = feed.NewFetcher(a.feedCfg.Fetch, a.feedCache())
		a.recompute()
		a.logState = a.logState.withDefaults(a)

		if a.needSetup && a.planErr == nil {
			a.setupForm = newSetupForm(a.dataDir, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case feedResultMsg:
		delete(a.radar.fetching, msg.url)
		a.radar.results[msg.url] = feedResult{items: msg.items, err: msg.err}
		return a, nil

	case tickMsg:
		if a.statusMsg != "" && time.Since(a.statusAt) > statusTTL {
			a.statusMsg = ""
		}
		return a, tickCmd()

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, a.quit()
	}

	if !a.loaded {
		return a, nil
	}

	// A broken plan is fatal for the dashboard: any key exits.
	if a.planErr != nil {
		return a, a.quit()
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}
	if key == "?" {
		a.showHelp = true
		return a, nil
	}

	// Text-entry fields capture everything except navigation keys,
	// so tab dispatch runs after the per-tab handlers.
	switch a.activeTab {
	case tabLog:
		if next, cmd, handled := a.updateLogTab(msg); handled {
			return next, cmd
		}
	case tabRadar:
		if next, cmd, handled := a.updateRadarTab(msg); handled {
			return next, cmd
		}
	case tabReflect:
		if next, cmd, handled := a.updateReflectTab(msg); handled {
			return next, cmd
		}
	case tabSettings:
		if next, cmd, handled := a.updateSettingsTab(msg); handled {
			return next, cmd
		}
	}

	switch key {
	case "q":
		return a, a.quit()
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	return a, nil
}

func (a App) quit() tea.Cmd {
	if a.cacheHandle != nil {
		_ = a.cacheHandle.Close()
	}
	return tea.Quit
}

func (a App) feedCache() feed.Cache {
	if a.cacheHandle == nil {
		return nil
	}
	return a.cacheHandle
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.cfg = a.saveSetupConfig()
		theme.SetActive(a.cfg.Appearance.Theme)
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  studytrack needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if !a.loaded {
		return "\n  Loading study data..."
	}
	if a.planErr != nil {
		return a.viewPlanError()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewPlanError() string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(errStyle.Render("  Cannot start: " + a.planErr.Error()))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("  Put a plan.yaml in %s and restart.", a.dataDir)))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("  Press any key to exit."))
	return b.String()
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	bindings := []struct{ key, desc string }{
		{"l p r f x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"tab / shift+tab", "Next / Previous field"},
		{"j k", "Navigate lists"},
		{"enter", "Activate / Confirm"},
		{"space", "Toggle checkbox"},
		{"esc", "Leave field"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-16s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.week, a.dataDir, a.statusMsg)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabLog:
		content = a.renderLogTab(cw)
	case tabProgress:
		content = a.renderProgressTab(cw)
	case tabRadar:
		content = a.renderRadarTab(cw)
	case tabReflect:
		content = a.renderReflectTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fetchFeedCmd retrieves one RSS source through the cache.
func (a App) fetchFeedCmd(url string) tea.Cmd {
	fetcher := a.fetcher
	return func() tea.Msg {
		items, err := fetcher.Fetch(context.Background(), url)
		msg := feedResultMsg{url: url, items: items}
		if err != nil {
			msg.err = err.Error()
		}
		return msg
	}
}
