package tui

import (
	"strconv"

	"studytrack/internal/config"
	"studytrack/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run form answers.
type setupValues struct {
	DataDir   string
	Theme     string
	ChartDays string
}

// newSetupForm builds the first-run wizard shown when no config
// file exists yet.
func newSetupForm(dataDir string, vals *setupValues) *huh.Form {
	vals.DataDir = dataDir
	vals.Theme = theme.Active.Name
	vals.ChartDays = strconv.Itoa(config.DefaultConfig().General.ChartDays)

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to studytrack").
				Description("A couple of questions and the dashboard is yours.\nEverything can be changed later on the Settings tab."),

			huh.NewInput().
				Title("Data directory").
				Description("Where plan.yaml and the CSV ledgers live").
				Value(&vals.DataDir),

			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(&vals.Theme),

			huh.NewInput().
				Title("Chart window (days)").
				Description("How many trailing days the daily chart shows").
				Value(&vals.ChartDays).
				Validate(func(s string) error {
					_, err := strconv.Atoi(s)
					return err
				}),
		),
	).WithShowHelp(true)
}

// saveSetupConfig persists the form answers and returns the new config.
func (a App) saveSetupConfig() config.Config {
	cfg := config.DefaultConfig()
	if a.setupVals.DataDir != "" {
		cfg.General.DataDir = a.setupVals.DataDir
	}
	cfg.Appearance.Theme = a.setupVals.Theme
	if n, err := strconv.Atoi(a.setupVals.ChartDays); err == nil && n > 0 {
		cfg.General.ChartDays = n
	}
	_ = config.Save(cfg)
	return cfg
}
