package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"studytrack/internal/config"
	"studytrack/internal/ledger"
	"studytrack/internal/plan"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "studytrack",
	Short: "Personal study dashboard",
	Long:  "Track a weekly study plan: log sessions, reconcile planned vs actual minutes, and skim research feeds.",
	RunE:  runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default from config, then ~/.studytrack)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// dataDir resolves the effective data directory: flag beats config
// beats the home default.
func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	cfg, _ := config.Load()
	return config.DataDir(cfg)
}

// loadPlan reads plan.yaml from the data directory. Most commands
// cannot run without it, so the error message points at the fix.
func loadPlan() (*plan.Plan, error) {
	dir := dataDir()
	p, err := plan.Load(filepath.Join(dir, "plan.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load plan: %w (run 'studytrack setup' or put a plan.yaml in %s)", err, dir)
	}
	return p, nil
}

func progressStore() *ledger.ProgressStore {
	return ledger.NewProgressStore(dataDir())
}

func milestoneStore() *ledger.MilestoneStore {
	return ledger.NewMilestoneStore(dataDir())
}

func reflectionStore() *ledger.ReflectionStore {
	return ledger.NewReflectionStore(dataDir())
}
