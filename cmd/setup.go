package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"studytrack/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

const starterPlan = `meta:
  start_date: "%s"
  modules:
    stats:
      planned_minutes_per_day: 30
    algo:
      planned_minutes_per_day: 30
weeks:
  - week: 1
    focus: [getting started]
    deliverable: "Fill in your real plan"
    daily_tasks:
      Mon: "Replace this starter plan with your own"
`

const starterFeeds = `sections:
  - name: Papers
    description: Preprint feeds worth skimming weekly
    items:
      - title: arXiv stat.ML
        url: https://arxiv.org/rss/stat.ML
        type: rss
fetch:
  max_items_per_feed: 10
  timeout_seconds: 8
`

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to studytrack!")
	fmt.Println()

	// 1. Data directory
	current := config.DataDir(cfg)
	fmt.Println("  1. Data directory")
	fmt.Printf("     Where plan.yaml and the CSV ledgers live.\n")
	fmt.Printf("     Current: %s\n", current)
	fmt.Print("     > ")
	dir, _ := reader.ReadString('\n')
	dir = strings.TrimSpace(dir)
	if dir != "" {
		cfg.General.DataDir = dir
	}
	fmt.Println()

	// 2. Chart window
	fmt.Println("  2. Daily chart window")
	fmt.Printf("     How many trailing days the dashboard chart shows (current: %d)\n", cfg.General.ChartDays)
	fmt.Print("     > ")
	daysStr, _ := reader.ReadString('\n')
	if n, err := strconv.Atoi(strings.TrimSpace(daysStr)); err == nil && n > 0 {
		cfg.General.ChartDays = n
	}
	fmt.Println()

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("  Config saved to %s\n", config.ConfigPath())

	// Scaffold the data directory with starter files.
	target := config.DataDir(cfg)
	if err := os.MkdirAll(target, 0o750); err != nil {
		return err
	}

	planPath := filepath.Join(target, "plan.yaml")
	if _, err := os.Stat(planPath); os.IsNotExist(err) {
		start := nextMonday().Format("2006-01-02")
		if err := os.WriteFile(planPath, []byte(fmt.Sprintf(starterPlan, start)), 0o640); err != nil {
			return err
		}
		fmt.Printf("  Starter plan written to %s (start date %s)\n", planPath, start)
	}

	feedsPath := filepath.Join(target, "feeds.yaml")
	if _, err := os.Stat(feedsPath); os.IsNotExist(err) {
		if err := os.WriteFile(feedsPath, []byte(starterFeeds), 0o640); err != nil {
			return err
		}
		fmt.Printf("  Starter feeds written to %s\n", feedsPath)
	}

	fmt.Println()
	fmt.Println("  All set. Try:")
	fmt.Println("    studytrack log stats 30")
	fmt.Println("    studytrack status")
	fmt.Println("    studytrack tui")
	fmt.Println()
	return nil
}

// nextMonday gives a sensible default start date for a fresh plan.
func nextMonday() time.Time {
	d := time.Now()
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
