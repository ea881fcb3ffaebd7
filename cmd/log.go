package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"studytrack/internal/cli"
	"studytrack/internal/ledger"
	"studytrack/internal/plan"
	"studytrack/internal/reconcile"

	"github.com/spf13/cobra"
)

var (
	flagLogDate    string
	flagLogNote    string
	flagLogPlanned bool
)

var logCmd = &cobra.Command{
	Use:   "log [module] [minutes]",
	Short: "Log a study session",
	Long: `Log minutes against a plan module.

Examples:
  studytrack log stats 45
  studytrack log algo 90 --date 2026-08-27 --note "graph contraction"
  studytrack log --planned          # add every module's planned minutes for today`,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&flagLogDate, "date", "", "Session date (YYYY-MM-DD, default today)")
	logCmd.Flags().StringVar(&flagLogNote, "note", "", "Optional note")
	logCmd.Flags().BoolVar(&flagLogPlanned, "planned", false, "Quick-add today's planned minutes for all modules")
	rootCmd.AddCommand(logCmd)
}

func runLog(_ *cobra.Command, args []string) error {
	p, err := loadPlan()
	if err != nil {
		return err
	}

	if flagLogPlanned {
		return runLogPlanned(p)
	}

	if len(args) != 2 {
		return fmt.Errorf("expected: studytrack log <module> <minutes>")
	}

	module := args[0]
	if !p.HasModule(module) {
		return fmt.Errorf("unknown module %q (plan has: %s)", module, strings.Join(p.ModuleNames(), ", "))
	}

	minutes, err := strconv.Atoi(args[1])
	if err != nil || minutes <= 0 {
		return fmt.Errorf("minutes must be a positive number, got %q", args[1])
	}

	date := time.Now()
	if flagLogDate != "" {
		date, err = time.ParseInLocation("2006-01-02", flagLogDate, time.Local)
		if err != nil {
			return fmt.Errorf("bad --date %q, want YYYY-MM-DD", flagLogDate)
		}
	}

	store := progressStore()
	if err := store.Append(ledger.Entry{Date: date, Module: module, Minutes: minutes, Note: flagLogNote}); err != nil {
		return err
	}

	fmt.Printf("\n  Logged %s for %s on %s\n\n",
		cli.FormatMinutes(minutes), module, date.Format("2006-01-02"))
	return nil
}

func runLogPlanned(p *plan.Plan) error {
	perDay := reconcile.PlannedPerDay(p)
	today := time.Now()

	var batch []ledger.Entry
	for _, name := range p.ModuleNames() {
		if perDay[name] <= 0 {
			continue
		}
		batch = append(batch, ledger.Entry{
			Date:    today,
			Module:  name,
			Minutes: perDay[name],
			Note:    "planned",
		})
	}
	if len(batch) == 0 {
		fmt.Println("\n  No modules with planned minutes.")
		return nil
	}

	if err := progressStore().Append(batch...); err != nil {
		return err
	}

	fmt.Println()
	for _, e := range batch {
		fmt.Printf("  + %-12s %s\n", e.Module, cli.FormatMinutes(e.Minutes))
	}
	fmt.Printf("\n  Quick-added %d planned entries for %s\n\n", len(batch), today.Format("2006-01-02"))
	return nil
}
