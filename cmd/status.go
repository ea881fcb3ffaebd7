package cmd

import (
	"fmt"
	"sort"
	"time"

	"studytrack/internal/cli"
	"studytrack/internal/reconcile"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Planned vs actual minutes since the plan started",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	p, err := loadPlan()
	if err != nil {
		return err
	}
	entries, err := progressStore().Load()
	if err != nil {
		return err
	}

	now := time.Now()
	week := reconcile.WeekIndex(p, now)
	start := p.StartDate()
	planned := reconcile.CumulativePlanned(p, start, now)
	actual := reconcile.CumulativeActual(entries, start, now)

	fmt.Println()
	fmt.Println(cli.RenderTitle("studytrack · status"))
	fmt.Println()

	if week < 1 {
		fmt.Println(cli.RenderInfo(fmt.Sprintf("Plan starts %s.", start.Format("2006-01-02"))))
		fmt.Println()
		return nil
	}

	fmt.Printf("  Week %d · since %s\n\n", week, start.Format("2006-01-02"))

	names := p.ModuleNames()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	var extra []string
	for name := range actual {
		if name != reconcile.TotalKey && !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	table := cli.Table{Headers: []string{"module", "planned", "actual", "delta"}}
	for _, name := range names {
		table.Rows = append(table.Rows, []string{
			name,
			cli.FormatMinutes(planned.Get(name)),
			cli.FormatMinutes(actual.Get(name)),
			cli.FormatSignedMinutes(actual.Get(name) - planned.Get(name)),
		})
	}
	table.Rows = append(table.Rows, []string{"---"})
	table.Rows = append(table.Rows, []string{
		"total",
		cli.FormatMinutes(planned.Total()),
		cli.FormatMinutes(actual.Total()),
		cli.FormatSignedMinutes(actual.Total() - planned.Total()),
	})
	fmt.Println(cli.RenderTable(table))

	delta := actual.Total() - planned.Total()
	fmt.Printf("\n  Overall: %s\n\n", cli.RenderDelta(delta))

	sparkStart := now.AddDate(0, 0, -13)
	if sparkStart.Before(start) {
		sparkStart = start
	}
	daily := reconcile.DailyActual(entries, sparkStart, now)
	if len(daily) > 1 {
		values := make([]float64, len(daily))
		for i, d := range daily {
			values[i] = float64(d.Minutes)
		}
		fmt.Printf("  Last %d days: %s\n\n", len(daily), cli.RenderSparkline(values))
	}

	if ms, err := milestoneStore().Load(); err == nil && len(ms) > 0 {
		done := 0
		for _, m := range ms {
			if m.Week >= 1 && m.Week <= week {
				done++
			}
		}
		fmt.Printf("  Milestones: %d/%d weeks delivered\n\n", done, week)
	}
	return nil
}
