package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"studytrack/internal/cli"
	"studytrack/internal/reconcile"

	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:   "week [n]",
	Short: "Show one week of the plan (default: the current week)",
	RunE:  runWeek,
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

func runWeek(_ *cobra.Command, args []string) error {
	p, err := loadPlan()
	if err != nil {
		return err
	}

	n := reconcile.WeekIndex(p, time.Now())
	if len(args) > 0 {
		n, err = strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("week must be a positive number, got %q", args[0])
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("studytrack · week %d", n)))
	fmt.Println()

	if n < 1 {
		fmt.Println(cli.RenderInfo(fmt.Sprintf("Plan starts %s.", p.StartDate().Format("2006-01-02"))))
		fmt.Println()
		return nil
	}

	w := p.Week(n)
	if w == nil {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("No plan entry for week %d.", n)))
		fmt.Println()
		return nil
	}

	if len(w.Focus) > 0 {
		fmt.Printf("  Focus: %s\n", strings.Join(w.Focus, ", "))
	}
	if w.Deliverable != "" {
		fmt.Printf("  Deliverable: %s\n", w.Deliverable)
		if done, err := milestoneStore().Done(n); err == nil && done {
			fmt.Println("  Status: ✓ done")
		}
	}
	fmt.Println()

	for _, task := range w.OrderedTasks() {
		fmt.Printf("  %-4s %s\n", task[0], task[1])
	}

	if len(w.Resources) > 0 {
		fmt.Println()
		fmt.Println("  Resources:")
		for _, r := range w.Resources {
			fmt.Printf("    %s  %s\n", r.Name, r.URL)
		}
	}
	fmt.Println()
	return nil
}
