package cmd

import (
	"fmt"
	"strconv"
	"time"

	"studytrack/internal/cli"
	"studytrack/internal/reconcile"

	"github.com/spf13/cobra"
)

var (
	flagMilestoneNote string
	flagMilestoneDate string
)

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "List and record weekly deliverables",
	RunE:  runMilestoneList,
}

var milestoneDoneCmd = &cobra.Command{
	Use:   "done [week]",
	Short: "Mark a week's deliverable as done (default: the current week)",
	RunE:  runMilestoneDone,
}

var milestoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deliverables and their status",
	RunE:  runMilestoneList,
}

func init() {
	milestoneDoneCmd.Flags().StringVar(&flagMilestoneNote, "note", "", "Optional note")
	milestoneDoneCmd.Flags().StringVar(&flagMilestoneDate, "date", "", "Done date (YYYY-MM-DD, default today)")
	milestoneCmd.AddCommand(milestoneDoneCmd)
	milestoneCmd.AddCommand(milestoneListCmd)
	rootCmd.AddCommand(milestoneCmd)
}

func runMilestoneList(_ *cobra.Command, _ []string) error {
	p, err := loadPlan()
	if err != nil {
		return err
	}
	ms, err := milestoneStore().Load()
	if err != nil {
		return err
	}

	done := make(map[int]string, len(ms))
	notes := make(map[int]string, len(ms))
	for _, m := range ms {
		done[m.Week] = m.DoneDate
		notes[m.Week] = m.Note
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("studytrack · milestones"))
	fmt.Println()

	table := cli.Table{Headers: []string{"week", "deliverable", "done", "note"}}
	for _, w := range p.Weeks {
		status := "·"
		if d, ok := done[w.Week]; ok {
			status = "✓ " + d
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(w.Week),
			cli.TruncateText(w.Deliverable, 42),
			status,
			cli.TruncateText(notes[w.Week], 24),
		})
	}
	fmt.Println(cli.RenderTable(table))
	fmt.Println()
	return nil
}

func runMilestoneDone(_ *cobra.Command, args []string) error {
	p, err := loadPlan()
	if err != nil {
		return err
	}

	week := reconcile.WeekIndex(p, time.Now())
	if len(args) > 0 {
		week, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("week must be a number, got %q", args[0])
		}
	}
	if week < 1 {
		return fmt.Errorf("plan has not started yet, pass an explicit week")
	}

	doneDate := time.Now().Format("2006-01-02")
	if flagMilestoneDate != "" {
		if _, err := time.Parse("2006-01-02", flagMilestoneDate); err != nil {
			return fmt.Errorf("bad --date %q, want YYYY-MM-DD", flagMilestoneDate)
		}
		doneDate = flagMilestoneDate
	}

	if err := milestoneStore().Upsert(week, doneDate, flagMilestoneNote); err != nil {
		return err
	}

	fmt.Printf("\n  Week %d deliverable marked done (%s)\n\n", week, doneDate)
	return nil
}
