package cmd

import (
	"fmt"
	"strings"

	"studytrack/internal/cli"
	"studytrack/internal/ledger"

	"github.com/spf13/cobra"
)

var (
	flagReflectTopic string
	flagReflectMood  string
	flagReflectTags  string
	flagReflectLast  int
)

var reflectCmd = &cobra.Command{
	Use:   "reflect [text]",
	Short: "Write or list journal reflections",
	Long: `Append a reflection to the journal, or list recent ones when
called without text.

Examples:
  studytrack reflect "finally understood importance sampling" --topic stats --mood good
  studytrack reflect --last 10`,
	RunE: runReflect,
}

func init() {
	reflectCmd.Flags().StringVar(&flagReflectTopic, "topic", "other", "Topic: "+strings.Join(ledger.Topics, ", "))
	reflectCmd.Flags().StringVar(&flagReflectMood, "mood", "ok", "Mood: good, ok, stuck, excited")
	reflectCmd.Flags().StringVar(&flagReflectTags, "tags", "", "Comma-separated tags")
	reflectCmd.Flags().IntVar(&flagReflectLast, "last", 5, "How many entries to list")
	rootCmd.AddCommand(reflectCmd)
}

func runReflect(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runReflectList()
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("reflection text is empty")
	}
	if !ledger.ValidTopic(flagReflectTopic) {
		return fmt.Errorf("unknown topic %q, want one of: %s", flagReflectTopic, strings.Join(ledger.Topics, ", "))
	}
	if !ledger.ValidMood(flagReflectMood) {
		return fmt.Errorf("unknown mood %q, want one of: good, ok, stuck, excited", flagReflectMood)
	}
	mood := ledger.CanonicalMood(flagReflectMood)

	err := reflectionStore().Append(ledger.Reflection{
		Topic: flagReflectTopic,
		Mood:  mood,
		Text:  text,
		Tags:  strings.TrimSpace(flagReflectTags),
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n  Reflection saved (%s, %s)\n\n", flagReflectTopic, mood)
	return nil
}

func runReflectList() error {
	rs, err := reflectionStore().Load()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("studytrack · reflections"))
	fmt.Println()

	if len(rs) == 0 {
		fmt.Println(cli.RenderInfo("Nothing in the journal yet."))
		fmt.Println()
		return nil
	}

	start := len(rs) - flagReflectLast
	if start < 0 {
		start = 0
	}
	for i := len(rs) - 1; i >= start; i-- {
		r := rs[i]
		fmt.Printf("  %s  %s %s\n", r.Date, r.Topic, r.Mood)
		fmt.Printf("    %s\n", r.Text)
		if r.Tags != "" {
			fmt.Printf("    #%s\n", strings.ReplaceAll(r.Tags, ",", " #"))
		}
		fmt.Println()
	}
	return nil
}
