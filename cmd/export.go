package cmd

import (
	"fmt"
	"os"

	"studytrack/internal/cli"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ledger data",
}

var exportReflectionsCmd = &cobra.Command{
	Use:   "reflections [dest]",
	Short: "Write the reflections journal as CSV to dest (default stdout)",
	Long:  "Writes reflections.csv byte for byte as stored, to dest or stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExportReflections,
}

func init() {
	exportCmd.AddCommand(exportReflectionsCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportReflections(_ *cobra.Command, args []string) error {
	data, err := reflectionStore().Raw()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		_, err = os.Stdout.Write(data)
		return err
	}

	dest := args[0]
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s bytes to %s\n", cli.FormatNumber(int64(len(data))), dest)
	}
	return nil
}
