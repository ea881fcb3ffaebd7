package cmd

import (
	"fmt"
	"strconv"

	"studytrack/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value (data_dir, chart_days, theme)",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if !config.Exists() {
		fmt.Println("  (not written yet, showing defaults)")
	}
	fmt.Println()
	fmt.Printf("  data_dir   = %s\n", config.DataDir(cfg))
	fmt.Printf("  chart_days = %d\n", cfg.General.ChartDays)
	fmt.Printf("  theme      = %s\n", cfg.Appearance.Theme)
	fmt.Println()
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	switch key {
	case "data_dir":
		cfg.General.DataDir = value
	case "chart_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("chart_days must be a positive number, got %q", value)
		}
		cfg.General.ChartDays = n
	case "theme":
		cfg.Appearance.Theme = value
	default:
		return fmt.Errorf("unknown key %q (want data_dir, chart_days, or theme)", key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("\n  %s = %s saved to %s\n\n", key, value, config.ConfigPath())
	return nil
}
