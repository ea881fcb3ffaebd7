package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studytrack/internal/cli"
	"studytrack/internal/feed"
	"studytrack/internal/store"

	"github.com/spf13/cobra"
)

var flagRadarNoCache bool

var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Fetch the research feeds from feeds.yaml",
	RunE:  runRadar,
}

func init() {
	radarCmd.Flags().BoolVar(&flagRadarNoCache, "no-cache", false, "Skip the feed cache, fetch everything fresh")
	rootCmd.AddCommand(radarCmd)
}

func runRadar(_ *cobra.Command, _ []string) error {
	dir := dataDir()
	feedCfg, err := feed.LoadConfig(filepath.Join(dir, "feeds.yaml"))
	if err != nil {
		return fmt.Errorf("load feeds: %w", err)
	}
	if len(feedCfg.Sections) == 0 {
		fmt.Println()
		fmt.Println(cli.RenderInfo("No feeds configured. Add sections to " + filepath.Join(dir, "feeds.yaml") + "."))
		fmt.Println()
		return nil
	}

	var cache feed.Cache
	if !flagRadarNoCache {
		c, err := store.Open(filepath.Join(dir, "feedcache.db"))
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, fetching everything fresh\n")
			}
		} else {
			defer c.Close()
			cache = c
		}
	}
	fetcher := feed.NewFetcher(feedCfg.Fetch, cache)

	fmt.Println()
	fmt.Println(cli.RenderTitle("studytrack · research radar"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, sec := range feedCfg.Sections {
		fmt.Printf("\n  ── %s ──\n", sec.Name)
		if sec.Description != "" {
			fmt.Printf("  %s\n", sec.Description)
		}
		for _, src := range sec.Items {
			fmt.Printf("\n  %s\n    %s\n", src.Title, src.URL)
			if src.Type != feed.TypeRSS {
				continue
			}

			items, err := fetcher.Fetch(ctx, src.URL)
			if err != nil {
				fmt.Println(cli.RenderWarning(err.Error()))
				continue
			}
			if len(items) == 0 {
				fmt.Println("    (feed is empty)")
				continue
			}
			for _, item := range items {
				line := "    • " + cli.TruncateText(item.Title, 70)
				if item.Published != "" {
					line += "  (" + item.Published + ")"
				}
				fmt.Println(line)
			}
		}
	}
	fmt.Println()
	return nil
}
