package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/romangod6/sitemapgen/config"
	"github.com/romangod6/sitemapgen/internal/storage"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded generation runs",
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 10, "Number of runs to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := storage.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("run history needs database.driver and database.url")
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database tables: %w", err)
	}

	runs, err := store.ListRuns(cmd.Context(), historyLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, run := range runs {
		fmt.Fprintf(out, "%s  %s  %-6s  %6d urls  %d dup  %s\n",
			run.ID, run.GeneratedOn, run.Mode, run.TotalURLs(), run.DuplicateCount, strings.Join(run.Files, ","))
	}
	return nil
}
