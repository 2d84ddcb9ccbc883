package main

import (
	"fmt"
	"path/filepath"

	"github.com/romangod6/sitemapgen/config"
	"github.com/romangod6/sitemapgen/internal/generator"
	"github.com/romangod6/sitemapgen/internal/sitemap"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Read the generated sitemaps back and check them",
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	report, err := sitemap.Verify(
		filepath.Join(cfg.Output.Dir, generator.IndexFile),
		filepath.Join(cfg.Output.Dir, cfg.Output.SitemapsDir),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sitemaps: %d\n", len(report.Files))
	fmt.Fprintf(out, "URLs: %d\n", report.URLCount)
	fmt.Fprintf(out, "Duplicate URLs: %d\n", report.Duplicates)
	for _, p := range report.Problems {
		fmt.Fprintf(out, "problem: %s\n", p)
	}

	if !report.OK() {
		return fmt.Errorf("%d problems found", len(report.Problems))
	}
	return nil
}
