package main

import (
	"fmt"
	"time"

	"github.com/romangod6/sitemapgen/config"
	"github.com/romangod6/sitemapgen/internal/generator"
	"github.com/romangod6/sitemapgen/internal/models"
	"github.com/romangod6/sitemapgen/internal/storage"
	"github.com/romangod6/sitemapgen/internal/utils"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write sitemap.xml and the chunked sitemaps",
	Long:  "Scans the site directory, expands the keyword patterns up to the target count, writes sitemaps/sitemap-main.xml, sitemaps/sitemap-seo-<n>.xml and the sitemap.xml index.",
	RunE:  runGenerate,
}

var (
	generateRoot       string
	generateBaseURL    string
	generateTarget     int
	generateMaxPerFile int
	generateMode       string
	generateDate       string
)

func init() {
	generateCmd.Flags().StringVarP(&generateRoot, "root", "r", "", "Site directory to scan and write into")
	generateCmd.Flags().StringVar(&generateBaseURL, "base-url", "", "Public base URL of the site")
	generateCmd.Flags().IntVarP(&generateTarget, "target", "n", 0, "Number of synthetic URLs to generate")
	generateCmd.Flags().IntVarP(&generateMaxPerFile, "max-per-file", "m", 0, "Maximum URLs per sitemap file")
	generateCmd.Flags().StringVar(&generateMode, "mode", "", "Output mode: index or single")
	generateCmd.Flags().StringVar(&generateDate, "date", "", "lastmod date as YYYY-MM-DD (default: today)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Output.Dir = generateRoot
	}
	if flags.Changed("base-url") {
		cfg.Site.BaseURL = generateBaseURL
	}
	if flags.Changed("target") {
		cfg.Expand.Target = generateTarget
	}
	if flags.Changed("max-per-file") {
		cfg.Output.MaxPerFile = generateMaxPerFile
	}
	if flags.Changed("mode") {
		cfg.Output.Mode = generateMode
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	today := time.Now()
	if generateDate != "" {
		today, err = time.Parse(models.DateFormat, generateDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", generateDate, err)
		}
	}

	logger, err := utils.NewRunLogger(cfg.Site.Name, cfg.Log.Dir)
	if err != nil {
		return err
	}
	defer logger.Close()

	store, err := storage.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		if err := store.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize database tables: %w", err)
		}
	}

	logger.LogInfo("%s sitemap generator", cfg.Site.Name)

	run, err := generator.New(cfg, store, logger).Run(cmd.Context(), today)
	if err != nil {
		logger.LogError("Generation failed: %v", err)
		return err
	}

	logger.LogInfo("Sitemap generation complete")
	logger.LogInfo("Files written: %d", len(run.Files))
	logger.LogInfo("Total URLs: %d", run.TotalURLs())
	logger.LogInfo("Output directory: %s", cfg.Output.Dir)
	logger.LogInfo("Submit %s/%s to Google Search Console", cfg.Site.BaseURL, generator.IndexFile)

	return nil
}
