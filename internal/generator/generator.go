// Package generator runs the sitemap pipeline: scan the site, expand the
// synthetic URLs, write chunked sitemaps and the index, record the run.
package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/romangod6/sitemapgen/config"
	"github.com/romangod6/sitemapgen/internal/expander"
	"github.com/romangod6/sitemapgen/internal/models"
	"github.com/romangod6/sitemapgen/internal/scanner"
	"github.com/romangod6/sitemapgen/internal/sitemap"
	"github.com/romangod6/sitemapgen/internal/storage"
	"github.com/romangod6/sitemapgen/internal/utils"
)

const (
	MainPrefix = "sitemap-main"
	SEOPrefix  = "sitemap-seo"
	IndexFile  = "sitemap.xml"
)

type Generator struct {
	cfg      *config.Config
	scanner  *scanner.Scanner
	expander *expander.Expander
	store    storage.Store
	logger   *utils.Logger
}

// New wires the pipeline from cfg. store may be nil, in which case runs
// are not recorded.
func New(cfg *config.Config, store storage.Store, logger *utils.Logger) *Generator {
	return &Generator{
		cfg:      cfg,
		scanner:  scanner.New(cfg.Site.BaseURL, ScanRules(cfg), cfg.Scan.RespectNoindex),
		expander: expander.New(cfg.Site.BaseURL, cfg.Output.ServicesPath, cfg.Keywords, Patterns(cfg)),
		store:    store,
		logger:   logger,
	}
}

// ScanRules converts the configured rules for the scanner. With no rules
// configured the scanner's built-in rules apply.
func ScanRules(cfg *config.Config) []scanner.Rule {
	if len(cfg.Scan.Rules) == 0 {
		return scanner.DefaultRules()
	}
	rules := make([]scanner.Rule, 0, len(cfg.Scan.Rules))
	for _, r := range cfg.Scan.Rules {
		rules = append(rules, scanner.Rule{
			Glob:       r.Glob,
			Priority:   r.Priority,
			ChangeFreq: models.ChangeFreq(r.ChangeFreq),
		})
	}
	return rules
}

// Patterns converts the configured patterns for the expander.
func Patterns(cfg *config.Config) []expander.Pattern {
	patterns := make([]expander.Pattern, 0, len(cfg.Expand.Patterns))
	for _, p := range cfg.Expand.Patterns {
		axes := make([]expander.Axis, 0, len(p.Axes))
		for _, a := range p.Axes {
			axes = append(axes, expander.Axis{Keyword: a.Keyword, Limit: a.Limit})
		}
		patterns = append(patterns, expander.Pattern{
			Name:       p.Name,
			Format:     p.Format,
			Axes:       axes,
			Priority:   p.Priority,
			ChangeFreq: models.ChangeFreq(p.ChangeFreq),
		})
	}
	return patterns
}

// Run generates every output file for the date today. Files written
// before a failure are left in place; re-running overwrites them.
func (g *Generator) Run(ctx context.Context, today time.Time) (*models.Run, error) {
	outDir := g.cfg.Output.Dir
	sitemapsDir := filepath.Join(outDir, g.cfg.Output.SitemapsDir)
	if err := os.MkdirAll(sitemapsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sitemaps directory: %w", err)
	}

	run := models.NewRun(today)
	run.BaseURL = g.cfg.Site.BaseURL
	run.Mode = g.cfg.Output.Mode

	g.logger.LogInfo("Scanning existing pages in %s", outDir)
	pages, err := g.scanner.Scan(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pages: %w", err)
	}
	run.ScannedCount = len(pages)
	g.logger.LogInfo("Found %d existing pages", len(pages))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.logger.LogInfo("Generating up to %d SEO URLs", g.cfg.Expand.Target)
	seo := g.expander.Expand(g.cfg.Expand.Target)
	run.SyntheticCount = len(seo)
	g.logger.LogInfo("Generated %d SEO URLs", len(seo))

	all := make([]models.PageRecord, 0, len(pages)+len(seo))
	all = append(all, pages...)
	all = append(all, seo...)
	run.DuplicateCount = models.CountDuplicates(all)
	if run.DuplicateCount > 0 {
		g.logger.LogInfo("%d URLs repeat an earlier entry", run.DuplicateCount)
	}
	g.logger.LogInfo("Total URLs: %d", len(all))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	writer := sitemap.NewWriter(sitemapsDir, g.cfg.Output.MaxPerFile, today)
	indexPath := filepath.Join(outDir, IndexFile)

	switch g.cfg.Output.Mode {
	case config.ModeSingle:
		if err := writer.WriteSitemap(indexPath, all); err != nil {
			return nil, err
		}
		g.logger.LogInfo("Created %s (%d URLs)", IndexFile, len(all))
	default:
		files, err := g.writeChunks(writer, pages, seo)
		if err != nil {
			return nil, err
		}
		run.Files = files

		if err := writer.WriteIndex(indexPath, g.cfg.SitemapsURL(), files); err != nil {
			return nil, err
		}
		g.logger.LogInfo("Created %s listing %d sitemaps", IndexFile, len(files))
	}
	run.Files = append(run.Files, IndexFile)

	if err := g.pruneStale(sitemapsDir, run.Files); err != nil {
		return nil, err
	}

	if g.store != nil {
		if err := g.store.RecordRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		g.logger.LogDebug("Recorded run %s", run.ID)
	}

	return run, nil
}

func (g *Generator) writeChunks(writer *sitemap.Writer, pages, seo []models.PageRecord) ([]string, error) {
	mainFiles, err := writer.WriteChunks(pages, sitemap.FirstUnnumbered(MainPrefix))
	if err != nil {
		return nil, err
	}
	for _, f := range mainFiles {
		g.logger.LogInfo("Created %s", f)
	}

	seoFiles, err := writer.WriteChunks(seo, sitemap.Numbered(SEOPrefix))
	if err != nil {
		return nil, err
	}
	for _, f := range seoFiles {
		g.logger.LogInfo("Created %s", f)
	}

	return append(mainFiles, seoFiles...), nil
}

// pruneStale removes chunk files left behind by an earlier, larger run so
// the sitemaps directory only holds what the index references.
func (g *Generator) pruneStale(dir string, keep []string) error {
	kept := make(map[string]struct{}, len(keep))
	for _, f := range keep {
		kept[f] = struct{}{}
	}

	sitemaps := os.DirFS(dir)
	for _, pattern := range []string{MainPrefix + "*.xml", SEOPrefix + "-*.xml"} {
		matches, err := fs.Glob(sitemaps, pattern)
		if err != nil {
			return err
		}
		for _, name := range matches {
			if _, ok := kept[name]; ok {
				continue
			}
			path := filepath.Join(dir, name)
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove stale sitemap %s: %w", path, err)
			}
			g.logger.LogInfo("Removed stale %s", name)
		}
	}
	return nil
}
