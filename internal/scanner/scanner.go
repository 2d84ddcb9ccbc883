// Package scanner turns the HTML files of a static site checkout into
// sitemap page records.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/romangod6/sitemapgen/internal/models"
)

// RootGlob is the rule glob that stands for the site root URL.
const RootGlob = "/"

// Rule maps a glob relative to the site directory to crawler hints.
type Rule struct {
	Glob       string
	Priority   float64
	ChangeFreq models.ChangeFreq
}

// DefaultRules lists the root, index.html, pages/, blogs/ and links.html in
// that order.
func DefaultRules() []Rule {
	return []Rule{
		{Glob: RootGlob, Priority: 1.0, ChangeFreq: models.ChangeWeekly},
		{Glob: "index.html", Priority: 1.0, ChangeFreq: models.ChangeWeekly},
		{Glob: "pages/*.html", Priority: 0.9, ChangeFreq: models.ChangeMonthly},
		{Glob: "blogs/*.html", Priority: 0.8, ChangeFreq: models.ChangeMonthly},
		{Glob: "links.html", Priority: 0.6, ChangeFreq: models.ChangeMonthly},
	}
}

type Scanner struct {
	baseURL        string
	rules          []Rule
	respectNoindex bool
}

func New(baseURL string, rules []Rule, respectNoindex bool) *Scanner {
	return &Scanner{
		baseURL:        strings.TrimRight(baseURL, "/"),
		rules:          rules,
		respectNoindex: respectNoindex,
	}
}

// Scan applies the rules in order against root. Matches within a rule are
// sorted lexicographically. Missing files and directories yield nothing.
func (s *Scanner) Scan(root string) ([]models.PageRecord, error) {
	var pages []models.PageRecord
	site := os.DirFS(root)

	for _, rule := range s.rules {
		if rule.Glob == RootGlob {
			pages = append(pages, models.PageRecord{
				Location:   s.baseURL + "/",
				Priority:   rule.Priority,
				ChangeFreq: rule.ChangeFreq,
			})
			continue
		}

		// Globbing inside the site FS keeps metacharacters in root literal.
		matches, err := fs.Glob(site, rule.Glob)
		if err != nil {
			return nil, fmt.Errorf("invalid scan glob %q: %w", rule.Glob, err)
		}
		sort.Strings(matches)

		for _, rel := range matches {
			path := filepath.Join(root, filepath.FromSlash(rel))
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("failed to stat %s: %w", path, err)
			}
			if info.IsDir() {
				continue
			}

			if s.respectNoindex {
				noindex, err := HasNoindex(path)
				if err != nil {
					return nil, err
				}
				if noindex {
					continue
				}
			}

			pages = append(pages, models.PageRecord{
				Location:   s.baseURL + "/" + rel,
				Priority:   rule.Priority,
				ChangeFreq: rule.ChangeFreq,
			})
		}
	}

	return pages, nil
}
