package sitemap

import (
	"encoding/xml"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/romangod6/sitemapgen/internal/models"
)

// Report summarizes a generated sitemap tree read back from disk.
type Report struct {
	Files      []string
	URLCount   int
	Duplicates int
	Problems   []string
}

func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

func (r *Report) problem(format string, v ...interface{}) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, v...))
}

// Verify reads indexPath, which may be a sitemapindex or a urlset. Index
// entries are resolved by file name inside sitemapsDir.
func Verify(indexPath, sitemapsDir string) (*Report, error) {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", indexPath, err)
	}

	var root struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", indexPath, err)
	}

	report := &Report{}
	seen := map[string]struct{}{}

	switch root.XMLName.Local {
	case "urlset":
		report.Files = append(report.Files, filepath.Base(indexPath))
		checkURLSet(report, filepath.Base(indexPath), data, seen)
	case "sitemapindex":
		var index models.SitemapIndex
		if err := xml.Unmarshal(data, &index); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", indexPath, err)
		}
		if len(index.Sitemaps) == 0 {
			report.problem("%s lists no sitemaps", filepath.Base(indexPath))
		}
		for _, entry := range index.Sitemaps {
			name := path.Base(entry.Loc)
			report.Files = append(report.Files, name)

			chunk, err := os.ReadFile(filepath.Join(sitemapsDir, name))
			if err != nil {
				report.problem("%s: listed in index but unreadable: %v", name, err)
				continue
			}
			checkURLSet(report, name, chunk, seen)
		}
	default:
		return nil, fmt.Errorf("%s: unexpected root element <%s>", indexPath, root.XMLName.Local)
	}

	return report, nil
}

func checkURLSet(report *Report, name string, data []byte, seen map[string]struct{}) {
	var sm models.Sitemap
	if err := xml.Unmarshal(data, &sm); err != nil {
		report.problem("%s: %v", name, err)
		return
	}

	if len(sm.URLs) == 0 {
		report.problem("%s: no URLs", name)
	}
	if len(sm.URLs) > models.MaxURLsPerSitemap {
		report.problem("%s: %d URLs exceeds the limit of %d", name, len(sm.URLs), models.MaxURLsPerSitemap)
	}

	for _, u := range sm.URLs {
		report.URLCount++
		if _, ok := seen[u.Loc]; ok {
			report.Duplicates++
		}
		seen[u.Loc] = struct{}{}

		if u.Loc == "" {
			report.problem("%s: entry without loc", name)
		}
		if u.ChangeFreq != "" && !models.ChangeFreq(u.ChangeFreq).Valid() {
			report.problem("%s: %s has invalid changefreq %q", name, u.Loc, u.ChangeFreq)
		}
		if u.Priority != "" {
			p, err := strconv.ParseFloat(u.Priority, 64)
			if err != nil || p < 0 || p > 1 {
				report.problem("%s: %s has invalid priority %q", name, u.Loc, u.Priority)
			}
		}
	}
}
