// Package expander builds synthetic landing-page URLs from the cartesian
// product of keyword lists.
package expander

import (
	"iter"
	"strings"

	"github.com/romangod6/sitemapgen/internal/models"
)

// Axis selects a keyword list, optionally restricted to its first Limit
// entries. Limit 0 means the whole list.
type Axis struct {
	Keyword string
	Limit   int
}

// Pattern describes one family of slugs. Format holds {keyword}
// placeholders, one per axis. Axes iterate nested, first axis outermost.
type Pattern struct {
	Name       string
	Format     string
	Axes       []Axis
	Priority   float64
	ChangeFreq models.ChangeFreq
}

type Expander struct {
	prefix   string
	keywords map[string][]string
	patterns []Pattern
}

// New returns an expander producing URLs under baseURL/servicesPath/.
func New(baseURL, servicesPath string, keywords map[string][]string, patterns []Pattern) *Expander {
	prefix := strings.TrimRight(baseURL, "/") + "/"
	if p := strings.Trim(servicesPath, "/"); p != "" {
		prefix += p + "/"
	}
	return &Expander{
		prefix:   prefix,
		keywords: keywords,
		patterns: patterns,
	}
}

// Seq lazily yields records pattern by pattern in declaration order. It is
// restartable: every range over it starts from the first pattern.
func (e *Expander) Seq() iter.Seq[models.PageRecord] {
	return func(yield func(models.PageRecord) bool) {
		for _, p := range e.patterns {
			if !e.expandPattern(p, yield) {
				return
			}
		}
	}
}

// Expand returns the first n records of Seq. Fewer come back only when the
// patterns are exhausted first.
func (e *Expander) Expand(n int) []models.PageRecord {
	if n <= 0 {
		return nil
	}
	records := make([]models.PageRecord, 0, min(n, e.Count()))
	for r := range e.Seq() {
		records = append(records, r)
		if len(records) >= n {
			break
		}
	}
	return records
}

// Count is the number of records Seq yields without a cap.
func (e *Expander) Count() int {
	total := 0
	for _, p := range e.patterns {
		size := 1
		for _, axis := range p.Axes {
			size *= len(e.axisValues(axis))
		}
		if len(p.Axes) == 0 {
			size = 0
		}
		total += size
	}
	return total
}

func (e *Expander) axisValues(axis Axis) []string {
	values := e.keywords[axis.Keyword]
	if axis.Limit > 0 && axis.Limit < len(values) {
		values = values[:axis.Limit]
	}
	return values
}

// expandPattern walks the axes depth-first and reports false once yield
// asks to stop.
func (e *Expander) expandPattern(p Pattern, yield func(models.PageRecord) bool) bool {
	if len(p.Axes) == 0 {
		return true
	}

	chosen := make([]string, len(p.Axes))
	var walk func(depth int) bool
	walk = func(depth int) bool {
		if depth == len(p.Axes) {
			return yield(models.PageRecord{
				Location:   e.prefix + e.slug(p, chosen),
				Priority:   p.Priority,
				ChangeFreq: p.ChangeFreq,
			})
		}
		for _, v := range e.axisValues(p.Axes[depth]) {
			chosen[depth] = v
			if !walk(depth + 1) {
				return false
			}
		}
		return true
	}

	return walk(0)
}

func (e *Expander) slug(p Pattern, values []string) string {
	pairs := make([]string, 0, 2*len(values))
	for i, axis := range p.Axes {
		pairs = append(pairs, "{"+axis.Keyword+"}", values[i])
	}
	return strings.NewReplacer(pairs...).Replace(p.Format)
}
