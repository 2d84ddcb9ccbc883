package scanner

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HasNoindex reports whether the HTML file at path asks robots not to index
// it via <meta name="robots" content="noindex">.
func HasNoindex(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return false, fmt.Errorf("error parsing HTML %s: %w", path, err)
	}

	noindex := false
	doc.Find("meta[name]").Each(func(i int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if !strings.EqualFold(name, "robots") {
			return
		}
		if content, exists := s.Attr("content"); exists {
			for _, directive := range strings.Split(content, ",") {
				if strings.EqualFold(strings.TrimSpace(directive), "noindex") {
					noindex = true
				}
			}
		}
	})

	return noindex, nil
}
