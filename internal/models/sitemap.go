// internal/models/sitemap.go
package models

import "encoding/xml"

const (
	SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XSINamespace     = "http://www.w3.org/2001/XMLSchema-instance"
	SchemaLocation   = "http://www.sitemaps.org/schemas/sitemap/0.9 http://www.sitemaps.org/schemas/sitemap/0.9/sitemap.xsd"

	// MaxURLsPerSitemap is the protocol ceiling for entries in one file.
	MaxURLsPerSitemap = 50000
)

// Sitemap represents the structure of an XML sitemap.
type Sitemap struct {
	XMLName        xml.Name `xml:"urlset"`
	Xmlns          string   `xml:"xmlns,attr"`
	XSI            string   `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr,omitempty"`
	URLs           []URL    `xml:"url"`
}

// URL represents a single URL entry in the sitemap.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapIndex is the top-level document pointing at chunk files.
type SitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []IndexEntry `xml:"sitemap"`
}

type IndexEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// NewSitemap wraps page records into a urlset document stamped with lastMod.
func NewSitemap(records []PageRecord, lastMod string) *Sitemap {
	sm := &Sitemap{
		Xmlns:          SitemapNamespace,
		XSI:            XSINamespace,
		SchemaLocation: SchemaLocation,
		URLs:           make([]URL, 0, len(records)),
	}
	for _, r := range records {
		sm.URLs = append(sm.URLs, r.URL(lastMod))
	}
	return sm
}
