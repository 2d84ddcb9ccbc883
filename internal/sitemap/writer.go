// Package sitemap renders page records as sitemaps.org XML documents.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/romangod6/sitemapgen/internal/models"
)

var ErrTooManyURLs = errors.New("too many URLs for a single sitemap")

// Namer returns the file name for the n-th chunk, n starting at 1.
type Namer func(n int) string

// Numbered names every chunk prefix-<n>.xml.
func Numbered(prefix string) Namer {
	return func(n int) string {
		return fmt.Sprintf("%s-%d.xml", prefix, n)
	}
}

// FirstUnnumbered names the first chunk prefix.xml and any overflow
// prefix-<n>.xml.
func FirstUnnumbered(prefix string) Namer {
	return func(n int) string {
		if n == 1 {
			return prefix + ".xml"
		}
		return fmt.Sprintf("%s-%d.xml", prefix, n)
	}
}

// Chunk splits records into contiguous slices of at most size entries.
// It never returns an empty chunk.
func Chunk(records []models.PageRecord, size int) [][]models.PageRecord {
	if size <= 0 || len(records) == 0 {
		return nil
	}
	chunks := make([][]models.PageRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		chunks = append(chunks, records[start:end])
	}
	return chunks
}

type Writer struct {
	dir        string
	maxPerFile int
	lastMod    string
}

// NewWriter writes chunk files into dir, stamping every entry with today.
func NewWriter(dir string, maxPerFile int, today time.Time) *Writer {
	return &Writer{
		dir:        dir,
		maxPerFile: maxPerFile,
		lastMod:    today.Format(models.DateFormat),
	}
}

// WriteChunks writes records as consecutive urlset files named by name and
// returns the file names in chunk order. Existing files are overwritten.
func (w *Writer) WriteChunks(records []models.PageRecord, name Namer) ([]string, error) {
	var files []string
	for i, chunk := range Chunk(records, w.maxPerFile) {
		filename := name(i + 1)
		if err := w.writeDocument(filepath.Join(w.dir, filename), models.NewSitemap(chunk, w.lastMod)); err != nil {
			return files, err
		}
		files = append(files, filename)
	}
	return files, nil
}

// WriteSitemap writes all records into one urlset document at path.
func (w *Writer) WriteSitemap(path string, records []models.PageRecord) error {
	if len(records) > w.maxPerFile {
		return fmt.Errorf("%w: %d records, limit %d", ErrTooManyURLs, len(records), w.maxPerFile)
	}
	return w.writeDocument(path, models.NewSitemap(records, w.lastMod))
}

// WriteIndex writes a sitemapindex at path listing each file under
// sitemapsURL.
func (w *Writer) WriteIndex(path, sitemapsURL string, files []string) error {
	prefix := strings.TrimRight(sitemapsURL, "/") + "/"
	index := &models.SitemapIndex{
		Xmlns:    models.SitemapNamespace,
		Sitemaps: make([]models.IndexEntry, 0, len(files)),
	}
	for _, f := range files {
		index.Sitemaps = append(index.Sitemaps, models.IndexEntry{
			Loc:     prefix + f,
			LastMod: w.lastMod,
		})
	}
	return w.writeDocument(path, index)
}

func (w *Writer) writeDocument(path string, doc interface{}) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// Marshal renders doc with the XML declaration and two-space indentation.
func Marshal(doc interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("\n")

	return buf.Bytes(), nil
}
