package sitemap

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/romangod6/sitemapgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

func records(n int) []models.PageRecord {
	out := make([]models.PageRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.PageRecord{
			Location:   fmt.Sprintf("https://example.com/services/page-%d", i),
			Priority:   0.6,
			ChangeFreq: models.ChangeMonthly,
		})
	}
	return out
}

func readSitemap(t *testing.T, path string) models.Sitemap {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var sm models.Sitemap
	require.NoError(t, xml.Unmarshal(data, &sm))
	return sm
}

func TestChunk(t *testing.T) {
	in := records(7)
	chunks := Chunk(in, 3)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 3)
	assert.Len(t, chunks[1], 3)
	assert.Len(t, chunks[2], 1)

	var joined []models.PageRecord
	for _, c := range chunks {
		joined = append(joined, c...)
	}
	assert.Equal(t, in, joined)

	assert.Len(t, Chunk(records(6), 3), 2)
	assert.Nil(t, Chunk(nil, 3))
	assert.Nil(t, Chunk(in, 0))
}

func TestWriteChunks_SevenRecordsByThree(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 3, today)
	in := records(7)

	files, err := w.WriteChunks(in, Numbered("sitemap-seo"))
	require.NoError(t, err)
	assert.Equal(t, []string{"sitemap-seo-1.xml", "sitemap-seo-2.xml", "sitemap-seo-3.xml"}, files)

	var locs []string
	for i, f := range files {
		sm := readSitemap(t, filepath.Join(dir, f))
		assert.Len(t, sm.URLs, []int{3, 3, 1}[i])
		for _, u := range sm.URLs {
			assert.Equal(t, "2026-10-19", u.LastMod)
			assert.Equal(t, "monthly", u.ChangeFreq)
			assert.Equal(t, "0.6", u.Priority)
			locs = append(locs, u.Loc)
		}
	}
	for i, r := range in {
		assert.Equal(t, r.Location, locs[i])
	}

	index := filepath.Join(dir, "sitemap.xml")
	require.NoError(t, w.WriteIndex(index, "https://example.com/sitemaps/", files))

	data, err := os.ReadFile(index)
	require.NoError(t, err)
	var idx models.SitemapIndex
	require.NoError(t, xml.Unmarshal(data, &idx))
	require.Len(t, idx.Sitemaps, 3)
	for i, f := range files {
		assert.Equal(t, "https://example.com/sitemaps/"+f, idx.Sitemaps[i].Loc)
		assert.Equal(t, "2026-10-19", idx.Sitemaps[i].LastMod)
	}
}

func TestWriteChunks_EmptyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	files, err := NewWriter(dir, 3, today).WriteChunks(nil, Numbered("sitemap-seo"))
	require.NoError(t, err)
	assert.Empty(t, files)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteChunks_MissingDirectory(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "missing"), 3, today)
	_, err := w.WriteChunks(records(1), Numbered("sitemap-seo"))
	assert.Error(t, err)
}

func TestFirstUnnumbered(t *testing.T) {
	name := FirstUnnumbered("sitemap-main")
	assert.Equal(t, "sitemap-main.xml", name(1))
	assert.Equal(t, "sitemap-main-2.xml", name(2))
}

func TestWriteSitemap_ExactBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitemap.xml")
	w := NewWriter(filepath.Dir(path), 10, today)

	err := w.WriteSitemap(path, []models.PageRecord{
		{Location: "https://example.com/a?x=1&y=<2>", Priority: 0.7, ChangeFreq: models.ChangeMonthly},
		{Location: "https://example.com/", Priority: 1, ChangeFreq: models.ChangeWeekly},
	})
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://www.sitemaps.org/schemas/sitemap/0.9 http://www.sitemaps.org/schemas/sitemap/0.9/sitemap.xsd">
  <url>
    <loc>https://example.com/a?x=1&amp;y=&lt;2&gt;</loc>
    <lastmod>2026-10-19</lastmod>
    <changefreq>monthly</changefreq>
    <priority>0.7</priority>
  </url>
  <url>
    <loc>https://example.com/</loc>
    <lastmod>2026-10-19</lastmod>
    <changefreq>weekly</changefreq>
    <priority>1.0</priority>
  </url>
</urlset>
`
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestWriteSitemap_EscapingRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitemap.xml")
	loc := `https://example.com/q?a=1&b=<tag>&c="quoted"`

	require.NoError(t, NewWriter(filepath.Dir(path), 10, today).WriteSitemap(path, []models.PageRecord{
		{Location: loc, Priority: 0.5, ChangeFreq: models.ChangeMonthly},
	}))

	sm := readSitemap(t, path)
	require.Len(t, sm.URLs, 1)
	assert.Equal(t, loc, sm.URLs[0].Loc)
}

func TestWriteSitemap_TooMany(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitemap.xml")
	err := NewWriter(filepath.Dir(path), 2, today).WriteSitemap(path, records(3))
	assert.ErrorIs(t, err, ErrTooManyURLs)
	assert.NoFileExists(t, path)
}

func TestWriteChunks_Deterministic(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 4, today)

	files, err := w.WriteChunks(records(5), Numbered("sitemap-seo"))
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(dir, files[1]))
	require.NoError(t, err)

	again, err := w.WriteChunks(records(5), Numbered("sitemap-seo"))
	require.NoError(t, err)
	assert.Equal(t, files, again)
	second, err := os.ReadFile(filepath.Join(dir, files[1]))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
