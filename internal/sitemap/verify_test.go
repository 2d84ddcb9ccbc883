package sitemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/romangod6/sitemapgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_Index(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 3, today)
	in := append(records(7), records(1)...)

	files, err := w.WriteChunks(in, Numbered("sitemap-seo"))
	require.NoError(t, err)
	index := filepath.Join(dir, "sitemap.xml")
	require.NoError(t, w.WriteIndex(index, "https://example.com/sitemaps", files))

	report, err := Verify(index, dir)
	require.NoError(t, err)
	assert.True(t, report.OK(), report.Problems)
	assert.Equal(t, files, report.Files)
	assert.Equal(t, 8, report.URLCount)
	assert.Equal(t, 1, report.Duplicates)
}

func TestVerify_SingleURLSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitemap.xml")
	require.NoError(t, NewWriter(filepath.Dir(path), 10, today).WriteSitemap(path, records(4)))

	report, err := Verify(path, "")
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, []string{"sitemap.xml"}, report.Files)
	assert.Equal(t, 4, report.URLCount)
}

func TestVerify_Problems(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10, today)
	_, err := w.WriteChunks([]models.PageRecord{
		{Location: "https://example.com/a", Priority: 1.5, ChangeFreq: "sometimes"},
	}, Numbered("sitemap-seo"))
	require.NoError(t, err)

	index := filepath.Join(dir, "sitemap.xml")
	require.NoError(t, w.WriteIndex(index, "https://example.com/sitemaps", []string{"sitemap-seo-1.xml", "sitemap-seo-9.xml"}))

	report, err := Verify(index, dir)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Len(t, report.Problems, 3)
}

func TestVerify_NotASitemap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.xml")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644))

	_, err := Verify(path, "")
	assert.Error(t, err)

	_, err = Verify(filepath.Join(t.TempDir(), "missing.xml"), "")
	assert.Error(t, err)
}
