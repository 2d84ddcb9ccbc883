package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/romangod6/sitemapgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://example.com"

func touch(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func locations(records []models.PageRecord) []string {
	locs := make([]string, 0, len(records))
	for _, r := range records {
		locs = append(locs, r.Location)
	}
	return locs
}

func TestScan_OnlyPagesDirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "pages/audit.html", "<html></html>")

	pages, err := New(base, DefaultRules(), false).Scan(root)
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, models.PageRecord{Location: base + "/", Priority: 1.0, ChangeFreq: models.ChangeWeekly}, pages[0])
	assert.Equal(t, models.PageRecord{Location: base + "/pages/audit.html", Priority: 0.9, ChangeFreq: models.ChangeMonthly}, pages[1])
}

func TestScan_FullTreeOrder(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "index.html", "")
	touch(t, root, "links.html", "")
	touch(t, root, "pages/tax.html", "")
	touch(t, root, "pages/audit.html", "")
	touch(t, root, "pages/notes.txt", "")
	touch(t, root, "blogs/b.html", "")
	touch(t, root, "blogs/a.html", "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pages", "dir.html"), 0755))

	pages, err := New(base+"/", DefaultRules(), false).Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		base + "/",
		base + "/index.html",
		base + "/pages/audit.html",
		base + "/pages/tax.html",
		base + "/blogs/a.html",
		base + "/blogs/b.html",
		base + "/links.html",
	}, locations(pages))
	assert.Equal(t, 0.8, pages[4].Priority)
	assert.Equal(t, 0.6, pages[6].Priority)
	assert.Equal(t, models.ChangeMonthly, pages[6].ChangeFreq)
}

func TestScan_EmptyDirectory(t *testing.T) {
	pages, err := New(base, DefaultRules(), false).Scan(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{base + "/"}, locations(pages))
}

func TestScan_RootWithGlobCharacters(t *testing.T) {
	root := filepath.Join(t.TempDir(), "site[v2]")
	touch(t, root, "index.html", "")
	touch(t, root, "pages/audit.html", "")

	pages, err := New(base, DefaultRules(), false).Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		base + "/",
		base + "/index.html",
		base + "/pages/audit.html",
	}, locations(pages))
}

func TestScan_BadGlob(t *testing.T) {
	_, err := New(base, []Rule{{Glob: "pages/[.html"}}, false).Scan(t.TempDir())
	assert.Error(t, err)
}

func TestScan_RespectNoindex(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "pages/public.html", `<html><head><meta name="description" content="x"></head></html>`)
	touch(t, root, "pages/private.html", `<html><head><meta name="Robots" content="noindex, nofollow"></head></html>`)

	pages, err := New(base, DefaultRules(), true).Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{base + "/", base + "/pages/public.html"}, locations(pages))

	pages, err = New(base, DefaultRules(), false).Scan(root)
	require.NoError(t, err)
	assert.Len(t, pages, 3)
}

func TestHasNoindex(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.html", `<meta name="robots" content="index,follow">`)
	touch(t, root, "b.html", `<meta name="robots" content="NOINDEX">`)

	noindex, err := HasNoindex(filepath.Join(root, "a.html"))
	require.NoError(t, err)
	assert.False(t, noindex)

	noindex, err = HasNoindex(filepath.Join(root, "b.html"))
	require.NoError(t, err)
	assert.True(t, noindex)

	_, err = HasNoindex(filepath.Join(root, "missing.html"))
	assert.Error(t, err)
}
