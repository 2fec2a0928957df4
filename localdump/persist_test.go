package localdump

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-agile/confluence-tree-dump/confluence"
)

func fixturePage() *confluence.Content {
	page := &confluence.Content{
		ID:     "4711",
		Type:   "page",
		Status: "current",
		Title:  "Runbook: disk/cleanup",
		Space:  &confluence.Space{Key: "OPS"},
		Version: &confluence.Version{
			Number: 3,
			When:   "2024-02-02T08:00:00.000Z",
		},
		Body: &confluence.Body{
			Storage: &confluence.Storage{
				Representation: "storage",
				Value:          "<p>wipe</p>\r\n<ac:structured-macro ac:name=\"code\"/>",
			},
			ExportView: &confluence.Storage{
				Representation: "export_view",
				Value:          "<p>wipe rendered</p>",
			},
		},
	}
	page.Links.Base = "https://example.atlassian.net/wiki"
	page.Links.WebUI = "/spaces/OPS/pages/4711"
	return page
}

func TestBuildFrontMatter(t *testing.T) {
	retrieved := time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC)
	fm := BuildFrontMatter(fixturePage(), FormatStorage, retrieved)

	assert.Equal(t, "https://example.atlassian.net/wiki/spaces/OPS/pages/4711", fm.Source)
	assert.Equal(t, "4711", fm.ConfluenceID)
	assert.Equal(t, "OPS", fm.Space)
	assert.Equal(t, 3, fm.Version)
	assert.Equal(t, "2024-02-03T12:00:00Z", fm.Retrieved)
	assert.Equal(t, "storage", fm.Format)
	assert.Equal(t, ContentHash("<p>wipe</p>\n<ac:structured-macro ac:name=\"code\"/>"), fm.ContentHash)
	assert.Equal(t, 1, fm.MacroStructuredMacro)
	assert.Equal(t, 0, fm.MacroImage)
	assert.Equal(t, 0, fm.MacroLink)
}

func TestRenderRecordPreservesRawBody(t *testing.T) {
	raw := "  <p>exact\r\nbytes</p>  "
	record, err := RenderRecord(BuildFrontMatter(fixturePage(), FormatStorage, time.Now()), raw)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(record, "---\n"))
	_, body, found := strings.Cut(record, "\n---\n")
	require.True(t, found)
	assert.Equal(t, raw, body, "the body must be byte-identical to what the server sent")
}

func TestRawBodyMissingRepresentation(t *testing.T) {
	page := fixturePage()
	page.Body.ExportView = nil
	assert.Equal(t, "", RawBody(page, FormatExportView))

	page.Body = nil
	assert.Equal(t, "", RawBody(page, FormatStorage))
}

func TestSavePageWritesRecord(t *testing.T) {
	dir := t.TempDir()
	saved, err := SavePage(fixturePage(), dir, FormatStorage, SaveOptions{})
	require.NoError(t, err)

	assert.Equal(t, ContentID("4711"), saved.ID)
	assert.Equal(t, 3, saved.Version)
	assert.False(t, saved.Skipped)
	assert.Equal(t, filepath.Join(dir, "4711-Runbook- disk-cleanup.xhtml"), saved.Path)

	contents, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "confluence_id: \"4711\"")
	assert.Contains(t, string(contents), "macro_structured_macro: 1")
	assert.True(t, strings.HasSuffix(string(contents), "<ac:structured-macro ac:name=\"code\"/>"))

	// no temp droppings left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSavePageEmptyBodyStillPersists(t *testing.T) {
	dir := t.TempDir()
	page := fixturePage()
	page.Body = nil

	saved, err := SavePage(page, dir, FormatStorage, SaveOptions{})
	require.NoError(t, err)

	contents, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "content_hash: "+ContentHash(""))
}

func TestSavePageSkipUnchanged(t *testing.T) {
	dir := t.TempDir()
	page := fixturePage()

	first, err := SavePage(page, dir, FormatStorage, SaveOptions{})
	require.NoError(t, err)
	require.False(t, first.Skipped)

	second, err := SavePage(page, dir, FormatStorage, SaveOptions{SkipUnchanged: true})
	require.NoError(t, err)
	assert.True(t, second.Skipped)

	// a version bump re-enables the write
	page.Version.Number = 4
	third, err := SavePage(page, dir, FormatStorage, SaveOptions{SkipUnchanged: true})
	require.NoError(t, err)
	assert.False(t, third.Skipped)
}

func TestSavePageOverwritesByDefault(t *testing.T) {
	dir := t.TempDir()
	page := fixturePage()

	saved, err := SavePage(page, dir, FormatStorage, SaveOptions{})
	require.NoError(t, err)

	page.Body.Storage.Value = "<p>new content</p>"
	saved, err = SavePage(page, dir, FormatStorage, SaveOptions{})
	require.NoError(t, err)

	contents, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "<p>new content</p>")
}

func TestSavePageDryRun(t *testing.T) {
	dir := t.TempDir()
	saved, err := SavePage(fixturePage(), dir, FormatStorage, SaveOptions{DryRun: true})
	require.NoError(t, err)
	assert.True(t, saved.DryRun)
	assert.False(t, saved.Skipped, "dry run is not the same as unchanged")

	_, err = os.Stat(saved.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestSavePageDryRunStillDetectsUnchanged(t *testing.T) {
	dir := t.TempDir()
	page := fixturePage()
	_, err := SavePage(page, dir, FormatStorage, SaveOptions{})
	require.NoError(t, err)

	saved, err := SavePage(page, dir, FormatStorage, SaveOptions{DryRun: true, SkipUnchanged: true})
	require.NoError(t, err)
	assert.True(t, saved.Skipped)
	assert.False(t, saved.DryRun)
}

func TestParseExistingRecordRoundTrip(t *testing.T) {
	dir := t.TempDir()
	retrieved := time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC)
	saved, err := SavePage(fixturePage(), dir, FormatStorage, SaveOptions{Retrieved: retrieved})
	require.NoError(t, err)

	header, ok, err := parseExistingRecord(saved.Path)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "4711", header.ConfluenceID)
	assert.Equal(t, 3, header.Version)
	assert.Equal(t, "storage", header.Format)
	assert.True(t, header.matches(BuildFrontMatter(fixturePage(), FormatStorage, retrieved)))
}

func TestParseExistingRecordMissingFile(t *testing.T) {
	_, ok, err := parseExistingRecord(filepath.Join(t.TempDir(), "nope.xhtml"))
	require.NoError(t, err)
	assert.False(t, ok)
}
