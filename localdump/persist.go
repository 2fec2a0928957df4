package localdump

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ai-agile/confluence-tree-dump/confluence"
)

// SaveOptions tweak how a page snapshot lands on disk.
type SaveOptions struct {
	// Retrieved is stamped into the front matter; zero means time.Now().
	Retrieved time.Time

	// SkipUnchanged consults the existing file's front matter and elides the
	// write when format, version and content hash all match.
	SkipUnchanged bool

	// DryRun computes everything but writes nothing.
	DryRun bool
}

// SavePage persists one fetched page into outDir as a front-matter-annotated
// record, overwriting any prior file at that path.  It never rewrites the
// body; what Confluence sent is what lands on disk.
func SavePage(page *confluence.Content, outDir string, format BodyFormat, opts SaveOptions) (SavedPage, error) {
	retrieved := opts.Retrieved
	if retrieved.IsZero() {
		retrieved = time.Now()
	}

	header := BuildFrontMatter(page, format, retrieved)
	rawBody := RawBody(page, format)

	saved := SavedPage{
		ID:      ContentID(page.ID),
		Title:   page.Title,
		Version: header.Version,
		Format:  format,
		Path:    filepath.Join(outDir, PageFileName(ContentID(page.ID), page.Title, format)),
		Macros: MacroCounts{
			StructuredMacro: header.MacroStructuredMacro,
			Image:           header.MacroImage,
			Link:            header.MacroLink,
		},
	}

	if opts.SkipUnchanged {
		existing, ok, err := parseExistingRecord(saved.Path)
		if err != nil {
			return SavedPage{}, err
		}
		if ok && existing.matches(header) {
			saved.Skipped = true
			return saved, nil
		}
	}

	record, err := RenderRecord(header, rawBody)
	if err != nil {
		return SavedPage{}, err
	}

	if opts.DryRun {
		saved.DryRun = true
		return saved, nil
	}

	if err := writeFileAtomic(saved.Path, []byte(record)); err != nil {
		return SavedPage{}, fmt.Errorf("localdump: couldn't persist page %s: %w", page.ID, err)
	}

	return saved, nil
}
