package localdump

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// existingHeader is the subset of front matter consulted for change
// detection.  Parsed leniently (yaml.v2 decoder over the first document) so
// hand-edited or older files don't break a run.
type existingHeader struct {
	ConfluenceID string `yaml:"confluence_id"`
	Version      int    `yaml:"version"`
	Format       string `yaml:"format"`
	ContentHash  string `yaml:"content_hash"`
}

// parseExistingRecord reads the front matter of a previously persisted page.
// A missing file reports ok=false with no error; a present-but-unparseable
// one is an error, since silently re-downloading would mask corruption.
func parseExistingRecord(path string) (existingHeader, bool, error) {
	source, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return existingHeader{}, false, nil
	}
	if err != nil {
		return existingHeader{}, false, fmt.Errorf("localdump: couldn't read file %s: %w", path, err)
	}

	d := yaml.NewDecoder(bytes.NewReader(source))
	header := existingHeader{}

	// we expect the first "document" to be our header YAML.
	if err := d.Decode(&header); err != nil {
		return existingHeader{}, false, fmt.Errorf("localdump: couldn't parse header of file %s: %w", path, err)
	}
	if header.ConfluenceID == "" {
		return existingHeader{}, false, fmt.Errorf("localdump: header seems broken in %s", path)
	}

	return header, true, nil
}

// matches reports whether an on-disk record already holds this exact content:
// same format, same version, same normalized-body hash.
func (h existingHeader) matches(fm FrontMatter) bool {
	return h.ConfluenceID == fm.ConfluenceID &&
		h.Format == fm.Format &&
		h.Version == fm.Version &&
		h.ContentHash == fm.ContentHash
}
