package localdump

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ai-agile/confluence-tree-dump/confluence"
)

// RawBody extracts the requested representation from a fetched page.  An
// absent representation yields an empty body: one page missing a view should
// not sink a whole traversal.
func RawBody(page *confluence.Content, format BodyFormat) string {
	if page.Body == nil {
		return ""
	}
	switch format {
	case FormatExportView:
		if page.Body.ExportView == nil {
			return ""
		}
		return page.Body.ExportView.Value
	default:
		if page.Body.Storage == nil {
			return ""
		}
		return page.Body.Storage.Value
	}
}

// BuildFrontMatter assembles the fixed-schema metadata header for one page.
// The hash covers the normalized body; the macro counts cover the raw one.
func BuildFrontMatter(page *confluence.Content, format BodyFormat, retrieved time.Time) FrontMatter {
	rawBody := RawBody(page, format)
	macros := CountMacros(rawBody)

	version := 0
	if page.Version != nil {
		version = page.Version.Number
	}
	spaceKey := ""
	if page.Space != nil {
		spaceKey = page.Space.Key
	}

	return FrontMatter{
		Source:               page.WebURL(),
		ConfluenceID:         page.ID,
		Space:                spaceKey,
		Version:              version,
		Retrieved:            retrieved.Format(time.RFC3339),
		Format:               string(format),
		ContentHash:          ContentHash(rawBody),
		MacroStructuredMacro: macros.StructuredMacro,
		MacroImage:           macros.Image,
		MacroLink:            macros.Link,
	}
}

// RenderRecord serialises the front-matter block followed by the raw body.
// The body goes out byte-for-byte as received; preserving the exact source
// markup is a hard requirement.
func RenderRecord(header FrontMatter, rawBody string) (string, error) {
	yamlHeader, err := yaml.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("localdump: couldn't marshal header YAML: %w", err)
	}

	return fmt.Sprintf("---\n%s\n---\n%s",
		strings.TrimSpace(string(yamlHeader)),
		rawBody), nil
}
