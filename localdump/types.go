package localdump

// ContentID is a Confluence page ID (a numeric string).
type ContentID string

// BodyFormat selects which body representation gets persisted.
type BodyFormat string

const (
	FormatStorage    BodyFormat = "storage"
	FormatExportView BodyFormat = "export-view"
)

// Extension is the file suffix for records in this format: the storage format
// is Confluence's XHTML-ish markup, the export view is rendered HTML.
func (f BodyFormat) Extension() string {
	if f == FormatExportView {
		return "html"
	}
	return "xhtml"
}

// ParseBodyFormat validates a user-supplied format name.
func ParseBodyFormat(s string) (BodyFormat, error) {
	switch BodyFormat(s) {
	case FormatStorage, FormatExportView:
		return BodyFormat(s), nil
	}
	return "", errUnknownFormat(s)
}

// FrontMatter is the fixed-schema metadata block prepended to every persisted
// page.  Field order here is file order.
type FrontMatter struct {
	Source               string `yaml:"source"`
	ConfluenceID         string `yaml:"confluence_id"`
	Space                string `yaml:"space"`
	Version              int    `yaml:"version"`
	Retrieved            string `yaml:"retrieved"`
	Format               string `yaml:"format"`
	ContentHash          string `yaml:"content_hash"`
	MacroStructuredMacro int    `yaml:"macro_structured_macro"`
	MacroImage           int    `yaml:"macro_image"`
	MacroLink            int    `yaml:"macro_link"`
}

// MacroCounts are occurrences of the three embedded-macro markers in a raw
// body.  Detected by pattern match, never interpreted.
type MacroCounts struct {
	StructuredMacro int
	Image           int
	Link            int
}

// SavedPage records what the persister did for one page, for the caller to
// log and summarise.
type SavedPage struct {
	ID      ContentID
	Title   string
	Version int
	Format  BodyFormat
	Path    string
	Macros  MacroCounts

	// Skipped means the existing file already matched (hash + version) and
	// the write was elided.
	Skipped bool

	// DryRun means the record was built but, per SaveOptions.DryRun, not
	// written.  Distinct from Skipped: the content was not known unchanged.
	DryRun bool
}

// BranchFailure is one failed page visit in a keep-going traversal.
type BranchFailure struct {
	ID  ContentID
	Err error
}

// Summary is the outcome of one traversal.
type Summary struct {
	Visited     int
	Written     int
	Skipped     int
	Attachments int
	Failures    []BranchFailure
}

// workItem is one pending traversal step.
type workItem struct {
	id    ContentID
	depth int
}
