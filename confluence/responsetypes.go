package confluence

// Content is one page as returned by the v1 content API.  Optional expansions
// arrive as nil pointers; callers should treat them as "not requested" rather
// than probing field-by-field.
type Content struct {
	ID     string `json:"id"`
	Type   string `json:"type"`   // page, blogpost, attachment
	Status string `json:"status"` // current, archived, trashed
	Title  string `json:"title"`

	Space     *Space     `json:"space,omitempty"`
	Version   *Version   `json:"version,omitempty"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
	Body      *Body      `json:"body,omitempty"`

	Links Links `json:"_links"`
}

// WebURL is the page's own browser-facing URL, assembled from the response's
// base and webui links.  Falls back to the API self link when the webui link
// is missing (e.g. trashed pages).
func (c Content) WebURL() string {
	if c.Links.WebUI != "" {
		return c.Links.Base + c.Links.WebUI
	}
	return c.Links.Self
}

type Space struct {
	ID   int    `json:"id,omitempty"`
	Key  string `json:"key,omitempty"`
	Name string `json:"name,omitempty"`
}

// Version defines the content version number, used for change detection.
type Version struct {
	Number int    `json:"number"`
	When   string `json:"when,omitempty"`
}

type Ancestor struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// Body holds the representations we asked for via expand.
type Body struct {
	Storage    *Storage `json:"storage,omitempty"`
	ExportView *Storage `json:"export_view,omitempty"`
}

// Storage is one body representation: the native markup or rendered HTML.
type Storage struct {
	Representation string `json:"representation"`
	Value          string `json:"value"`
}

type Links struct {
	Base    string `json:"base,omitempty"`
	Context string `json:"context,omitempty"`
	WebUI   string `json:"webui,omitempty"`
	Self    string `json:"self,omitempty"`
	Next    string `json:"next,omitempty"`
	Editui  string `json:"editui,omitempty"`
}

// ChildPages is the paginated response to a child-page listing.  The server
// may omit _links.next entirely; that absence is the only reliable signal
// that there are no further results.
type ChildPages struct {
	Results []Content `json:"results"`
	Start   int       `json:"start"`
	Limit   int       `json:"limit"`
	Size    int       `json:"size"`

	Links Links `json:"_links"`
}

// Attachments is the paginated response to an attachment listing.
type Attachments struct {
	Results []Attachment `json:"results"`
	Start   int          `json:"start"`
	Limit   int          `json:"limit"`
	Size    int          `json:"size"`

	Links Links `json:"_links"`
}

type Attachment struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Links struct {
		// Relative download URL; may or may not carry the /wiki prefix
		// depending on site configuration.
		Download string `json:"download"`
	} `json:"_links"`
}

// AllSpaces is the (v1) space-list response; the probe only cares that it
// decodes at all.
type AllSpaces struct {
	Results []Space `json:"results"`
	Size    int     `json:"size"`
}
