package confluence

// GetContentQuery defines the query parameters for fetching one content item:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-get
type GetContentQuery struct {
	// Properties to expand on the returned item, e.g. "body.storage",
	// "body.export_view", "version", "ancestors", "space".
	Expand []string `url:"expand,omitempty,comma"`
}

// ChildPagesQuery defines the query parameters for listing direct child pages:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content---children-and-descendants/#api-wiki-rest-api-content-id-child-page-get
type ChildPagesQuery struct {
	// 'Start' is the offset-based pagination cursor.  We only use it for the
	// first request; follow-ups come from the _links.next URL the server
	// hands back, since its absence is the sole end-of-results signal.
	Start int `url:"start,omitempty"`
	Limit int `url:"limit,omitempty"` // page limit; server default 25
}

// AttachmentsQuery defines the query parameters for listing a page's attachments:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content---children-and-descendants/#api-wiki-rest-api-content-id-child-attachment-get
type AttachmentsQuery struct {
	Start int `url:"start,omitempty"`
	Limit int `url:"limit,omitempty"`
}

// SpacesQuery defines the query parameters for the space list:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-space/#api-wiki-rest-api-space-get
//
// We only ever use this with Limit=1, as a cheap authenticated read to verify
// credentials before bulk work.
type SpacesQuery struct {
	Limit int `url:"limit,omitempty"`
}
