package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Confluence content IDs are numeric strings.  Anything else is a caller bug
// and fails before a single byte hits the network.
var pageIDPattern = regexp.MustCompile(`^[0-9]+$`)

// ValidatePageID enforces the numeric-ID precondition.
func ValidatePageID(id string) error {
	if !pageIDPattern.MatchString(id) {
		return fmt.Errorf("confluence: page ID must be a numeric string, got '%s'", id)
	}
	return nil
}

// ExpandAll is the expansion set for a full page snapshot: both body
// representations plus version, ancestry and space metadata.
var ExpandAll = []string{"body.export_view", "body.storage", "version", "ancestors", "space"}

// GetContentByID fetches one page's metadata and requested body
// representations.
func (api *API) GetContentByID(ctx context.Context, id string, opts GetContentQuery) (*Content, error) {
	if err := ValidatePageID(id); err != nil {
		return nil, err
	}

	ep, err := api.getContentByIDEndpoint(id, opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get content endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't fetch page %s: %w", id, err)
	}

	var content Content
	if err := json.Unmarshal(body, &content); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &content, nil
}

// ChildPageLimit is the fixed page size for child enumeration.
const ChildPageLimit = 50

// siteLink restores the site context path on links that Cloud emits relative
// to it rather than to the site root: _links.next arrives as /rest/... and
// attachment downloads as /download/..., both needing the /wiki prefix before
// they resolve against the base URI.
func siteLink(context, link string) string {
	if strings.HasPrefix(link, "/rest/") || strings.HasPrefix(link, "/download/") {
		if context == "" {
			context = "/wiki"
		}
		return context + link
	}
	return link
}

// GetChildPages returns the complete, order-preserving list of direct child
// pages of the given parent, following pagination until the server stops
// sending a _links.next URL.
func (api *API) GetChildPages(ctx context.Context, parentID string) ([]Content, error) {
	if err := ValidatePageID(parentID); err != nil {
		return nil, err
	}

	ep, err := api.getChildPagesEndpoint(parentID, ChildPagesQuery{Limit: ChildPageLimit})
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get child-pages endpoint: %w", err)
	}

	children := []Content{}
	for {
		body, err := api.request(ctx, ep)
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't list children of %s: %w", parentID, err)
		}

		var page ChildPages
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
		}

		children = append(children, page.Results...)

		// The server omits _links.next on the final page.  Don't second-guess
		// it with size arithmetic; the missing link is the termination signal.
		if page.Links.Next == "" {
			return children, nil
		}

		ep, err = api.resolveEndpoint(siteLink(page.Links.Context, page.Links.Next))
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't parse _links.next: %w", err)
		}
	}
}

// GetAttachments returns all attachments of the given page, following
// pagination the same way as GetChildPages.
func (api *API) GetAttachments(ctx context.Context, pageID string) ([]Attachment, error) {
	if err := ValidatePageID(pageID); err != nil {
		return nil, err
	}

	ep, err := api.getAttachmentsEndpoint(pageID, AttachmentsQuery{Limit: ChildPageLimit})
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get attachments endpoint: %w", err)
	}

	attachments := []Attachment{}
	for {
		body, err := api.request(ctx, ep)
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't list attachments of %s: %w", pageID, err)
		}

		var page Attachments
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
		}

		attachments = append(attachments, page.Results...)

		if page.Links.Next == "" {
			return attachments, nil
		}

		ep, err = api.resolveEndpoint(siteLink(page.Links.Context, page.Links.Next))
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't parse _links.next: %w", err)
		}
	}
}

// DownloadAttachment fetches an attachment's raw bytes.  Download links from
// the API are context-relative and lack the /wiki prefix.
func (api *API) DownloadAttachment(ctx context.Context, att Attachment) ([]byte, error) {
	link := att.Links.Download
	if link == "" {
		return nil, fmt.Errorf("confluence: attachment %s has no download link", att.ID)
	}

	ep, err := api.resolveEndpoint(siteLink("", link))
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve attachment link: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't download attachment %s: %w", att.ID, err)
	}

	return body, nil
}

// ProbeAuth issues one minimal authenticated read to confirm credentials
// before any bulk work.  It reports failure rather than returning an error:
// the caller must treat a failed probe as fatal to the whole run.
func (api *API) ProbeAuth(ctx context.Context) (bool, error) {
	ep, err := api.getSpacesEndpoint(SpacesQuery{Limit: 1})
	if err != nil {
		return false, fmt.Errorf("confluence: couldn't get spaces endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		api.Logger.Debugw("auth probe failed", "error", err)
		return false, nil
	}

	var spaces AllSpaces
	if err := json.Unmarshal(body, &spaces); err != nil {
		api.Logger.Debugw("auth probe returned unparseable response", "error", err)
		return false, nil
	}

	return true, nil
}
