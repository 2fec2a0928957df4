package confluence

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// getContentByIDEndpoint returns the (v1) API endpoint to download one
// content item with the expansions we need.
func (a *API) getContentByIDEndpoint(id string, opts GetContentQuery) (*url.URL, error) {
	if id == "" {
		return nil, fmt.Errorf("confluence: please provide ID to get content")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/wiki/rest/api/content/%s", id))
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// getChildPagesEndpoint returns the (v1) API endpoint to list a page's direct
// child pages.
func (a *API) getChildPagesEndpoint(parentID string, opts ChildPagesQuery) (*url.URL, error) {
	if parentID == "" {
		return nil, fmt.Errorf("confluence: please provide parent ID to list children")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/wiki/rest/api/content/%s/child/page", parentID))
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// getAttachmentsEndpoint returns the (v1) API endpoint to list a page's
// attachments.
func (a *API) getAttachmentsEndpoint(pageID string, opts AttachmentsQuery) (*url.URL, error) {
	if pageID == "" {
		return nil, fmt.Errorf("confluence: please provide page ID to list attachments")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/wiki/rest/api/content/%s/child/attachment", pageID))
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// getSpacesEndpoint returns the (v1) API endpoint to list spaces; used as the
// auth probe.
func (a *API) getSpacesEndpoint(opts SpacesQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint("/wiki/rest/api/space")
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	baseUri := a.BaseURI

	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("confluence: failed to parse endpoint ref: %w", err)
	}

	return baseUri.ResolveReference(ref), nil
}
