package confluence

import "errors"

// The error taxonomy for remote failures.  Transport status codes are mapped
// onto these exactly once, in request(); downstream code matches with
// errors.Is and never inspects HTTP status codes itself.
var (
	// ErrUnauthorized: the site rejected our credentials (401).  Invalid or
	// expired API token, or wrong email.
	ErrUnauthorized = errors.New("authentication failed (401): check CONF_EMAIL and CONF_TOKEN, the token may be expired")

	// ErrForbidden: authenticated, but this user may not read the content (403).
	ErrForbidden = errors.New("permission denied (403): the authenticated user cannot read this content")

	// ErrNotFound: no such resource (404).  Either the base URL is wrong or
	// the page has been deleted.
	ErrNotFound = errors.New("not found (404): check the base URL, the page may have been deleted")
)

// errTransient marks server-side (5xx) and transport-level failures, the only
// ones worth retrying.  Auth/permission/not-found errors never are.
var errTransient = errors.New("transient failure")

func retryable(err error) bool {
	return errors.Is(err, errTransient)
}
