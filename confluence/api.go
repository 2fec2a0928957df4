package confluence

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout is the per-request deadline applied when the caller doesn't
// pick one.  Matches the legacy scripts' 15-second default.
const DefaultTimeout = 15 * time.Second

func NewAPI(baseURL string, email string, token string) (*API, error) {
	if baseURL == "" {
		return &API{}, fmt.Errorf("confluence: base URL is empty, set BaseUrl in confluence.config or BASE_URL")
	}
	if email == "" {
		return &API{}, fmt.Errorf("confluence: email is empty, set CONF_EMAIL")
	}
	if token == "" {
		return &API{}, fmt.Errorf("confluence: auth token is empty, set CONF_TOKEN")
	}

	u, err := url.ParseRequestURI(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse base URL '%s': %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("confluence: base URL '%s' must be http(s)", baseURL)
	}

	a := &API{
		BaseURI: u,
		email:   email,
		token:   token,
		Timeout: DefaultTimeout,
		Logger:  zap.NewNop().Sugar(),
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// The base URI of the Confluence site, e.g. https://ORG.atlassian.net
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Deadline applied to each request.
	Timeout time.Duration

	// Logs request URLs at debug level.  Never logs headers, so credentials
	// stay out of any log sink.
	Logger *zap.SugaredLogger

	// Auth info, HTTP Basic as email:token.
	email, token string
}
