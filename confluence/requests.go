package confluence

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	maxAttempts = 3
	backoffUnit = 500 * time.Millisecond
)

// request performs one authenticated GET against the given endpoint,
// retrying transient (5xx/network) failures with linear backoff.  Errors
// from the taxonomy in errors.go are surfaced on the first occurrence.
func (api *API) request(ctx context.Context, url *url.URL) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, err := api.requestOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("confluence: request cancelled: %w", context.Cause(ctx))
		}

		api.Logger.Debugw("retrying after transient failure",
			"url", url.String(), "attempt", attempt, "error", err)

		select {
		case <-time.After(time.Duration(attempt) * backoffUnit):
		case <-ctx.Done():
			return nil, fmt.Errorf("confluence: request cancelled: %w", context.Cause(ctx))
		}
	}

	return nil, fmt.Errorf("confluence: giving up after %d attempts: %w", maxAttempts, lastErr)
}

func (api *API) requestOnce(ctx context.Context, url *url.URL) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, api.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")
	req.SetBasicAuth(api.email, api.token)

	api.Logger.Debugw("GET", "url", url.String())

	response, err := api.Client.Do(req)
	if err != nil {
		// Connection failures and per-request timeouts are transient, unless
		// the caller's own context is what fired.
		if ctx.Err() != nil && context.Cause(ctx) != context.DeadlineExceeded {
			return nil, fmt.Errorf("confluence: request cancelled: %w", err)
		}
		return nil, fmt.Errorf("confluence: couldn't perform http request: %w: %w", errTransient, err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't read http response body: %w: %w", errTransient, err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("confluence: couldn't close response body: %w", err)
	}

	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		return body, nil
	case response.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("confluence: GET %s: %w", url.String(), ErrUnauthorized)
	case response.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("confluence: GET %s: %w", url.String(), ErrForbidden)
	case response.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("confluence: GET %s: %w", url.String(), ErrNotFound)
	case response.StatusCode >= 500:
		return nil, fmt.Errorf("confluence: server error: %s: %w", response.Status, errTransient)
	}

	return nil, fmt.Errorf("confluence: unexpected HTTP response status: %s: %s", response.Status, url.String())
}
