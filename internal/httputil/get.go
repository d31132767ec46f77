// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across source clients.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrRateLimited marks an HTTP 429 response. Callers distinguish it
// from other failures so rate-limited sources can report "try later"
// instead of a generic error. Per prd002-sources R2.4.
var ErrRateLimited = errors.New("rate limit exceeded, try again later")

// Get issues a single GET request with the given User-Agent and returns
// the body on HTTP 200. Non-200 statuses are errors: 429 wraps
// ErrRateLimited, everything else reports the status code. The body is
// fully read and closed before returning.
func Get(ctx context.Context, client *http.Client, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
