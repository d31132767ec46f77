// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/profile-engine/internal/httputil"
)

// PassthroughClient handles custom endpoint names that have no
// source-specific extraction. It records the query URL and a response
// snapshot so the fetch is visible in the Profile's diagnostics, but
// extracts no structured items. Known gap: custom sources need their
// own extraction variant to contribute facts.
type PassthroughClient struct {
	SourceName string
	BaseURL    string
	Client     *http.Client
	UserAgent  string
}

// Name returns the configured source identifier.
func (c *PassthroughClient) Name() string { return c.SourceName }

// Fetch issues the query and returns URL and snapshot only.
func (c *PassthroughClient) Fetch(ctx context.Context, name, specialization string) (Record, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", c.BaseURL, buildTerm(name, specialization))

	body, err := httputil.Get(ctx, c.Client, searchURL, c.UserAgent)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: err}
	}

	return Record{
		Source: c.Name(),
		URL:    searchURL,
		Raw:    snapshot(body),
	}, nil
}
