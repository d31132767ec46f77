// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/pdiddy/profile-engine/internal/httputil"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// citedByPattern extracts the citation count from a "Cited by N" label.
var citedByPattern = regexp.MustCompile(`Cited by (\d+)`)

// ScholarClient searches the Google Scholar citation index (R2.3). It
// extracts publications with author lines and snippets, plus a total
// citation count when the page shows one.
type ScholarClient struct {
	BaseURL   string
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (c *ScholarClient) Name() string { return "google_scholar" }

// Fetch queries the Scholar result page and extracts up to 10 leading
// publications and the citation total.
func (c *ScholarClient) Fetch(ctx context.Context, name, specialization string) (Record, error) {
	searchURL := fmt.Sprintf("%s/scholar?q=%s", c.BaseURL, strings.ReplaceAll(name, " ", "+"))

	body, err := httputil.Get(ctx, c.Client, searchURL, c.UserAgent)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: err}
	}

	doc, err := parseHTML(body)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: fmt.Errorf("parsing result page: %w", err)}
	}

	var pubs []types.Publication
	for _, result := range findAllByClass(doc, "", "gs_ri") {
		if len(pubs) >= maxItems {
			break
		}
		title := findByClass(result, "", "gs_rt")
		if title == nil {
			continue
		}

		pub := types.Publication{
			Title:   nodeText(title),
			Authors: nodeText(findByClass(result, "", "gs_a")),
			Snippet: nodeText(findByClass(result, "", "gs_rs")),
		}
		if link := findTag(title, "a"); link != nil {
			pub.URL = attr(link, "href")
		}
		pubs = append(pubs, pub)
	}

	citations := map[string]string{}
	if n := findByClass(doc, "", "gs_rnd"); n != nil {
		if m := citedByPattern.FindStringSubmatch(nodeText(n)); m != nil {
			citations["total"] = m[1]
		}
	}

	return Record{
		Source:       c.Name(),
		URL:          searchURL,
		Publications: pubs,
		Citations:    citations,
		Raw:          snapshot(body),
	}, nil
}
