// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/profile-engine/internal/httputil"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// PubMedClient searches the PubMed document index for a researcher's
// publications (R2.1). The specialization, when given, is appended to
// the search term.
type PubMedClient struct {
	BaseURL   string
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (c *PubMedClient) Name() string { return "pubmed" }

// Fetch queries the PubMed result page and extracts up to 10 leading
// publications from the docsum listing.
func (c *PubMedClient) Fetch(ctx context.Context, name, specialization string) (Record, error) {
	searchURL := fmt.Sprintf("%s/?term=%s", c.BaseURL, buildTerm(name, specialization))

	body, err := httputil.Get(ctx, c.Client, searchURL, c.UserAgent)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: err}
	}

	doc, err := parseHTML(body)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: fmt.Errorf("parsing result page: %w", err)}
	}

	var pubs []types.Publication
	for _, result := range findAllByClass(doc, "", "docsum-content") {
		if len(pubs) >= maxItems {
			break
		}
		title := findByClass(result, "", "docsum-title")
		if title == nil {
			continue
		}

		pub := types.Publication{
			Title:   nodeText(title),
			Authors: nodeText(findByClass(result, "", "docsum-authors")),
			Journal: nodeText(findByClass(result, "", "docsum-journal")),
		}
		if href := attr(title, "href"); href != "" {
			pub.URL = resolveURL(c.BaseURL, href)
		}
		pubs = append(pubs, pub)
	}

	return Record{
		Source:       c.Name(),
		URL:          searchURL,
		Publications: pubs,
		Raw:          snapshot(body),
	}, nil
}
