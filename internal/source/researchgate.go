// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/profile-engine/internal/httputil"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// ResearchGateClient searches the ResearchGate institutional network.
// Unlike the other variants it needs two requests: the search page
// locates the researcher's profile link, then the profile page yields
// affiliations, interests, and publications (R2.2).
type ResearchGateClient struct {
	BaseURL   string
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (c *ResearchGateClient) Name() string { return "researchgate" }

// Fetch locates the researcher's profile and extracts basic info,
// affiliations, research interests, and up to 10 publications.
func (c *ResearchGateClient) Fetch(ctx context.Context, name, specialization string) (Record, error) {
	searchURL := fmt.Sprintf("%s/search/researcher?q=%s", c.BaseURL, strings.ReplaceAll(name, " ", "+"))

	body, err := httputil.Get(ctx, c.Client, searchURL, c.UserAgent)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: err}
	}

	doc, err := parseHTML(body)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: fmt.Errorf("parsing search page: %w", err)}
	}

	profileHref := findProfileLink(doc, name)
	if profileHref == "" {
		return Record{}, &Failure{Source: c.Name(), Err: fmt.Errorf("researcher profile not found")}
	}

	profileURL := resolveURL(c.BaseURL, profileHref)
	profileBody, err := httputil.Get(ctx, c.Client, profileURL, c.UserAgent)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: fmt.Errorf("fetching profile: %w", err)}
	}

	profileDoc, err := parseHTML(profileBody)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: fmt.Errorf("parsing profile page: %w", err)}
	}

	rec := Record{
		Source:    c.Name(),
		URL:       profileURL,
		BasicInfo: map[string]string{},
		Raw:       snapshot(profileBody),
	}

	if h1 := findTag(profileDoc, "h1"); h1 != nil {
		rec.BasicInfo["full_name"] = nodeText(h1)
	}
	for _, n := range findAllByClass(profileDoc, "", "institution-name") {
		rec.Affiliations = append(rec.Affiliations, nodeText(n))
	}
	for _, n := range findAllByClass(profileDoc, "", "research-interest-item") {
		rec.ResearchInterests = append(rec.ResearchInterests, nodeText(n))
	}
	for _, n := range findAllByClass(profileDoc, "", "research-item-title") {
		if len(rec.Publications) >= maxItems {
			break
		}
		link := findTag(n, "a")
		if link == nil {
			continue
		}
		rec.Publications = append(rec.Publications, types.Publication{
			Title: nodeText(link),
			URL:   resolveURL(c.BaseURL, attr(link, "href")),
		})
	}

	return rec, nil
}

// findProfileLink scans search result cards for a researcher link whose
// text contains the queried name (case-insensitive) and returns its href.
func findProfileLink(doc *html.Node, name string) string {
	lower := strings.ToLower(name)
	for _, card := range findAllByClass(doc, "", "nova-legacy-c-card__body") {
		for _, link := range findAllByClass(card, "a", "nova-legacy-e-link") {
			if strings.Contains(strings.ToLower(nodeText(link)), lower) {
				return attr(link, "href")
			}
		}
	}
	return ""
}
