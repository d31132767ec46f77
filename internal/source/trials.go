// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/profile-engine/internal/httputil"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// TrialsClient searches the ClinicalTrials.gov registry for trials
// involving the researcher (R2.4). The query filters to interventional
// trials that are no longer recruiting, matching the registry's
// investigator search behavior.
type TrialsClient struct {
	BaseURL   string
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (c *TrialsClient) Name() string { return "clinical_trials" }

// Fetch queries the registry result page and extracts up to 10 leading
// trials with status and condition.
func (c *TrialsClient) Fetch(ctx context.Context, name, specialization string) (Record, error) {
	searchURL := fmt.Sprintf("%s/search?term=%s&recrs=e&type=Intr", c.BaseURL, strings.ReplaceAll(name, " ", "+"))

	body, err := httputil.Get(ctx, c.Client, searchURL, c.UserAgent)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: err}
	}

	doc, err := parseHTML(body)
	if err != nil {
		return Record{}, &Failure{Source: c.Name(), Err: fmt.Errorf("parsing result page: %w", err)}
	}

	var trials []types.ClinicalTrial
	for _, result := range findAllByClass(doc, "", "ct-search-result") {
		if len(trials) >= maxItems {
			break
		}
		title := findByClass(result, "", "ct-title")
		if title == nil {
			continue
		}

		trial := types.ClinicalTrial{
			Title:     nodeText(title),
			Status:    nodeText(findByClass(result, "", "ct-status")),
			Condition: nodeText(findByClass(result, "", "ct-condition")),
		}
		if link := findTag(title, "a"); link != nil {
			trial.URL = resolveURL(c.BaseURL, attr(link, "href"))
		}
		trials = append(trials, trial)
	}

	return Record{
		Source:         c.Name(),
		URL:            searchURL,
		ClinicalTrials: trials,
		Raw:            snapshot(body),
	}, nil
}
