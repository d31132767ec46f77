// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/profile-engine/pkg/types"
)

// reportMaxPublications caps how many publications a report lists.
const reportMaxPublications = 10

// Report renders a formatted text report for a stored researcher.
// Returns ErrNotFound when the name was never searched.
func (e *Engine) Report(name string) (string, error) {
	p, ok := e.Profile(name)
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return FormatReport(p), nil
}

// FormatReport renders a Profile as a sectioned text report.
func FormatReport(p *types.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Research Profile: %s\n", p.Name)

	b.WriteString("\n## Basic Information\n")
	if len(p.BasicInfo) > 0 {
		keys := make([]string, 0, len(p.BasicInfo))
		for k := range p.BasicInfo {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", labelize(k), p.BasicInfo[k])
		}
	} else {
		b.WriteString("- No basic information available\n")
	}

	if p.Summary != "" {
		b.WriteString("\n## Summary\n")
		b.WriteString(p.Summary + "\n")
	}

	b.WriteString("\n## Affiliations\n")
	writeBullets(&b, p.Affiliations, "No affiliations found")

	b.WriteString("\n## Research Interests\n")
	writeBullets(&b, p.ResearchInterests, "No research interests found")

	if p.KeyContributions != "" {
		b.WriteString("\n## Key Contributions\n")
		b.WriteString(p.KeyContributions + "\n")
	}

	b.WriteString("\n## Publications\n")
	if len(p.Publications) > 0 {
		pubs := p.Publications
		if len(pubs) > reportMaxPublications {
			pubs = pubs[:reportMaxPublications]
		}
		for i, pub := range pubs {
			title := pub.Title
			if title == "" {
				title = "Untitled"
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, title)
			if pub.Authors != "" {
				fmt.Fprintf(&b, "   Authors: %s\n", pub.Authors)
			}
			if pub.Journal != "" {
				fmt.Fprintf(&b, "   Journal: %s\n", pub.Journal)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("- No publications found\n")
	}

	b.WriteString("\n## Clinical Trials\n")
	if len(p.ClinicalTrials) > 0 {
		for i, trial := range p.ClinicalTrials {
			title := trial.Title
			if title == "" {
				title = "Untitled trial"
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, title)
			if trial.Status != "" {
				fmt.Fprintf(&b, "   Status: %s\n", trial.Status)
			}
			if trial.Condition != "" {
				fmt.Fprintf(&b, "   Condition: %s\n", trial.Condition)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("- No clinical trials found\n")
	}

	if p.AdditionalInsights != "" {
		b.WriteString("\n## Additional Insights\n")
		b.WriteString(p.AdditionalInsights + "\n")
	}

	if p.ResearchNetwork != "" {
		b.WriteString("\n## Research Network\n")
		b.WriteString(p.ResearchNetwork + "\n")
	}

	b.WriteString("\n## Data Sources\n")
	if len(p.SourceURLs) > 0 {
		sources := make([]string, 0, len(p.SourceURLs))
		for s := range p.SourceURLs {
			sources = append(sources, s)
		}
		sort.Strings(sources)
		for _, s := range sources {
			if url := p.SourceURLs[s]; url != "" {
				fmt.Fprintf(&b, "- %s: %s\n", labelize(s), url)
			}
		}
	} else {
		b.WriteString("- Data extracted from local files only\n")
	}

	return b.String()
}

func writeBullets(b *strings.Builder, items []string, empty string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "- %s\n", empty)
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

// labelize turns a snake_case key into a title-cased label.
func labelize(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
