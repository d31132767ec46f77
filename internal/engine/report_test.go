// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/profile-engine/pkg/types"
)

func TestFormatReportFull(t *testing.T) {
	p := types.NewProfile("Jane Doe", "Genomics")
	p.BasicInfo = map[string]string{"email": "jane@example.edu", "full_name": "Jane Doe"}
	p.Summary = "A genomics researcher."
	p.Affiliations = []string{"MIT", "Broad Institute"}
	p.ResearchInterests = []string{"Gene Editing"}
	p.KeyContributions = "Base editing."
	p.Publications = []types.Publication{
		{Title: "Base editing advances", Authors: "Doe J", Journal: "Nature"},
	}
	p.ClinicalTrials = []types.ClinicalTrial{
		{Title: "Trial A", Status: "Completed", Condition: "Anemia"},
	}
	p.AdditionalInsights = "Highly cited."
	p.ResearchNetwork = "Broad collaborators."
	p.SourceURLs = map[string]string{
		"pubmed":         "https://pubmed.example/?term=Jane+Doe",
		"google_scholar": "https://scholar.example/scholar?q=Jane+Doe",
	}

	got := FormatReport(p)

	for _, want := range []string{
		"# Research Profile: Jane Doe",
		"## Basic Information",
		"- Email: jane@example.edu",
		"- Full Name: Jane Doe",
		"## Summary\nA genomics researcher.",
		"- MIT",
		"- Broad Institute",
		"- Gene Editing",
		"## Key Contributions\nBase editing.",
		"1. Base editing advances",
		"   Authors: Doe J",
		"   Journal: Nature",
		"1. Trial A",
		"   Status: Completed",
		"   Condition: Anemia",
		"## Additional Insights\nHighly cited.",
		"## Research Network\nBroad collaborators.",
		"- Google Scholar: https://scholar.example/scholar?q=Jane+Doe",
		"- Pubmed: https://pubmed.example/?term=Jane+Doe",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestFormatReportEmptyProfile(t *testing.T) {
	got := FormatReport(types.NewProfile("Jane Doe", ""))

	for _, want := range []string{
		"- No basic information available",
		"- No affiliations found",
		"- No research interests found",
		"- No publications found",
		"- No clinical trials found",
		"- Data extracted from local files only",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("empty report missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "## Summary") {
		t.Error("empty profile should have no summary section")
	}
}

func TestFormatReportCapsPublications(t *testing.T) {
	p := types.NewProfile("Jane Doe", "")
	for i := 0; i < 15; i++ {
		p.Publications = append(p.Publications, types.Publication{Title: fmt.Sprintf("Paper %d", i)})
	}

	got := FormatReport(p)
	if !strings.Contains(got, "10. Paper 9") {
		t.Error("report should list the tenth publication")
	}
	if strings.Contains(got, "11. ") {
		t.Error("report should cap publications at ten")
	}
}

func TestReport(t *testing.T) {
	e := New(testConfig(map[string]string{}), nil, nil)

	if _, err := e.Report("Jane Doe"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	e.Put(types.NewProfile("Jane Doe", ""))
	got, err := e.Report("Jane Doe")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if !strings.Contains(got, "# Research Profile: Jane Doe") {
		t.Errorf("report = %q", got)
	}
}

func TestLabelize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"email", "Email"},
		{"full_name", "Full Name"},
		{"clinical_trials", "Clinical Trials"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := labelize(tt.in); got != tt.want {
			t.Errorf("labelize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
