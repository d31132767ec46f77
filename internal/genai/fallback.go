// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/profile-engine/pkg/types"
)

// generateSystem instructs the model for whole-profile synthesis.
const generateSystem = "You are a research assistant specializing in medical research. Provide the most accurate information possible about medical researchers in JSON format. Focus on accurate education history and direct, valid URLs to publications and clinical trials."

// enrichSystem instructs the model for the enrichment pass.
const enrichSystem = "You are a helpful assistant that specializes in analyzing medical researcher profiles and extracting key insights. You also verify and correct publication and clinical trial URLs, and ensure complete educational information. Respond strictly in valid JSON with the fields requested."

// generatePromptTmpl requests a fixed-schema profile for a researcher
// with no source or dataset data.
var generatePromptTmpl = template.Must(template.New("generate").Parse(`I need comprehensive information about medical researcher {{.Name}}{{if .Specialization}} who specializes in {{.Specialization}}{{end}}.
Please provide:
1. A summary of their background and expertise
2. Their key research contributions
3. Their affiliations (with current position and institution)
4. Research interests
5. Notable publications (with direct links to PubMed, Google Scholar, or journal websites)
6. Educational background and degrees (with institutions, years, and degree types)
7. Any clinical trials they're involved in (with direct links to ClinicalTrials.gov or other sources)

For publications and clinical trials, include the direct URLs to the source pages.

Format the response as a JSON object with these keys:
- basic_info (object with fields like email if public, position, etc.)
- summary (string)
- key_contributions (string)
- education (array of strings, each with complete information)
- affiliations (array of strings)
- research_interests (array of strings)
- publications (array of objects with title, authors, journal, year, url)
- clinical_trials (array of objects with title, status, condition, url)

Respond with the JSON object only.`))

// enrichPromptTmpl supplies the collected profile and requests derived
// insight fields plus URL and education corrections.
var enrichPromptTmpl = template.Must(template.New("enrich").Parse(`I have collected the following information about medical researcher {{.Name}}:

Basic Info: {{.BasicInfo}}

Affiliations: {{.Affiliations}}

Research Interests: {{.Interests}}

Publications: {{.Publications}}

Clinical Trials: {{.Trials}}

Education: {{.Education}}

Based on this information, please:
1. Summarize this researcher's background and main areas of expertise in 2-3 sentences
2. Identify their key research contributions
3. Extract any additional insights about their career, impact, or specialization
4. Note any collaborations or research networks they might be part of
5. Fill in any missing educational details (degrees, institutions, years) that can be inferred
6. Validate and fix any publication URLs, ensuring they point to valid sources
7. Validate and fix any clinical trial URLs, ensuring they point to ClinicalTrials.gov or other valid sources

Format your response as a JSON object with the following keys:
- summary
- key_contributions
- additional_insights
- research_network
- education (if you can add details beyond what's already provided)
- publication_urls (array of objects with title and corrected url)
- clinical_trial_urls (array of objects with title and corrected url)`))

// Generated is the fixed-schema result of a whole-profile synthesis.
type Generated struct {
	BasicInfo         map[string]string     `json:"-"`
	Summary           string                `json:"summary"`
	KeyContributions  string                `json:"key_contributions"`
	Education         []string              `json:"education"`
	Affiliations      []string              `json:"affiliations"`
	ResearchInterests []string              `json:"research_interests"`
	Publications      []types.Publication   `json:"publications"`
	ClinicalTrials    []types.ClinicalTrial `json:"clinical_trials"`

	// RawBasicInfo tolerates non-string values from the model before
	// normalization into BasicInfo.
	RawBasicInfo map[string]any `json:"basic_info"`
}

// TitleURL is a corrected link for an item matched by title.
type TitleURL struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Enrichment is the fixed-schema result of the enrichment pass. It is
// returned to the caller; merging into the Profile is the engine's job.
type Enrichment struct {
	Summary            string     `json:"summary"`
	KeyContributions   string     `json:"key_contributions"`
	AdditionalInsights string     `json:"additional_insights"`
	ResearchNetwork    string     `json:"research_network"`
	Education          []string   `json:"education"`
	PublicationURLs    []TitleURL `json:"publication_urls"`
	ClinicalTrialURLs  []TitleURL `json:"clinical_trial_urls"`
}

// Fallback runs profile synthesis and enrichment against a Backend.
type Fallback struct {
	Backend Backend
}

// Generate synthesizes a profile-shaped record for a researcher no
// source could describe. Publications and trials missing a usable
// absolute URL get a deterministic registry search URL built from
// their title.
func (f *Fallback) Generate(ctx context.Context, name, specialization string) (*Generated, error) {
	var buf bytes.Buffer
	err := generatePromptTmpl.Execute(&buf, struct{ Name, Specialization string }{name, specialization})
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	text, err := f.Backend.Complete(ctx, generateSystem, buf.String(), 0.3)
	if err != nil {
		return nil, err
	}

	var gen Generated
	if err := parseJSON(text, &gen); err != nil {
		return nil, err
	}

	gen.BasicInfo = stringifyMap(gen.RawBasicInfo)
	gen.RawBasicInfo = nil

	for i := range gen.Publications {
		if !isAbsoluteURL(gen.Publications[i].URL) && gen.Publications[i].Title != "" {
			gen.Publications[i].URL = publicationSearchURL(gen.Publications[i].Title)
		}
	}
	for i := range gen.ClinicalTrials {
		if !isAbsoluteURL(gen.ClinicalTrials[i].URL) && gen.ClinicalTrials[i].Title != "" {
			gen.ClinicalTrials[i].URL = trialSearchURL(gen.ClinicalTrials[i].Title)
		}
	}

	return &gen, nil
}

// Enrich derives summary and insight fields from an existing profile's
// data. The profile itself is never mutated here.
func (f *Fallback) Enrich(ctx context.Context, p *types.Profile) (*Enrichment, error) {
	pubs := p.Publications
	if len(pubs) > 5 {
		pubs = pubs[:5]
	}
	trials := p.ClinicalTrials
	if len(trials) > 3 {
		trials = trials[:3]
	}

	data := struct {
		Name, BasicInfo, Affiliations, Interests, Publications, Trials, Education string
	}{
		Name:         p.Name,
		BasicInfo:    jsonOrNone(p.BasicInfo, len(p.BasicInfo) > 0),
		Affiliations: joinOrNone(p.Affiliations),
		Interests:    joinOrNone(p.ResearchInterests),
		Publications: jsonOrNone(pubs, len(pubs) > 0),
		Trials:       jsonOrNone(trials, len(trials) > 0),
		Education:    jsonOrNone(p.Education, true),
	}

	var buf bytes.Buffer
	if err := enrichPromptTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	text, err := f.Backend.Complete(ctx, enrichSystem, buf.String(), 0.3)
	if err != nil {
		return nil, err
	}

	var enr Enrichment
	if err := parseJSON(text, &enr); err != nil {
		return nil, err
	}
	return &enr, nil
}

// parseJSON strips an optional fenced-code wrapper and decodes the
// remaining content. Parse failures surface as ErrMalformedResponse.
func parseJSON(text string, v any) error {
	content := stripFence(text)
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// stripFence removes a surrounding markdown code fence (``` or
// ```json) when present.
func stripFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 && strings.EqualFold(strings.TrimSpace(trimmed[:nl]), "json") {
		trimmed = trimmed[nl+1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, "json")
	}

	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// isAbsoluteURL reports whether a URL starts with an http scheme.
func isAbsoluteURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// publicationSearchURL builds a PubMed search URL from a title.
func publicationSearchURL(title string) string {
	return "https://pubmed.ncbi.nlm.nih.gov/?term=" + strings.ReplaceAll(title, " ", "+")
}

// trialSearchURL builds a ClinicalTrials.gov search URL from a title.
func trialSearchURL(title string) string {
	return "https://clinicaltrials.gov/search?term=" + strings.ReplaceAll(title, " ", "+")
}

func stringifyMap(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func jsonOrNone(v any, nonEmpty bool) string {
	if !nonEmpty {
		return "None found"
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "None found"
	}
	return string(data)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None found"
	}
	return strings.Join(items, ", ")
}
