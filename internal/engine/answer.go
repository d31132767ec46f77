// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/profile-engine/pkg/types"
)

// ErrNoBackend marks a question asked without a configured generative
// backend.
var ErrNoBackend = errors.New("generative backend not configured: an API key is required to ask questions")

// askSystem instructs the model for question answering.
const askSystem = "You are a knowledgeable assistant specializing in medical research. Provide detailed information about medical researchers based on the available data. If asked a question that requires additional information, use your knowledge to provide the best answer possible, but indicate when you're going beyond the directly provided context."

// maxContextChars caps the profile context sent with a question so it
// does not grow unbounded with profile size.
const maxContextChars = 6000

// Ask answers a free-text question, grounding the model in the stored
// profile for researcherName when one exists. An unknown name triggers
// one best-effort generate call; with no name, the context lists known
// researchers only. Backend failures propagate to the caller with the
// typed taxonomy intact.
func (e *Engine) Ask(ctx context.Context, question, researcherName string) (string, error) {
	if e.backend == nil {
		return "", ErrNoBackend
	}

	var contextText string
	switch {
	case researcherName != "":
		if p, ok := e.Profile(researcherName); ok {
			contextText = profileContext(p)
		} else {
			contextText = e.generateContext(ctx, researcherName)
		}
	default:
		if names := e.Names(); len(names) > 0 {
			sort.Strings(names)
			contextText = "I have information on the following researchers: " + strings.Join(names, ", ")
		}
	}

	prompt := fmt.Sprintf(`%s

Question: %s

Please provide a detailed answer based on the information available.
If you don't have enough information in the provided context, feel free to use your knowledge to answer the question.
When using information not provided in the context, please indicate this in your answer.`, contextText, question)

	return e.backend.Complete(ctx, askSystem, prompt, 0.5)
}

// profileContext builds the bounded textual context from a stored
// profile: basic info, affiliations, interests, first 5 publications,
// first 3 trials, summary, key contributions — each only if non-empty.
func profileContext(p *types.Profile) string {
	var parts []string

	if len(p.BasicInfo) > 0 {
		parts = append(parts, "Basic Info: "+indentJSON(p.BasicInfo))
	}
	if len(p.Affiliations) > 0 {
		parts = append(parts, "Affiliations: "+strings.Join(p.Affiliations, ", "))
	}
	if len(p.ResearchInterests) > 0 {
		parts = append(parts, "Research Interests: "+strings.Join(p.ResearchInterests, ", "))
	}
	if len(p.Publications) > 0 {
		pubs := p.Publications
		if len(pubs) > 5 {
			pubs = pubs[:5]
		}
		parts = append(parts, "Publications: "+indentJSON(pubs))
	}
	if len(p.ClinicalTrials) > 0 {
		trials := p.ClinicalTrials
		if len(trials) > 3 {
			trials = trials[:3]
		}
		parts = append(parts, "Clinical Trials: "+indentJSON(trials))
	}
	if p.Summary != "" {
		parts = append(parts, "Summary: "+p.Summary)
	}
	if p.KeyContributions != "" {
		parts = append(parts, "Key Contributions: "+p.KeyContributions)
	}

	if len(parts) == 0 {
		return fmt.Sprintf("I have limited information about %s.", p.Name)
	}

	text := fmt.Sprintf("Information about %s:\n\n%s", p.Name, strings.Join(parts, "\n\n"))
	if len(text) > maxContextChars {
		text = text[:maxContextChars]
	}
	return text
}

// generateContext runs one best-effort generate call for a researcher
// that was never searched, stores the result, and builds a minimal
// context from it. On failure the context says so and the question
// proceeds without profile data.
func (e *Engine) generateContext(ctx context.Context, name string) string {
	fallbackText := fmt.Sprintf("I don't have detailed information about %s in my database.", name)
	if e.fallback == nil {
		return fallbackText
	}

	gen, err := e.fallback.Generate(ctx, name, "")
	if err != nil {
		fmt.Fprintf(e.w, "warning: could not generate context for %s: %v\n", name, err)
		return fallbackText
	}

	p := types.NewProfile(name, "")
	p.Summary = gen.Summary
	p.KeyContributions = gen.KeyContributions
	p.Education = gen.Education
	p.Affiliations = gen.Affiliations
	p.ResearchInterests = gen.ResearchInterests
	p.Publications = gen.Publications
	p.ClinicalTrials = gen.ClinicalTrials
	if len(gen.BasicInfo) > 0 {
		p.BasicInfo = gen.BasicInfo
	}
	p.AIGenerated = true
	e.Put(p)

	var parts []string
	if gen.Summary != "" {
		parts = append(parts, "Summary: "+gen.Summary)
	}
	if gen.KeyContributions != "" {
		parts = append(parts, "Key Contributions: "+gen.KeyContributions)
	}
	if len(gen.Affiliations) > 0 {
		parts = append(parts, "Affiliations: "+strings.Join(gen.Affiliations, ", "))
	}
	if len(gen.ResearchInterests) > 0 {
		parts = append(parts, "Research Interests: "+strings.Join(gen.ResearchInterests, ", "))
	}
	if len(parts) == 0 {
		return fallbackText
	}

	text := fmt.Sprintf("Information I found about %s:\n\n%s", name, strings.Join(parts, "\n\n"))
	if len(text) > maxContextChars {
		text = text[:maxContextChars]
	}
	return text
}

func indentJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
