// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine aggregates researcher information from the dataset,
// the web sources, and the generative fallback into canonical Profiles,
// and answers questions against them.
// Implements: prd001-aggregation (R1-R6);
//
//	docs/ARCHITECTURE § Aggregation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/profile-engine/internal/dataset"
	"github.com/pdiddy/profile-engine/internal/genai"
	"github.com/pdiddy/profile-engine/internal/source"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// ErrInvalidInput marks a missing or empty researcher name.
var ErrInvalidInput = errors.New("researcher name must be a non-empty string")

// ErrNotFound marks a request for a researcher that was never searched.
var ErrNotFound = errors.New("no data available for this researcher, search first")

// defaultMaxWorkers bounds the concurrent source fetches per search.
const defaultMaxWorkers = 4

// Engine holds the configured sources, the optional dataset and
// generative backend, and the per-name Profile table. One engine
// instance replaces the original's ambient session state; callers pass
// it around explicitly.
type Engine struct {
	cfg      types.SourceConfig
	registry *source.Registry
	backend  genai.Backend
	fallback *genai.Fallback
	w        io.Writer

	mu       sync.Mutex
	dataset  *dataset.Dataset
	profiles map[string]*types.Profile
}

// New builds an engine from the source configuration. backend may be
// nil, which disables the generative fallback, enrichment, and question
// answering. Warnings and progress lines go to w.
func New(cfg types.SourceConfig, backend genai.Backend, w io.Writer) *Engine {
	if cfg.Endpoints == nil {
		cfg.Endpoints = types.DefaultEndpoints()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultMaxWorkers
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = source.DefaultMaxRetries
	}
	if w == nil {
		w = io.Discard
	}

	e := &Engine{
		cfg:      cfg,
		registry: source.NewRegistry(cfg),
		backend:  backend,
		w:        w,
		profiles: make(map[string]*types.Profile),
	}
	if backend != nil {
		e.fallback = &genai.Fallback{Backend: backend}
	}
	return e
}

// LoadDataset loads the researcher CSV and returns the row count.
func (e *Engine) LoadDataset(path string) (int, error) {
	d, err := dataset.Load(path)
	if err != nil {
		return 0, err
	}
	e.mu.Lock()
	e.dataset = d
	e.mu.Unlock()
	return d.Len(), nil
}

// AddSource registers a custom endpoint. Unrecognized names are fetched
// but produce no extraction.
func (e *Engine) AddSource(name, baseURL string) {
	e.registry.Add(name, baseURL, e.cfg.HTTPConfig)
}

// Sources returns the configured source names.
func (e *Engine) Sources() []string {
	return e.registry.Names()
}

// Profile returns the stored Profile for an exact name, if present.
func (e *Engine) Profile(name string) (*types.Profile, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.profiles[name]
	return p, ok
}

// Put stores an externally loaded Profile under its name. Used by
// callers that persist profiles between runs.
func (e *Engine) Put(p *types.Profile) {
	if p == nil || p.Name == "" {
		return
	}
	e.mu.Lock()
	e.profiles[p.Name] = p
	e.mu.Unlock()
}

// Names returns the names of all stored profiles in map order.
func (e *Engine) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.profiles))
	for name := range e.profiles {
		names = append(names, name)
	}
	return names
}

// Search aggregates all configured information about a researcher into
// one Profile: dataset lookup, concurrent source fan-out, merge, dedup,
// then the fallback or enrichment pass. Individual source failures
// never abort the search; the Profile is stored under the exact input
// name and returned.
func (e *Engine) Search(ctx context.Context, name, specialization string) (*types.Profile, error) {
	return e.search(ctx, name, specialization, true)
}

// SearchWithoutDataset aggregates from web sources and the fallback
// only, bypassing any loaded dataset.
func (e *Engine) SearchWithoutDataset(ctx context.Context, name, specialization string) (*types.Profile, error) {
	return e.search(ctx, name, specialization, false)
}

func (e *Engine) search(ctx context.Context, name, specialization string, useDataset bool) (*types.Profile, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}

	profile := types.NewProfile(name, specialization)

	datasetHit := false
	if useDataset {
		datasetHit = e.applyDataset(profile)
	}

	webHit := e.fanOut(ctx, profile, name, specialization)

	dedupeProfile(profile)

	switch {
	case !datasetHit && !webHit && e.fallback != nil:
		fmt.Fprintf(e.w, "no data from dataset or web sources for %s, generating\n", name)
		e.applyGenerate(ctx, profile, name, specialization)
	case (datasetHit || webHit) && e.fallback != nil:
		e.applyEnrich(ctx, profile)
	}

	e.mu.Lock()
	e.profiles[name] = profile
	e.mu.Unlock()

	return profile, nil
}

// applyDataset copies the mapped dataset row into the profile and
// reports whether a row matched. The profile name stays the caller's
// input even when the matched row spells it differently.
func (e *Engine) applyDataset(p *types.Profile) bool {
	e.mu.Lock()
	d := e.dataset
	e.mu.Unlock()
	if d == nil {
		return false
	}

	entry, ok := d.Lookup(p.Name)
	if !ok {
		return false
	}

	if entry.Specialization != "" {
		p.Specialization = entry.Specialization
	}
	p.Affiliations = append(p.Affiliations, entry.Affiliations...)
	p.ResearchInterests = append(p.ResearchInterests, entry.ResearchInterests...)
	for _, title := range entry.Publications {
		p.Publications = append(p.Publications, types.Publication{Title: title})
	}
	for k, v := range entry.BasicInfo {
		p.BasicInfo[k] = v
	}

	fmt.Fprintf(e.w, "found dataset row for %s\n", p.Name)
	return true
}

// fanOut dispatches every configured source concurrently, bounded by
// MaxWorkers, and merges results in completion order. It reports
// whether any source contributed data. Merge order across sources is
// nondeterministic, so colliding basic-info or citation keys have a
// nondeterministic winner; within a single source the contribution is
// deterministic.
func (e *Engine) fanOut(ctx context.Context, p *types.Profile, name, specialization string) bool {
	clients := e.registry.Clients()
	if len(clients) == 0 {
		return false
	}

	results := make(chan fetchOutcome, len(clients))
	sem := make(chan struct{}, e.cfg.MaxWorkers)
	var wg sync.WaitGroup

	for _, c := range clients {
		wg.Add(1)
		go func(c source.Client) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			rec, err := source.FetchWithRetry(ctx, c, name, specialization, e.cfg.MaxRetries)
			results <- fetchOutcome{rec: rec, err: err}
		}(c)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	webHit := false
	for outcome := range results {
		if outcome.err != nil {
			e.warnFailure(outcome.err)
			continue
		}
		if mergeRecord(p, outcome.rec) {
			webHit = true
		}
	}
	return webHit
}

type fetchOutcome struct {
	rec source.Record
	err error
}

// warnFailure reports a source failure without aborting the search.
func (e *Engine) warnFailure(err error) {
	var f *source.Failure
	if errors.As(err, &f) && f.RateLimited() {
		fmt.Fprintf(e.w, "warning: source %s rate limited, try again later\n", f.Source)
		return
	}
	fmt.Fprintf(e.w, "warning: %v\n", err)
}

// mergeRecord folds one source record into the profile and reports
// whether the source contributed searchable data.
func mergeRecord(p *types.Profile, rec source.Record) bool {
	p.SourceURLs[rec.Source] = rec.URL
	p.RawData[rec.Source] = rec.Raw

	p.Publications = append(p.Publications, rec.Publications...)
	p.ClinicalTrials = append(p.ClinicalTrials, rec.ClinicalTrials...)
	p.Affiliations = append(p.Affiliations, rec.Affiliations...)
	p.ResearchInterests = append(p.ResearchInterests, rec.ResearchInterests...)

	for k, v := range rec.BasicInfo {
		p.BasicInfo[k] = v
	}
	for k, v := range rec.Citations {
		p.Citations[k] = v
	}

	return rec.Contributed()
}

// applyGenerate fills an empty profile from the generative fallback.
// Generated values land only in fields that are still empty. Backend
// failures degrade to an explanatory summary instead of failing the
// search.
func (e *Engine) applyGenerate(ctx context.Context, p *types.Profile, name, specialization string) {
	gen, err := e.fallback.Generate(ctx, name, specialization)
	if err != nil {
		p.Summary = placeholderSummary(err)
		fmt.Fprintf(e.w, "warning: generative fallback failed: %v\n", err)
		return
	}

	if p.Summary == "" {
		p.Summary = gen.Summary
	}
	if p.KeyContributions == "" {
		p.KeyContributions = gen.KeyContributions
	}
	if len(p.Education) == 0 {
		p.Education = gen.Education
	}
	if len(p.Affiliations) == 0 {
		p.Affiliations = gen.Affiliations
	}
	if len(p.ResearchInterests) == 0 {
		p.ResearchInterests = gen.ResearchInterests
	}
	if len(p.Publications) == 0 {
		p.Publications = gen.Publications
	}
	if len(p.ClinicalTrials) == 0 {
		p.ClinicalTrials = gen.ClinicalTrials
	}
	if len(p.BasicInfo) == 0 && len(gen.BasicInfo) > 0 {
		p.BasicInfo = gen.BasicInfo
	}

	p.AIGenerated = true
}

// applyEnrich merges derived fields from the enrichment pass into a
// profile that already has source-backed data. Enrichment failures are
// logged and the profile keeps its collected data.
func (e *Engine) applyEnrich(ctx context.Context, p *types.Profile) {
	enr, err := e.fallback.Enrich(ctx, p)
	if err != nil {
		fmt.Fprintf(e.w, "warning: enrichment failed: %v\n", err)
		return
	}

	p.Summary = enr.Summary
	p.KeyContributions = enr.KeyContributions
	p.AdditionalInsights = enr.AdditionalInsights
	p.ResearchNetwork = enr.ResearchNetwork

	// Replace education only when the pass found more than we had.
	if len(enr.Education) > len(p.Education) {
		p.Education = enr.Education
	}

	// Correct item URLs matched by title substring.
	for _, tu := range enr.PublicationURLs {
		if tu.Title == "" || tu.URL == "" {
			continue
		}
		for i := range p.Publications {
			if p.Publications[i].Title != "" && containsTitle(p.Publications[i].Title, tu.Title) {
				p.Publications[i].URL = tu.URL
				break
			}
		}
	}
	for _, tu := range enr.ClinicalTrialURLs {
		if tu.Title == "" || tu.URL == "" {
			continue
		}
		for i := range p.ClinicalTrials {
			if p.ClinicalTrials[i].Title != "" && containsTitle(p.ClinicalTrials[i].Title, tu.Title) {
				p.ClinicalTrials[i].URL = tu.URL
				break
			}
		}
	}

	p.AIEnhanced = true
}

// placeholderSummary explains a fallback failure in the profile itself,
// so the search still returns a record.
func placeholderSummary(err error) string {
	switch {
	case errors.Is(err, genai.ErrAuthentication):
		return "Could not retrieve information: generative API authentication failed. Please check your API key."
	case errors.Is(err, genai.ErrRateLimited):
		return "Could not retrieve information: generative API rate limit exceeded. Please try again later."
	default:
		return "Error retrieving information. Please try again later."
	}
}
