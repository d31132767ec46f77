// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source queries public researcher information sites and
// extracts partial structured records. Each site (PubMed, ResearchGate,
// Google Scholar, ClinicalTrials.gov) implements the Client interface
// per the Strategy pattern; unknown endpoint names fall back to a
// passthrough fetch with no extraction.
// Implements: prd002-sources (R1-R4).
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/profile-engine/internal/httputil"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// maxItems caps how many leading results a client extracts per fetch.
const maxItems = 10

// rawSnapshotLimit caps the diagnostic response snapshot length.
const rawSnapshotLimit = 5000

// Client fetches one source and extracts a partial record.
type Client interface {
	Name() string
	Fetch(ctx context.Context, name, specialization string) (Record, error)
}

// Record is the partial structured result of one source fetch. Only the
// fields the source can extract are populated; the engine merges records
// from all sources into one Profile.
type Record struct {
	Source            string
	URL               string
	Publications      []types.Publication
	ClinicalTrials    []types.ClinicalTrial
	Affiliations      []string
	ResearchInterests []string
	BasicInfo         map[string]string
	Citations         map[string]string

	// Raw is a truncated response snapshot kept for diagnostics.
	Raw string
}

// Contributed reports whether the record carries any of the fields that
// count as a successful web search (publications, affiliations,
// research interests, or basic info).
func (r Record) Contributed() bool {
	return len(r.Publications) > 0 ||
		len(r.Affiliations) > 0 ||
		len(r.ResearchInterests) > 0 ||
		len(r.BasicInfo) > 0
}

// Failure wraps a source fetch error with the originating source name.
// The engine treats a Failure as "this source contributed nothing"; it
// never aborts the surrounding search.
type Failure struct {
	Source string
	Err    error
}

func (f *Failure) Error() string { return fmt.Sprintf("%s: %v", f.Source, f.Err) }

func (f *Failure) Unwrap() error { return f.Err }

// RateLimited reports whether the failure was an HTTP 429 from the
// source, as opposed to a generic network or parse error.
func (f *Failure) RateLimited() bool { return errors.Is(f.Err, httputil.ErrRateLimited) }

// Registry maps configured source names to clients. Built-in names get
// source-specific extraction; any other name is fetched passthrough
// (query URL and snapshot only). Resolution happens once at
// configuration time, not per call.
type Registry struct {
	mu      sync.Mutex
	clients map[string]Client
}

// NewRegistry builds clients for every configured endpoint.
func NewRegistry(cfg types.SourceConfig) *Registry {
	client := &http.Client{Timeout: cfg.Timeout}

	r := &Registry{clients: make(map[string]Client)}
	for name, baseURL := range cfg.Endpoints {
		r.clients[name] = newClient(name, baseURL, client, cfg.UserAgent)
	}
	return r
}

// newClient selects the extraction variant for a source name.
func newClient(name, baseURL string, client *http.Client, userAgent string) Client {
	switch name {
	case "pubmed":
		return &PubMedClient{BaseURL: baseURL, Client: client, UserAgent: userAgent}
	case "researchgate":
		return &ResearchGateClient{BaseURL: baseURL, Client: client, UserAgent: userAgent}
	case "google_scholar":
		return &ScholarClient{BaseURL: baseURL, Client: client, UserAgent: userAgent}
	case "clinical_trials":
		return &TrialsClient{BaseURL: baseURL, Client: client, UserAgent: userAgent}
	default:
		return &PassthroughClient{SourceName: name, BaseURL: baseURL, Client: client, UserAgent: userAgent}
	}
}

// Add registers a custom endpoint at runtime.
func (r *Registry) Add(name, baseURL string, httpCfg types.HTTPConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client := &http.Client{Timeout: httpCfg.Timeout}
	r.clients[name] = newClient(name, baseURL, client, httpCfg.UserAgent)
}

// Clients returns a stable-ordered snapshot of the registered clients.
// Callers iterate the snapshot, so sources added mid-search do not
// affect an in-flight fan-out.
func (r *Registry) Clients() []Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Client, 0, len(names))
	for _, name := range names {
		out = append(out, r.clients[name])
	}
	return out
}

// Names returns the registered source names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// buildTerm joins the name (and optional specialization) into a
// +-separated query term.
func buildTerm(name, specialization string) string {
	term := name
	if specialization != "" {
		term = name + " " + specialization
	}
	return strings.ReplaceAll(term, " ", "+")
}

// snapshot truncates a response body for diagnostic storage.
func snapshot(body []byte) string {
	if len(body) > rawSnapshotLimit {
		return string(body[:rawSnapshotLimit])
	}
	return string(body)
}
