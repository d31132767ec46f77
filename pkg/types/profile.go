// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Publication is one published work attributed to a researcher.
// Per prd002-sources R3.2: partial structure is tolerated, so any field
// other than Title may be empty.
type Publication struct {
	// Title is the publication title.
	Title string `json:"title" yaml:"title"`

	// Authors is the author line as rendered by the source (not split).
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Journal is the journal or venue name.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Year is the publication year as rendered by the source.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// URL links to the publication page.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Snippet is a short result excerpt, when the source provides one.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// ClinicalTrial is one registered trial a researcher is involved in.
type ClinicalTrial struct {
	// Title is the trial title.
	Title string `json:"title" yaml:"title"`

	// Status is the recruitment status (e.g. "Recruiting", "Completed").
	Status string `json:"status,omitempty" yaml:"status,omitempty"`

	// Condition is the condition under study.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`

	// URL links to the registry entry.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Profile is the canonical merged record for one queried researcher name.
// Per prd001-aggregation R1: one Profile per exact input name; Name is
// immutable once the Profile exists.
type Profile struct {
	// Name is the researcher name exactly as supplied by the caller.
	Name string `json:"name" yaml:"name"`

	// Specialization narrows searches when provided.
	Specialization string `json:"specialization,omitempty" yaml:"specialization,omitempty"`

	// BasicInfo holds scalar facts (email, phone, location, position).
	// Merged per key, last writer wins.
	BasicInfo map[string]string `json:"basic_info,omitempty" yaml:"basic_info,omitempty"`

	// Publications is in source-submission order, deduplicated.
	Publications []Publication `json:"publications,omitempty" yaml:"publications,omitempty"`

	ResearchInterests []string        `json:"research_interests,omitempty" yaml:"research_interests,omitempty"`
	Affiliations      []string        `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
	Education         []string        `json:"education,omitempty" yaml:"education,omitempty"`
	ClinicalTrials    []ClinicalTrial `json:"clinical_trials,omitempty" yaml:"clinical_trials,omitempty"`
	Collaborators     []string        `json:"collaborators,omitempty" yaml:"collaborators,omitempty"`

	// Citations holds citation metrics (metric name → rendered value).
	// Merged per key, last writer wins.
	Citations map[string]string `json:"citations,omitempty" yaml:"citations,omitempty"`

	// SourceURLs records the query URL of each source that contributed.
	SourceURLs map[string]string `json:"source_urls,omitempty" yaml:"source_urls,omitempty"`

	// RawData holds truncated response snapshots per source. Diagnostic
	// only; never consulted by merge logic.
	RawData map[string]string `json:"raw_data,omitempty" yaml:"raw_data,omitempty"`

	// Derived narrative fields filled by the generative fallback or the
	// enrichment pass.
	Summary            string `json:"summary,omitempty" yaml:"summary,omitempty"`
	KeyContributions   string `json:"key_contributions,omitempty" yaml:"key_contributions,omitempty"`
	AdditionalInsights string `json:"additional_insights,omitempty" yaml:"additional_insights,omitempty"`
	ResearchNetwork    string `json:"research_network,omitempty" yaml:"research_network,omitempty"`

	// AIGenerated marks a record whose factual fields came entirely from
	// the generative fallback (no source contributed beforehand).
	AIGenerated bool `json:"ai_generated" yaml:"ai_generated"`

	// AIEnhanced marks a record whose derived fields were added by an
	// enrichment pass on top of source-backed data. Never true together
	// with AIGenerated: enrichment only runs on records that already had
	// source or dataset data.
	AIEnhanced bool `json:"ai_enhanced" yaml:"ai_enhanced"`
}

// NewProfile returns an empty Profile for the given name.
func NewProfile(name, specialization string) *Profile {
	return &Profile{
		Name:           name,
		Specialization: specialization,
		BasicInfo:      map[string]string{},
		Citations:      map[string]string{},
		SourceURLs:     map[string]string{},
		RawData:        map[string]string{},
	}
}

// IsMeaningful reports whether the Profile carries any substantive data:
// at least one of publications, affiliations, or research interests is
// non-empty, or basic info is non-empty. Gates the fallback policy.
func (p *Profile) IsMeaningful() bool {
	return len(p.Publications) > 0 ||
		len(p.Affiliations) > 0 ||
		len(p.ResearchInterests) > 0 ||
		len(p.BasicInfo) > 0
}
