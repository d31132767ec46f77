// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"encoding/json"
	"strings"

	"github.com/pdiddy/profile-engine/pkg/types"
)

// dedupeProfile removes structurally equal duplicates from every
// list-valued field, preserving first-seen order. Equality is exact
// canonical-string comparison: near-duplicate entries that differ only
// in punctuation stay distinct.
func dedupeProfile(p *types.Profile) {
	p.Publications = dedupeBy(p.Publications, canonicalKey[types.Publication])
	p.ClinicalTrials = dedupeBy(p.ClinicalTrials, canonicalKey[types.ClinicalTrial])
	p.ResearchInterests = dedupeBy(p.ResearchInterests, func(s string) string { return s })
	p.Affiliations = dedupeBy(p.Affiliations, func(s string) string { return s })
	p.Education = dedupeBy(p.Education, func(s string) string { return s })
	p.Collaborators = dedupeBy(p.Collaborators, func(s string) string { return s })
}

// dedupeBy keeps the first occurrence of each key. Idempotent: running
// it on an already-deduplicated list returns the same list.
func dedupeBy[T any](items []T, key func(T) string) []T {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, item := range items {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}

// canonicalKey serializes a structured item to its comparison form.
func canonicalKey[T any](item T) string {
	b, err := json.Marshal(item)
	if err != nil {
		return ""
	}
	return string(b)
}

// containsTitle reports whether candidate appears within title,
// case-insensitively. Used to match URL corrections back to items.
func containsTitle(title, candidate string) bool {
	return strings.Contains(strings.ToLower(title), strings.ToLower(candidate))
}
