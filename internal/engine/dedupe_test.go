// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"reflect"
	"testing"

	"github.com/pdiddy/profile-engine/pkg/types"
)

func TestDedupeByStableOrder(t *testing.T) {
	items := []string{"b", "a", "b", "c", "a"}
	got := dedupeBy(items, func(s string) string { return s })
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupeBy() = %v, want %v", got, want)
	}
}

func TestDedupeByIdempotent(t *testing.T) {
	items := []string{"a", "b", "c"}
	once := dedupeBy(items, func(s string) string { return s })
	twice := dedupeBy(once, func(s string) string { return s })
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedupeBy not idempotent: %v vs %v", once, twice)
	}
}

func TestDedupeProfileStructured(t *testing.T) {
	p := types.NewProfile("Jane Doe", "")
	p.Publications = []types.Publication{
		{Title: "Base editing advances", Authors: "Doe J"},
		{Title: "Base editing advances", Authors: "Doe J"},
		{Title: "Base editing advances", Authors: "Doe J", Journal: "Nature"},
	}
	p.ClinicalTrials = []types.ClinicalTrial{
		{Title: "Trial A"},
		{Title: "Trial A"},
	}
	p.Affiliations = []string{"MIT", "MIT", "Broad Institute"}

	dedupeProfile(p)

	if len(p.Publications) != 2 {
		t.Errorf("Publications = %v", p.Publications)
	}
	if len(p.ClinicalTrials) != 1 {
		t.Errorf("ClinicalTrials = %v", p.ClinicalTrials)
	}
	if len(p.Affiliations) != 2 {
		t.Errorf("Affiliations = %v", p.Affiliations)
	}
}

func TestDedupeProfileKeepsNearDuplicates(t *testing.T) {
	p := types.NewProfile("Jane Doe", "")
	// Punctuation differences are distinct entries; equality is exact.
	p.Publications = []types.Publication{
		{Title: "Base editing advances"},
		{Title: "Base editing advances."},
	}
	p.Affiliations = []string{"MIT", "M.I.T."}

	dedupeProfile(p)

	if len(p.Publications) != 2 {
		t.Errorf("near-duplicate publications should stay: %v", p.Publications)
	}
	if len(p.Affiliations) != 2 {
		t.Errorf("near-duplicate affiliations should stay: %v", p.Affiliations)
	}
}

func TestContainsTitle(t *testing.T) {
	tests := []struct {
		title, candidate string
		want             bool
	}{
		{"Base Editing Advances", "base editing", true},
		{"Base Editing Advances", "Base Editing Advances", true},
		{"Base Editing", "Base Editing Advances", false},
		{"Unrelated", "editing", false},
	}
	for _, tt := range tests {
		if got := containsTitle(tt.title, tt.candidate); got != tt.want {
			t.Errorf("containsTitle(%q, %q) = %v, want %v", tt.title, tt.candidate, got, tt.want)
		}
	}
}
