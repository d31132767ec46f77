// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads a researcher CSV file and resolves names to
// rows under a fixed column-to-field mapping.
// Implements: prd003-dataset (R1-R3).
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Entry is the mapped contribution of one CSV row. List columns are
// comma-split; publications stay as titles for the engine to wrap.
type Entry struct {
	Name              string
	Specialization    string
	Affiliations      []string
	ResearchInterests []string
	Publications      []string
	BasicInfo         map[string]string
}

// Dataset is a loaded researcher table. Read-only after Load; safe to
// share across concurrent searches.
type Dataset struct {
	headers []string
	rows    []map[string]string
}

// Load reads a CSV file and normalizes its headers to title case, so a
// lowercase "name" column lands on the expected "Name" key. Rows with
// fewer cells than headers are padded with empty strings.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = titleCase(strings.TrimSpace(h))
	}

	d := &Dataset{headers: headers}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		d.rows = append(d.rows, row)
	}

	return d, nil
}

// Len returns the number of data rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Lookup resolves a researcher name to a mapped entry. Matching is
// case-insensitive: exact match first, then substring match taking the
// first row found. Substring matching can pick an unrelated researcher
// when the name fragment is common; the first row wins without
// disambiguation.
func (d *Dataset) Lookup(name string) (*Entry, bool) {
	lower := strings.ToLower(name)

	row := d.findRow(func(v string) bool { return strings.ToLower(v) == lower })
	if row == nil {
		row = d.findRow(func(v string) bool { return strings.Contains(strings.ToLower(v), lower) })
	}
	if row == nil {
		return nil, false
	}
	return mapRow(row), true
}

func (d *Dataset) findRow(match func(string) bool) map[string]string {
	for _, row := range d.rows {
		if v := row["Name"]; v != "" && match(v) {
			return row
		}
	}
	return nil
}

// mapRow applies the fixed column mapping. Empty cells are skipped;
// unmapped columns are ignored.
func mapRow(row map[string]string) *Entry {
	e := &Entry{BasicInfo: map[string]string{}}

	e.Name = row["Name"]
	e.Specialization = row["Specialization"]
	e.Affiliations = splitList(row["Affiliation"])
	e.ResearchInterests = splitList(row["Research Interests"])
	e.Publications = splitList(row["Publications"])

	for col, key := range map[string]string{
		"Email":    "email",
		"Phone":    "phone",
		"Location": "location",
	} {
		if v := row[col]; v != "" {
			e.BasicInfo[key] = v
		}
	}

	return e
}

// splitList comma-splits a cell into trimmed, non-empty items.
func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(cell, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// titleCase capitalizes the first letter of each word and lowercases
// the rest, matching how the dataset headers are normalized on load.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
