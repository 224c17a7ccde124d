// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"testing"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

func TestDedupeCaseInsensitiveTitles(t *testing.T) {
	// The same survey from two sources, differing only in case.
	in := []types.Record{
		{Source: types.SourceArxiv, Title: "Deep Learning Survey"},
		{Source: types.SourceCrossref, Title: "DEEP LEARNING SURVEY"},
	}
	out, removed := Dedupe(in)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	// First seen wins.
	if out[0].Source != types.SourceArxiv {
		t.Errorf("survivor source = %q, want first seen", out[0].Source)
	}
}

func TestDedupeTrimsWhitespace(t *testing.T) {
	in := []types.Record{
		{Title: "  Attention Is All You Need  "},
		{Title: "Attention Is All You Need"},
	}
	out, removed := Dedupe(in)
	if len(out) != 1 || removed != 1 {
		t.Errorf("len(out) = %d, removed = %d, want 1 and 1", len(out), removed)
	}
}

func TestDedupeDropsShortTitles(t *testing.T) {
	in := []types.Record{
		{Title: ""},
		{Title: "   "},
		{Title: "ab"},
		{Title: "abc"},
		{Title: "abcd"}, // exactly at the threshold, kept
	}
	out, removed := Dedupe(in)
	if len(out) != 1 || out[0].Title != "abcd" {
		t.Fatalf("out = %v, want only the four-char title", out)
	}
	// Dropped garbage is not counted as duplicates.
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestDedupeUniqueness(t *testing.T) {
	in := []types.Record{
		{Title: "Paper One"}, {Title: "Paper Two"}, {Title: "paper one"},
		{Title: "Paper Three"}, {Title: " PAPER TWO "}, {Title: "Paper One"},
	}
	out, removed := Dedupe(in)
	seen := make(map[string]bool)
	for _, r := range out {
		key := normalizeTitle(r.Title)
		if seen[key] {
			t.Errorf("duplicate normalized title %q in output", key)
		}
		seen[key] = true
	}
	if len(out) != 3 {
		t.Errorf("len(out) = %d, want 3", len(out))
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
}

func TestDedupeAssignsStableIDs(t *testing.T) {
	in := []types.Record{
		{Source: types.SourceArxiv, Title: "Reproducible Paper", Year: 2020},
		{Source: types.SourceDOAJ, Title: "Other Paper", Year: 2021},
	}
	out1, _ := Dedupe(in)
	out2, _ := Dedupe(in)

	for _, r := range out1 {
		if r.ID == "" {
			t.Errorf("record %q has no ID", r.Title)
		}
	}
	// Same (title, year, source) yields the same ID across runs.
	if out1[0].ID != out2[0].ID || out1[1].ID != out2[1].ID {
		t.Error("IDs not stable across runs")
	}
	if out1[0].ID == out1[1].ID {
		t.Error("distinct records share an ID")
	}
}

func TestDedupeEmptyInput(t *testing.T) {
	out, removed := Dedupe(nil)
	if len(out) != 0 || removed != 0 {
		t.Errorf("Dedupe(nil) = %v, %d, want empty and 0", out, removed)
	}
}
