// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

func TestInstitutionsSearchMatching(t *testing.T) {
	fixed := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	a := &InstitutionsAdapter{Now: func() time.Time { return fixed }}

	records, err := a.Search(context.Background(), "stanford", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	r := records[0]
	if r.Source != types.SourceInstitution {
		t.Errorf("Source = %q", r.Source)
	}
	if !strings.Contains(r.Title, "Stanford University") {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Year != 2026 {
		t.Errorf("Year = %d, want 2026", r.Year)
	}
	if r.URL != "https://www.stanford.edu" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.ReliabilityScore != 0.9 {
		t.Errorf("ReliabilityScore = %v, want 0.9", r.ReliabilityScore)
	}
}

func TestInstitutionsSearchCaseInsensitive(t *testing.T) {
	a := &InstitutionsAdapter{}
	records, err := a.Search(context.Background(), "CERN", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if !strings.Contains(records[0].Title, "European Organization for Nuclear Research") {
		t.Errorf("Title = %q", records[0].Title)
	}
}

func TestInstitutionsSearchNoMatch(t *testing.T) {
	a := &InstitutionsAdapter{}
	records, err := a.Search(context.Background(), "quantum entanglement", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestInstitutionsSearchBudgetCap(t *testing.T) {
	// "university" matches several catalog entries; the budget caps them.
	a := &InstitutionsAdapter{}
	records, err := a.Search(context.Background(), "university", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}
}

func TestInstitutionsSearchEmptyQuery(t *testing.T) {
	a := &InstitutionsAdapter{}
	if _, err := a.Search(context.Background(), "  ", 5); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestInstitutionsAdapterIdentity(t *testing.T) {
	a := &InstitutionsAdapter{}
	if a.Name() != "institution" {
		t.Errorf("Name() = %q", a.Name())
	}
	if a.Prior() != 0.9 {
		t.Errorf("Prior() = %v, want 0.9", a.Prior())
	}
}
