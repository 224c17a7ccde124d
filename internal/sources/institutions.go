// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// institution is one entry in the static research-institution catalog.
type institution struct {
	Short string
	Name  string
	URL   string
}

// institutionCatalog lists the major research institutions matched
// against queries. The catalog is static; no network call is made.
var institutionCatalog = []institution{
	{"MIT", "Massachusetts Institute of Technology", "https://www.mit.edu"},
	{"Stanford", "Stanford University", "https://www.stanford.edu"},
	{"Harvard", "Harvard University", "https://www.harvard.edu"},
	{"Oxford", "University of Oxford", "https://www.ox.ac.uk"},
	{"Cambridge", "University of Cambridge", "https://www.cam.ac.uk"},
	{"NIH", "National Institutes of Health", "https://www.nih.gov"},
	{"NASA", "National Aeronautics and Space Administration", "https://www.nasa.gov"},
	{"CERN", "European Organization for Nuclear Research", "https://home.cern"},
	{"Max Planck", "Max Planck Society", "https://www.mpg.de"},
	{"CNRS", "French National Centre for Scientific Research", "https://www.cnrs.fr"},
}

// InstitutionsAdapter matches queries against the institution catalog
// and emits pointer records to institutional research pages.
type InstitutionsAdapter struct {
	// Now is the clock used to stamp results. Nil means time.Now.
	Now func() time.Time
}

// Name returns the source identifier.
func (a *InstitutionsAdapter) Name() string { return types.SourceInstitution }

// Prior returns the base trust score for institutional sources.
func (a *InstitutionsAdapter) Prior() float64 { return 0.9 }

// Search matches the query against institution names. A query matches
// when it appears inside the short or full name, case-insensitively.
func (a *InstitutionsAdapter) Search(ctx context.Context, query string, max int) ([]types.Record, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, fmt.Errorf("empty institution query")
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	year := now().Year()
	budget := defaultMax(max)

	var records []types.Record
	for _, inst := range institutionCatalog {
		if len(records) >= budget {
			break
		}
		if !strings.Contains(strings.ToLower(inst.Short), q) &&
			!strings.Contains(strings.ToLower(inst.Name), q) {
			continue
		}

		records = append(records, types.Record{
			Source:  types.SourceInstitution,
			Title:   fmt.Sprintf("%s - Research on %s", inst.Name, query),
			Authors: []string{inst.Name + " Researchers"},
			Abstract: fmt.Sprintf(
				"%s conducts research on %s and related fields. Visit their website for publications, research projects, and academic resources.",
				inst.Name, query),
			Year:              year,
			URL:               inst.URL,
			Journal:           "Institutional Research",
			FullTextAvailable: true,
			ReliabilityScore:  a.Prior(),
		})
	}
	return records, nil
}
