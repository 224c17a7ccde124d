// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite renders bibliographic records as formatted citation
// strings in the common academic styles.
package cite

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// Styles lists the supported citation styles in display order.
var Styles = []string{"APA", "MLA", "Chicago", "Harvard", "IEEE", "Vancouver"}

// Generator renders citations. Accessed dates come from Now; the zero
// value uses the wall clock.
type Generator struct {
	Now func() time.Time
}

// Generate returns a citation string per style for the record.
func (g Generator) Generate(r types.Record) map[string]string {
	authors := r.Authors
	if len(authors) == 0 {
		authors = []string{"Unknown"}
	}

	apaAuthors := joinAuthors(authors, " & ", " et al.")
	mlaAuthors := joinAuthors(authors, ", and ", ", et al.")
	first := authors[0]
	year := formatYear(r.Year)

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	accessed := now()

	citations := map[string]string{
		"APA": fmt.Sprintf("%s (%s). %s. Retrieved from %s", apaAuthors, year, r.Title, r.URL),
		"MLA": fmt.Sprintf("%s. %q %s. Web. %d.", mlaAuthors, r.Title+".", year, accessed.Year()),
		"Chicago": fmt.Sprintf("%s et al. %q (%s). %s", first, r.Title+".", year, r.URL),
		"Harvard": fmt.Sprintf("%s et al. (%s) %s. Available at: %s (Accessed: %s)",
			first, year, r.Title, r.URL, accessed.Format("02 January 2006")),
		"IEEE": fmt.Sprintf("[%c. %s et al., %q %s.]",
			firstInitial(first), lastName(first), r.Title+",", year),
		"Vancouver": fmt.Sprintf("%s. %s. [Internet]. %s. Available from: %s", apaAuthors, r.Title, year, r.URL),
	}

	// A DOI supersedes the plain URL for the reference-list styles.
	if r.DOI != "" {
		citations["APA"] = fmt.Sprintf("%s (%s). %s. https://doi.org/%s", apaAuthors, year, r.Title, r.DOI)
		citations["MLA"] = fmt.Sprintf("%s. %q %s. doi:%s.", mlaAuthors, r.Title+".", year, r.DOI)
	}

	return citations
}

// joinAuthors renders an author list: one name as is, two joined by the
// pair separator, more than two as the first name plus the suffix.
func joinAuthors(authors []string, pairSep, manySuffix string) string {
	switch len(authors) {
	case 1:
		return authors[0]
	case 2:
		return authors[0] + pairSep + authors[1]
	default:
		return authors[0] + manySuffix
	}
}

// formatYear renders an unknown year as "n.d." per citation convention.
func formatYear(year int) string {
	if year <= 0 {
		return "n.d."
	}
	return fmt.Sprintf("%d", year)
}

func firstInitial(name string) rune {
	for _, r := range name {
		return r
	}
	return '?'
}

func lastName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}
