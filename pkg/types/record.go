// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-hub pipeline.
package types

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// UnknownAuthors is the placeholder used when a source returns no author names.
const UnknownAuthors = "Unknown Authors"

// Known source identifiers. The set is open: adapters may introduce new
// names, which the scorer treats with a conservative default prior.
const (
	SourceArxiv           = "arxiv"
	SourceSemanticScholar = "semantic_scholar"
	SourceCrossref        = "crossref"
	SourceDOAJ            = "doaj"
	SourceWikipedia       = "wikipedia"
	SourcePubMed          = "pubmed"
	SourceGoogleScholar   = "google_scholar"
	SourceInstitution     = "institution"
)

// Record is the unit of exchange between every pipeline stage: one
// bibliographic entry as reported by a single source, normalized into the
// common shape. Adapters create Records, the aggregation pipeline
// deduplicates, scores, and ranks them, and rendering/export consumers read
// them. Consumers must not mutate a Record after it is returned.
type Record struct {
	// ID is a short stable identifier derived from (title, year, source).
	// It is assigned when the record survives deduplication and never
	// reassigned afterwards.
	ID string `json:"id" yaml:"id"`

	// Source names the origin provider (e.g. "arxiv", "crossref").
	Source string `json:"source" yaml:"source"`

	// Title is the display title and the deduplication key.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in source order. Never empty:
	// sources that report no authors get the UnknownAuthors placeholder.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is free text and may be empty or a placeholder.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Year is the publication year; 0 means unknown.
	Year int `json:"year" yaml:"year"`

	URL    string `json:"url" yaml:"url"`
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
	DOI    string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Citations counts citing works as reported by the source.
	Citations int `json:"citations" yaml:"citations"`

	// Journal is the venue name, if the source reports one.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// FullTextAvailable reports whether the full text is openly readable.
	FullTextAvailable bool `json:"full_text_available" yaml:"full_text_available"`

	// ReliabilityScore is the composite trust score in [0.3, 1.0]. Adapters
	// may seed it with a source prior; the scorer always recomputes it.
	ReliabilityScore float64 `json:"reliability_score" yaml:"reliability_score"`

	// ReliabilityLevel is the label derived from ReliabilityScore. The two
	// are always set together.
	ReliabilityLevel string `json:"reliability_level" yaml:"reliability_level"`
}

// recordNamespace seeds UUIDv5 derivation for record IDs.
var recordNamespace = uuid.MustParse("8f2a1c54-9be1-4df0-bb1b-6a41d2c0a7ee")

// RecordID derives the stable short identifier for a record from its title,
// year, and source. Equal inputs always produce the same ID, so a record
// keeps its identity across runs and across export files.
func RecordID(title string, year int, source string) string {
	key := fmt.Sprintf("%s|%d|%s", strings.ToLower(strings.TrimSpace(title)), year, source)
	id := uuid.NewSHA1(recordNamespace, []byte(key))
	return strings.ReplaceAll(id.String(), "-", "")[:12]
}

// DisplayScore returns the reliability score rounded to two decimal places.
// Ranking uses the unrounded value; rounding is display-only so that ties
// are not introduced by presentation.
func (r Record) DisplayScore() float64 {
	return math.Round(r.ReliabilityScore*100) / 100
}
