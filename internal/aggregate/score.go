// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"time"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// Score bounds. Every final score is clamped into this range.
const (
	scoreFloor   = 0.3
	scoreCeiling = 1.0
)

// defaultPrior is used for sources not in the prior table.
const defaultPrior = 0.5

// sourcePriors maps source identity to its base trust score. Peer-reviewed
// and indexed sources rank above general-knowledge ones.
var sourcePriors = map[string]float64{
	types.SourceInstitution:     0.9,
	types.SourceArxiv:           0.8,
	types.SourcePubMed:          0.8,
	types.SourceSemanticScholar: 0.7,
	types.SourceCrossref:        0.7,
	types.SourceDOAJ:            0.7,
	types.SourceGoogleScholar:   0.7,
	types.SourceWikipedia:       0.6,
}

// SourcePrior returns the base trust score for a source identity.
func SourcePrior(source string) float64 {
	if p, ok := sourcePriors[source]; ok {
		return p
	}
	return defaultPrior
}

// Scorer computes composite reliability scores. The zero value uses the
// wall clock; tests inject a fixed Now.
type Scorer struct {
	Now func() time.Time
}

// Score computes the reliability score and level for a record and returns
// a new record carrying them. The input is not mutated, and scoring the
// result again yields the same score: every contribution is recomputed
// from the record's fields, nothing accumulates.
//
// The source prior acts as a floor under any adapter-seeded score. Onto
// that floor it adds a recency bonus, a citation-count bonus, and fixed
// bonuses for full-text availability and a DOI, then clamps to
// [0.3, 1.0].
func (s Scorer) Score(r types.Record) types.Record {
	score := SourcePrior(r.Source)

	score += s.recencyBonus(r.Year)
	score += citationBonus(r.Citations)
	if r.FullTextAvailable {
		score += 0.05
	}
	if r.DOI != "" {
		score += 0.05
	}

	if score < scoreFloor {
		score = scoreFloor
	}
	if score > scoreCeiling {
		score = scoreCeiling
	}

	r.ReliabilityScore = score
	r.ReliabilityLevel = levelFor(score)
	return r
}

// recencyBonus rewards recent publication years in discrete steps. An
// unknown year contributes nothing.
func (s Scorer) recencyBonus(year int) float64 {
	if year <= 0 {
		return 0
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	age := now().Year() - year
	switch {
	case age <= 1:
		return 0.10
	case age <= 3:
		return 0.07
	case age <= 5:
		return 0.04
	default:
		return 0
	}
}

// citationBonus rewards citation volume in discrete tiers.
func citationBonus(citations int) float64 {
	switch {
	case citations > 1000:
		return 0.20
	case citations > 100:
		return 0.15
	case citations > 10:
		return 0.10
	default:
		return 0
	}
}

// levelFor maps a clamped score to its trust label.
func levelFor(score float64) string {
	switch {
	case score >= 0.9:
		return "Excellent"
	case score >= 0.8:
		return "Very High"
	case score >= 0.7:
		return "High"
	case score >= 0.6:
		return "Good"
	case score >= 0.5:
		return "Medium"
	default:
		return "Low"
	}
}
