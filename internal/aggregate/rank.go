// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"sort"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// Rank orders records by reliability score, then citation count, then
// year, all descending. A record with an unknown year (zero) sorts after
// every dated record at the same score and citation count. The ordering
// uses the unrounded score so display rounding cannot introduce ties.
//
// The result is truncated to max as a pure prefix take.
func Rank(records []types.Record, max int) []types.Record {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.ReliabilityScore != b.ReliabilityScore {
			return a.ReliabilityScore > b.ReliabilityScore
		}
		if a.Citations != b.Citations {
			return a.Citations > b.Citations
		}
		return a.Year > b.Year
	})

	if max >= 0 && len(records) > max {
		records = records[:max]
	}
	return records
}
