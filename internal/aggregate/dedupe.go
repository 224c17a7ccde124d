// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"strings"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// minTitleLen guards against empty or garbage titles. Records whose
// normalized title is shorter are dropped outright.
const minTitleLen = 4

// normalizeTitle returns the deduplication key for a title.
func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Dedupe collapses records that share a normalized title. The first
// record seen for a title survives; later ones are discarded, not
// merged. Since adapter emission order depends on completion order, the
// winner for a cross-adapter collision varies between runs.
//
// Survivors get their stable ID assigned here. Returns the surviving
// records and the number of duplicates discarded.
func Dedupe(records []types.Record) ([]types.Record, int) {
	seen := make(map[string]struct{}, len(records))
	var out []types.Record
	removed := 0

	for _, r := range records {
		key := normalizeTitle(r.Title)
		if len(key) < minTitleLen {
			continue
		}
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		r.ID = types.RecordID(r.Title, r.Year, r.Source)
		out = append(out, r)
	}
	return out, removed
}
