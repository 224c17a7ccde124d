// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// GoogleScholarAdapter stands in for Google Scholar, which has no public
// API. It delegates to Semantic Scholar, whose index covers much of the
// same corpus. Delegated records keep their Semantic Scholar source tag,
// so overlapping results collapse in deduplication.
type GoogleScholarAdapter struct {
	Delegate *SemanticScholarAdapter
}

// Name returns the source identifier.
func (a *GoogleScholarAdapter) Name() string { return types.SourceGoogleScholar }

// Prior returns the base trust score for delegated results.
func (a *GoogleScholarAdapter) Prior() float64 { return 0.7 }

// Search forwards the query to the Semantic Scholar delegate.
func (a *GoogleScholarAdapter) Search(ctx context.Context, query string, max int) ([]types.Record, error) {
	return a.Delegate.Search(ctx, query, max)
}
