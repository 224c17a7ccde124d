// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// wikipediaAPIBase is the English Wikipedia action API. Declared as a var
// so tests can substitute an httptest server.
var wikipediaAPIBase = "https://en.wikipedia.org/w/api.php"

// WikipediaAdapter queries the Wikipedia search API. Articles carry no
// publication year of their own, so results are stamped with the current
// year.
type WikipediaAdapter struct {
	Client *Client

	// Now is the clock used to stamp articles. Nil means time.Now.
	Now func() time.Time
}

// Name returns the source identifier.
func (a *WikipediaAdapter) Name() string { return types.SourceWikipedia }

// Prior returns the base trust score for Wikipedia articles.
func (a *WikipediaAdapter) Prior() float64 { return 0.6 }

// Search queries the Wikipedia API and maps search hits to records.
func (a *WikipediaAdapter) Search(ctx context.Context, query string, max int) ([]types.Record, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty Wikipedia query")
	}

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {q},
		"format":   {"json"},
		"srlimit":  {fmt.Sprintf("%d", defaultMax(max))},
	}
	reqURL := wikipediaAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := a.Client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Wikipedia API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Wikipedia API returned HTTP %d", resp.StatusCode)
	}

	var wr wikipediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("parsing Wikipedia response: %w", err)
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	year := now().Year()

	var records []types.Record
	for _, item := range wr.Query.Search {
		if item.Title == "" {
			continue
		}

		r := types.Record{
			Source:            types.SourceWikipedia,
			Title:             item.Title,
			Authors:           []string{"Wikipedia Contributors"},
			Abstract:          stripTags(item.Snippet) + "...",
			Year:              year,
			URL:               "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(item.Title, " ", "_"),
			Journal:           "Wikipedia",
			FullTextAvailable: true,
			ReliabilityScore:  a.Prior(),
		}
		records = append(records, r)
	}
	return records, nil
}

// stripTags removes HTML markup from a search snippet and unescapes
// entities.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}

// Wikipedia API JSON structures.
type wikipediaResponse struct {
	Query wikipediaQuery `json:"query"`
}

type wikipediaQuery struct {
	Search []wikipediaHit `json:"search"`
}

type wikipediaHit struct {
	PageID  int    `json:"pageid"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
