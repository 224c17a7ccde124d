// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossrefAdapter queries the Crossref REST API.
type CrossrefAdapter struct {
	Client *Client
}

// Name returns the source identifier.
func (a *CrossrefAdapter) Name() string { return types.SourceCrossref }

// Prior returns the base trust score for Crossref works.
func (a *CrossrefAdapter) Prior() float64 { return 0.7 }

// Search queries the Crossref API and maps works to records.
func (a *CrossrefAdapter) Search(ctx context.Context, query string, max int) ([]types.Record, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty Crossref query")
	}

	params := url.Values{
		"query": {q},
		"rows":  {fmt.Sprintf("%d", defaultMax(max))},
	}
	reqURL := crossrefAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := a.Client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing Crossref response: %w", err)
	}

	var records []types.Record
	for _, item := range cr.Message.Items {
		if len(item.Title) == 0 || item.Title[0] == "" {
			continue
		}

		r := types.Record{
			Source:            types.SourceCrossref,
			Title:             item.Title[0],
			Abstract:          orUnavailable(strings.TrimSpace(item.Abstract)),
			DOI:               item.DOI,
			Citations:         item.IsReferencedByCount,
			FullTextAvailable: item.DOI != "",
			ReliabilityScore:  a.Prior(),
		}

		if item.DOI != "" {
			r.URL = "https://doi.org/" + item.DOI
		} else {
			r.URL = item.URL
		}

		var authors []string
		for _, au := range item.Author {
			switch {
			case au.Given != "" && au.Family != "":
				authors = append(authors, au.Given+" "+au.Family)
			case au.Family != "":
				authors = append(authors, au.Family)
			}
		}
		r.Authors = ensureAuthors(authors)

		r.Year = crossrefYear(item)

		if len(item.ContainerTitle) > 0 && item.ContainerTitle[0] != "" {
			r.Journal = item.ContainerTitle[0]
		} else {
			r.Journal = "Academic Publication"
		}

		records = append(records, r)
	}
	return records, nil
}

// crossrefYear extracts the publication year, preferring the print date.
func crossrefYear(item crossrefItem) int {
	for _, dp := range [][][]int{item.PublishedPrint.DateParts, item.Published.DateParts} {
		if len(dp) > 0 && len(dp[0]) > 0 {
			return dp[0][0]
		}
	}
	return 0
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Items []crossrefItem `json:"items"`
}

type crossrefItem struct {
	Title               []string       `json:"title"`
	Abstract            string         `json:"abstract"`
	Author              []crossrefName `json:"author"`
	DOI                 string         `json:"DOI"`
	URL                 string         `json:"URL"`
	ContainerTitle      []string       `json:"container-title"`
	IsReferencedByCount int            `json:"is-referenced-by-count"`
	PublishedPrint      crossrefDate   `json:"published-print"`
	Published           crossrefDate   `json:"published"`
}

type crossrefName struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}
