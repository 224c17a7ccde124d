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

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,authors,abstract,year,citationCount,url,openAccessPdf,externalIds,venue,publicationVenue"

// SemanticScholarAdapter queries the Semantic Scholar Graph API.
type SemanticScholarAdapter struct {
	Client *Client
	APIKey string
}

// Name returns the source identifier.
func (a *SemanticScholarAdapter) Name() string { return types.SourceSemanticScholar }

// Prior returns the base trust score for Semantic Scholar results.
func (a *SemanticScholarAdapter) Prior() float64 { return 0.7 }

// Search queries the Semantic Scholar API and maps papers to records.
func (a *SemanticScholarAdapter) Search(ctx context.Context, query string, max int) ([]types.Record, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}

	params := url.Values{
		"query":  {q},
		"limit":  {fmt.Sprintf("%d", defaultMax(max))},
		"fields": {semanticFields},
	}
	reqURL := semanticAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if a.APIKey != "" {
		req.Header.Set("x-api-key", a.APIKey)
	}

	resp, err := a.Client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var records []types.Record
	for _, paper := range sr.Data {
		if paper.Title == "" {
			continue
		}

		r := types.Record{
			Source:            types.SourceSemanticScholar,
			Title:             paper.Title,
			Abstract:          orUnavailable(paper.Abstract),
			Year:              paper.Year,
			URL:               paper.URL,
			DOI:               paper.ExternalIDs.DOI,
			Citations:         paper.CitationCount,
			FullTextAvailable: paper.OpenAccessPDF != nil,
			ReliabilityScore:  a.Prior(),
		}

		if r.URL == "" && paper.PaperID != "" {
			r.URL = "https://www.semanticscholar.org/paper/" + paper.PaperID
		}
		if paper.OpenAccessPDF != nil {
			r.PDFURL = paper.OpenAccessPDF.URL
		}

		r.Journal = paper.Venue
		if r.Journal == "" && paper.PublicationVenue != nil {
			r.Journal = paper.PublicationVenue.Name
		}

		var authors []string
		for _, au := range paper.Authors {
			if au.Name != "" {
				authors = append(authors, au.Name)
			}
		}
		r.Authors = ensureAuthors(authors)

		records = append(records, r)
	}
	return records, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID          string              `json:"paperId"`
	Title            string              `json:"title"`
	Abstract         string              `json:"abstract"`
	Year             int                 `json:"year"`
	CitationCount    int                 `json:"citationCount"`
	URL              string              `json:"url"`
	Venue            string              `json:"venue"`
	PublicationVenue *semanticVenue      `json:"publicationVenue"`
	OpenAccessPDF    *semanticOpenAccess `json:"openAccessPdf"`
	Authors          []semanticAuthor    `json:"authors"`
	ExternalIDs      semanticExternalIDs `json:"externalIds"`
}

type semanticVenue struct {
	Name string `json:"name"`
}

type semanticOpenAccess struct {
	URL string `json:"url"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
