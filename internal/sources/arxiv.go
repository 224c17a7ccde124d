// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivAdapter queries the arXiv Atom API.
type ArxivAdapter struct {
	Client *Client
}

// Name returns the source identifier.
func (a *ArxivAdapter) Name() string { return types.SourceArxiv }

// Prior returns the base trust score for arXiv preprints.
func (a *ArxivAdapter) Prior() float64 { return 0.8 }

// Search queries the arXiv API and maps Atom entries to records.
func (a *ArxivAdapter) Search(ctx context.Context, query string, max int) ([]types.Record, error) {
	q := buildArxivQuery(query)
	if q == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	url := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		arxivAPIBase, q, defaultMax(max))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := a.Client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var records []types.Record
	for _, entry := range feed.Entries {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}

		r := types.Record{
			Source:            types.SourceArxiv,
			Title:             title,
			Abstract:          orUnavailable(strings.TrimSpace(entry.Summary)),
			URL:               entry.ID,
			DOI:               entry.DOI,
			Journal:           "arXiv preprint",
			FullTextAvailable: true,
			ReliabilityScore:  a.Prior(),
		}

		var authors []string
		for _, au := range entry.Authors {
			if name := strings.TrimSpace(au.Name); name != "" {
				authors = append(authors, name)
			}
		}
		r.Authors = ensureAuthors(authors)

		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			r.Year = t.Year()
		}

		for _, link := range entry.Links {
			if link.Title == "pdf" || link.Type == "application/pdf" {
				r.PDFURL = link.Href
				break
			}
		}

		records = append(records, r)
	}
	return records, nil
}

// buildArxivQuery constructs the search_query parameter from free text.
func buildArxivQuery(query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}
	return "all:" + strings.Join(terms, "+")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	DOI       string        `xml:"doi"`
	Authors   []arxivAuthor `xml:"author"`
	Links     []arxivLink   `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}
