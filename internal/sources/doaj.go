// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// doajAPIBase is the DOAJ article search endpoint. Declared as a var so
// tests can substitute an httptest server.
var doajAPIBase = "https://doaj.org/api/v2/search/articles"

// DOAJAdapter queries the Directory of Open Access Journals.
type DOAJAdapter struct {
	Client *Client
}

// Name returns the source identifier.
func (a *DOAJAdapter) Name() string { return types.SourceDOAJ }

// Prior returns the base trust score for DOAJ articles.
func (a *DOAJAdapter) Prior() float64 { return 0.7 }

// Search queries the DOAJ API and maps articles to records.
func (a *DOAJAdapter) Search(ctx context.Context, query string, max int) ([]types.Record, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty DOAJ query")
	}

	reqURL := fmt.Sprintf("%s/%s?page=1&pageSize=%d", doajAPIBase, url.PathEscape(q), defaultMax(max))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := a.Client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("DOAJ API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DOAJ API returned HTTP %d", resp.StatusCode)
	}

	var dr doajResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("parsing DOAJ response: %w", err)
	}

	var records []types.Record
	for _, article := range dr.Results {
		bj := article.BibJSON
		if bj.Title == "" {
			continue
		}

		r := types.Record{
			Source:            types.SourceDOAJ,
			Title:             bj.Title,
			Abstract:          orUnavailable(bj.Abstract),
			Journal:           "Open Access Journal",
			FullTextAvailable: true,
			ReliabilityScore:  a.Prior(),
		}

		var authors []string
		for _, au := range bj.Author {
			if au.Name != "" {
				authors = append(authors, au.Name)
			}
		}
		r.Authors = ensureAuthors(authors)

		if y, convErr := strconv.Atoi(bj.Year); convErr == nil {
			r.Year = y
		}

		for _, id := range bj.Identifier {
			if strings.EqualFold(id.Type, "doi") && id.ID != "" {
				r.DOI = id.ID
				break
			}
		}

		if r.DOI != "" {
			r.URL = "https://doi.org/" + r.DOI
		} else if len(bj.Link) > 0 {
			r.URL = bj.Link[0].URL
		}

		if bj.Journal.Title != "" {
			r.Journal = bj.Journal.Title
		}

		records = append(records, r)
	}
	return records, nil
}

// DOAJ API JSON structures.
type doajResponse struct {
	Results []doajArticle `json:"results"`
}

type doajArticle struct {
	BibJSON doajBibJSON `json:"bibjson"`
}

type doajBibJSON struct {
	Title      string           `json:"title"`
	Abstract   string           `json:"abstract"`
	Year       string           `json:"year"`
	Author     []doajAuthor     `json:"author"`
	Identifier []doajIdentifier `json:"identifier"`
	Link       []doajLink       `json:"link"`
	Journal    doajJournal      `json:"journal"`
}

type doajAuthor struct {
	Name string `json:"name"`
}

type doajIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type doajLink struct {
	URL string `json:"url"`
}

type doajJournal struct {
	Title string `json:"title"`
}
