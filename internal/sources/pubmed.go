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

// pubmedAPIBase is the NCBI E-utilities base URL. Declared as a var so
// tests can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// PubMedAdapter queries PubMed through the NCBI E-utilities API. The
// search is two-step: esearch resolves the query to PMIDs, esummary
// fetches metadata for them. An API key raises NCBI's rate limit from 3
// to 10 requests per second.
type PubMedAdapter struct {
	Client *Client
	APIKey string
}

// Name returns the source identifier.
func (a *PubMedAdapter) Name() string { return types.SourcePubMed }

// Prior returns the base trust score for PubMed records.
func (a *PubMedAdapter) Prior() float64 { return 0.8 }

// Search queries PubMed and maps article summaries to records.
func (a *PubMedAdapter) Search(ctx context.Context, query string, max int) ([]types.Record, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty PubMed query")
	}

	pmids, err := a.esearch(ctx, q, defaultMax(max))
	if err != nil {
		return nil, err
	}
	if len(pmids) == 0 {
		return nil, nil
	}

	return a.esummary(ctx, pmids)
}

// esearch resolves a query to a list of PMIDs.
func (a *PubMedAdapter) esearch(ctx context.Context, query string, max int) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmode": {"json"},
		"retmax":  {strconv.Itoa(max)},
	}
	if a.APIKey != "" {
		params.Set("api_key", a.APIKey)
	}
	reqURL := pubmedAPIBase + "/esearch.fcgi?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := a.Client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("PubMed esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed esearch returned HTTP %d", resp.StatusCode)
	}

	var er pubmedESearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing PubMed esearch response: %w", err)
	}
	return er.ESearchResult.IDList, nil
}

// esummary fetches article metadata for the given PMIDs.
func (a *PubMedAdapter) esummary(ctx context.Context, pmids []string) ([]types.Record, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"json"},
	}
	if a.APIKey != "" {
		params.Set("api_key", a.APIKey)
	}
	reqURL := pubmedAPIBase + "/esummary.fcgi?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := a.Client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("PubMed esummary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed esummary returned HTTP %d", resp.StatusCode)
	}

	var sr pubmedESummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing PubMed esummary response: %w", err)
	}

	var records []types.Record
	for _, pmid := range pmids {
		raw, ok := sr.Result[pmid]
		if !ok {
			continue
		}
		var doc pubmedSummary
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		if doc.Title == "" {
			continue
		}

		r := types.Record{
			Source:           types.SourcePubMed,
			Title:            doc.Title,
			Abstract:         abstractUnavailable,
			URL:              "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/",
			Journal:          doc.FullJournalName,
			ReliabilityScore: a.Prior(),
		}

		var authors []string
		for _, au := range doc.Authors {
			if au.Name != "" {
				authors = append(authors, au.Name)
			}
		}
		r.Authors = ensureAuthors(authors)

		r.Year = pubmedYear(doc.PubDate)

		for _, id := range doc.ArticleIDs {
			if id.IDType == "doi" && id.Value != "" {
				r.DOI = id.Value
				break
			}
		}

		records = append(records, r)
	}
	return records, nil
}

// pubmedYear parses the leading year out of an esummary pubdate such as
// "2023 Jan 15".
func pubmedYear(pubdate string) int {
	fields := strings.Fields(pubdate)
	if len(fields) == 0 {
		return 0
	}
	y, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return y
}

// PubMed E-utilities JSON structures. The esummary result object maps
// each PMID to its own document, so it is decoded in two stages.
type pubmedESearchResponse struct {
	ESearchResult pubmedESearchResult `json:"esearchresult"`
}

type pubmedESearchResult struct {
	IDList []string `json:"idlist"`
}

type pubmedESummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubmedSummary struct {
	Title           string            `json:"title"`
	PubDate         string            `json:"pubdate"`
	FullJournalName string            `json:"fulljournalname"`
	Authors         []pubmedAuthor    `json:"authors"`
	ArticleIDs      []pubmedArticleID `json:"articleids"`
}

type pubmedAuthor struct {
	Name string `json:"name"`
}

type pubmedArticleID struct {
	IDType string `json:"idtype"`
	Value  string `json:"value"`
}
