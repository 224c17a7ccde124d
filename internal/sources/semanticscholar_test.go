// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

func TestSemanticSearchRequestParams(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total":0,"offset":0,"data":[]}`)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	a := &SemanticScholarAdapter{Client: testClient(ts)}
	if _, err := a.Search(context.Background(), "attention", 15); err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := capturedReq.URL.Query()
	if got := q.Get("query"); got != "attention" {
		t.Errorf("query param = %q, want %q", got, "attention")
	}
	if got := q.Get("limit"); got != "15" {
		t.Errorf("limit param = %q, want %q", got, "15")
	}
	fields := q.Get("fields")
	for _, f := range []string{"title", "authors", "abstract", "year", "citationCount", "openAccessPdf", "externalIds", "venue"} {
		if !strings.Contains(fields, f) {
			t.Errorf("fields param %q missing %q", fields, f)
		}
	}
}

func TestSemanticSearchAPIKeyHeader(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   string
	}{
		{"with API key", "test-key-123", "test-key-123"},
		{"without API key", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedReq *http.Request
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedReq = r
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"total":0,"offset":0,"data":[]}`)
			}))
			defer ts.Close()

			old := semanticAPIBase
			semanticAPIBase = ts.URL
			defer func() { semanticAPIBase = old }()

			a := &SemanticScholarAdapter{Client: testClient(ts), APIKey: tt.apiKey}
			if _, err := a.Search(context.Background(), "test", 5); err != nil {
				t.Fatalf("Search: %v", err)
			}
			if got := capturedReq.Header.Get("x-api-key"); got != tt.want {
				t.Errorf("x-api-key header = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSemanticSearchRecordMapping(t *testing.T) {
	resp := `{"total":1,"offset":0,"data":[{
		"paperId":"abc123",
		"title":"Scaling Laws for Neural Language Models",
		"abstract":"We study empirical scaling laws.",
		"year":2020,
		"citationCount":4200,
		"url":"https://www.semanticscholar.org/paper/abc123",
		"venue":"NeurIPS",
		"openAccessPdf":{"url":"https://arxiv.org/pdf/2001.08361"},
		"authors":[{"authorId":"1","name":"Jared Kaplan"},{"authorId":"2","name":"Sam McCandlish"}],
		"externalIds":{"DOI":"10.5555/scaling","ArXiv":"2001.08361"}}]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, resp)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	a := &SemanticScholarAdapter{Client: testClient(ts)}
	records, err := a.Search(context.Background(), "scaling laws", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	r := records[0]
	if r.Source != types.SourceSemanticScholar {
		t.Errorf("Source = %q", r.Source)
	}
	if r.Year != 2020 {
		t.Errorf("Year = %d, want 2020", r.Year)
	}
	if r.Citations != 4200 {
		t.Errorf("Citations = %d, want 4200", r.Citations)
	}
	if r.DOI != "10.5555/scaling" {
		t.Errorf("DOI = %q", r.DOI)
	}
	if r.PDFURL != "https://arxiv.org/pdf/2001.08361" {
		t.Errorf("PDFURL = %q", r.PDFURL)
	}
	if !r.FullTextAvailable {
		t.Error("FullTextAvailable = false, want true")
	}
	if r.Journal != "NeurIPS" {
		t.Errorf("Journal = %q, want NeurIPS", r.Journal)
	}
	if len(r.Authors) != 2 || r.Authors[1] != "Sam McCandlish" {
		t.Errorf("Authors = %v", r.Authors)
	}
}

func TestSemanticSearchVenueFallback(t *testing.T) {
	resp := `{"total":1,"offset":0,"data":[{
		"paperId":"x","title":"P","authors":[],
		"venue":"","publicationVenue":{"name":"Journal of Testing"},
		"externalIds":{}}]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, resp)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	a := &SemanticScholarAdapter{Client: testClient(ts)}
	records, err := a.Search(context.Background(), "test", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if records[0].Journal != "Journal of Testing" {
		t.Errorf("Journal = %q, want publicationVenue fallback", records[0].Journal)
	}
	// No openAccessPdf means no full text.
	if records[0].FullTextAvailable {
		t.Error("FullTextAvailable = true, want false")
	}
	// No url means a paper-page URL is synthesized from the ID.
	if records[0].URL != "https://www.semanticscholar.org/paper/x" {
		t.Errorf("URL = %q", records[0].URL)
	}
	// No authors means the placeholder.
	if len(records[0].Authors) != 1 || records[0].Authors[0] != types.UnknownAuthors {
		t.Errorf("Authors = %v, want placeholder", records[0].Authors)
	}
}

func TestSemanticSearchEmptyQuery(t *testing.T) {
	a := &SemanticScholarAdapter{Client: &Client{HTTP: http.DefaultClient}}
	if _, err := a.Search(context.Background(), "", 5); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSemanticSearchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{invalid json`)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	a := &SemanticScholarAdapter{Client: testClient(ts)}
	_, err := a.Search(context.Background(), "test", 5)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("error = %q, want substring 'parsing'", err.Error())
	}
}

func TestSemanticScholarAdapterIdentity(t *testing.T) {
	a := &SemanticScholarAdapter{}
	if a.Name() != "semantic_scholar" {
		t.Errorf("Name() = %q", a.Name())
	}
	if a.Prior() != 0.7 {
		t.Errorf("Prior() = %v, want 0.7", a.Prior())
	}
}
