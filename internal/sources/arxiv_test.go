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

const arxivSampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <title>Attention Is All You Need</title>
    <summary>  The dominant sequence transduction models...  </summary>
    <published>2017-06-12T17:57:34Z</published>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
    <link href="http://arxiv.org/abs/1706.03762v7" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/1706.03762v7" rel="related" type="application/pdf"/>
  </entry>
</feed>`

func TestArxivSearchParsesFeed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, arxivSampleFeed)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	a := &ArxivAdapter{Client: testClient(ts)}
	records, err := a.Search(context.Background(), "attention", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	r := records[0]
	if r.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Source != types.SourceArxiv {
		t.Errorf("Source = %q, want %q", r.Source, types.SourceArxiv)
	}
	if r.Year != 2017 {
		t.Errorf("Year = %d, want 2017", r.Year)
	}
	if len(r.Authors) != 2 || r.Authors[0] != "Ashish Vaswani" {
		t.Errorf("Authors = %v", r.Authors)
	}
	if r.PDFURL != "http://arxiv.org/pdf/1706.03762v7" {
		t.Errorf("PDFURL = %q", r.PDFURL)
	}
	if !r.FullTextAvailable {
		t.Error("FullTextAvailable = false, want true")
	}
	if r.Journal != "arXiv preprint" {
		t.Errorf("Journal = %q", r.Journal)
	}
	if strings.HasPrefix(r.Abstract, " ") || strings.HasSuffix(r.Abstract, " ") {
		t.Errorf("Abstract not trimmed: %q", r.Abstract)
	}
	if r.ReliabilityScore != 0.8 {
		t.Errorf("ReliabilityScore = %v, want 0.8", r.ReliabilityScore)
	}
}

func TestArxivSearchRequestParams(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		fmt.Fprint(w, `<feed xmlns="http://www.w3.org/2005/Atom"></feed>`)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	a := &ArxivAdapter{Client: testClient(ts)}
	if _, err := a.Search(context.Background(), "quantum error correction", 7); err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := capturedReq.URL.Query()
	if got := q.Get("search_query"); got != "all:quantum error correction" && got != "all:quantum+error+correction" {
		t.Errorf("search_query = %q", got)
	}
	if got := q.Get("max_results"); got != "7" {
		t.Errorf("max_results = %q, want 7", got)
	}
	if got := q.Get("sortBy"); got != "relevance" {
		t.Errorf("sortBy = %q, want relevance", got)
	}
}

func TestArxivSearchEmptyQuery(t *testing.T) {
	a := &ArxivAdapter{Client: &Client{HTTP: http.DefaultClient}}
	_, err := a.Search(context.Background(), "   ", 5)
	if err == nil {
		t.Fatal("expected error for empty query")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("error = %q, want substring 'empty'", err.Error())
	}
}

func TestArxivSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	a := &ArxivAdapter{Client: testClient(ts)}
	_, err := a.Search(context.Background(), "test", 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "HTTP 400") {
		t.Errorf("error = %q, want substring 'HTTP 400'", err.Error())
	}
}

func TestArxivAdapterIdentity(t *testing.T) {
	a := &ArxivAdapter{}
	if a.Name() != "arxiv" {
		t.Errorf("Name() = %q, want arxiv", a.Name())
	}
	if a.Prior() != 0.8 {
		t.Errorf("Prior() = %v, want 0.8", a.Prior())
	}
}
