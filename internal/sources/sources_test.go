// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// testClient builds a Client wired to an httptest server with an
// unlimited rate limiter.
func testClient(ts *httptest.Server) *Client {
	return &Client{
		HTTP:      ts.Client(),
		Limiter:   rate.NewLimiter(rate.Inf, 1),
		UserAgent: "scholar-hub-test/1.0",
	}
}

func TestClientDoSetsUserAgent(t *testing.T) {
	var captured string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Get("User-Agent")
	}))
	defer ts.Close()

	c := testClient(ts)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if captured != "scholar-hub-test/1.0" {
		t.Errorf("User-Agent = %q, want %q", captured, "scholar-hub-test/1.0")
	}
}

func TestClientDoKeepsExplicitUserAgent(t *testing.T) {
	var captured string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Get("User-Agent")
	}))
	defer ts.Close()

	c := testClient(ts)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("User-Agent", "custom/2.0")
	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if captured != "custom/2.0" {
		t.Errorf("User-Agent = %q, want %q", captured, "custom/2.0")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.SearchConfig{})
	if c.HTTP.Timeout <= 0 {
		t.Errorf("Timeout = %v, want positive default", c.HTTP.Timeout)
	}
	if c.Limiter.Limit() != rate.Inf {
		t.Errorf("Limit = %v, want Inf when unconfigured", c.Limiter.Limit())
	}
}

func TestEnsureAuthors(t *testing.T) {
	if got := ensureAuthors(nil); len(got) != 1 || got[0] != types.UnknownAuthors {
		t.Errorf("ensureAuthors(nil) = %v, want placeholder", got)
	}
	if got := ensureAuthors([]string{"A. Turing"}); len(got) != 1 || got[0] != "A. Turing" {
		t.Errorf("ensureAuthors = %v, want passthrough", got)
	}
}
