// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources implements the bibliographic source adapters. Each
// adapter wraps one external provider behind a common strategy interface
// so the aggregator can fan out over all of them uniformly.
package sources

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/scholar-hub/internal/httputil"
	"github.com/pdiddy/scholar-hub/pkg/types"
)

// abstractUnavailable is the placeholder for sources that return no abstract.
const abstractUnavailable = "Abstract not available"

// Adapter is the strategy interface implemented by each bibliographic
// source. Prior reports the source's base trust score, which the scorer
// uses as a floor.
type Adapter interface {
	Name() string
	Prior() float64
	Search(ctx context.Context, query string, max int) ([]types.Record, error)
}

// Client is the HTTP plumbing shared by the network-backed adapters:
// one http.Client, one token-bucket limiter, one User-Agent.
type Client struct {
	HTTP      *http.Client
	Limiter   *rate.Limiter
	UserAgent string
}

// NewClient builds a shared adapter client from the search configuration.
func NewClient(cfg types.SearchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Limit(cfg.RateLimit)
	if limit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		Limiter:   rate.NewLimiter(limit, burst),
		UserAgent: cfg.UserAgent,
	}
}

// Do waits for a rate-limit token, stamps the User-Agent, and issues the
// request with retry on 429/5xx responses.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if req.Header.Get("User-Agent") == "" && c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return httputil.DoWithRetry(ctx, c.HTTP, req, 0)
}

// ensureAuthors substitutes the placeholder when a source returns no
// author names.
func ensureAuthors(authors []string) []string {
	if len(authors) == 0 {
		return []string{types.UnknownAuthors}
	}
	return authors
}

// orUnavailable substitutes the placeholder for an empty abstract.
func orUnavailable(abstract string) string {
	if abstract == "" {
		return abstractUnavailable
	}
	return abstract
}

// defaultMax applies the fallback result count for adapters called with a
// non-positive budget.
func defaultMax(max int) int {
	if max <= 0 {
		return 10
	}
	return max
}
