// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate runs the result pipeline: fan out a query to every
// source adapter, collapse duplicate titles, attach reliability scores,
// and rank what survives.
package aggregate

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-hub/internal/cache"
	"github.com/pdiddy/scholar-hub/internal/observability"
	"github.com/pdiddy/scholar-hub/internal/sources"
	"github.com/pdiddy/scholar-hub/pkg/types"
)

// Pipeline drives one aggregation run per call. All fields are set at
// construction; the pipeline itself is stateless across calls except for
// the shared cache.
type Pipeline struct {
	adapters []sources.Adapter
	cache    *cache.Cache
	scorer   Scorer
	cfg      types.SearchConfig
	log      zerolog.Logger
	metrics  *observability.Metrics
}

// New builds a pipeline over the given adapters. Cache and metrics may
// be nil.
func New(adapters []sources.Adapter, c *cache.Cache, cfg types.SearchConfig, log zerolog.Logger, m *observability.Metrics) *Pipeline {
	return &Pipeline{
		adapters: adapters,
		cache:    c,
		cfg:      cfg,
		log:      log,
		metrics:  m,
	}
}

// WithClock replaces the scorer's clock. For tests.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.scorer.Now = now
	return p
}

// Stats summarizes one aggregation run.
type Stats struct {
	// Total is the number of ranked records returned.
	Total int

	// DuplicatesRemoved counts records collapsed by title deduplication.
	DuplicatesRemoved int
}

// AggregateAndRank queries every adapter concurrently, deduplicates and
// scores the combined results, and returns the top max records with
// their count. Adapter failures degrade to fewer results; the call never
// returns an error. An empty outcome is ([], 0), not a failure.
func (p *Pipeline) AggregateAndRank(ctx context.Context, query string, max int) ([]types.Record, int) {
	ranked, stats := p.Aggregate(ctx, query, max)
	return ranked, stats.Total
}

// Aggregate is AggregateAndRank with run statistics.
func (p *Pipeline) Aggregate(ctx context.Context, query string, max int) ([]types.Record, Stats) {
	if max <= 0 {
		max = p.cfg.MaxResults
	}
	if max <= 0 {
		max = 15
	}
	budget := adapterBudget(max, p.cfg.AdapterCeiling)

	if p.metrics != nil {
		p.metrics.SearchesTotal.Inc()
	}

	type contribution struct {
		name    string
		records []types.Record
	}

	ch := make(chan contribution, len(p.adapters))
	var wg sync.WaitGroup
	for _, a := range p.adapters {
		wg.Add(1)
		go func(a sources.Adapter) {
			defer wg.Done()
			ch <- contribution{name: a.Name(), records: p.callAdapter(ctx, a, query, budget)}
		}(a)
	}
	go func() {
		wg.Wait()
		close(ch)
	}()

	var all []types.Record
	for c := range ch {
		if p.metrics != nil {
			p.metrics.AdapterResults.WithLabelValues(c.name).Add(float64(len(c.records)))
		}
		all = append(all, c.records...)
	}

	deduped, removed := Dedupe(all)
	if removed > 0 {
		p.log.Debug().Int("removed", removed).Msg("duplicates collapsed")
		if p.metrics != nil {
			p.metrics.DuplicatesRemoved.Add(float64(removed))
		}
	}

	for i := range deduped {
		deduped[i] = p.scorer.Score(deduped[i])
	}

	ranked := Rank(deduped, max)
	return ranked, Stats{Total: len(ranked), DuplicatesRemoved: removed}
}

// callAdapter runs a single adapter under its own timeout, consulting
// the cache first. Errors, timeouts, and panics all collapse to an empty
// contribution so one misbehaving source cannot sink the run.
func (p *Pipeline) callAdapter(ctx context.Context, a sources.Adapter, query string, budget int) (records []types.Record) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Str("adapter", a.Name()).Interface("panic", r).Msg("adapter panicked")
			if p.metrics != nil {
				p.metrics.AdapterFailures.WithLabelValues(a.Name()).Inc()
			}
			records = nil
		}
	}()

	key := cache.Key{Adapter: a.Name(), Query: query, Max: budget}
	if p.cache != nil {
		if hit, ok := p.cache.Get(key); ok {
			if p.metrics != nil {
				p.metrics.CacheHits.Inc()
			}
			return hit
		}
		if p.metrics != nil {
			p.metrics.CacheMisses.Inc()
		}
	}

	timeout := p.cfg.AdapterTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := a.Search(actx, query, budget)
	if err != nil {
		p.log.Warn().Err(err).Str("adapter", a.Name()).Msg("adapter failed")
		if p.metrics != nil {
			p.metrics.AdapterFailures.WithLabelValues(a.Name()).Inc()
		}
		return nil
	}

	if len(out) > 0 {
		p.cache.Put(key, out)
	}
	return out
}

// adapterBudget splits the requested maximum across adapters: a third of
// the total, at least one, capped by the per-adapter ceiling.
func adapterBudget(max, ceiling int) int {
	b := max / 3
	if b < 1 {
		b = 1
	}
	if ceiling > 0 && b > ceiling {
		b = ceiling
	}
	return b
}
