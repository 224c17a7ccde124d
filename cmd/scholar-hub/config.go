// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-hub/internal/aggregate"
	"github.com/pdiddy/scholar-hub/internal/cache"
	"github.com/pdiddy/scholar-hub/internal/observability"
	"github.com/pdiddy/scholar-hub/internal/secrets"
	"github.com/pdiddy/scholar-hub/internal/sources"
	"github.com/pdiddy/scholar-hub/pkg/types"
)

// loadConfig merges defaults, the config file, and environment overrides
// into a HubConfig, then fills API keys from loaded secrets.
func loadConfig() types.HubConfig {
	cfg := types.DefaultHubConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: config unmarshal failed, using defaults: %v\n", err)
		cfg = types.DefaultHubConfig()
	}

	if cfg.Search.SemanticScholarAPIKey == "" {
		cfg.Search.SemanticScholarAPIKey = loadedSecrets[secrets.SemanticScholarKey]
	}
	if cfg.Search.PubMedAPIKey == "" {
		cfg.Search.PubMedAPIKey = loadedSecrets[secrets.PubMedKey]
	}

	return cfg
}

// buildAdapters constructs the enabled source adapters over one shared
// rate-limited client.
func buildAdapters(cfg types.SearchConfig) []sources.Adapter {
	client := sources.NewClient(cfg)
	semantic := &sources.SemanticScholarAdapter{Client: client, APIKey: cfg.SemanticScholarAPIKey}

	var adapters []sources.Adapter
	if cfg.EnableArxiv {
		adapters = append(adapters, &sources.ArxivAdapter{Client: client})
	}
	if cfg.EnableSemanticScholar {
		adapters = append(adapters, semantic)
	}
	if cfg.EnableCrossref {
		adapters = append(adapters, &sources.CrossrefAdapter{Client: client})
	}
	if cfg.EnableDOAJ {
		adapters = append(adapters, &sources.DOAJAdapter{Client: client})
	}
	if cfg.EnableWikipedia {
		adapters = append(adapters, &sources.WikipediaAdapter{Client: client})
	}
	if cfg.EnablePubMed {
		adapters = append(adapters, &sources.PubMedAdapter{Client: client, APIKey: cfg.PubMedAPIKey})
	}
	if cfg.EnableScholar {
		adapters = append(adapters, &sources.GoogleScholarAdapter{Delegate: semantic})
	}
	if cfg.EnableInstitutions {
		adapters = append(adapters, &sources.InstitutionsAdapter{})
	}
	return adapters
}

// buildPipeline wires adapters, cache, and metrics into an aggregation
// pipeline. Metrics may be nil for one-shot CLI runs.
func buildPipeline(cfg types.HubConfig, logger zerolog.Logger, metrics *observability.Metrics) *aggregate.Pipeline {
	var c *cache.Cache
	if cfg.Cache.Enabled {
		c = cache.New(cfg.Cache.TTL, time.Now)
	}
	return aggregate.New(buildAdapters(cfg.Search), c, cfg.Search, logger, metrics)
}
