// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the source adapters.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-hub/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the aggregation pipeline and its adapters.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults is the maximum number of ranked results to return (default 15).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// AdapterTimeout bounds each adapter call; a slow adapter contributes
	// nothing but does not block the others (default 30s).
	AdapterTimeout time.Duration `json:"adapter_timeout" yaml:"adapter_timeout" mapstructure:"adapter_timeout"`

	// AdapterCeiling caps the per-adapter result budget (default 10).
	AdapterCeiling int `json:"adapter_ceiling" yaml:"adapter_ceiling" mapstructure:"adapter_ceiling"`

	// RateLimit is the sustained per-adapter request rate in requests per
	// second; RateBurst is the token bucket burst size.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `json:"rate_burst" yaml:"rate_burst" mapstructure:"rate_burst"`

	// Adapter toggles.
	EnableArxiv           bool `json:"enable_arxiv" yaml:"enable_arxiv" mapstructure:"enable_arxiv"`
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar" mapstructure:"enable_semantic_scholar"`
	EnableCrossref        bool `json:"enable_crossref" yaml:"enable_crossref" mapstructure:"enable_crossref"`
	EnableDOAJ            bool `json:"enable_doaj" yaml:"enable_doaj" mapstructure:"enable_doaj"`
	EnableWikipedia       bool `json:"enable_wikipedia" yaml:"enable_wikipedia" mapstructure:"enable_wikipedia"`
	EnablePubMed          bool `json:"enable_pubmed" yaml:"enable_pubmed" mapstructure:"enable_pubmed"`
	EnableScholar         bool `json:"enable_scholar" yaml:"enable_scholar" mapstructure:"enable_scholar"`
	EnableInstitutions    bool `json:"enable_institutions" yaml:"enable_institutions" mapstructure:"enable_institutions"`

	// SemanticScholarAPIKey raises Semantic Scholar rate limits (optional).
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// PubMedAPIKey raises NCBI E-utilities rate limits (optional).
	PubMedAPIKey string `json:"pubmed_api_key,omitempty" yaml:"pubmed_api_key,omitempty" mapstructure:"pubmed_api_key"`
}

// CacheConfig holds settings for the per-adapter result cache.
type CacheConfig struct {
	// Enabled turns the cache on. When off every search hits the APIs.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// TTL is how long a cached adapter contribution stays fresh (default 1h).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Host is the address to bind to (default 0.0.0.0).
	Host string `json:"host" yaml:"host" mapstructure:"host"`

	// Port is the HTTP port (default 8080).
	Port int `json:"port" yaml:"port" mapstructure:"port"`

	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is the output format: json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Output is the destination: stdout or stderr.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// LibraryConfig holds settings for the saved-records store.
type LibraryConfig struct {
	// Path is the SQLite database file (default "library/scholar.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// SynthesisConfig holds settings for summary and review generation.
type SynthesisConfig struct {
	// MaxKeyPoints caps the number of extracted key points (default 5).
	MaxKeyPoints int `json:"max_key_points" yaml:"max_key_points" mapstructure:"max_key_points"`
}

// HubConfig groups all component configurations.
type HubConfig struct {
	Search    SearchConfig    `json:"search" yaml:"search" mapstructure:"search"`
	Cache     CacheConfig     `json:"cache" yaml:"cache" mapstructure:"cache"`
	Server    ServerConfig    `json:"server" yaml:"server" mapstructure:"server"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging" mapstructure:"logging"`
	Library   LibraryConfig   `json:"library" yaml:"library" mapstructure:"library"`
	Synthesis SynthesisConfig `json:"synthesis" yaml:"synthesis" mapstructure:"synthesis"`
}

// DefaultHubConfig returns the configuration used when no file or flags
// override it.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "scholar-hub/0.1",
			},
			MaxResults:            15,
			AdapterTimeout:        30 * time.Second,
			AdapterCeiling:        10,
			RateLimit:             3,
			RateBurst:             3,
			EnableArxiv:           true,
			EnableSemanticScholar: true,
			EnableCrossref:        true,
			EnableDOAJ:            true,
			EnableWikipedia:       true,
			EnablePubMed:          true,
			EnableScholar:         false,
			EnableInstitutions:    true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Library: LibraryConfig{
			Path: "library/scholar.db",
		},
		Synthesis: SynthesisConfig{
			MaxKeyPoints: 5,
		},
	}
}
