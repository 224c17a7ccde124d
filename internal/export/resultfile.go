// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// ResultFile is the on-disk representation of a search and its ranked
// results. A researcher can save a search to a file and reload it later
// without re-querying the upstream APIs.
type ResultFile struct {
	Query      string         `yaml:"query"`
	MaxResults int            `yaml:"max_results"`
	Records    []types.Record `yaml:"records"`
	Summary    ResultSummary  `yaml:"summary"`
}

// ResultSummary stores result statistics and a timestamp.
type ResultSummary struct {
	Total             int       `yaml:"total"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// WriteResultFile saves a search and its results to a YAML file.
func WriteResultFile(path, query string, maxResults int, records []types.Record, duplicatesRemoved int) error {
	rf := ResultFile{
		Query:      query,
		MaxResults: maxResults,
		Records:    records,
		Summary: ResultSummary{
			Total:             len(records),
			DuplicatesRemoved: duplicatesRemoved,
			Timestamp:         time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
