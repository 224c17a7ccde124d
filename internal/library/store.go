// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists records the user saves from ranked search
// results in a local SQLite database with full-text retrieval.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

const defaultListLimit = 50

// Store manages the saved-records SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// SavedRecord is a Record annotated with library bookkeeping fields.
type SavedRecord struct {
	types.Record `yaml:",inline"`

	// SavedQuery is the search query the record was saved from.
	SavedQuery string `json:"saved_query" yaml:"saved_query"`

	// SavedAt is when the record was first saved. Re-saving an existing
	// record updates its fields but keeps the original timestamp.
	SavedAt time.Time `json:"saved_at" yaml:"saved_at"`
}

// NewStore opens or creates the library database at cfg.Path, creating
// parent directories and the schema as needed.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = types.DefaultHubConfig().Library.Path
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening library database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			abstract TEXT,
			year INTEGER,
			url TEXT,
			pdf_url TEXT,
			doi TEXT,
			citations INTEGER,
			journal TEXT,
			full_text_available INTEGER,
			reliability_score REAL,
			reliability_level TEXT,
			saved_query TEXT,
			saved_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_source ON records(source)`,
		`CREATE INDEX IF NOT EXISTS idx_records_saved_query ON records(saved_query)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(title, abstract, content=records, content_rowid=rowid)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO records_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save upserts records into the library, tagging them with the query they
// came from. Records without an ID get one derived from title, year, and
// source. It returns the number of records written.
func (s *Store) Save(ctx context.Context, query string, records []types.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (id, source, title, authors, abstract, year, url, pdf_url,
			doi, citations, journal, full_text_available, reliability_score,
			reliability_level, saved_query, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source=excluded.source, title=excluded.title, authors=excluded.authors,
			abstract=excluded.abstract, year=excluded.year, url=excluded.url,
			pdf_url=excluded.pdf_url, doi=excluded.doi, citations=excluded.citations,
			journal=excluded.journal, full_text_available=excluded.full_text_available,
			reliability_score=excluded.reliability_score,
			reliability_level=excluded.reliability_level,
			saved_query=excluded.saved_query`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	savedAt := s.now().UTC().Format(time.RFC3339)
	saved := 0
	for _, r := range records {
		if r.ID == "" {
			r.ID = types.RecordID(r.Title, r.Year, r.Source)
		}
		authorsJSON, _ := json.Marshal(r.Authors)
		_, err := stmt.ExecContext(ctx,
			r.ID, r.Source, r.Title, string(authorsJSON), r.Abstract, r.Year,
			r.URL, r.PDFURL, r.DOI, r.Citations, r.Journal,
			boolToInt(r.FullTextAvailable), r.ReliabilityScore, r.ReliabilityLevel,
			query, savedAt,
		)
		if err != nil {
			return saved, fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
		saved++
	}

	return saved, tx.Commit()
}

// ListOptions holds filters for library queries.
type ListOptions struct {
	// Query is an FTS5 full-text search over title and abstract.
	Query string

	// Source filters by origin provider.
	Source string

	// MinScore keeps only records at or above a reliability score.
	MinScore float64

	// MaxResults limits result count. Zero uses the default limit.
	MaxResults int
}

// List returns saved records matching opts. Full-text queries rank by
// relevance; otherwise results come back newest first, then by score.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]SavedRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultListLimit
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.id, r.source, r.title, r.authors, r.abstract, r.year,
				r.url, r.pdf_url, r.doi, r.citations, r.journal,
				r.full_text_available, r.reliability_score, r.reliability_level,
				r.saved_query, r.saved_at
			FROM records_fts
			JOIN records r ON r.rowid = records_fts.rowid
			WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.id, r.source, r.title, r.authors, r.abstract, r.year,
				r.url, r.pdf_url, r.doi, r.citations, r.journal,
				r.full_text_available, r.reliability_score, r.reliability_level,
				r.saved_query, r.saved_at
			FROM records r
			WHERE 1=1`)
	}

	if opts.Source != "" {
		qb.WriteString(` AND r.source = ?`)
		args = append(args, opts.Source)
	}

	if opts.MinScore > 0 {
		qb.WriteString(` AND r.reliability_score >= ?`)
		args = append(args, opts.MinScore)
	}

	if useFTS {
		qb.WriteString(` ORDER BY records_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.saved_at DESC, r.reliability_score DESC`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var results []SavedRecord
	for rows.Next() {
		sr, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, sr)
	}

	return results, rows.Err()
}

// Get returns a single saved record by ID.
func (s *Store) Get(ctx context.Context, id string) (SavedRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, title, authors, abstract, year, url, pdf_url, doi,
			citations, journal, full_text_available, reliability_score,
			reliability_level, saved_query, saved_at
		FROM records WHERE id = ?`, id)

	sr, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return SavedRecord{}, fmt.Errorf("record %s not found", id)
	}
	return sr, err
}

// Delete removes a saved record by ID. Deleting a missing ID is an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %s not found", id)
	}
	return nil
}

// Count returns the number of saved records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (SavedRecord, error) {
	var (
		sr          SavedRecord
		authorsJSON string
		fullText    int
		savedAt     string
	)

	err := row.Scan(
		&sr.ID, &sr.Source, &sr.Title, &authorsJSON, &sr.Abstract, &sr.Year,
		&sr.URL, &sr.PDFURL, &sr.DOI, &sr.Citations, &sr.Journal,
		&fullText, &sr.ReliabilityScore, &sr.ReliabilityLevel,
		&sr.SavedQuery, &savedAt,
	)
	if err == sql.ErrNoRows {
		return SavedRecord{}, err
	}
	if err != nil {
		return SavedRecord{}, fmt.Errorf("scanning row: %w", err)
	}

	json.Unmarshal([]byte(authorsJSON), &sr.Authors)
	sr.FullTextAvailable = fullText != 0
	if t, perr := time.Parse(time.RFC3339, savedAt); perr == nil {
		sr.SavedAt = t
	}

	return sr, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
