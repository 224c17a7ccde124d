// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes ranked result records into the formats a
// researcher takes away: BibTeX, CSV, Markdown, and JSON, plus YAML
// result files that can be reloaded later.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// Formats lists the supported export formats.
var Formats = []string{"bibtex", "csv", "markdown", "json"}

// Write serializes records to w in the named format.
func Write(w io.Writer, format string, records []types.Record) error {
	switch format {
	case "bibtex":
		return WriteBibTeX(w, records)
	case "csv":
		return WriteCSV(w, records)
	case "markdown":
		return WriteMarkdown(w, records)
	case "json":
		return WriteJSON(w, records)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename derives a download filename from the query and format.
func Filename(query, format string) string {
	base := unsafeChars.ReplaceAllString(query, "_")
	if len(base) > 50 {
		base = base[:50]
	}
	switch format {
	case "bibtex":
		return base + "_references.bib"
	case "csv":
		return base + "_results.csv"
	case "markdown":
		return base + "_results.md"
	default:
		return base + "_results.json"
	}
}

// WriteBibTeX renders each record as an @article entry.
func WriteBibTeX(w io.Writer, records []types.Record) error {
	for i, r := range records {
		if i > 0 {
			if _, err := fmt.Fprint(w, "\n\n"); err != nil {
				return err
			}
		}

		authors := r.Authors
		if len(authors) == 0 {
			authors = []string{"Unknown"}
		}

		fmt.Fprintf(w, "@article{%s,\n", bibtexKey(r.Title))
		fmt.Fprintf(w, "  title = {%s},\n", r.Title)
		fmt.Fprintf(w, "  author = {%s},\n", strings.Join(authors, " and "))
		fmt.Fprintf(w, "  year = {%s},\n", yearField(r.Year))
		fmt.Fprintf(w, "  journal = {%s},", r.Journal)
		if r.DOI != "" {
			fmt.Fprintf(w, "\n  doi = {%s},", r.DOI)
		}
		if r.URL != "" {
			fmt.Fprintf(w, "\n  url = {%s},", r.URL)
		}
		if _, err := fmt.Fprint(w, "\n  note = {Retrieved from Scholar Hub}\n}"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// bibtexKey derives an entry key from a title.
func bibtexKey(title string) string {
	if len(title) > 50 {
		title = title[:50]
	}
	return strings.ToLower(unsafeChars.ReplaceAllString(title, "_"))
}

// WriteCSV renders records as a spreadsheet with an abstract preview
// column truncated to 200 characters.
func WriteCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	header := []string{"Title", "Authors", "Year", "Source", "Citations", "Reliability Score", "DOI", "URL", "Abstract Preview"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Title,
			strings.Join(r.Authors, "; "),
			yearField(r.Year),
			r.Source,
			strconv.Itoa(r.Citations),
			strconv.FormatFloat(r.DisplayScore(), 'f', 2, 64),
			r.DOI,
			r.URL,
			abstractPreview(r.Abstract),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func abstractPreview(abstract string) string {
	if len(abstract) > 200 {
		return abstract[:200] + "..."
	}
	return abstract
}

// WriteMarkdown renders a ranked reading list.
func WriteMarkdown(w io.Writer, records []types.Record) error {
	if _, err := fmt.Fprintln(w, "# Search Results"); err != nil {
		return err
	}
	for i, r := range records {
		fmt.Fprintf(w, "\n%d. **%s**", i+1, r.Title)
		if r.Year > 0 {
			fmt.Fprintf(w, " (%d)", r.Year)
		}
		fmt.Fprintln(w)
		if len(r.Authors) > 0 {
			fmt.Fprintf(w, "   - Authors: %s\n", strings.Join(r.Authors, ", "))
		}
		fmt.Fprintf(w, "   - Source: %s | Citations: %d | Reliability: %.2f (%s)\n",
			r.Source, r.Citations, r.DisplayScore(), r.ReliabilityLevel)
		if r.URL != "" {
			fmt.Fprintf(w, "   - %s\n", r.URL)
		}
		if r.DOI != "" {
			if _, err := fmt.Fprintf(w, "   - doi:%s\n", r.DOI); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON renders records as indented JSON.
func WriteJSON(w io.Writer, records []types.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// yearField renders an unknown year as an empty string.
func yearField(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}
