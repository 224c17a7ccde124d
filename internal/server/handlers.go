// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/scholar-hub/internal/cite"
	"github.com/pdiddy/scholar-hub/internal/export"
	"github.com/pdiddy/scholar-hub/pkg/types"
)

// maxRequestBodySize caps JSON request bodies at 1 MB.
const maxRequestBodySize = 1 << 20

// searchRequest is the JSON request body for running a search.
type searchRequest struct {
	Query            string `json:"query" validate:"required,min=2,max=500"`
	MaxResults       int    `json:"max_results" validate:"omitempty,min=1,max=100"`
	IncludeCitations bool   `json:"include_citations"`
}

// searchResult is a record with optional rendered citations.
type searchResult struct {
	types.Record
	Citations map[string]string `json:"citation_styles,omitempty"`
}

// searchResponse is the JSON response for a search.
type searchResponse struct {
	Query   string         `json:"query"`
	Total   int            `json:"total"`
	Records []searchResult `json:"records"`
}

// synthesizeRequest is the JSON request body for synthesis.
type synthesizeRequest struct {
	Query      string `json:"query" validate:"required,min=2,max=500"`
	MaxResults int    `json:"max_results" validate:"omitempty,min=1,max=100"`
}

// synthesizeResponse carries the synthesis outcome plus the records it
// was built from.
type synthesizeResponse struct {
	Query    string         `json:"query"`
	Summary  string         `json:"summary"`
	Review   string         `json:"review"`
	Records  []types.Record `json:"records"`
	Analysis analysisBody   `json:"analysis"`
}

type analysisBody struct {
	KeyPoints    []string `json:"key_points"`
	Consensus    int      `json:"consensus_points"`
	Unique       int      `json:"unique_points"`
	SourcesCount int      `json:"sources_count"`
}

// exportContentTypes maps export formats to response content types.
var exportContentTypes = map[string]string{
	"bibtex":   "application/x-bibtex",
	"csv":      "text/csv",
	"markdown": "text/markdown",
	"json":     "application/json",
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether to proceed.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, validationMessage(verrs[0]))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}

	return true
}

// searchHandler handles POST /api/v1/search.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	records, total := s.pipeline.AggregateAndRank(r.Context(), req.Query, req.MaxResults)

	results := make([]searchResult, len(records))
	var gen cite.Generator
	for i, rec := range records {
		results[i] = searchResult{Record: rec}
		if req.IncludeCitations {
			results[i].Citations = gen.Generate(rec)
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   req.Query,
		Total:   total,
		Records: results,
	})
}

// synthesizeHandler handles POST /api/v1/synthesize. It runs a search and
// builds a summary and literature review section over the results.
func (s *Server) synthesizeHandler(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	records, _ := s.pipeline.AggregateAndRank(r.Context(), req.Query, req.MaxResults)
	result := s.synth.Summarize(records, req.Query)
	review := s.synth.ReviewSection(records, req.Query)

	writeJSON(w, http.StatusOK, synthesizeResponse{
		Query:   req.Query,
		Summary: result.Summary,
		Review:  review,
		Records: records,
		Analysis: analysisBody{
			KeyPoints:    result.KeyPoints,
			Consensus:    len(result.Consensus),
			Unique:       len(result.Unique),
			SourcesCount: result.SourcesCount,
		},
	})
}

// exportHandler handles POST /api/v1/export/{format}. It runs a search
// and streams the results in the requested export format.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	contentType, ok := exportContentTypes[format]
	if !ok {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("unsupported format %q: choose one of %s", format, strings.Join(export.Formats, ", ")))
		return
	}

	var req searchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	records, _ := s.pipeline.AggregateAndRank(r.Context(), req.Query, req.MaxResults)

	var buf bytes.Buffer
	if err := export.Write(&buf, format, records); err != nil {
		s.logger.Error().Err(err).Str("format", format).Msg("export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(req.Query, format)))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// validationMessage renders a field validation failure in client terms.
func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
