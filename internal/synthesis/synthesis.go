// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesis turns a selected set of result records into derived
// prose: key points, a structured summary, and a review-of-literature
// section. The heuristics are lexical: sentences are scored by query-term
// overlap with a bonus for academic reporting language.
package synthesis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// academicIndicators mark sentences that report findings.
var academicIndicators = []string{
	"study", "research", "found", "results", "conclusion",
	"evidence", "data", "analysis", "significant",
}

// reportingVerbs mark sentences that state claims, used for
// consensus grouping.
var reportingVerbs = []string{
	"found", "showed", "demonstrated", "indicated", "suggested",
	"concluded", "revealed", "confirmed",
}

var (
	citationMarkers = regexp.MustCompile(`\[\d+\]`)
	parentheticals  = regexp.MustCompile(`\([^)]*\)`)
)

// Claim is a finding extracted from source text.
type Claim struct {
	Text             string `json:"text"`
	SupportingSource int    `json:"supporting_sources"`
}

// Result is the outcome of one synthesis run.
type Result struct {
	Summary      string   `json:"summary,omitempty"`
	KeyPoints    []string `json:"key_points,omitempty"`
	Consensus    []Claim  `json:"consensus,omitempty"`
	Unique       []Claim  `json:"unique,omitempty"`
	SourcesCount int      `json:"sources_count"`
}

// Synthesizer produces summaries from record sets.
type Synthesizer struct {
	// MaxKeyPoints bounds the findings list. Zero means 5.
	MaxKeyPoints int
}

// Summarize extracts key points and agreement structure from the
// records and renders a structured summary.
func (s Synthesizer) Summarize(records []types.Record, query string) Result {
	max := s.MaxKeyPoints
	if max <= 0 {
		max = 5
	}

	texts := recordTexts(records)
	keyPoints := KeyPoints(texts, query, max)
	consensus, unique := analyzeAgreement(texts)

	return Result{
		Summary:      renderSummary(keyPoints, consensus, unique),
		KeyPoints:    keyPoints,
		Consensus:    consensus,
		Unique:       unique,
		SourcesCount: len(records),
	}
}

// ReviewSection renders a review-of-related-literature passage citing
// each record in turn.
func (s Synthesizer) ReviewSection(records []types.Record, query string) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Several works address %s.\n\n", query)

	for _, r := range records {
		attribution := attributionFor(r)
		lead := firstSentence(r.Abstract)
		if lead == "" {
			fmt.Fprintf(&b, "%s examined %q.\n\n", attribution, r.Title)
			continue
		}
		fmt.Fprintf(&b, "%s reported that %s\n\n", attribution, lead)
	}

	fmt.Fprintf(&b, "Taken together, these %d works frame the current understanding of %s.\n",
		len(records), query)
	return b.String()
}

// KeyPoints scores every sentence in the texts against the query and
// returns up to max of the highest-scoring ones, deduplicated, in score
// order.
func KeyPoints(texts []string, query string, max int) []string {
	queryTerms := termSet(query)

	type scored struct {
		score    float64
		sentence string
	}
	var candidates []scored

	for _, text := range texts {
		for _, sentence := range splitSentences(text) {
			clean := strings.TrimSpace(parentheticals.ReplaceAllString(
				citationMarkers.ReplaceAllString(sentence, ""), ""))
			if clean == "" {
				continue
			}

			score := overlapScore(queryTerms, clean)
			lower := strings.ToLower(clean)
			for _, ind := range academicIndicators {
				if strings.Contains(lower, ind) {
					score += 0.1
				}
			}

			if score > 0 {
				candidates = append(candidates, scored{score, clean})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	seen := make(map[string]struct{})
	var points []string
	for _, c := range candidates {
		if _, dup := seen[c.sentence]; dup {
			continue
		}
		seen[c.sentence] = struct{}{}
		points = append(points, c.sentence)
		if len(points) >= max {
			break
		}
	}
	return points
}

// analyzeAgreement groups claim sentences by a crude prefix key. Claims
// appearing in more than one grouping are consensus; singletons are
// unique findings.
func analyzeAgreement(texts []string) (consensus, unique []Claim) {
	type group struct {
		text  string
		count int
	}
	groups := make(map[string]*group)
	var order []string

	for _, text := range texts {
		for _, sentence := range splitSentences(text) {
			lower := strings.ToLower(sentence)
			claimLike := false
			for _, v := range reportingVerbs {
				if strings.Contains(lower, v) {
					claimLike = true
					break
				}
			}
			if !claimLike {
				continue
			}

			claim := strings.TrimSpace(citationMarkers.ReplaceAllString(sentence, ""))
			key := strings.ToLower(claim)
			if len(key) > 50 {
				key = key[:50]
			}
			if g, ok := groups[key]; ok {
				g.count++
			} else {
				groups[key] = &group{text: claim, count: 1}
				order = append(order, key)
			}
		}
	}

	for _, key := range order {
		g := groups[key]
		if g.count > 1 {
			consensus = append(consensus, Claim{Text: g.text, SupportingSource: g.count})
		} else {
			unique = append(unique, Claim{Text: g.text, SupportingSource: 1})
		}
	}
	return consensus, unique
}

func renderSummary(keyPoints []string, consensus, unique []Claim) string {
	if len(keyPoints) == 0 && len(consensus) == 0 && len(unique) == 0 {
		return "No synthesizable content found in the selected sources."
	}

	var parts []string
	parts = append(parts, "Based on analysis of multiple academic sources:")

	if len(keyPoints) > 0 {
		parts = append(parts, "\nKey Findings:")
		for i, point := range keyPoints {
			parts = append(parts, fmt.Sprintf("%d. %s", i+1, point))
		}
	}

	if len(consensus) > 0 {
		parts = append(parts, "\nPoints of Consensus:")
		for _, c := range limitClaims(consensus, 3) {
			parts = append(parts, fmt.Sprintf("- %s (supported by %d sources)", c.Text, c.SupportingSource))
		}
	}

	if len(unique) > 0 {
		parts = append(parts, "\nUnique or Contradictory Points:")
		for _, c := range limitClaims(unique, 3) {
			parts = append(parts, fmt.Sprintf("- %s (from a single source)", c.Text))
		}
	}

	return strings.Join(parts, "\n")
}

func limitClaims(claims []Claim, max int) []Claim {
	if len(claims) > max {
		return claims[:max]
	}
	return claims
}

// recordTexts joins each record's title and abstract into one scoring
// unit.
func recordTexts(records []types.Record) []string {
	var texts []string
	for _, r := range records {
		text := strings.TrimSpace(r.Title + ". " + r.Abstract)
		if text != "." && text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

// splitSentences breaks text on terminal punctuation. Abbreviation
// handling is deliberately naive; the scoring tolerates fragments.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func termSet(s string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, f := range strings.Fields(strings.ToLower(s)) {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if f != "" {
			terms[f] = struct{}{}
		}
	}
	return terms
}

// overlapScore is the fraction of query terms present in the sentence.
func overlapScore(queryTerms map[string]struct{}, sentence string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}
	sentenceTerms := termSet(sentence)
	common := 0
	for t := range queryTerms {
		if _, ok := sentenceTerms[t]; ok {
			common++
		}
	}
	return float64(common) / float64(len(queryTerms))
}

// attributionFor renders "Authors (year)" for citations in prose.
func attributionFor(r types.Record) string {
	author := types.UnknownAuthors
	if len(r.Authors) > 0 {
		author = r.Authors[0]
		if len(r.Authors) > 1 {
			author += " et al."
		}
	}
	if r.Year > 0 {
		return fmt.Sprintf("%s (%d)", author, r.Year)
	}
	return author
}

// firstSentence returns the first sentence of a text, lowercased at the
// start so it reads inside a larger sentence.
func firstSentence(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	s := sentences[0]
	if s == "" {
		return ""
	}
	r := []rune(s)
	return strings.ToLower(string(r[0])) + string(r[1:])
}
