// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report aggregates verification results into summary statistics
// and writes the report artifacts: detailed CSV, R-friendly CSV, XLSX
// workbook, YAML export, human-readable summary log, extraction-failure
// log, and a SQLite results store. Pure aggregation; no scoring logic.
package report

import (
	"sort"

	"github.com/pdiddy/bibverify/pkg/types"
)

// Summary holds the aggregate statistics for one verification run.
type Summary struct {
	Total       int
	Verified    int
	NeedsReview int
	Ancient     int

	WithDOI          int
	WithOriginalYear int
	CrossRefFound    int
	HighSimilarity   int

	TypeCounts   map[types.ReferenceType]int
	StatusByType map[types.ReferenceType]map[types.Status]int
}

// BuildSummary computes per-status and per-type counts plus the
// status-by-type crosstab. The high-similarity count uses the
// journal-article threshold from cfg.
func BuildSummary(results []types.VerificationResult, cfg types.MatchConfig) Summary {
	s := Summary{
		Total:        len(results),
		TypeCounts:   make(map[types.ReferenceType]int),
		StatusByType: make(map[types.ReferenceType]map[types.Status]int),
	}
	for _, r := range results {
		switch r.Status {
		case types.StatusVerified:
			s.Verified++
		case types.StatusNeedsReview:
			s.NeedsReview++
		case types.StatusAncientText:
			s.Ancient++
		}
		if r.Parsed.DOI != "" {
			s.WithDOI++
		}
		if r.Parsed.OriginalYear != "" {
			s.WithOriginalYear++
		}
		if r.CrossRefFound {
			s.CrossRefFound++
		}
		if r.TitleSimilarity >= cfg.TitleSimilarityHigh {
			s.HighSimilarity++
		}

		s.TypeCounts[r.Type]++
		if s.StatusByType[r.Type] == nil {
			s.StatusByType[r.Type] = make(map[types.Status]int)
		}
		s.StatusByType[r.Type][r.Status]++
	}
	return s
}

// Percent returns n as a percentage of the total, or 0 for an empty run.
func (s Summary) Percent(n int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(n) / float64(s.Total) * 100
}

// Types returns the reference types seen in the run, sorted for stable
// report output.
func (s Summary) Types() []types.ReferenceType {
	ts := make([]types.ReferenceType, 0, len(s.TypeCounts))
	for t := range s.TypeCounts {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}

// Confidence tier boundaries for the derived report columns.
const (
	tierExcellent = 90
	tierGood      = 75
	tierFair      = 50
)

// ConfidenceLevel buckets a match score into the tier used by reviewers:
// Excellent (>=90), Good (>=75), Fair (>=50), Poor.
func ConfidenceLevel(score int) string {
	switch {
	case score >= tierExcellent:
		return "Excellent"
	case score >= tierGood:
		return "Good"
	case score >= tierFair:
		return "Fair"
	default:
		return "Poor"
	}
}

// ReviewPriority derives the triage bucket: HIGH for unverified citations
// with a failing score, MEDIUM for other review items, LOW otherwise.
func ReviewPriority(r types.VerificationResult) string {
	switch {
	case r.Status == types.StatusNeedsReview && r.MatchScore < tierFair:
		return "HIGH"
	case r.Status == types.StatusNeedsReview:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// HighConfidence reports whether a citation is safe to cite without
// checking: a good composite score and a strong title match.
func HighConfidence(r types.VerificationResult, cfg types.MatchConfig) bool {
	return r.MatchScore >= tierGood && r.TitleSimilarity >= cfg.TitleSimilarityHigh
}
