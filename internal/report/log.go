// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/bibverify/internal/parse"
	"github.com/pdiddy/bibverify/pkg/types"
)

const (
	heavyRule = "======================================================================"
	lightRule = "----------------------------------------------------------------------"
)

// WriteLog writes the human-readable summary: overall statistics, type
// breakdown, the status-by-type crosstab, the score interpretation guide,
// and every citation that needs review.
func WriteLog(w io.Writer, results []types.VerificationResult, sum Summary, cfg types.MatchConfig, now time.Time) error {
	var err error
	p := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}

	p("BIBLIOGRAPHY VERIFICATION SUMMARY\n%s\n", heavyRule)
	p("Generated: %s\n%s\n\n", now.Format("2006-01-02 15:04:05"), heavyRule)

	p("OVERALL STATISTICS:\n%s\n", lightRule)
	p("Total references checked: %d\n", sum.Total)
	p("✓ Verified: %d (%.1f%%)\n", sum.Verified, sum.Percent(sum.Verified))
	p("⚠  Needs review: %d (%.1f%%)\n", sum.NeedsReview, sum.Percent(sum.NeedsReview))
	p("⌛ Ancient texts (skipped): %d (%.1f%%)\n", sum.Ancient, sum.Percent(sum.Ancient))
	p("References with DOI: %d (%.1f%%)\n", sum.WithDOI, sum.Percent(sum.WithDOI))
	p("Classics/translations (original year): %d (%.1f%%)\n", sum.WithOriginalYear, sum.Percent(sum.WithOriginalYear))
	p("Found in CrossRef: %d (%.1f%%)\n", sum.CrossRefFound, sum.Percent(sum.CrossRefFound))
	p("High title similarity (≥%v): %d (%.1f%%)\n\n", cfg.TitleSimilarityHigh, sum.HighSimilarity, sum.Percent(sum.HighSimilarity))

	p("REFERENCE TYPES:\n%s\n", lightRule)
	for _, t := range sum.Types() {
		n := sum.TypeCounts[t]
		p("  %s: %d (%.1f%%)\n", t, n, sum.Percent(n))
	}

	p("\nVERIFICATION STATUS BY REFERENCE TYPE:\n%s\n", lightRule)
	statuses := []types.Status{types.StatusAncientText, types.StatusNeedsReview, types.StatusVerified}
	p("%-16s", "")
	for _, st := range statuses {
		p("%14s", st)
	}
	p("\n")
	for _, t := range sum.Types() {
		p("%-16s", t)
		for _, st := range statuses {
			p("%14d", sum.StatusByType[t][st])
		}
		p("\n")
	}
	p("\n")

	p("MATCH SCORE INTERPRETATION FOR PEER REVIEW:\n%s\n", lightRule)
	p("  90-100: Excellent - Safe to publish as-is\n")
	p("  75-89:  Good - Verify DOI/year before publishing\n")
	p("  50-74:  Fair - Requires manual verification\n")
	p("  <50:    Poor - Do not use without manual verification\n\n")

	p("YEAR MATCHING POLICY:\n%s\n", lightRule)
	p("  Modern sources: ±%d years allowed (early online vs print)\n", cfg.AllowYearDifference)
	p("  Classics/translations: Original year tracked separately\n")
	p("  Ancient texts: <%d (verification skipped)\n\n", cfg.AncientCutoff)

	p("%s\nREFERENCES NEEDING REVIEW:\n%s\n\n", heavyRule, heavyRule)
	anyReview := false
	for _, r := range results {
		if r.Status != types.StatusNeedsReview {
			continue
		}
		anyReview = true
		p("Reference #%d (%s):\n", r.Number, r.Type)
		p("  %s...\n", clip(r.OriginalText, 100))
		p("  Issues: %s\n", r.IssueString())
		p("  Match Score: %d\n", r.MatchScore)
		p("  Title Similarity: %.2f\n", r.TitleSimilarity)
		if r.Parsed.OriginalYear != "" {
			p("  Original Year: %s\n", r.Parsed.OriginalYear)
		}
		p("\n")
	}
	if !anyReview {
		p("None - all references verified!\n\n")
	}

	p("%s\nQUICK DECISION RULES:\n%s\n", heavyRule, heavyRule)
	p("If YEAR_MISMATCH ≤ 2 years AND title similarity > 0.75: Likely OK\n")
	p("If NOT_FOUND_IN_DATABASES but has DOI: Verify DOI is correct\n")
	p("If LOW_MATCH_CONFIDENCE but Is_Book=TRUE: Expected (lower thresholds for books)\n")
	p("If CLASSIC_EDITION: Check that original year aligns with content cited\n")

	return err
}

// WriteFailures writes the extraction-failure log. Writes nothing when the
// registry is empty.
func WriteFailures(w io.Writer, failures parse.Failures) error {
	if len(failures) == 0 {
		return nil
	}
	var err error
	p := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}

	p("REFERENCES WITH EXTRACTION FAILURES\n%s\n\n", heavyRule)
	p("These references have incomplete or problematic metadata extraction.\n")
	p("Review the original citations and consider adjusting extraction patterns.\n\n")
	for _, num := range failures.Numbers() {
		p("Reference #%d:\n", num)
		p("  Issues: %s\n\n", failures.Reasons(num))
	}
	return err
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
