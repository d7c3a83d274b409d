// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibverify/internal/parse"
	"github.com/pdiddy/bibverify/pkg/types"
)

func sampleResults() []types.VerificationResult {
	return []types.VerificationResult{
		{
			Number:       1,
			Type:         types.TypeJournalArticle,
			OriginalText: "García, M. (2020). Deep learning methods. Journal of AI, 5(2), 100-120.",
			Parsed: types.ParsedCitation{
				Type:        types.TypeJournalArticle,
				FirstAuthor: "García",
				AllAuthors:  []string{"García"},
				Year:        "2020",
				Title:       "Deep learning methods",
				DOI:         "10.1000/ai.2020.1",
			},
			CrossRefFound:   true,
			TitleSimilarity: 1.0,
			MatchScore:      100,
			VerifiedDOI:     "10.1000/ai.2020.1",
			VerifiedTitle:   "Deep learning methods",
			VerifiedAuthors: "García Maria",
			VerifiedYear:    "2020",
			Status:          types.StatusVerified,
		},
		{
			Number:       2,
			Type:         types.TypeBook,
			OriginalText: "Kant, I. (1998). Critique of pure reason (P. Guyer, Trans.). Cambridge University Press. (Original work published 1781)",
			Parsed: types.ParsedCitation{
				Type:         types.TypeBook,
				FirstAuthor:  "Kant",
				AllAuthors:   []string{"Kant"},
				Year:         "1998",
				OriginalYear: "1781",
				Title:        "Critique of pure reason",
			},
			CrossRefFound:   true,
			TitleSimilarity: 0.92,
			MatchScore:      95,
			Issues:          []string{"CLASSIC_EDITION_(orig_1781_edit_1998_verified_1998)", types.IssueNoDOI},
			Status:          types.StatusVerified,
		},
		{
			Number:       3,
			Type:         types.TypeJournalArticle,
			OriginalText: "Nguyen, T. (2018). A thoroughly obscure study. Journal of Obscurity, 3, 4-5.",
			Parsed: types.ParsedCitation{
				Type:        types.TypeJournalArticle,
				FirstAuthor: "Nguyen",
				AllAuthors:  []string{"Nguyen"},
				Year:        "2018",
				Title:       "A thoroughly obscure study",
			},
			Issues: []string{types.IssueNotFound, types.IssueNoDOI},
			Status: types.StatusNeedsReview,
		},
		{
			Number:       4,
			Type:         types.TypeAncientText,
			OriginalText: "Plato. (380 BCE). The Republic.",
			Parsed:       types.ParsedCitation{Type: types.TypeAncientText},
			Issues:       []string{"Ancient text (pre-1800) - verification not applicable"},
			Status:       types.StatusAncientText,
		},
	}
}

func TestBuildSummary(t *testing.T) {
	sum := BuildSummary(sampleResults(), types.DefaultMatchConfig())

	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 2, sum.Verified)
	assert.Equal(t, 1, sum.NeedsReview)
	assert.Equal(t, 1, sum.Ancient)
	assert.Equal(t, 1, sum.WithDOI)
	assert.Equal(t, 1, sum.WithOriginalYear)
	assert.Equal(t, 2, sum.CrossRefFound)
	assert.Equal(t, 2, sum.HighSimilarity)
	assert.Equal(t, 2, sum.TypeCounts[types.TypeJournalArticle])
	assert.Equal(t, 1, sum.StatusByType[types.TypeJournalArticle][types.StatusNeedsReview])
	assert.InDelta(t, 50.0, sum.Percent(sum.Verified), 0.001)
}

func TestBuildSummaryEmpty(t *testing.T) {
	sum := BuildSummary(nil, types.DefaultMatchConfig())
	assert.Equal(t, 0, sum.Total)
	assert.Equal(t, 0.0, sum.Percent(3))
}

func TestConfidenceLevel(t *testing.T) {
	assert.Equal(t, "Excellent", ConfidenceLevel(100))
	assert.Equal(t, "Excellent", ConfidenceLevel(90))
	assert.Equal(t, "Good", ConfidenceLevel(75))
	assert.Equal(t, "Fair", ConfidenceLevel(50))
	assert.Equal(t, "Poor", ConfidenceLevel(49))
	assert.Equal(t, "Poor", ConfidenceLevel(0))
}

func TestReviewPriority(t *testing.T) {
	high := types.VerificationResult{Status: types.StatusNeedsReview, MatchScore: 25}
	medium := types.VerificationResult{Status: types.StatusNeedsReview, MatchScore: 60}
	low := types.VerificationResult{Status: types.StatusVerified, MatchScore: 100}

	assert.Equal(t, "HIGH", ReviewPriority(high))
	assert.Equal(t, "MEDIUM", ReviewPriority(medium))
	assert.Equal(t, "LOW", ReviewPriority(low))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "journal_article", records[1][1])
	assert.Equal(t, "García", records[1][3])
	assert.Equal(t, "true", records[1][9])
	assert.Equal(t, "1.000", records[1][10])
	assert.Equal(t, "100", records[1][11])
	assert.Equal(t, "None", records[1][17])
	assert.Equal(t, "VERIFIED", records[1][18])

	assert.Equal(t, "1781", records[2][6])
	assert.Equal(t, "NOT_FOUND_IN_DATABASES; NO_DOI_FOUND", records[3][17])
	assert.Equal(t, "ANCIENT_TEXT", records[4][18])
}

func TestWriteRCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRCSV(&buf, sampleResults(), types.DefaultMatchConfig()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	header := records[0]
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %q missing", name)
		return -1
	}

	// Verified article: confident, no manual check.
	assert.Equal(t, "false", records[1][col("Needs_Manual_Check")])
	assert.Equal(t, "true", records[1][col("Has_DOI")])
	assert.Equal(t, "true", records[1][col("High_Confidence")])
	assert.Equal(t, "Excellent", records[1][col("Confidence_Level")])
	assert.Equal(t, "LOW", records[1][col("Review_Priority")])

	// Classic book edition.
	assert.Equal(t, "true", records[2][col("Is_Book")])
	assert.Equal(t, "true", records[2][col("Is_Translation_or_Classic")])

	// Unverified article with score zero.
	assert.Equal(t, "true", records[3][col("Needs_Manual_Check")])
	assert.Equal(t, "Poor", records[3][col("Confidence_Level")])
	assert.Equal(t, "HIGH", records[3][col("Review_Priority")])

	assert.Equal(t, "true", records[4][col("Is_Ancient")])
}

func TestWriteLog(t *testing.T) {
	results := sampleResults()
	cfg := types.DefaultMatchConfig()
	sum := BuildSummary(results, cfg)

	var buf bytes.Buffer
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, WriteLog(&buf, results, sum, cfg, now))
	out := buf.String()

	assert.Contains(t, out, "BIBLIOGRAPHY VERIFICATION SUMMARY")
	assert.Contains(t, out, "Generated: 2026-03-14 09:26:53")
	assert.Contains(t, out, "Total references checked: 4")
	assert.Contains(t, out, "✓ Verified: 2 (50.0%)")
	assert.Contains(t, out, "⚠  Needs review: 1 (25.0%)")
	assert.Contains(t, out, "⌛ Ancient texts (skipped): 1 (25.0%)")
	assert.Contains(t, out, "High title similarity (≥0.85): 2 (50.0%)")
	assert.Contains(t, out, "journal_article: 2 (50.0%)")
	assert.Contains(t, out, "MATCH SCORE INTERPRETATION FOR PEER REVIEW:")
	assert.Contains(t, out, "Modern sources: ±2 years allowed")
	assert.Contains(t, out, "Ancient texts: <1800")
	assert.Contains(t, out, "Reference #3 (journal_article):")
	assert.Contains(t, out, "Issues: NOT_FOUND_IN_DATABASES; NO_DOI_FOUND")
	assert.Contains(t, out, "QUICK DECISION RULES:")
	assert.NotContains(t, out, "Reference #1 (")
}

func TestWriteLogNoReviewItems(t *testing.T) {
	results := sampleResults()[:1]
	cfg := types.DefaultMatchConfig()

	var buf bytes.Buffer
	require.NoError(t, WriteLog(&buf, results, BuildSummary(results, cfg), cfg, time.Now()))
	assert.Contains(t, buf.String(), "None - all references verified!")
}

func TestWriteFailures(t *testing.T) {
	failures := parse.Failures{}
	failures.Record(3, parse.FailTitle)
	failures.Record(3, parse.FailAuthor)
	failures.Record(1, parse.FailYear)

	var buf bytes.Buffer
	require.NoError(t, WriteFailures(&buf, failures))
	out := buf.String()

	assert.Contains(t, out, "REFERENCES WITH EXTRACTION FAILURES")
	// Ordered by reference number.
	assert.Less(t, strings.Index(out, "Reference #1:"), strings.Index(out, "Reference #3:"))
	assert.Contains(t, out, parse.FailTitle)
}

func TestWriteFailuresEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFailures(&buf, parse.Failures{}))
	assert.Zero(t, buf.Len())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleResults()))
	out := buf.String()

	assert.Contains(t, out, "reference_number: 1")
	assert.Contains(t, out, "extracted_doi: 10.1000/ai.2020.1")
	assert.Contains(t, out, "status: VERIFIED")
	assert.Contains(t, out, "issues: NOT_FOUND_IN_DATABASES; NO_DOI_FOUND")
	// Empty optional fields stay out of the document.
	assert.NotContains(t, out, "verified_doi: \"\"")
}
