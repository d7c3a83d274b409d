// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/bibverify/pkg/types"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// WriteWorkbook writes the XLSX workbook: a Results sheet mirroring the
// detailed CSV and a Summary sheet with the run statistics.
func WriteWorkbook(path string, results []types.VerificationResult, sum Summary, cfg types.MatchConfig) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("renaming results sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	header := make([]any, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing results header: %w", err)
	}
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			r.Number,
			string(r.Type),
			r.OriginalText,
			r.Parsed.FirstAuthor,
			r.AllAuthorString(),
			r.Parsed.Year,
			r.Parsed.OriginalYear,
			r.Parsed.Title,
			r.Parsed.DOI,
			r.CrossRefFound,
			r.TitleSimilarity,
			r.MatchScore,
			r.PubMedFound,
			r.VerifiedDOI,
			r.VerifiedTitle,
			r.VerifiedAuthors,
			r.VerifiedYear,
			r.IssueString(),
			string(r.Status),
		}
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing results row %d: %w", r.Number, err)
		}
	}

	if err := writeSummarySheet(f, sum, cfg); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sum Summary, cfg types.MatchConfig) error {
	rows := [][]any{
		{"Metric", "Count", "Percent"},
		{"Total references checked", sum.Total, 100.0},
		{"Verified", sum.Verified, sum.Percent(sum.Verified)},
		{"Needs review", sum.NeedsReview, sum.Percent(sum.NeedsReview)},
		{"Ancient texts (skipped)", sum.Ancient, sum.Percent(sum.Ancient)},
		{"References with DOI", sum.WithDOI, sum.Percent(sum.WithDOI)},
		{"Classics/translations", sum.WithOriginalYear, sum.Percent(sum.WithOriginalYear)},
		{"Found in CrossRef", sum.CrossRefFound, sum.Percent(sum.CrossRefFound)},
		{fmt.Sprintf("Title similarity ≥%v", cfg.TitleSimilarityHigh), sum.HighSimilarity, sum.Percent(sum.HighSimilarity)},
		{},
		{"Reference type", "Count", "Percent"},
	}
	for _, t := range sum.Types() {
		n := sum.TypeCounts[t]
		rows = append(rows, []any{string(t), n, sum.Percent(n)})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}
	return nil
}
