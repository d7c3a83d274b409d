// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	yaml "go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibverify/pkg/types"
)

// csvHeader is the column order of the detailed report CSV. The R export
// appends its derived columns after these.
var csvHeader = []string{
	"Reference_Number",
	"Reference_Type",
	"Original_Text",
	"Extracted_First_Author",
	"Extracted_All_Authors",
	"Extracted_Year",
	"Extracted_Original_Year",
	"Extracted_Title",
	"Extracted_DOI",
	"CrossRef_Found",
	"Title_Similarity",
	"CrossRef_Match_Score",
	"PubMed_Found",
	"Verified_DOI",
	"Verified_Title",
	"Verified_Authors",
	"Verified_Year",
	"Issues_Detected",
	"Status",
}

var rHeader = append(append([]string{}, csvHeader...),
	"Needs_Manual_Check",
	"Has_DOI",
	"High_Confidence",
	"Is_Book",
	"Is_Ancient",
	"Is_Translation_or_Classic",
	"Confidence_Level",
	"Review_Priority",
)

func baseRow(r types.VerificationResult) []string {
	return []string{
		strconv.Itoa(r.Number),
		string(r.Type),
		r.OriginalText,
		r.Parsed.FirstAuthor,
		r.AllAuthorString(),
		r.Parsed.Year,
		r.Parsed.OriginalYear,
		r.Parsed.Title,
		r.Parsed.DOI,
		strconv.FormatBool(r.CrossRefFound),
		strconv.FormatFloat(r.TitleSimilarity, 'f', 3, 64),
		strconv.Itoa(r.MatchScore),
		strconv.FormatBool(r.PubMedFound),
		r.VerifiedDOI,
		r.VerifiedTitle,
		r.VerifiedAuthors,
		r.VerifiedYear,
		r.IssueString(),
		string(r.Status),
	}
}

// WriteCSV writes the detailed per-citation report.
func WriteCSV(w io.Writer, results []types.VerificationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write(baseRow(r)); err != nil {
			return fmt.Errorf("writing csv row %d: %w", r.Number, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRCSV writes the analysis-friendly CSV: the detailed columns plus
// boolean flags and triage buckets that spare downstream scripts from
// re-deriving them.
func WriteRCSV(w io.Writer, results []types.VerificationResult, cfg types.MatchConfig) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range results {
		row := append(baseRow(r),
			strconv.FormatBool(r.Status == types.StatusNeedsReview),
			strconv.FormatBool(r.Parsed.DOI != ""),
			strconv.FormatBool(HighConfidence(r, cfg)),
			strconv.FormatBool(r.Type == types.TypeBook),
			strconv.FormatBool(r.Type == types.TypeAncientText),
			strconv.FormatBool(r.Parsed.IsClassic()),
			ConfidenceLevel(r.MatchScore),
			ReviewPriority(r),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", r.Number, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// yamlEntry flattens one verification result for the YAML export.
type yamlEntry struct {
	Number          int     `yaml:"reference_number"`
	Type            string  `yaml:"reference_type"`
	Text            string  `yaml:"original_text"`
	FirstAuthor     string  `yaml:"extracted_first_author,omitempty"`
	AllAuthors      string  `yaml:"extracted_all_authors,omitempty"`
	Year            string  `yaml:"extracted_year,omitempty"`
	OriginalYear    string  `yaml:"extracted_original_year,omitempty"`
	Title           string  `yaml:"extracted_title,omitempty"`
	DOI             string  `yaml:"extracted_doi,omitempty"`
	CrossRefFound   bool    `yaml:"crossref_found"`
	TitleSimilarity float64 `yaml:"title_similarity"`
	MatchScore      int     `yaml:"match_score"`
	PubMedFound     bool    `yaml:"pubmed_found"`
	VerifiedDOI     string  `yaml:"verified_doi,omitempty"`
	VerifiedTitle   string  `yaml:"verified_title,omitempty"`
	VerifiedAuthors string  `yaml:"verified_authors,omitempty"`
	VerifiedYear    string  `yaml:"verified_year,omitempty"`
	Issues          string  `yaml:"issues"`
	Status          string  `yaml:"status"`
}

// WriteYAML writes the full result set as a YAML document, one entry per
// citation.
func WriteYAML(w io.Writer, results []types.VerificationResult) error {
	entries := make([]yamlEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, yamlEntry{
			Number:          r.Number,
			Type:            string(r.Type),
			Text:            r.OriginalText,
			FirstAuthor:     r.Parsed.FirstAuthor,
			AllAuthors:      r.AllAuthorString(),
			Year:            r.Parsed.Year,
			OriginalYear:    r.Parsed.OriginalYear,
			Title:           r.Parsed.Title,
			DOI:             r.Parsed.DOI,
			CrossRefFound:   r.CrossRefFound,
			TitleSimilarity: r.TitleSimilarity,
			MatchScore:      r.MatchScore,
			PubMedFound:     r.PubMedFound,
			VerifiedDOI:     r.VerifiedDOI,
			VerifiedTitle:   r.VerifiedTitle,
			VerifiedAuthors: r.VerifiedAuthors,
			VerifiedYear:    r.VerifiedYear,
			Issues:          r.IssueString(),
			Status:          string(r.Status),
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding yaml export: %w", err)
	}
	return enc.Close()
}
