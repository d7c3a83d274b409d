// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bibverify pipeline:
// the citation data model flowing from the document source through parsing,
// lookup, and scoring, plus the configuration structs consumed by each stage.
package types

import "strings"

// ReferenceType categorizes a bibliography entry.
type ReferenceType string

const (
	TypeBook           ReferenceType = "book"
	TypeJournalArticle ReferenceType = "journal_article"
	TypeAncientText    ReferenceType = "ancient_text"
	TypeInPress        ReferenceType = "in_press"
)

// Status is the final verification outcome for a citation.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusVerified    Status = "VERIFIED"
	StatusNeedsReview Status = "NEEDS_REVIEW"
	StatusAncientText Status = "ANCIENT_TEXT"
)

// Issue codes appended during scoring and status assignment. The
// YEAR_MISMATCH and CLASSIC_EDITION codes carry parameters and are built
// with fmt.Sprintf at the scoring site.
const (
	IssueNotFound          = "NOT_FOUND_IN_DATABASES"
	IssueLowMatch          = "LOW_MATCH_CONFIDENCE"
	IssueNoDOI             = "NO_DOI_FOUND"
	IssueTitleNotExtracted = "TITLE_NOT_EXTRACTED"
	IssueInPress           = "In press or future publication"
)

// RawCitation is one filtered-in line from the document source.
type RawCitation struct {
	// Number is the 1-based position among the filtered citations.
	Number int

	// Text is the original citation string, untouched.
	Text string
}

// ParsedCitation holds the best-effort metadata extracted from one citation
// string. Every field except Type may be empty; absence is a reportable
// state, not an error.
type ParsedCitation struct {
	Type ReferenceType

	// FirstAuthor is the surname of the first listed author.
	FirstAuthor string

	// AllAuthors lists every extracted author surname in citation order.
	AllAuthors []string

	// Year is the parenthesized publication year as written, e.g. "2020".
	Year string

	// OriginalYear is the original publication year for classics and
	// translations ("Original work published ...").
	OriginalYear string

	Title string
	DOI   string
}

// IsClassic reports whether the citation carries an original publication
// year distinct from its edition year.
func (p ParsedCitation) IsClassic() bool { return p.OriginalYear != "" }

// AuthorName is one author as returned by an external database.
type AuthorName struct {
	Family string `json:"family"`
	Given  string `json:"given"`
}

// ExternalRecord is a normalized lookup result from an external
// bibliographic database. It is produced by the lookup client and consumed
// immediately by the scorer.
type ExternalRecord struct {
	DOI     string
	Title   string
	Authors []AuthorName

	// Year is the resolved publication year: the first non-empty of the
	// print, online, issued, and created date fields.
	Year string
}

// FormatAuthors joins up to max authors as "Family Given" pairs, matching
// the verified-author string used for reporting and author matching.
func (r ExternalRecord) FormatAuthors(max int) string {
	n := len(r.Authors)
	if n > max {
		n = max
	}
	parts := make([]string, 0, n)
	for _, a := range r.Authors[:n] {
		s := strings.TrimSpace(a.Family + " " + a.Given)
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// VerificationResult is the complete outcome for one citation. It is
// created when the citation enters the pipeline, mutated only during
// scoring, and finalized before being appended to the run's result list.
type VerificationResult struct {
	Number       int            `json:"reference_number" yaml:"reference_number"`
	Type         ReferenceType  `json:"reference_type" yaml:"reference_type"`
	OriginalText string         `json:"original_text" yaml:"original_text"`
	Parsed       ParsedCitation `json:"-" yaml:"-"`

	// CrossRefFound and PubMedFound flag which external source produced a
	// record (PubMed is existence-only).
	CrossRefFound bool `json:"crossref_found" yaml:"crossref_found"`
	PubMedFound   bool `json:"pubmed_found" yaml:"pubmed_found"`

	// TitleSimilarity is the sequence-match ratio against the verified
	// title, rounded to three decimals.
	TitleSimilarity float64 `json:"title_similarity" yaml:"title_similarity"`

	// MatchScore is the 0-100 composite confidence score.
	MatchScore int `json:"match_score" yaml:"match_score"`

	VerifiedDOI     string `json:"verified_doi" yaml:"verified_doi"`
	VerifiedTitle   string `json:"verified_title" yaml:"verified_title"`
	VerifiedAuthors string `json:"verified_authors" yaml:"verified_authors"`
	VerifiedYear    string `json:"verified_year" yaml:"verified_year"`

	// Issues holds the ordered, duplicate-free issue codes.
	Issues []string `json:"issues" yaml:"issues"`

	Status Status `json:"status" yaml:"status"`
}

// AddIssue appends code to the issue list unless it is already present.
func (r *VerificationResult) AddIssue(code string) {
	for _, existing := range r.Issues {
		if existing == code {
			return
		}
	}
	r.Issues = append(r.Issues, code)
}

// IssueString renders the issue list for reporting: codes joined with "; ",
// or the explicit "None" marker when the list is empty.
func (r VerificationResult) IssueString() string {
	if len(r.Issues) == 0 {
		return "None"
	}
	return strings.Join(r.Issues, "; ")
}

// AllAuthorString joins the extracted author surnames for reporting.
func (r VerificationResult) AllAuthorString() string {
	return strings.Join(r.Parsed.AllAuthors, ", ")
}
