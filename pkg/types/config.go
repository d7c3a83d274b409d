// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bibverify/0.1 (mailto:you@example.edu)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LookupConfig holds settings for the external database lookup stage.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// Email is sent as the mailto parameter on every request for polite
	// pool access. CrossRef and NCBI both ask for a contact address.
	Email string `json:"email" yaml:"email"`

	// NCBIAPIKey is an optional key for higher PubMed rate limits.
	NCBIAPIKey string `json:"ncbi_api_key,omitempty" yaml:"ncbi_api_key,omitempty"`

	// MaxRetries is the retry budget for 429/5xx responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RequestsPerSecond caps the outbound request rate (default 2).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// MatchConfig holds the classification and scoring knobs. Constructed once
// at startup and passed explicitly to the parser and scorer.
type MatchConfig struct {
	// TitleSimilarityHigh and TitleSimilarityLow are the journal-article
	// (and in-press) thresholds for the strong and partial title bonus.
	TitleSimilarityHigh float64 `json:"title_similarity_high" yaml:"title_similarity_high"`
	TitleSimilarityLow  float64 `json:"title_similarity_low" yaml:"title_similarity_low"`

	// BookTitleSimilarityHigh and BookTitleSimilarityLow are the more
	// lenient thresholds applied to books.
	BookTitleSimilarityHigh float64 `json:"book_title_similarity_high" yaml:"book_title_similarity_high"`
	BookTitleSimilarityLow  float64 `json:"book_title_similarity_low" yaml:"book_title_similarity_low"`

	// AllowYearDifference is the tolerated gap between extracted and
	// verified years (early-online vs print editions).
	AllowYearDifference int `json:"allow_year_difference" yaml:"allow_year_difference"`

	// AncientCutoff is the year below which a citation is treated as an
	// ancient text and skipped entirely.
	AncientCutoff int `json:"ancient_cutoff" yaml:"ancient_cutoff"`

	// BookCues are lowercase substrings whose presence classifies a
	// citation as a book (publisher names, "edition", "pp.", etc.).
	BookCues []string `json:"book_cues" yaml:"book_cues"`
}

// OutputConfig holds the report sink paths.
type OutputConfig struct {
	// ReportCSV is the detailed per-citation CSV.
	ReportCSV string `json:"report_csv" yaml:"report_csv"`

	// RReportCSV is the R-friendly CSV with derived boolean columns.
	RReportCSV string `json:"r_report_csv" yaml:"r_report_csv"`

	// LogFile is the human-readable summary.
	LogFile string `json:"log_file" yaml:"log_file"`

	// FailuresFile lists citations with extraction failures.
	FailuresFile string `json:"failures_file" yaml:"failures_file"`

	// WorkbookFile is the XLSX workbook (empty disables it).
	WorkbookFile string `json:"workbook_file" yaml:"workbook_file"`

	// YAMLFile is the structured YAML export (empty disables it).
	YAMLFile string `json:"yaml_file" yaml:"yaml_file"`

	// ResultsDB is the SQLite results database (empty disables it).
	ResultsDB string `json:"results_db" yaml:"results_db"`
}

// VerifyConfig groups all stage configurations for one run.
type VerifyConfig struct {
	// Input is the path to the bibliography document (.txt or .pdf).
	Input string `json:"input" yaml:"input"`

	Lookup LookupConfig `json:"lookup" yaml:"lookup"`
	Match  MatchConfig  `json:"match" yaml:"match"`
	Output OutputConfig `json:"output" yaml:"output"`

	// Debug enables per-citation extraction dumps on the console.
	Debug bool `json:"debug" yaml:"debug"`
}

// DefaultMatchConfig returns the production classification and scoring
// settings.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		TitleSimilarityHigh:     0.85,
		TitleSimilarityLow:      0.70,
		BookTitleSimilarityHigh: 0.75,
		BookTitleSimilarityLow:  0.60,
		AllowYearDifference:     2,
		AncientCutoff:           1800,
		BookCues:                DefaultBookCues(),
	}
}

// DefaultBookCues returns the book-indicator vocabulary: publisher names
// and formatting markers that only appear in book or thesis citations.
func DefaultBookCues() []string {
	return []string{
		"publisher", "press", "edition", "ed.)", "trans.)", "pp.",
		"original work published", "hackett", "oxford university press",
		"prentice-hall", "sage", "wiley", "routledge", "praeger", "ft press",
		"pearson", "mcgraw-hill", "cambridge university press",
		"harvard business review press", "springer", "emerald", "palgrave",
		"taylor & francis", "john wiley & sons", "dissertation", "thesis",
	}
}

// DefaultOutputConfig returns the standard report paths under dir.
func DefaultOutputConfig(dir string) OutputConfig {
	join := func(name string) string {
		if dir == "" {
			return name
		}
		return filepath.Join(dir, name)
	}
	return OutputConfig{
		ReportCSV:    join("verification_report.csv"),
		RReportCSV:   join("verification_for_R.csv"),
		LogFile:      join("verification_log.txt"),
		FailuresFile: join("extraction_failures.txt"),
		WorkbookFile: join("verification_report.xlsx"),
		YAMLFile:     join("verification_report.yaml"),
		ResultsDB:    join("verification.db"),
	}
}

// DefaultLookupConfig returns the polite-access transport settings.
func DefaultLookupConfig(email, userAgent string) LookupConfig {
	return LookupConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   20 * time.Second,
			UserAgent: userAgent,
		},
		Email:             email,
		MaxRetries:        5,
		RequestsPerSecond: 2,
	}
}
