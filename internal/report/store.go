// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bibverify/pkg/types"
)

// Store persists verification results to SQLite so runs can be re-rendered
// and queried after the fact.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the results database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening results database: %w", err)
	}
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			input TEXT NOT NULL,
			total INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			reference_number INTEGER NOT NULL,
			reference_type TEXT NOT NULL,
			original_text TEXT NOT NULL,
			extracted_first_author TEXT,
			extracted_all_authors TEXT,
			extracted_year TEXT,
			extracted_original_year TEXT,
			extracted_title TEXT,
			extracted_doi TEXT,
			crossref_found INTEGER NOT NULL,
			title_similarity REAL NOT NULL,
			match_score INTEGER NOT NULL,
			pubmed_found INTEGER NOT NULL,
			verified_doi TEXT,
			verified_title TEXT,
			verified_authors TEXT,
			verified_year TEXT,
			issues TEXT,
			status TEXT NOT NULL,
			PRIMARY KEY (run_id, reference_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_status ON results(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun records a verification run and its results in one transaction,
// returning the new run ID.
func (s *Store) SaveRun(ctx context.Context, input string, startedAt time.Time, results []types.VerificationResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, input, total) VALUES (?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339), input, len(results))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO results (
		run_id, reference_number, reference_type, original_text,
		extracted_first_author, extracted_all_authors, extracted_year,
		extracted_original_year, extracted_title, extracted_doi,
		crossref_found, title_similarity, match_score, pubmed_found,
		verified_doi, verified_title, verified_authors, verified_year,
		issues, status
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		_, err := stmt.ExecContext(ctx,
			runID, r.Number, string(r.Type), r.OriginalText,
			r.Parsed.FirstAuthor, r.AllAuthorString(), r.Parsed.Year,
			r.Parsed.OriginalYear, r.Parsed.Title, r.Parsed.DOI,
			r.CrossRefFound, r.TitleSimilarity, r.MatchScore, r.PubMedFound,
			r.VerifiedDOI, r.VerifiedTitle, r.VerifiedAuthors, r.VerifiedYear,
			r.IssueString(), string(r.Status))
		if err != nil {
			return 0, fmt.Errorf("inserting result %d: %w", r.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// LatestRun returns the most recent run ID, or an error when the database
// holds no runs.
func (s *Store) LatestRun(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no verification runs recorded")
	}
	if err != nil {
		return 0, fmt.Errorf("querying latest run: %w", err)
	}
	return id, nil
}

// Results loads the full result set for a run, ordered by reference number.
func (s *Store) Results(ctx context.Context, runID int64) ([]types.VerificationResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		reference_number, reference_type, original_text,
		extracted_first_author, extracted_all_authors, extracted_year,
		extracted_original_year, extracted_title, extracted_doi,
		crossref_found, title_similarity, match_score, pubmed_found,
		verified_doi, verified_title, verified_authors, verified_year,
		issues, status
	FROM results WHERE run_id = ? ORDER BY reference_number`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []types.VerificationResult
	for rows.Next() {
		var r types.VerificationResult
		var refType, status, allAuthors, issues string
		err := rows.Scan(
			&r.Number, &refType, &r.OriginalText,
			&r.Parsed.FirstAuthor, &allAuthors, &r.Parsed.Year,
			&r.Parsed.OriginalYear, &r.Parsed.Title, &r.Parsed.DOI,
			&r.CrossRefFound, &r.TitleSimilarity, &r.MatchScore, &r.PubMedFound,
			&r.VerifiedDOI, &r.VerifiedTitle, &r.VerifiedAuthors, &r.VerifiedYear,
			&issues, &status)
		if err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		r.Type = types.ReferenceType(refType)
		r.Parsed.Type = r.Type
		r.Status = types.Status(status)
		if allAuthors != "" {
			r.Parsed.AllAuthors = strings.Split(allAuthors, ", ")
		}
		if issues != "" && issues != "None" {
			r.Issues = strings.Split(issues, "; ")
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return results, nil
}

// StatusCounts returns per-status totals for a run.
func (s *Store) StatusCounts(ctx context.Context, runID int64) (map[types.Status]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM results WHERE run_id = ? GROUP BY status`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[types.Status(status)] = n
	}
	return counts, rows.Err()
}
