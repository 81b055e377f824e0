package db

import (
	"fmt"
	"time"
)

// Run is the header row for one report run.
type Run struct {
	RunID            string
	GeneratedAt      time.Time
	JoinMode         string
	Live             bool
	Fields           string
	Records          int
	SkippedQueryRows int
	SkippedPageRows  int
	JoinMisses       int
	FetchFailures    int
	OverallScore     float64
	SummaryJSON      string
}

// CoverageRow is one report row. Nil field flags mean the field was not
// tracked in the run.
type CoverageRow struct {
	Query             string
	URL               string
	Title             *bool
	MetaDescription   *bool
	H1                *bool
	H2                *bool
	Body              *bool
	MatchedFieldCount int
	CoverageScore     float64
	Impressions       *float64
	Clicks            *float64
	Position          *float64
}

// InsertReport writes a run and its rows in one transaction.
func (db *DB) InsertReport(run Run, rows []CoverageRow) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (run_id, generated_at, join_mode, live, fields, records,
			skipped_query_rows, skipped_page_rows, join_misses, fetch_failures, overall_score, summary_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.RunID, run.GeneratedAt.UTC(), run.JoinMode, run.Live, run.Fields, run.Records,
		run.SkippedQueryRows, run.SkippedPageRows, run.JoinMisses, run.FetchFailures, run.OverallScore, run.SummaryJSON)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO coverage_rows (run_id, position_in_report, query, url, title, meta_description, h1, h2, body,
			matched_field_count, coverage_score, impressions, clicks, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		_, err := stmt.Exec(run.RunID, i, r.Query, r.URL, r.Title, r.MetaDescription, r.H1, r.H2, r.Body,
			r.MatchedFieldCount, r.CoverageScore, r.Impressions, r.Clicks, r.Position)
		if err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit report: %w", err)
	}
	return nil
}

// GetRows returns a run's rows in report order.
func (db *DB) GetRows(runID string) ([]CoverageRow, error) {
	rs, err := db.Query(`
		SELECT query, url, title, meta_description, h1, h2, body,
			matched_field_count, coverage_score, impressions, clicks, position
		FROM coverage_rows
		WHERE run_id = ?
		ORDER BY position_in_report
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rs.Close()

	var out []CoverageRow
	for rs.Next() {
		var r CoverageRow
		if err := rs.Scan(&r.Query, &r.URL, &r.Title, &r.MetaDescription, &r.H1, &r.H2, &r.Body,
			&r.MatchedFieldCount, &r.CoverageScore, &r.Impressions, &r.Clicks, &r.Position); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rs.Err()
}

// CountRuns returns how many runs the file holds.
func (db *DB) CountRuns() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}
