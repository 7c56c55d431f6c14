package db

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/loc-audit/models"
)

// RunSummary is one row of the runs listing.
type RunSummary struct {
	RunID        int64
	StartURL     string
	BaseLanguage string
	Languages    []string
	MaxPages     int
	PagesCrawled int
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// InsertRun records the start of a scan and returns the run_id.
func (db *DB) InsertRun(startURL, baseLanguage string, targetLanguages []string, maxPages int) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (start_url, base_language, target_languages, max_pages)
		VALUES (?, ?, ?, ?)
	`, startURL, baseLanguage, strings.Join(targetLanguages, ","), maxPages)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// FinishRun marks a run complete and records how many pages it covered.
func (db *DB) FinishRun(runID int64, pagesCrawled int) error {
	_, err := db.Exec(`
		UPDATE runs SET pages_crawled = ?, finished_at = CURRENT_TIMESTAMP WHERE run_id = ?
	`, pagesCrawled, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// InsertPage records one analyzed page.
func (db *DB) InsertPage(runID int64, url, detectedLanguage string, itemCount int) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO pages (run_id, url, detected_language, item_count)
		VALUES (?, ?, ?, ?)
	`, runID, url, detectedLanguage, itemCount)
	if err != nil {
		return 0, fmt.Errorf("failed to insert page: %w", err)
	}

	pageID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get page ID: %w", err)
	}
	return pageID, nil
}

// InsertIssue records one classified issue, suggestions serialized as JSON.
func (db *DB) InsertIssue(runID int64, issue models.Issue) error {
	var suggestions string
	if len(issue.Suggestions) > 0 {
		data, err := json.Marshal(issue.Suggestions)
		if err != nil {
			return fmt.Errorf("failed to encode suggestions: %w", err)
		}
		suggestions = string(data)
	}

	_, err := db.Exec(`
		INSERT INTO issues (run_id, url, issue_type, severity, text, key, context, details, suggestions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, issue.URL, string(issue.Type), string(issue.Severity), issue.Text, issue.Key, issue.Context, issue.Details, suggestions)
	if err != nil {
		return fmt.Errorf("failed to insert issue: %w", err)
	}
	return nil
}

// InsertScore records one per-language score report.
func (db *DB) InsertScore(runID int64, report models.ScoreReport) error {
	_, err := db.Exec(`
		INSERT INTO scores (run_id, language, score, missing, fallbacks, mixed_language, broken_placeholders)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, report.Language, report.Score,
		report.Issues.Missing, report.Issues.Fallbacks,
		report.Issues.MixedLanguage, report.Issues.BrokenPlaceholders)
	if err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, start_url, base_language, target_languages, max_pages, pages_crawled, started_at, finished_at
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var languages string
		var finished *time.Time
		if err := rows.Scan(&run.RunID, &run.StartURL, &run.BaseLanguage, &languages,
			&run.MaxPages, &run.PagesCrawled, &run.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if languages != "" {
			run.Languages = strings.Split(languages, ",")
		}
		run.FinishedAt = finished
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunScores returns the score reports stored for one run.
func (db *DB) GetRunScores(runID int64) ([]models.ScoreReport, error) {
	rows, err := db.Query(`
		SELECT language, score, missing, fallbacks, mixed_language, broken_placeholders
		FROM scores
		WHERE run_id = ?
		ORDER BY score_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var reports []models.ScoreReport
	for rows.Next() {
		var r models.ScoreReport
		if err := rows.Scan(&r.Language, &r.Score, &r.Issues.Missing, &r.Issues.Fallbacks,
			&r.Issues.MixedLanguage, &r.Issues.BrokenPlaceholders); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// CountRunIssues returns the number of issues stored for one run.
func (db *DB) CountRunIssues(runID int64) (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM issues WHERE run_id = ?", runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count issues: %w", err)
	}
	return count, nil
}
