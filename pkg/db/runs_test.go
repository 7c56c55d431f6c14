package db

import (
	"testing"

	"github.com/dtnitsch/loc-audit/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestInsertAndListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("https://example.com", "en", []string{"es", "hi"}, 5)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("InsertRun() returned 0 run ID")
	}

	if err := db.FinishRun(runID, 3); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	run := runs[0]
	if run.StartURL != "https://example.com" {
		t.Errorf("run.StartURL = %q", run.StartURL)
	}
	if run.BaseLanguage != "en" {
		t.Errorf("run.BaseLanguage = %q", run.BaseLanguage)
	}
	if len(run.Languages) != 2 || run.Languages[0] != "es" || run.Languages[1] != "hi" {
		t.Errorf("run.Languages = %v, want [es hi]", run.Languages)
	}
	if run.PagesCrawled != 3 {
		t.Errorf("run.PagesCrawled = %d, want 3", run.PagesCrawled)
	}
	if run.FinishedAt == nil {
		t.Error("run.FinishedAt = nil, want set after FinishRun")
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first, err := db.InsertRun("https://a.example.com", "en", []string{"es"}, 5)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	second, err := db.InsertRun("https://b.example.com", "en", []string{"es"}, 5)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != second || runs[1].RunID != first {
		t.Errorf("run order = [%d %d], want [%d %d]", runs[0].RunID, runs[1].RunID, second, first)
	}
}

func TestInsertIssueAndCount(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("https://example.com", "en", []string{"es"}, 5)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	issue := models.Issue{
		Type:     models.IssueFallbackText,
		Text:     "Submit Payment",
		Key:      "submit_payment",
		Severity: models.SeverityMedium,
		Context:  `<button>Submit Payment</button>`,
		URL:      "https://example.com/checkout",
		Suggestions: map[string]string{
			"es": "Enviar pago",
		},
	}
	if err := db.InsertIssue(runID, issue); err != nil {
		t.Fatalf("InsertIssue() error = %v", err)
	}

	count, err := db.CountRunIssues(runID)
	if err != nil {
		t.Fatalf("CountRunIssues() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountRunIssues() = %d, want 1", count)
	}
}

func TestInsertAndGetScores(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("https://example.com", "en", []string{"es", "hi"}, 5)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	reports := []models.ScoreReport{
		{Language: "es", Score: 92, Issues: models.IssueCounts{Fallbacks: 3, BrokenPlaceholders: 1}},
		{Language: "hi", Score: 92, Issues: models.IssueCounts{Fallbacks: 3, BrokenPlaceholders: 1}},
	}
	for _, r := range reports {
		if err := db.InsertScore(runID, r); err != nil {
			t.Fatalf("InsertScore(%s) error = %v", r.Language, err)
		}
	}

	got, err := db.GetRunScores(runID)
	if err != nil {
		t.Fatalf("GetRunScores() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d scores, want 2", len(got))
	}
	for i, r := range reports {
		if got[i].Language != r.Language || got[i].Score != r.Score {
			t.Errorf("scores[%d] = %+v, want %+v", i, got[i], r)
		}
		if got[i].Issues.Fallbacks != 3 || got[i].Issues.BrokenPlaceholders != 1 {
			t.Errorf("scores[%d].Issues = %+v", i, got[i].Issues)
		}
	}
}

func TestInsertPage(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun("https://example.com", "en", []string{"es"}, 5)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	pageID, err := db.InsertPage(runID, "https://example.com/about", "hi", 17)
	if err != nil {
		t.Fatalf("InsertPage() error = %v", err)
	}
	if pageID == 0 {
		t.Error("InsertPage() returned 0 page ID")
	}
}
