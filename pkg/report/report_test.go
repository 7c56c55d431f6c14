package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/loc-audit/models"
)

func testIssues() []models.Issue {
	return []models.Issue{
		{
			Type:     models.IssueFallbackText,
			Text:     "Submit Payment",
			Key:      "submit_payment",
			Severity: models.SeverityMedium,
			Context:  `<button>Submit Payment</button>`,
			URL:      "https://example.com/checkout",
			Suggestions: map[string]string{
				"es": "Enviar pago",
				"hi": "भुगतान भेजें",
			},
		},
		{
			Type:     models.IssueBrokenPlaceholder,
			Text:     "Total: {amount",
			Key:      "total_amount",
			Severity: models.SeverityHigh,
			Context:  `<span>Total: {amount</span>`,
			URL:      "https://example.com/cart",
			Details:  "Unbalanced placeholder braces",
		},
	}
}

func testReports() []models.ScoreReport {
	return []models.ScoreReport{
		{Language: "es", Score: 94, Issues: models.IssueCounts{Missing: 1, Fallbacks: 1, BrokenPlaceholders: 1}},
		{Language: "hi", Score: 94, Issues: models.IssueCounts{Missing: 1, Fallbacks: 1, BrokenPlaceholders: 1}},
	}
}

func TestWriteScores(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.WriteScores(testReports()); err != nil {
		t.Fatalf("WriteScores() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "scores.json"))
	if err != nil {
		t.Fatalf("failed to read scores.json: %v", err)
	}

	var got []models.ScoreReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("scores.json is not valid JSON: %v", err)
	}
	if len(got) != 2 || got[0].Language != "es" || got[0].Score != 94 {
		t.Errorf("scores.json content = %+v", got)
	}
	if got[0].Issues.BrokenPlaceholders != 1 {
		t.Errorf("issue counts not round-tripped: %+v", got[0].Issues)
	}
}

func TestWriteIssues(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.WriteIssues(testIssues()); err != nil {
		t.Fatalf("WriteIssues() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "issues.json"))
	if err != nil {
		t.Fatalf("failed to read issues.json: %v", err)
	}

	var got []models.Issue
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("issues.json is not valid JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d issues, want 2", len(got))
	}
	if got[0].Suggestions["es"] != "Enviar pago" {
		t.Errorf("suggestions not round-tripped: %v", got[0].Suggestions)
	}
}

func TestWriteI18n(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.WriteI18n(testIssues(), []string{"es", "hi"}); err != nil {
		t.Fatalf("WriteI18n() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "i18n_es.json"))
	if err != nil {
		t.Fatalf("failed to read i18n_es.json: %v", err)
	}

	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		t.Fatalf("i18n_es.json is not valid JSON: %v", err)
	}
	if table["submit_payment"] != "Enviar pago" {
		t.Errorf("table[submit_payment] = %q", table["submit_payment"])
	}
	// The placeholder issue has no suggestions and must not appear.
	if _, ok := table["total_amount"]; ok {
		t.Error("unsuggested issue leaked into the i18n table")
	}
}

func TestWriteI18n_SkipsEmptyTables(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	issues := []models.Issue{{Type: models.IssueBrokenPlaceholder, Text: "{oops"}}
	if err := w.WriteI18n(issues, []string{"es"}); err != nil {
		t.Fatalf("WriteI18n() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "i18n_es.json")); !os.IsNotExist(err) {
		t.Error("empty i18n table should not produce a file")
	}
}

func TestWriteI18n_FallbackKey(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	issues := []models.Issue{{
		Type:        models.IssueFallbackText,
		Text:        "Confirm And Continue To Checkout",
		Suggestions: map[string]string{"es": "Confirmar y continuar"},
	}}
	if err := w.WriteI18n(issues, []string{"es"}); err != nil {
		t.Fatalf("WriteI18n() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "i18n_es.json"))
	if err != nil {
		t.Fatalf("failed to read i18n_es.json: %v", err)
	}

	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		t.Fatalf("i18n_es.json is not valid JSON: %v", err)
	}
	// First 20 runes of the text, trimmed, spaces to underscores, lowered.
	if table["confirm_and_continue"] != "Confirmar y continuar" {
		t.Errorf("table = %v, want key confirm_and_continue", table)
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.WriteCSV(testIssues(), []string{"es", "hi"}); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "issues.csv"))
	if err != nil {
		t.Fatalf("failed to open issues.csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse issues.csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 issues", len(rows))
	}

	header := rows[0]
	want := []string{"url", "type", "severity", "text_found", "context", "details", "suggestion_es", "suggestion_hi"}
	if len(header) != len(want) {
		t.Fatalf("header = %v, want %v", header, want)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, header[i], want[i])
		}
	}

	if rows[1][3] != "Submit Payment" || rows[1][6] != "Enviar pago" {
		t.Errorf("first issue row = %v", rows[1])
	}
	// No suggestions resolved for the placeholder issue.
	if rows[2][6] != "" || rows[2][7] != "" {
		t.Errorf("placeholder row carries suggestions: %v", rows[2])
	}
}

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.WriteHTML(testReports(), testIssues(), []string{"es", "hi"}); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.html"))
	if err != nil {
		t.Fatalf("failed to read report.html: %v", err)
	}
	html := string(data)

	if !strings.Contains(html, "94 / 100") {
		t.Error("report missing the primary score")
	}
	if !strings.Contains(html, "Found Issues (2)") {
		t.Error("report missing the issue count")
	}
	if !strings.Contains(html, "Enviar pago") {
		t.Error("report missing the first-language suggestion")
	}
	if !strings.Contains(html, "score good") {
		t.Error("score of 94 should render with the good class")
	}
}

func TestWriteHTML_LowScoreClass(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	reports := []models.ScoreReport{{Language: "es", Score: 31}}
	if err := w.WriteHTML(reports, nil, []string{"es"}); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.html"))
	if err != nil {
		t.Fatalf("failed to read report.html: %v", err)
	}
	if !strings.Contains(string(data), "score bad") {
		t.Error("score of 31 should render with the bad class")
	}
}

func TestWriteHTML_NoReports(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.WriteHTML(nil, nil, nil); err == nil {
		t.Error("WriteHTML() accepted an empty report list")
	}
}
