// Package report writes the scan's output artifacts: score and issue JSON,
// per-language i18n string tables, a CSV export and an HTML summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/loc-audit/models"
)

// Writer drops all artifacts into one output directory.
type Writer struct {
	dir string
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteScores writes the primary result: scores.json.
func (w *Writer) WriteScores(reports []models.ScoreReport) error {
	return w.writeJSON("scores.json", reports)
}

// WriteIssues writes the full detailed issue list: issues.json.
func (w *Writer) WriteIssues(issues []models.Issue) error {
	return w.writeJSON("issues.json", issues)
}

// WriteI18n writes one i18n_<lang>.json per target language containing the
// key -> suggested-translation table, directly usable as a UI string table.
// Issues without a key fall back to a slug of the text so no suggestion is
// dropped.
func (w *Writer) WriteI18n(issues []models.Issue, targetLanguages []string) error {
	for _, lang := range targetLanguages {
		table := make(map[string]string)
		for _, issue := range issues {
			suggestion, ok := issue.Suggestions[lang]
			if !ok || suggestion == "" {
				continue
			}
			key := issue.Key
			if key == "" {
				key = fallbackKey(issue.Text)
			}
			table[key] = suggestion
		}
		if len(table) == 0 {
			continue
		}
		if err := w.writeJSON(fmt.Sprintf("i18n_%s.json", lang), table); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes the flattened issue table with one suggestion column per
// target language.
func (w *Writer) WriteCSV(issues []models.Issue, targetLanguages []string) error {
	f, err := os.Create(filepath.Join(w.dir, "issues.csv"))
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	header := []string{"url", "type", "severity", "text_found", "context", "details"}
	for _, lang := range targetLanguages {
		header = append(header, "suggestion_"+lang)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, issue := range issues {
		row := []string{issue.URL, string(issue.Type), string(issue.Severity), issue.Text, issue.Context, issue.Details}
		for _, lang := range targetLanguages {
			row = append(row, issue.Suggestions[lang])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func (w *Writer) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// fallbackKey derives a key from issue text when the extractor key is empty.
func fallbackKey(text string) string {
	runes := []rune(text)
	if len(runes) > 20 {
		runes = runes[:20]
	}
	key := strings.TrimSpace(string(runes))
	return strings.ToLower(strings.ReplaceAll(key, " ", "_"))
}
