package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/dtnitsch/loc-audit/models"
)

// maxHTMLIssues caps the issue table in the HTML summary.
const maxHTMLIssues = 100

type htmlData struct {
	Primary    models.ScoreReport
	ScoreClass string
	TotalCount int
	Issues     []htmlIssue
}

type htmlIssue struct {
	Type       string
	TagClass   string
	Text       string
	Suggestion string
	Context    string
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Localization Health Report</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; color: #333; }
  h1 { border-bottom: 2px solid #eaeaea; padding-bottom: 10px; }
  .score-card { background: #f7f7f7; padding: 20px; border-radius: 8px; margin-bottom: 20px; text-align: center; }
  .score { font-size: 48px; font-weight: bold; }
  .score.good { color: #388e3c; }
  .score.bad { color: #d32f2f; }
  table { width: 100%; border-collapse: collapse; margin-top: 10px; }
  th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
  th { background-color: #f8f9fa; }
  .tag { padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; }
  .tag.fallback { background: #fff3cd; color: #856404; }
  .tag.mixed { background: #f8d7da; color: #721c24; }
  .context { color: #666; font-size: 12px; }
</style>
</head>
<body>
<h1>Localization Health Report</h1>

<div class="score-card">
  <div>Overall Score ({{.Primary.Language}})</div>
  <div class="score {{.ScoreClass}}">{{.Primary.Score}} / 100</div>
  <div>
    Missing: {{.Primary.Issues.Missing}} |
    Fallbacks: {{.Primary.Issues.Fallbacks}} |
    Mixed: {{.Primary.Issues.MixedLanguage}} |
    Broken: {{.Primary.Issues.BrokenPlaceholders}}
  </div>
</div>

<h2>Found Issues ({{.TotalCount}})</h2>
<table>
  <thead>
    <tr><th>Type</th><th>Found Text</th><th>Suggestion</th><th>Context</th></tr>
  </thead>
  <tbody>
  {{range .Issues}}
    <tr>
      <td><span class="tag {{.TagClass}}">{{.Type}}</span></td>
      <td>{{.Text}}</td>
      <td>{{.Suggestion}}</td>
      <td class="context">{{.Context}}</td>
    </tr>
  {{end}}
  </tbody>
</table>
</body>
</html>
`))

// WriteHTML renders the human-readable summary: the primary score card and a
// capped issue listing. targetLanguages decides which suggestion is shown
// when an issue has several.
func (w *Writer) WriteHTML(reports []models.ScoreReport, issues []models.Issue, targetLanguages []string) error {
	if len(reports) == 0 {
		return fmt.Errorf("no score reports to render")
	}

	data := htmlData{
		Primary:    reports[0],
		ScoreClass: "good",
		TotalCount: len(issues),
	}
	if data.Primary.Score < 50 {
		data.ScoreClass = "bad"
	}

	capped := issues
	if len(capped) > maxHTMLIssues {
		capped = capped[:maxHTMLIssues]
	}
	for _, issue := range capped {
		data.Issues = append(data.Issues, htmlIssue{
			Type:       string(issue.Type),
			TagClass:   tagClass(issue.Type),
			Text:       truncate(issue.Text, 100),
			Suggestion: firstSuggestion(issue, targetLanguages),
			Context:    truncate(issue.Context, 50),
		})
	}

	f, err := os.Create(filepath.Join(w.dir, "report.html"))
	if err != nil {
		return fmt.Errorf("failed to create HTML report: %w", err)
	}
	defer f.Close()

	if err := htmlTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

func tagClass(t models.IssueType) string {
	if t == models.IssueMixedLanguage {
		return "mixed"
	}
	return "fallback"
}

// firstSuggestion picks the first available suggestion in configured
// language order, keeping the report deterministic.
func firstSuggestion(issue models.Issue, targetLanguages []string) string {
	for _, lang := range targetLanguages {
		if s, ok := issue.Suggestions[lang]; ok {
			return s
		}
	}
	return ""
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
