// Package scoring folds classified issues into per-language health scores.
package scoring

import "github.com/dtnitsch/loc-audit/models"

// Deduction weights per issue category.
const (
	missingWeight  = 2
	fallbackWeight = 1
	mixedWeight    = 3
	brokenWeight   = 5
)

// Totals accumulates global issue counts across a crawl. Missing counts
// fallback/mixed issues for which a translation suggestion was actually
// obtained, i.e. confirmed-fixable gaps rather than raw occurrences.
type Totals struct {
	Missing  int
	Fallback int
	Mixed    int
	Broken   int
}

// Add tallies one classified issue. suggested reports whether at least one
// translation suggestion was resolved for it.
func (t *Totals) Add(issue models.Issue, suggested bool) {
	switch issue.Type {
	case models.IssueFallbackText:
		t.Fallback++
	case models.IssueMixedLanguage:
		t.Mixed++
	case models.IssueBrokenPlaceholder:
		t.Broken++
	}

	if suggested && (issue.Type == models.IssueFallbackText || issue.Type == models.IssueMixedLanguage) {
		t.Missing++
	}
}

// Score applies the deduction formula, clamped to [0, 100].
func (t *Totals) Score() int {
	score := 100 - missingWeight*t.Missing - fallbackWeight*t.Fallback - mixedWeight*t.Mixed - brokenWeight*t.Broken
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Reports emits one ScoreReport per target language. The same global counts
// apply to every language: classification does not track which language an
// item was mismatched against, so per-language tallies are not available.
func (t *Totals) Reports(targetLanguages []string) []models.ScoreReport {
	score := t.Score()
	counts := models.IssueCounts{
		Missing:            t.Missing,
		Fallbacks:          t.Fallback,
		MixedLanguage:      t.Mixed,
		BrokenPlaceholders: t.Broken,
	}

	reports := make([]models.ScoreReport, 0, len(targetLanguages))
	for _, lang := range targetLanguages {
		reports = append(reports, models.ScoreReport{
			Language: lang,
			Score:    score,
			Issues:   counts,
		})
	}
	return reports
}
