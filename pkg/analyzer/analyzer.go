// Package analyzer classifies extracted UI strings into localization issues
// relative to the page's inferred dominant language.
package analyzer

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/loc-audit/models"
	"github.com/dtnitsch/loc-audit/pkg/langid"
)

const (
	// sampleLen caps the page text sample used for dominant-language
	// inference.
	sampleLen = 1000

	// confidentLen is the minimum text length at which per-item language
	// identification is trusted. Below it, identifiers routinely misfire.
	confidentLen = 15

	// suspectMinLen is the floor below which short text is ignored entirely
	// (single glyphs, icons, counters carry no language signal).
	suspectMinLen = 3
)

// printfSpec matches the format specifiers the secondary placeholder check
// recognizes.
var printfSpec = regexp.MustCompile(`%[sfd@]`)

// Analyzer applies the localization checks. It holds no per-page state, so a
// single instance serves a whole crawl.
type Analyzer struct {
	baseLanguage string
	detector     langid.Detector
	logger       *slog.Logger
}

// New returns an Analyzer that treats baseLanguage as the site's source
// language.
func New(baseLanguage string, detector langid.Detector, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		baseLanguage: baseLanguage,
		detector:     detector,
		logger:       logger,
	}
}

// AnalyzePage infers the page's dominant language and classifies every item.
// Issues come back in item-encounter order; an item yields at most one
// language issue, plus possibly a co-occurring placeholder issue.
func (a *Analyzer) AnalyzePage(page *models.PageRecord) *models.PageAnalysis {
	pageLang := a.dominantLanguage(page)

	var issues []models.Issue
	for _, item := range page.Items {
		issues = append(issues, a.classify(item, pageLang)...)
	}

	return &models.PageAnalysis{
		URL:              page.URL,
		DetectedLanguage: pageLang,
		Issues:           issues,
	}
}

// dominantLanguage runs identification over a truncated concatenation of all
// item texts, falling back to the base language when inconclusive.
func (a *Analyzer) dominantLanguage(page *models.PageRecord) string {
	texts := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		texts = append(texts, item.Text)
	}
	sample := strings.Join(texts, " ")
	if runes := []rune(sample); len(runes) > sampleLen {
		sample = string(runes[:sampleLen])
	}

	lang, ok := a.detector.Identify(sample)
	if !ok {
		a.logger.Debug("Page language inconclusive, assuming base", "url", page.URL, "base", a.baseLanguage)
		return a.baseLanguage
	}
	return lang
}

// classify runs the independent checks on one item.
func (a *Analyzer) classify(item models.ExtractedItem, pageLang string) []models.Issue {
	var issues []models.Issue

	if hasBrokenPlaceholders(item.Text) {
		issues = append(issues, newIssue(models.IssueBrokenPlaceholder, item, ""))
	}
	// A bare % without a recognized specifier is a much weaker signal
	// (percentages, URL escapes) and is deliberately not flagged until real
	// format-string parsing lands. Surfaced at debug level only.
	if hasBarePercent(item.Text) {
		a.logger.Debug("Bare percent sign in text, not flagged", "text", item.Text)
	}

	length := utf8.RuneCountInString(item.Text)
	itemLang, known := a.detector.Identify(item.Text)

	switch {
	case length > confidentLen:
		if known && itemLang != pageLang {
			if itemLang == a.baseLanguage && pageLang != a.baseLanguage {
				issues = append(issues, newIssue(models.IssueFallbackText, item, ""))
			} else {
				details := fmt.Sprintf("Detected %s on %s page", itemLang, pageLang)
				issues = append(issues, newIssue(models.IssueMixedLanguage, item, details))
			}
		}
	case length > suspectMinLen:
		// Identification is unreliable this short, so on non-base pages the
		// item is surfaced for verification no matter what the identifier
		// said.
		if pageLang != a.baseLanguage {
			issues = append(issues, newIssue(models.IssueSuspectedMixed, item, ""))
		}
	}

	return issues
}

func newIssue(t models.IssueType, item models.ExtractedItem, details string) models.Issue {
	return models.Issue{
		Type:     t,
		Text:     item.Text,
		Key:      item.Key,
		Severity: models.SeverityFor(t),
		Context:  item.Context,
		Details:  details,
	}
}

// hasBrokenPlaceholders flags unbalanced interpolation braces, e.g.
// "Hello {{name}".
func hasBrokenPlaceholders(text string) bool {
	return strings.Count(text, "{") != strings.Count(text, "}")
}

// hasBarePercent reports a % with no recognized printf-style specifier
// anywhere in the text. Evaluated but never flagged on its own.
func hasBarePercent(text string) bool {
	return strings.Contains(text, "%") && !printfSpec.MatchString(text)
}
