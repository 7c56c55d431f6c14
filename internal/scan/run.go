package scan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/loc-audit/models"
	"github.com/dtnitsch/loc-audit/pkg/analyzer"
	"github.com/dtnitsch/loc-audit/pkg/crawler"
	"github.com/dtnitsch/loc-audit/pkg/scoring"
)

// Run executes the crawl-extract-analyze pipeline: crawl the site within the
// page budget, analyze each page in crawl order, resolve translation
// suggestions for fallback/mixed findings, and fold everything into
// per-language score reports. Page-level failures never abort the run; only
// an invalid configuration can.
func Run(ctx context.Context, cfg *models.Config, deps Deps, logger *slog.Logger) (*RunResult, error) {
	c, err := crawler.New(cfg.StartURL, cfg.MaxPages, deps.Renderer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize crawler: %w", err)
	}

	logger.Info("Starting crawl", "start_url", cfg.StartURL, "max_pages", cfg.MaxPages)
	pages := c.Run(ctx)
	logger.Info("Crawl finished", "pages", len(pages))

	a := analyzer.New(cfg.BaseLanguage, deps.Detector, logger)
	targets := cfg.TargetLanguages()

	result := &RunResult{PagesCrawled: len(pages)}
	var totals scoring.Totals

	for i := range pages {
		page := &pages[i]
		logger.Info("Analyzing page", "url", page.URL, "page", i+1, "total", len(pages))

		analysis := a.AnalyzePage(page)

		suggestions := resolveSuggestions(ctx, deps, analysis.Issues, targets, logger)

		for j := range analysis.Issues {
			issue := &analysis.Issues[j]
			issue.URL = page.URL
			attachSuggestions(issue, suggestions, targets)
			totals.Add(*issue, len(issue.Suggestions) > 0)
			result.Issues = append(result.Issues, *issue)
		}

		result.Records = append(result.Records, *page)
		result.Pages = append(result.Pages, *analysis)
	}

	result.Reports = totals.Reports(targets)
	return result, nil
}

// resolveSuggestions batch-translates the distinct fallback/mixed texts of
// one page into every target language. The per-language maps are partial:
// a missing entry means that lookup failed.
func resolveSuggestions(ctx context.Context, deps Deps, issues []models.Issue, targets []string, logger *slog.Logger) map[string]map[string]string {
	var texts []string
	seen := make(map[string]bool)
	for _, issue := range issues {
		if !needsSuggestion(issue.Type) || seen[issue.Text] {
			continue
		}
		seen[issue.Text] = true
		texts = append(texts, issue.Text)
	}

	byLang := make(map[string]map[string]string, len(targets))
	if len(texts) == 0 {
		return byLang
	}

	logger.Info("Batch translating unique items", "count", len(texts), "languages", len(targets))
	for _, lang := range targets {
		byLang[lang] = deps.Translator.TranslateBatch(ctx, texts, lang)
	}
	return byLang
}

func attachSuggestions(issue *models.Issue, byLang map[string]map[string]string, targets []string) {
	if !needsSuggestion(issue.Type) {
		return
	}
	for _, lang := range targets {
		translation, ok := byLang[lang][issue.Text]
		if !ok {
			continue
		}
		if issue.Suggestions == nil {
			issue.Suggestions = make(map[string]string, len(targets))
		}
		issue.Suggestions[lang] = translation
	}
}

// needsSuggestion reports whether an issue type represents a probable
// missing translation worth a suggestion lookup.
func needsSuggestion(t models.IssueType) bool {
	return t == models.IssueFallbackText || t == models.IssueMixedLanguage
}
