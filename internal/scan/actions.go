package scan

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/loc-audit/internal/common"
	"github.com/dtnitsch/loc-audit/models"
	"github.com/dtnitsch/loc-audit/pkg/db"
	"github.com/dtnitsch/loc-audit/pkg/langid"
	"github.com/dtnitsch/loc-audit/pkg/lingo"
	"github.com/dtnitsch/loc-audit/pkg/renderer"
	"github.com/dtnitsch/loc-audit/pkg/report"
	"github.com/urfave/cli/v2"
)

// ScanAction is the entry point of the `scan` command: configuration,
// wiring, pipeline, persistence, exports.
func ScanAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	if cfg.MockTranslations() {
		logger.Warn("No Lingo API key configured, translation suggestions run in mock mode")
	}

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	deps, cleanup := buildDeps(cfg, logger)
	defer cleanup()

	result, err := Run(c.Context, cfg, deps, logger)
	if err != nil {
		return err
	}

	if err := persistRun(database, cfg, result, logger); err != nil {
		// Persistence trouble should not cost the user their reports.
		logger.Error("Failed to persist run", "error", err)
	}

	if err := writeArtifacts(cfg, result); err != nil {
		return err
	}

	logHighlights(logger, result.Issues)

	for _, r := range result.Reports {
		fmt.Printf("%s: %d/100 (missing=%d fallbacks=%d mixed=%d broken=%d)\n",
			r.Language, r.Score, r.Issues.Missing, r.Issues.Fallbacks,
			r.Issues.MixedLanguage, r.Issues.BrokenPlaceholders)
	}
	logger.Info("Scan complete", "pages", result.PagesCrawled, "issues", len(result.Issues), "output_dir", cfg.OutputDir)
	return nil
}

// RunsAction lists previous scan runs and their stored scores.
func RunsAction(c *cli.Context) error {
	database, err := db.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		status := "running"
		if run.FinishedAt != nil {
			status = run.FinishedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("#%d  %s  base=%s targets=%s pages=%d/%d  finished=%s\n",
			run.RunID, run.StartURL, run.BaseLanguage, strings.Join(run.Languages, ","),
			run.PagesCrawled, run.MaxPages, status)

		scores, err := database.GetRunScores(run.RunID)
		if err != nil {
			return err
		}
		for _, s := range scores {
			fmt.Printf("    %s: %d/100\n", s.Language, s.Score)
		}
	}
	return nil
}

// buildConfig loads the YAML config and layers CLI flags on top.
func buildConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("url") {
		cfg.StartURL = c.String("url")
	}
	if c.IsSet("languages") {
		cfg.Languages = strings.Split(c.String("languages"), ",")
		for i := range cfg.Languages {
			cfg.Languages[i] = strings.TrimSpace(cfg.Languages[i])
		}
	}
	if c.IsSet("base-language") {
		cfg.BaseLanguage = c.String("base-language")
	}
	if c.IsSet("max-pages") {
		cfg.MaxPages = c.Int("max-pages")
	}
	if c.IsSet("render-mode") {
		cfg.RenderMode = c.String("render-mode")
	}
	if c.IsSet("api-key") {
		cfg.LingoAPIKey = c.String("api-key")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}

	cfg.StartURL = common.SanitizeURL(cfg.StartURL)
	if cfg.StartURL != "" && !common.ValidateURL(cfg.StartURL) {
		return nil, fmt.Errorf("start URL %q is not a valid http(s) URL", cfg.StartURL)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildDeps wires the production collaborators. The returned cleanup closes
// the browser when one was started.
func buildDeps(cfg *models.Config, logger *slog.Logger) (Deps, func()) {
	cleanup := func() {}

	var r renderer.Renderer
	if cfg.RenderMode == models.RenderModeBrowser {
		browser := renderer.NewBrowser(renderer.DefaultTimeout)
		cleanup = func() { _ = browser.Close() }
		r = browser
	} else {
		r = renderer.NewStatic(renderer.DefaultTimeout)
	}

	return Deps{
		Renderer:   r,
		Detector:   langid.New(),
		Translator: lingo.NewClient(cfg.LingoAPIKey, cfg.Workers, logger),
	}, cleanup
}

func persistRun(database *db.DB, cfg *models.Config, result *RunResult, logger *slog.Logger) error {
	runID, err := database.InsertRun(cfg.StartURL, cfg.BaseLanguage, cfg.TargetLanguages(), cfg.MaxPages)
	if err != nil {
		return err
	}

	for i, page := range result.Pages {
		itemCount := 0
		if i < len(result.Records) {
			itemCount = len(result.Records[i].Items)
		}
		if _, err := database.InsertPage(runID, page.URL, page.DetectedLanguage, itemCount); err != nil {
			logger.Warn("Failed to persist page", "url", page.URL, "error", err)
		}
	}
	for _, issue := range result.Issues {
		if err := database.InsertIssue(runID, issue); err != nil {
			logger.Warn("Failed to persist issue", "key", issue.Key, "error", err)
		}
	}
	for _, score := range result.Reports {
		if err := database.InsertScore(runID, score); err != nil {
			logger.Warn("Failed to persist score", "language", score.Language, "error", err)
		}
	}

	return database.FinishRun(runID, result.PagesCrawled)
}

func writeArtifacts(cfg *models.Config, result *RunResult) error {
	writer, err := report.NewWriter(cfg.OutputDir)
	if err != nil {
		return err
	}

	targets := cfg.TargetLanguages()
	if err := writer.WriteScores(result.Reports); err != nil {
		return err
	}
	if err := writer.WriteIssues(result.Issues); err != nil {
		return err
	}
	if err := writer.WriteI18n(result.Issues, targets); err != nil {
		return err
	}
	if err := writer.WriteCSV(result.Issues, targets); err != nil {
		return err
	}
	if len(result.Reports) > 0 {
		if err := writer.WriteHTML(result.Reports, result.Issues, targets); err != nil {
			return err
		}
	}
	return nil
}

// logHighlights surfaces a handful of example findings so users get a feel
// for the defects without opening the reports.
func logHighlights(logger *slog.Logger, issues []models.Issue) {
	highlight := func(t models.IssueType, label string) {
		var examples []string
		for _, issue := range issues {
			if issue.Type != t {
				continue
			}
			text := issue.Text
			if runes := []rune(text); len(runes) > 50 {
				text = string(runes[:50]) + "..."
			}
			examples = append(examples, text)
			if len(examples) == 5 {
				break
			}
		}
		if len(examples) > 0 {
			logger.Info(label, "examples", examples)
		}
	}

	highlight(models.IssueFallbackText, "Top fallback text findings")
	highlight(models.IssueMixedLanguage, "Top mixed language findings")
}
