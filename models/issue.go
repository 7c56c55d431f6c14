package models

// IssueType identifies the kind of localization defect found for an item.
type IssueType string

const (
	// IssueBrokenPlaceholder flags unbalanced interpolation braces.
	IssueBrokenPlaceholder IssueType = "broken_placeholder"
	// IssueFallbackText flags base-language text on a non-base-language page.
	IssueFallbackText IssueType = "fallback_text"
	// IssueMixedLanguage flags text in a third language, neither the page's
	// dominant language nor the base language.
	IssueMixedLanguage IssueType = "mixed_language"
	// IssueSuspectedMixed is the low-confidence flag for short text on
	// non-base-language pages, where identification cannot be trusted.
	IssueSuspectedMixed IssueType = "suspected_mixed"
)

// Severity grades an issue. It is always derived from the issue type.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityFor maps an issue type to its fixed severity.
func SeverityFor(t IssueType) Severity {
	switch t {
	case IssueBrokenPlaceholder:
		return SeverityHigh
	case IssueFallbackText, IssueMixedLanguage:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Issue is one localization defect tied to one extracted item.
// URL and Suggestions are filled in by the scan orchestrator after analysis;
// the analyzer itself only knows about a single page in isolation.
type Issue struct {
	Type        IssueType         `json:"type"`
	Text        string            `json:"text"`
	Key         string            `json:"key"`
	Severity    Severity          `json:"severity"`
	Context     string            `json:"context"`
	Details     string            `json:"details,omitempty"`
	URL         string            `json:"url,omitempty"`
	Suggestions map[string]string `json:"suggestions,omitempty"` // target language -> suggested translation
}

// PageAnalysis is the analyzer's verdict on one PageRecord.
type PageAnalysis struct {
	URL              string  `json:"url"`
	DetectedLanguage string  `json:"detected_language"`
	Issues           []Issue `json:"issues"`
}

// IssueCounts aggregates issue tallies across an entire crawl.
type IssueCounts struct {
	Missing            int `json:"missing"`
	Fallbacks          int `json:"fallbacks"`
	MixedLanguage      int `json:"mixedLanguage"`
	BrokenPlaceholders int `json:"brokenPlaceholders"`
}

// ScoreReport is the per-target-language health score, 0-100.
type ScoreReport struct {
	Language string      `json:"language"`
	Score    int         `json:"score"`
	Issues   IssueCounts `json:"issues"`
}
