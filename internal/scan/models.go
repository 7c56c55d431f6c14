package scan

import (
	"github.com/dtnitsch/loc-audit/models"
	"github.com/dtnitsch/loc-audit/pkg/langid"
	"github.com/dtnitsch/loc-audit/pkg/lingo"
	"github.com/dtnitsch/loc-audit/pkg/renderer"
)

// Deps bundles the external collaborators the pipeline drives. Tests inject
// fakes here; production wiring happens in the CLI action.
type Deps struct {
	Renderer   renderer.Renderer
	Detector   langid.Detector
	Translator lingo.Translator
}

// RunResult is everything one scan produced. Records and Pages are parallel,
// in crawl order.
type RunResult struct {
	Records []models.PageRecord
	Pages   []models.PageAnalysis
	Issues  []models.Issue
	Reports []models.ScoreReport

	PagesCrawled int
}
