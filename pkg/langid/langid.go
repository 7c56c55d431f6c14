// Package langid wraps lingua-go behind the small Detector interface the
// analyzer consumes, so tests can substitute a scripted detector.
package langid

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector identifies the language of a piece of text. ok is false when
// identification is inconclusive (too short, ambiguous, unsupported script).
type Detector interface {
	Identify(text string) (code string, ok bool)
}

// Lingua is the production Detector backed by lingua-go. The underlying
// detector is deterministic for identical input, which keeps crawl results
// reproducible.
type Lingua struct {
	detector lingua.LanguageDetector
}

// New builds a detector over all languages lingua-go supports.
func New() *Lingua {
	return &Lingua{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// Identify returns the lowercase ISO 639-1 code of the detected language.
func (l *Lingua) Identify(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	language, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}
