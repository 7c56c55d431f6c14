// Package renderer acquires page HTML for the crawler. Two implementations
// exist: a headless-browser renderer for JavaScript-heavy sites and a plain
// HTTP fetcher for server-rendered ones.
package renderer

import (
	"context"
	"time"
)

// DefaultTimeout bounds a single page render. A render that exceeds it is
// treated as a failed fetch for that URL only.
const DefaultTimeout = 30 * time.Second

// Renderer returns the fully rendered HTML for a URL, or an error. Every
// implementation must resolve within its timeout; indefinite blocking is
// not allowed.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}
