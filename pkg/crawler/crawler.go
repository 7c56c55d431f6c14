// Package crawler walks a site breadth-first from a start URL, bounded by a
// page budget, and collects one PageRecord per successfully rendered page.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/loc-audit/models"
	"github.com/dtnitsch/loc-audit/pkg/extractor"
	"github.com/dtnitsch/loc-audit/pkg/renderer"
)

// Crawler owns the traversal state for one crawl: the visited set and the
// FIFO frontier. Both are mutated only from the single sequential Run loop,
// so no locking is needed.
type Crawler struct {
	startURL string
	baseHost string
	maxPages int
	renderer renderer.Renderer
	logger   *slog.Logger

	visited map[string]bool
	queued  map[string]bool
	queue   []string
}

// New builds a crawler for startURL with the given page budget.
func New(startURL string, maxPages int, r renderer.Renderer, logger *slog.Logger) (*Crawler, error) {
	parsed, err := url.Parse(startURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid start URL %q", startURL)
	}
	if maxPages <= 0 {
		return nil, fmt.Errorf("page budget must be positive, got %d", maxPages)
	}
	return &Crawler{
		startURL: startURL,
		baseHost: parsed.Host,
		maxPages: maxPages,
		renderer: r,
		logger:   logger,
		visited:  make(map[string]bool),
		queued:   make(map[string]bool),
	}, nil
}

// Run drives the crawl to completion and returns the collected PageRecords
// in crawl order. Per-page failures are logged and skipped; they still
// consume budget but never abort the crawl.
func (c *Crawler) Run(ctx context.Context) []models.PageRecord {
	c.queue = []string{c.startURL}
	c.queued[c.startURL] = true

	var records []models.PageRecord

	for len(c.queue) > 0 && len(c.visited) < c.maxPages {
		u := c.queue[0]
		c.queue = c.queue[1:]
		delete(c.queued, u)

		if c.visited[u] {
			continue
		}
		c.visited[u] = true
		c.logger.Info("Crawling page", "url", u, "visited", len(c.visited), "budget", c.maxPages)

		html, err := c.renderer.Render(ctx, u)
		if err != nil {
			c.logger.Error("Failed to render page", "url", u, "error", err)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			// Unparseable page: record it with no items rather than failing.
			c.logger.Warn("Failed to parse page HTML", "url", u, "error", err)
			records = append(records, models.PageRecord{URL: u})
			continue
		}

		record := extractor.Extract(doc, u)
		records = append(records, *record)
		c.logger.Info("Extracted items", "url", u, "item_count", len(record.Items))

		if len(c.visited) < c.maxPages {
			c.enqueueLinks(extractor.Links(doc, u, c.baseHost))
		}
	}

	return records
}

// enqueueLinks appends newly discovered URLs to the frontier tail, skipping
// anything already visited or already queued. Appending to the tail is what
// makes the traversal breadth-first.
func (c *Crawler) enqueueLinks(links []string) {
	for _, link := range links {
		if c.visited[link] || c.queued[link] {
			continue
		}
		c.queue = append(c.queue, link)
		c.queued[link] = true
	}
}
