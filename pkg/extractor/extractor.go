// Package extractor pulls user-visible UI strings and same-domain links out
// of rendered HTML. It is a pure transform: a document in, a PageRecord and
// a link list out, no side effects.
package extractor

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/loc-audit/models"
)

// maxItemTextLen is the cutoff above which generic text is treated as a
// non-UI blob (embedded code, serialized data) and skipped.
const maxItemTextLen = 1000

// maxContextLen caps the stored outer-HTML context per item.
const maxContextLen = 100

// maxSlugSource is how much of the text feeds the derived key.
const maxSlugSource = 30

// Extract scans a parsed document and returns the deduplicated item set for
// pageURL. Items are unique by (type, text); the first occurrence wins and
// document order is preserved.
func Extract(doc *goquery.Document, pageURL string) *models.PageRecord {
	var items []models.ExtractedItem

	// Interactive elements.
	doc.Find("button, a").Each(func(_ int, s *goquery.Selection) {
		if item, ok := buildItem(s, models.ItemButton); ok {
			items = append(items, item)
		}
	})

	// Headers.
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		if item, ok := buildItem(s, models.ItemHeading); ok {
			items = append(items, item)
		}
	})

	// Generic content-bearing elements.
	doc.Find("label, span, p, div, li, td, th").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" || utf8.RuneCountInString(text) > maxItemTextLen {
			return
		}
		if nonRenderingParent(s) {
			return
		}
		itemType := models.ItemText
		if goquery.NodeName(s) == "label" {
			itemType = models.ItemLabel
		} else if class, _ := s.Attr("class"); strings.Contains(class, "error") {
			itemType = models.ItemErrorMessage
		}
		items = append(items, models.ExtractedItem{
			Type:    itemType,
			Text:    text,
			Key:     deriveKey(s, text),
			Context: elementContext(s),
		})
	})

	return &models.PageRecord{
		URL:   pageURL,
		Items: dedupe(items),
	}
}

// Links resolves every anchor href against pageURL and returns the absolute
// URLs whose host matches baseHost, in document order. Duplicates are left in;
// the crawler deduplicates against its visited and queued sets.
func Links(doc *goquery.Document, pageURL, baseHost string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Host == baseHost {
			links = append(links, resolved.String())
		}
	})
	return links
}

// buildItem assembles an item for the button/heading passes, which share the
// non-empty-text rule but skip the blob-length and ancestor checks.
func buildItem(s *goquery.Selection, itemType models.ItemType) (models.ExtractedItem, bool) {
	text := strings.TrimSpace(s.Text())
	if text == "" {
		return models.ExtractedItem{}, false
	}
	return models.ExtractedItem{
		Type:    itemType,
		Text:    text,
		Key:     deriveKey(s, text),
		Context: elementContext(s),
	}, true
}

// nonRenderingParent reports whether the element sits directly inside an
// element whose content is never rendered.
func nonRenderingParent(s *goquery.Selection) bool {
	switch goquery.NodeName(s.Parent()) {
	case "script", "style", "head", "noscript":
		return true
	}
	return false
}

// deriveKey builds a stable translation key for an element: its id attribute
// if present, then its name attribute, then a slug of the text.
func deriveKey(s *goquery.Selection, text string) string {
	if id, ok := s.Attr("id"); ok && id != "" {
		return id
	}
	if name, ok := s.Attr("name"); ok && name != "" {
		return name
	}
	return slugify(text)
}

// slugify lowercases the first 30 characters of text, maps every
// non-alphanumeric rune to '_' and trims leading/trailing underscores.
func slugify(text string) string {
	runes := []rune(text)
	if len(runes) > maxSlugSource {
		runes = runes[:maxSlugSource]
	}

	var b strings.Builder
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.Trim(strings.ToLower(b.String()), "_")
}

// elementContext returns the element's outer HTML capped at 100 characters,
// enough to locate the string in the page without storing whole subtrees.
func elementContext(s *goquery.Selection) string {
	html, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	runes := []rune(html)
	if len(runes) > maxContextLen {
		runes = runes[:maxContextLen]
	}
	return string(runes)
}

// dedupe drops repeated (type, text) pairs, keeping first-seen order.
func dedupe(items []models.ExtractedItem) []models.ExtractedItem {
	type itemKey struct {
		t    models.ItemType
		text string
	}
	seen := make(map[itemKey]bool, len(items))
	unique := make([]models.ExtractedItem, 0, len(items))
	for _, item := range items {
		k := itemKey{item.Type, item.Text}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, item)
	}
	return unique
}
