// Package models defines the data structures shared across the crawl,
// analysis and reporting stages.
package models

// ItemType classifies an extracted UI string by its source element.
type ItemType string

const (
	ItemButton       ItemType = "button"
	ItemHeading      ItemType = "heading"
	ItemLabel        ItemType = "label"
	ItemErrorMessage ItemType = "error_message"
	ItemText         ItemType = "text"
)

// ExtractedItem is one user-visible string pulled out of a rendered page.
type ExtractedItem struct {
	Type    ItemType `json:"type"`
	Text    string   `json:"text"`
	Key     string   `json:"key"`
	Context string   `json:"context"` // outer HTML of the source element, capped at 100 chars
}

// PageRecord holds everything extracted from one crawled URL.
// Items are unique by (Type, Text), kept in first-seen order.
type PageRecord struct {
	URL   string          `json:"url"`
	Items []ExtractedItem `json:"items"`
}
