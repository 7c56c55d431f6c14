// Package lingo talks to the lingo.dev translation engine to suggest
// translations for missing strings. Without an API key it runs in mock mode
// and fabricates deterministic tagged suggestions instead of calling out.
package lingo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	defaultEndpoint = "https://engine.lingo.dev/i18n"

	// requestTimeout bounds one translation lookup.
	requestTimeout = 15 * time.Second

	// defaultWorkers bounds in-flight batch lookups.
	defaultWorkers = 5
)

// Translator suggests translations for UI strings. TranslateBatch returns a
// partial map: a missing entry means the lookup failed for that text.
type Translator interface {
	Translate(ctx context.Context, text, targetLang, hint string) (string, error)
	TranslateBatch(ctx context.Context, texts []string, targetLang string) map[string]string
}

// Client is the production Translator.
type Client struct {
	apiKey   string
	endpoint string
	mock     bool
	workers  int
	client   *http.Client
	logger   *slog.Logger
}

// NewClient builds a Client. Mock mode is selected automatically when apiKey
// is empty.
func NewClient(apiKey string, workers int, logger *slog.Logger) *Client {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		mock:     apiKey == "",
		workers:  workers,
		client:   &http.Client{Timeout: requestTimeout},
		logger:   logger,
	}
}

// Mock reports whether the client fabricates suggestions locally.
func (c *Client) Mock() bool { return c.mock }

type translateRequest struct {
	SourceLocale string `json:"sourceLocale,omitempty"`
	TargetLocale string `json:"targetLocale"`
	Text         string `json:"text"`
	Context      string `json:"context,omitempty"`
}

type translateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Translate suggests a translation of text into targetLang. hint carries
// optional UI context ("Button on a payment form") for the engine.
func (c *Client) Translate(ctx context.Context, text, targetLang, hint string) (string, error) {
	if c.mock {
		return mockSuggestion(text, targetLang), nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(translateRequest{
		TargetLocale: targetLang,
		Text:         text,
		Context:      hint,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read translation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation service returned status %d", resp.StatusCode)
	}

	var decoded translateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}
	if decoded.Error != "" {
		return "", fmt.Errorf("translation service error: %s", decoded.Error)
	}
	if decoded.Text == "" {
		return "", fmt.Errorf("translation service returned empty suggestion")
	}
	return decoded.Text, nil
}

// TranslateBatch looks up suggestions for a set of distinct texts with a
// fixed-size worker pool. Each worker writes its outcome to the results
// channel; a single collector owns the map, so no two goroutines ever touch
// it concurrently. Failed lookups are simply absent from the result.
func (c *Client) TranslateBatch(ctx context.Context, texts []string, targetLang string) map[string]string {
	results := make(map[string]string, len(texts))
	if len(texts) == 0 {
		return results
	}

	if c.mock {
		for _, text := range texts {
			results[text] = mockSuggestion(text, targetLang)
		}
		return results
	}

	type lookup struct {
		text        string
		translation string
		ok          bool
	}

	jobs := make(chan string, len(texts))
	outcomes := make(chan lookup, len(texts))

	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for text := range jobs {
				translation, err := c.Translate(ctx, text, targetLang, "")
				if err != nil {
					c.logger.Warn("Translation lookup failed", "text", text, "target_lang", targetLang, "error", err)
					outcomes <- lookup{text: text}
					continue
				}
				outcomes <- lookup{text: text, translation: translation, ok: true}
			}
		}()
	}

	for _, text := range texts {
		jobs <- text
	}
	close(jobs)

	wg.Wait()
	close(outcomes)

	for o := range outcomes {
		if o.ok {
			results[o.text] = o.translation
		}
	}
	return results
}

// mockSuggestion is the deterministic stand-in used when no credential is
// configured.
func mockSuggestion(text, targetLang string) string {
	return fmt.Sprintf("[MOCK to %s] %s", targetLang, text)
}
