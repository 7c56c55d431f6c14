package renderer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Static fetches HTML with a plain HTTP GET. No JavaScript runs, so sites
// that render their UI client-side will look empty through it.
type Static struct {
	client *http.Client
}

// NewStatic returns a Static renderer. The per-request timeout defaults to
// DefaultTimeout when zero.
func NewStatic(timeout time.Duration) *Static {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Static{
		client: &http.Client{Timeout: timeout},
	}
}

// Render performs the GET and returns the response body.
func (s *Static) Render(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(bodyBytes), nil
}
