package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser renders pages in a shared headless Chrome instance via the
// DevTools protocol. Close must be called to release the browser.
type Browser struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// NewBrowser launches a headless browser context. The per-page timeout
// defaults to DefaultTimeout when zero.
func NewBrowser(timeout time.Duration) *Browser {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), chromedp.DefaultExecAllocatorOptions[:]...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	return &Browser{
		ctx: ctx,
		cancel: func() {
			cancel()
			allocCancel()
		},
		timeout: timeout,
	}
}

// Render navigates to url, waits for the document body to be ready and
// returns the rendered DOM as HTML.
func (b *Browser) Render(ctx context.Context, url string) (string, error) {
	runCtx, cancel := context.WithTimeout(b.ctx, b.timeout)
	defer cancel()

	// Honor caller cancellation on top of the per-page timeout.
	done := ctx.Done()
	if done != nil {
		go func() {
			select {
			case <-done:
				cancel()
			case <-runCtx.Done():
			}
		}()
	}

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", url, err)
	}
	return html, nil
}

// Close shuts the browser down.
func (b *Browser) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}
