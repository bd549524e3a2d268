package kyobo

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Renderer fetches a page through a real browser engine so that
// script-populated markup becomes scrapable. It is injected into the Client
// rather than constructed there, which keeps extraction testable without a
// browser installed.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (string, error)
}

// PlaywrightRenderer renders pages with headless Chromium.
type PlaywrightRenderer struct{}

// Install downloads the browser binaries if they are missing. Callers run
// this once at startup, not per page.
func (r *PlaywrightRenderer) Install() error {
	return playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
}

// Render navigates to pageURL, waits for the network to go idle, and
// returns the rendered markup.
func (r *PlaywrightRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	pw, err := playwright.Run()
	if err != nil {
		return "", fmt.Errorf("failed to start playwright: %w", err)
	}
	defer func() { _ = pw.Stop() }()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     []string{"--no-sandbox", "--disable-dev-shm-usage"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to launch chromium: %w", err)
	}
	defer func() { _ = browser.Close() }()

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Locale:    playwright.String("ko-KR"),
		UserAgent: playwright.String(userAgent),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create browser context: %w", err)
	}
	defer func() { _ = browserCtx.Close() }()

	page, err := browserCtx.NewPage()
	if err != nil {
		return "", fmt.Errorf("failed to open page: %w", err)
	}

	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(45000),
	}); err != nil {
		return "", fmt.Errorf("failed to navigate to %s: %w", pageURL, err)
	}

	content, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read rendered page: %w", err)
	}
	return content, nil
}
