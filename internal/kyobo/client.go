// Package kyobo talks to the Kyobo Book Centre storefront: keyword search,
// detail-page scraping, and best-candidate resolution for a free-text title.
package kyobo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sehyun-dev/shelfsync/internal/models"
)

const (
	defaultSearchURL       = "https://search.kyobobook.co.kr/search?keyword="
	defaultMobileSearchURL = "https://m.kyobobook.co.kr/search?keyword="
	defaultDetailBaseURL   = "https://product.kyobobook.co.kr/detail"

	// Desktop Chrome UA; the storefront serves a stripped page to unknown agents.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Client fetches and scrapes storefront pages. All calls are blocking and
// sequential with fixed timeouts; there is no retry and no cache.
type Client struct {
	SearchURL       string
	MobileSearchURL string
	DetailBaseURL   string

	httpClient *http.Client
	renderer   Renderer
}

// NewClient creates a storefront client with production endpoints.
func NewClient() *Client {
	return &Client{
		SearchURL:       defaultSearchURL,
		MobileSearchURL: defaultMobileSearchURL,
		DetailBaseURL:   defaultDetailBaseURL,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

// SetRenderer installs the rendered-page fallback used when static scraping
// comes back empty. Without one the static result stands, however bare.
func (c *Client) SetRenderer(r Renderer) {
	c.renderer = r
}

// FetchDetail scrapes the detail page for one catalog identifier. In light
// mode the loose full-text fallbacks are skipped; previews only need enough
// of a title to score. When the static pass yields none of title, author,
// publisher, or cover, the page is refetched through the renderer and any
// missing fields merged in. Renderer failures are contained.
func (c *Client) FetchDetail(ctx context.Context, kyoboID string, light bool) (models.BookMetadata, error) {
	url := fmt.Sprintf("%s/%s", c.DetailBaseURL, kyoboID)

	html, err := c.get(ctx, url)
	if err != nil {
		return models.BookMetadata{}, fmt.Errorf("failed to fetch detail page for %s: %w", kyoboID, err)
	}

	meta := Extract(html, light)
	meta.KyoboID = kyoboID
	meta.DetailURL = url

	if !meta.HasCore() && c.renderer != nil {
		slog.Info("static parse empty, trying rendered fetch", "kyobo_id", kyoboID)
		rendered, err := c.renderer.Render(ctx, url)
		if err != nil {
			slog.Warn("rendered fetch failed", "kyobo_id", kyoboID, "err", err)
		} else {
			meta.Merge(Extract(rendered, light))
		}
	}

	slog.Info("parsed detail page",
		"kyobo_id", kyoboID,
		"title", meta.Title,
		"author", meta.Author,
		"publisher", meta.Publisher,
		"pages", meta.Pages,
		"has_cover", meta.CoverURL != "")

	return meta, nil
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
