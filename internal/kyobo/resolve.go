package kyobo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/sehyun-dev/shelfsync/internal/similarity"
)

// maxCandidates bounds how many search hits get a preview fetch; every
// candidate costs one sequential round-trip.
const maxCandidates = 10

// SearchCandidates queries the desktop search page for detail-page
// identifiers, in first-seen order with duplicates removed. An empty result
// falls back to the mobile search page, whose markup renders the links the
// desktop page sometimes loads via script.
func (c *Client) SearchCandidates(ctx context.Context, title string) ([]string, error) {
	ids, err := c.searchOne(ctx, c.SearchURL, title)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		return ids, nil
	}
	return c.searchOne(ctx, c.MobileSearchURL, title)
}

func (c *Client) searchOne(ctx context.Context, searchURL, title string) ([]string, error) {
	html, err := c.get(ctx, searchURL+url.QueryEscape(title))
	if err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", title, err)
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, m := range detailIDPattern.FindAllStringSubmatch(html, -1) {
		id := m[1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// Resolve maps a free-text title to the best-matching catalog identifier,
// or "" when the search comes up empty. Each candidate's preview title is
// scored against the query; the earliest candidate wins ties because only a
// strictly better score displaces the current best.
func (c *Client) Resolve(ctx context.Context, title string) (string, error) {
	ids, err := c.SearchCandidates(ctx, title)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	if len(ids) > maxCandidates {
		ids = ids[:maxCandidates]
	}

	best, bestScore := "", -1.0
	for _, id := range ids {
		preview, err := c.FetchDetail(ctx, id, true)
		if err != nil {
			return "", err
		}
		score := similarity.Score(title, preview.Title)
		slog.Debug("scored candidate", "kyobo_id", id, "preview_title", preview.Title, "score", score)
		if score > bestScore {
			best, bestScore = id, score
		}
	}
	return best, nil
}
