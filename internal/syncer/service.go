// Package syncer drives one batch run: read flagged rows, resolve each to a
// catalog entry, scrape it, and write the metadata back.
package syncer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sehyun-dev/shelfsync/internal/config"
	"github.com/sehyun-dev/shelfsync/internal/genre"
	"github.com/sehyun-dev/shelfsync/internal/kyobo"
	"github.com/sehyun-dev/shelfsync/internal/models"
	"github.com/sehyun-dev/shelfsync/internal/notion"
)

// StatusNotStarted is force-set on every processed row.
const StatusNotStarted = "시작 전"

// Store is the destination database. Satisfied by *notion.Client.
type Store interface {
	QueryPending(ctx context.Context, databaseID, requestProp string) ([]notion.Page, error)
	RetrievePage(ctx context.Context, pageID string) (*notion.Page, error)
	UpdatePageProperties(ctx context.Context, pageID string, props map[string]any) error
	UpdatePageCover(ctx context.Context, pageID, coverURL string) error
	EnsureSelectOption(ctx context.Context, databaseID, propName, option string) error
}

// Catalog resolves titles and scrapes detail pages. Satisfied by
// *kyobo.Client.
type Catalog interface {
	Resolve(ctx context.Context, title string) (string, error)
	FetchDetail(ctx context.Context, kyoboID string, light bool) (models.BookMetadata, error)
}

// Service processes pending rows strictly one at a time. A row either ends
// Updated or Skipped; a skipped row keeps its request flag and is picked up
// again on the next run.
type Service struct {
	cfg     *config.Config
	store   Store
	catalog Catalog
	genres  *genre.Mapper
}

func New(cfg *config.Config, store Store, catalog Catalog, genres *genre.Mapper) *Service {
	return &Service{cfg: cfg, store: store, catalog: catalog, genres: genres}
}

// Run executes one batch. Row-local resolution failures are logged and
// skipped; fetch and write failures abort the run and leave the remaining
// rows untouched for the next invocation.
func (s *Service) Run(ctx context.Context) error {
	if err := s.store.EnsureSelectOption(ctx, s.cfg.DatabaseID, s.cfg.StatusProp, StatusNotStarted); err != nil {
		return fmt.Errorf("failed to ensure status option: %w", err)
	}

	pages, err := s.store.QueryPending(ctx, s.cfg.DatabaseID, s.cfg.RequestProp)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		slog.Info("no pending rows")
		return nil
	}
	slog.Info("processing pending rows", "count", len(pages))

	for _, page := range pages {
		if err := s.processRow(ctx, page); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) processRow(ctx context.Context, page notion.Page) error {
	row := models.PendingRequest{
		PageID:   page.ID,
		Title:    notion.PlainTitle(page.Properties),
		KyoboURL: notion.URLValue(page.Properties, s.cfg.KyoboURLProp),
	}

	// A stored detail URL outranks search: an explicit link is the user
	// telling us which edition they meant.
	kyoboID := kyobo.ExtractID(row.KyoboURL)
	if kyoboID == "" {
		var err error
		kyoboID, err = s.catalog.Resolve(ctx, row.Title)
		if err != nil {
			return err
		}
	}
	if kyoboID == "" {
		slog.Warn("no catalog match for row, skipping", "title", row.Title)
		return nil
	}

	meta, err := s.catalog.FetchDetail(ctx, kyoboID, false)
	if err != nil {
		return err
	}

	if err := s.updateRow(ctx, row.PageID, meta); err != nil {
		return err
	}

	slog.Info("row updated", "row_title", row.Title, "book_title", meta.Title, "kyobo_id", kyoboID)
	return nil
}

// updateRow applies the write policy. The cover patch and the property
// patch are separate API calls with no transaction between them.
func (s *Service) updateRow(ctx context.Context, pageID string, meta models.BookMetadata) error {
	if meta.CoverURL != "" {
		if err := s.store.UpdatePageCover(ctx, pageID, meta.CoverURL); err != nil {
			return err
		}
	}

	current, err := s.store.RetrievePage(ctx, pageID)
	if err != nil {
		return err
	}
	props := current.Properties
	patch := make(map[string]any)

	if titleProp := notion.TitleProp(props); titleProp != "" && meta.Title != "" {
		patch[titleProp] = notion.BuildValue("title", meta.Title)
	}

	fields := []struct {
		name  string
		value any
	}{
		{s.cfg.AuthorProp, stringOrNil(meta.Author)},
		{s.cfg.PublisherProp, stringOrNil(meta.Publisher)},
		{s.cfg.PagesProp, intOrNil(meta.Pages)},
		{s.cfg.KyoboURLProp, stringOrNil(meta.DetailURL)},
	}
	for _, f := range fields {
		ptype := notion.PropType(props, f.name)
		if ptype == "" || f.value == nil {
			continue
		}
		if pv := notion.BuildValue(ptype, f.value); pv != nil {
			patch[f.name] = pv
		}
	}

	gtype := notion.PropType(props, s.cfg.GenreProp)
	if gtype == "select" || gtype == "multi_select" {
		if mapped, ok := s.genres.Map(ctx, meta.Genre, meta.Title); ok {
			patch[s.cfg.GenreProp] = notion.BuildValue(gtype, mapped)
		}
	}

	if notion.PropType(props, s.cfg.StatusProp) == "select" {
		patch[s.cfg.StatusProp] = notion.BuildValue("select", StatusNotStarted)
	}

	// The read-pages property is deliberately left alone: it is the user's
	// progress, not catalog data.

	if notion.PropType(props, s.cfg.RequestProp) == "checkbox" {
		patch[s.cfg.RequestProp] = notion.BuildValue("checkbox", false)
	}

	return s.store.UpdatePageProperties(ctx, pageID, patch)
}

func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func intOrNil(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
