// Package export dumps the reading-list database to a flat file, Parquet or
// JSONL depending on the output extension.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/sehyun-dev/shelfsync/internal/config"
	"github.com/sehyun-dev/shelfsync/internal/notion"
)

// Record is one reading-list row flattened for export.
type Record struct {
	PageID    string `parquet:"page_id" json:"page_id"`
	Title     string `parquet:"title" json:"title"`
	Author    string `parquet:"author" json:"author"`
	Publisher string `parquet:"publisher" json:"publisher"`
	Pages     int    `parquet:"pages" json:"pages"`
	Genre     string `parquet:"genre" json:"genre"`
	Status    string `parquet:"status" json:"status"`
	KyoboURL  string `parquet:"kyobo_url" json:"kyobo_url"`
	ReadPages int    `parquet:"read_pages" json:"read_pages"`
	Pending   bool   `parquet:"pending" json:"pending"`
}

// FromPage flattens one page using the configured property names.
func FromPage(cfg *config.Config, page notion.Page) Record {
	props := page.Properties
	return Record{
		PageID:    page.ID,
		Title:     notion.PlainTitle(props),
		Author:    notion.PlainText(props, cfg.AuthorProp),
		Publisher: notion.PlainText(props, cfg.PublisherProp),
		Pages:     notion.NumberValue(props, cfg.PagesProp),
		Genre:     notion.SelectValue(props, cfg.GenreProp),
		Status:    notion.SelectValue(props, cfg.StatusProp),
		KyoboURL:  notion.URLValue(props, cfg.KyoboURLProp),
		ReadPages: notion.NumberValue(props, cfg.ReadPagesProp),
		Pending:   notion.CheckboxValue(props, cfg.RequestProp),
	}
}

// Save writes records to path. The extension picks the format.
func Save(records []Record, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return saveParquet(records, path)
	case ".jsonl", ".json":
		return saveJSONL(records, path)
	default:
		return fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func saveParquet(records []Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[Record](f)
	if _, err := w.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

func saveJSONL(records []Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}
