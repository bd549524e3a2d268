package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sehyun-dev/shelfsync/internal/config"
	"github.com/sehyun-dev/shelfsync/internal/export"
	"github.com/sehyun-dev/shelfsync/internal/notion"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the reading-list database to a Parquet or JSONL file",
		Example: `  shelfsync export --output reading-list.parquet
  shelfsync export --output reading-list.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store := notion.NewClient(cfg.NotionToken)
			pages, err := store.QueryAll(cmd.Context(), cfg.DatabaseID)
			if err != nil {
				return err
			}

			records := make([]export.Record, 0, len(pages))
			for _, page := range pages {
				records = append(records, export.FromPage(cfg, page))
			}

			if err := export.Save(records, output); err != nil {
				return err
			}
			slog.Info("export complete", "rows", len(records), "output", output)
			fmt.Printf("Exported %d rows to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "reading-list.parquet", "Output file (.parquet, .jsonl)")

	return cmd
}
