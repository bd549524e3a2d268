package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sehyun-dev/shelfsync/internal/config"
	"github.com/sehyun-dev/shelfsync/internal/gemini"
	"github.com/sehyun-dev/shelfsync/internal/genre"
	"github.com/sehyun-dev/shelfsync/internal/kyobo"
	"github.com/sehyun-dev/shelfsync/internal/notion"
	"github.com/sehyun-dev/shelfsync/internal/syncer"
)

func newSyncCmd() *cobra.Command {
	var genreMapFile string
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Process all rows flagged for collection, once",
		Long: `Runs one batch: queries the database for rows whose request checkbox is
set, resolves each to a Kyobo catalog entry, scrapes its metadata, patches the
row, and clears the checkbox. Rows that cannot be resolved keep their flag and
are retried on the next run.`,
		Example: `  # Run one batch with credentials from the environment or .env
  shelfsync sync

  # Use a YAML genre map instead of GENRE_MAP_JSON
  shelfsync sync --genre-map genres.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			mapper, err := buildGenreMapper(cfg, genreMapFile)
			if err != nil {
				return err
			}

			catalog := kyobo.NewClient()
			if !noBrowser {
				renderer := &kyobo.PlaywrightRenderer{}
				if err := renderer.Install(); err != nil {
					slog.Warn("browser install failed, rendered fallback unavailable", "err", err)
				}
				catalog.SetRenderer(renderer)
			}

			store := notion.NewClient(cfg.NotionToken)
			return syncer.New(cfg, store, catalog, mapper).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&genreMapFile, "genre-map", "", "Path to a YAML genre map (overrides GENRE_MAP_JSON)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Disable the headless-browser fallback for script-rendered pages")

	return cmd
}

func buildGenreMapper(cfg *config.Config, genreMapFile string) (*genre.Mapper, error) {
	var rules []genre.Rule
	var err error
	if genreMapFile != "" {
		rules, err = genre.LoadYAMLFile(genreMapFile)
	} else {
		rules, err = genre.ParseJSON(cfg.GenreMapJSON)
	}
	if err != nil {
		return nil, err
	}

	mapper := genre.NewMapper(rules)
	if cfg.GeminiAPIKey != "" {
		mapper.SetClassifier(gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel))
	}
	return mapper, nil
}
