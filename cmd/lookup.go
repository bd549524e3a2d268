package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sehyun-dev/shelfsync/internal/kyobo"
)

// lookupResult is the YAML shape printed by the lookup command.
type lookupResult struct {
	KyoboID   string `yaml:"kyobo_id"`
	DetailURL string `yaml:"detail_url"`
	Title     string `yaml:"title,omitempty"`
	Author    string `yaml:"author,omitempty"`
	Publisher string `yaml:"publisher,omitempty"`
	Pages     int    `yaml:"pages,omitempty"`
	Genre     string `yaml:"genre,omitempty"`
	ISBN      string `yaml:"isbn,omitempty"`
	CoverURL  string `yaml:"cover_url,omitempty"`
}

func newLookupCmd() *cobra.Command {
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "lookup <title | identifier | detail URL>",
		Short: "Resolve a title against the catalog and print its metadata",
		Long: `Resolves a book title (or takes a catalog identifier or detail URL
directly) and prints the scraped metadata as YAML. Talks only to the catalog
site; no Notion credentials are needed.`,
		Example: `  shelfsync lookup "미드나이트 라이브러리"
  shelfsync lookup S000001913217
  shelfsync lookup https://product.kyobobook.co.kr/detail/S000001913217`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			catalog := kyobo.NewClient()
			if !noBrowser {
				renderer := &kyobo.PlaywrightRenderer{}
				if err := renderer.Install(); err != nil {
					slog.Warn("browser install failed, rendered fallback unavailable", "err", err)
				}
				catalog.SetRenderer(renderer)
			}

			kyoboID := kyobo.ExtractID(query)
			if kyoboID == "" {
				var err error
				kyoboID, err = catalog.Resolve(cmd.Context(), query)
				if err != nil {
					return err
				}
			}
			if kyoboID == "" {
				return fmt.Errorf("no catalog match for %q", query)
			}

			meta, err := catalog.FetchDetail(cmd.Context(), kyoboID, false)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(lookupResult{
				KyoboID:   meta.KyoboID,
				DetailURL: meta.DetailURL,
				Title:     meta.Title,
				Author:    meta.Author,
				Publisher: meta.Publisher,
				Pages:     meta.Pages,
				Genre:     meta.Genre,
				ISBN:      meta.ISBN,
				CoverURL:  meta.CoverURL,
			})
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Disable the headless-browser fallback for script-rendered pages")

	return cmd
}
