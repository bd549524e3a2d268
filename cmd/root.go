package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shelfsync",
		Short: "Sync a Notion reading list with Kyobo Book Centre metadata",
		Long: `Shelfsync polls a Notion reading-list database for rows flagged for
collection, resolves each row's title against the Kyobo Book Centre catalog,
scrapes the matching detail page, and writes the book's metadata back into
the row.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newLookupCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
