package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marc2csv",
		Short: "Extract translated works published in Polish from MARC21 dumps",
		Long: `marc2csv streams MARC21 bibliographic dumps, selects the records that
describe works translated into Polish and writes their attributes to a
tabular file for analysis.

Configuration is read from configuration/source_db.yaml, the environment
(MARC2CSV_SOURCE_DB, MARC2CSV_SKIP_DOWNLOAD) and command line flags.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newDumpCmd())

	return cmd
}
