package cmd

import (
	"github.com/lehigh-university-libraries/marc2csv/internal/dumpcmd"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "MARC dump processing tools",
		Long: `Tools for downloading MARC21 dumps from data.bn.org.pl, extracting
translated works published in Polish, and inspecting how individual
records are classified.`,
	}

	// Add dump subcommands
	cmd.AddCommand(dumpcmd.NewDownloadCmd())
	cmd.AddCommand(dumpcmd.NewExtractCmd())
	cmd.AddCommand(dumpcmd.NewInspectCmd())

	return cmd
}
