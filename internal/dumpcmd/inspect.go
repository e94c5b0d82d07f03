package dumpcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/marc2csv/internal/extract"
	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
	"github.com/lehigh-university-libraries/marc2csv/internal/pipeline"
	"github.com/lehigh-university-libraries/marc2csv/internal/projection"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var dumpPath string
	var limit int
	var selectedOnly bool
	var raw bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the selection decision and attributes of dump records",
		Long: `Inspect records from a local MARC dump.

For each record the selection decision is printed along with every
extracted attribute, which is useful when tuning the selection rule.`,
		Example: `  # Inspect the first 5 records
  marc2csv dump inspect --dump db/bibs-all.marc --limit 5

  # Show only selected records among the first 1000
  marc2csv dump inspect --dump db/bibs-all.marc --limit 1000 --selected`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dumpPath == "" {
				return fmt.Errorf("--dump is required")
			}
			logger, closeLog, err := newLogger(cmd.ErrOrStderr(), "", verbose)
			if err != nil {
				return err
			}
			defer closeLog()

			return executeInspect(cmd.Context(), cmd.OutOrStdout(), logger, dumpPath, limit, selectedOnly, raw)
		},
	}

	cmd.Flags().StringVar(&dumpPath, "dump", "", "Path to a local MARC dump (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to inspect (0 for all)")
	cmd.Flags().BoolVar(&selectedOnly, "selected", false, "Print only selected records")
	cmd.Flags().BoolVar(&raw, "raw", false, "Also print each record in MARC mnemonic form")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	_ = cmd.MarkFlagRequired("dump")

	return cmd
}

func executeInspect(ctx context.Context, out io.Writer, logger *slog.Logger, dumpPath string, limit int, selectedOnly, raw bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reader, err := marc.Open(dumpPath, logger)
	if err != nil {
		return fmt.Errorf("failed to read dump %s: %w", dumpPath, err)
	}
	defer reader.Close()

	p := pipeline.New(extract.New(extract.NewDiagnostics(logger)), logger, 0)
	return p.Inspect(ctx, reader, limit, func(in pipeline.Inspection) error {
		if selectedOnly && !in.Decision.Selected() {
			return nil
		}
		printInspection(out, in, raw)
		return nil
	})
}

func printInspection(out io.Writer, in pipeline.Inspection, raw bool) {
	fmt.Fprintf(out, "RECORD %d  001=%s  009=%s  %s\n", in.Position, in.IDs.ControlNumber, in.IDs.MMSID, in.Decision)
	fmt.Fprintln(out, strings.Repeat("-", 80))

	if raw {
		fmt.Fprint(out, in.Record.Mnemonic())
		fmt.Fprintln(out, strings.Repeat("-", 80))
	}

	values := in.Row.Values()
	for i, col := range projection.Columns {
		if values[i] == "" {
			continue
		}
		fmt.Fprintf(out, "%-38s %s\n", col+":", values[i])
	}
	fmt.Fprintln(out)
}
