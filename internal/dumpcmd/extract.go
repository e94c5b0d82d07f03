package dumpcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/marc2csv/internal/config"
	"github.com/lehigh-university-libraries/marc2csv/internal/extract"
	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
	"github.com/lehigh-university-libraries/marc2csv/internal/output"
	"github.com/lehigh-university-libraries/marc2csv/internal/pipeline"
)

// NewExtractCmd creates the extract command
func NewExtractCmd() *cobra.Command {
	var flags commonFlags
	var outputPath string
	var format string
	var batchSize int
	var progressStep int
	var reportDir string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract translated works published in Polish from a MARC dump",
		Long: `Stream a MARC dump, select the records describing works translated into
Polish and write their attributes to a CSV, parquet or xlsx file.

The dump is downloaded first unless skip_download is set. Records that
cannot be decoded are skipped. A summary of the run is printed at the end.`,
		Example: `  # Run with configuration/source_db.yaml
  marc2csv dump extract

  # Use a local dump and write parquet
  marc2csv dump extract --skip-download --source-db bibs-all.marc --format parquet --output out.parquet

  # Keep a YAML report of the run
  marc2csv dump extract --report-dir reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(cmd.ErrOrStderr(), flags.logFile, flags.verbose)
			if err != nil {
				return err
			}
			defer closeLog()

			cfg, err := flags.resolve(cmd, logger)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.OutputPath = outputPath
			}
			if cmd.Flags().Changed("format") {
				cfg.OutputFormat = format
			}
			if cmd.Flags().Changed("batch-size") {
				cfg.BatchSize = batchSize
			}
			if cmd.Flags().Changed("progress-step") {
				cfg.ProgressStep = progressStep
			}

			stats, err := executeExtract(cmd.Context(), cmd.OutOrStdout(), cfg, logger)
			if err != nil {
				return err
			}

			if reportDir != "" {
				report := pipeline.NewReport(pipeline.ReportConfig{
					SourceDB:     cfg.SourceDBName,
					OutputPath:   cfg.OutputPath,
					OutputFormat: cfg.OutputFormat,
				}, stats, time.Now())
				path, err := pipeline.SaveReport(reportDir, report)
				if err != nil {
					return err
				}
				logger.Info("Run report saved", "path", path)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&outputPath, "output", config.DefaultOutputPath, "Output file (overrides output_path)")
	cmd.Flags().StringVar(&format, "format", config.DefaultOutputFormat, "Output format: csv, parquet or xlsx")
	cmd.Flags().IntVar(&batchSize, "batch-size", config.DefaultBatchSize, "Rows buffered before each write")
	cmd.Flags().IntVar(&progressStep, "progress-step", config.DefaultProgressStep, "Records between progress log lines")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory for a YAML run report (disabled when empty)")

	return cmd
}

// executeExtract runs the whole extraction. The run summary is written to
// out once records have been read, also when the run fails midway. Setup
// failures return before anything is printed.
func executeExtract(ctx context.Context, out io.Writer, cfg config.Config, logger *slog.Logger) (pipeline.Stats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := cfg.Validate(); err != nil {
		return pipeline.Stats{}, fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := output.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return pipeline.Stats{}, err
	}

	dumpPath, err := executeDownload(ctx, cfg, logger)
	if err != nil {
		return pipeline.Stats{}, err
	}

	reader, err := marc.Open(dumpPath, logger)
	if err != nil {
		return pipeline.Stats{}, fmt.Errorf("failed to read dump %s: %w", dumpPath, err)
	}
	defer reader.Close()

	w, err := output.New(format, cfg.OutputPath)
	if err != nil {
		return pipeline.Stats{}, err
	}
	batch := output.NewBatchWriter(w, cfg.BatchSize)

	extractor := extract.New(extract.NewDiagnostics(logger))
	p := pipeline.New(extractor, logger, cfg.ProgressStep)

	logger.Info("Extracting records", "dump", dumpPath, "output", cfg.OutputPath, "format", format)
	stats, runErr := p.Run(ctx, reader, batch)
	if closeErr := batch.Close(); closeErr != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to close output: %w", closeErr))
	}
	fmt.Fprintln(out, stats.Summary(false))
	if runErr != nil {
		return stats, runErr
	}

	logger.Info("Extraction complete", "rows", batch.Written(), "output", cfg.OutputPath)
	return stats, nil
}
