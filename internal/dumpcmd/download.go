package dumpcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/marc2csv/internal/config"
	"github.com/lehigh-university-libraries/marc2csv/internal/source"
)

// NewDownloadCmd creates the download command
func NewDownloadCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a raw MARC dump",
		Long: `Download a raw MARC dump from the publishing server into the db directory.

The file is streamed to a temporary name and renamed once complete, so an
interrupted download never leaves a truncated dump behind.`,
		Example: `  # Download the dump named in configuration/source_db.yaml
  marc2csv dump download

  # Download a specific dump
  marc2csv dump download --source-db bibs-ksiazka.marc`,
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

			path, err := executeDownload(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func executeDownload(ctx context.Context, cfg config.Config, logger *slog.Logger) (string, error) {
	if cfg.SourceDBName == "" {
		return "", fmt.Errorf("source_db_name is required (set it in the config, %s or --source-db)", config.EnvSourceDB)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := source.NewDownloader(source.DownloadConfig{
		BaseURL:      cfg.BaseURL,
		DBDir:        cfg.DBDir,
		SkipDownload: cfg.SkipDownload,
		Logger:       logger,
	})
	return d.Fetch(ctx, cfg.SourceDBName)
}
