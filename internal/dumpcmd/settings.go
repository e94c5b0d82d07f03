// Package dumpcmd implements the marc2csv subcommands.
package dumpcmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/marc2csv/internal/config"
)

// DefaultLogFile receives a copy of every log line.
const DefaultLogFile = "root.log"

// commonFlags are shared by every subcommand. Flags that were set
// explicitly override the configuration file and environment.
type commonFlags struct {
	configPath   string
	sourceDB     string
	skipDownload bool
	dbDir        string
	baseURL      string
	logFile      string
	verbose      bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", config.DefaultPath, "Path to the YAML configuration file")
	cmd.Flags().StringVar(&f.sourceDB, "source-db", "", "Dump file name on the server (overrides source_db_name)")
	cmd.Flags().BoolVar(&f.skipDownload, "skip-download", false, "Use the local dump instead of downloading it")
	cmd.Flags().StringVar(&f.dbDir, "db-dir", config.DefaultDBDir, "Directory holding downloaded dumps")
	cmd.Flags().StringVar(&f.baseURL, "base-url", config.DefaultBaseURL, "Base URL dumps are downloaded from")
	cmd.Flags().StringVar(&f.logFile, "log-file", DefaultLogFile, "File that receives a copy of the log (empty to disable)")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Verbose logging")
}

// resolve loads the configuration and applies explicitly set flags. A
// missing configuration file is logged and tolerated.
func (f *commonFlags) resolve(cmd *cobra.Command, logger *slog.Logger) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return cfg, err
		}
		logger.Error("Configuration file not found, using flags and environment", "path", f.configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("source-db") {
		cfg.SourceDBName = f.sourceDB
	}
	if flags.Changed("skip-download") {
		cfg.SkipDownload = f.skipDownload
	}
	if flags.Changed("db-dir") {
		cfg.DBDir = f.dbDir
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	return cfg, nil
}

// newLogger builds the command logger. Output goes to stderr and, when
// logFile is set, is appended to that file as well.
func newLogger(stderr io.Writer, logFile string, verbose bool) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	out := stderr
	closeFn := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(stderr, f)
		closeFn = f.Close
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closeFn, nil
}
