// Package config loads the source and output settings of a run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the configuration file is looked up.
const DefaultPath = "configuration/source_db.yaml"

const (
	EnvSourceDB     = "MARC2CSV_SOURCE_DB"
	EnvSkipDownload = "MARC2CSV_SKIP_DOWNLOAD"
)

const (
	DefaultDBDir        = "db"
	DefaultBaseURL      = "http://data.bn.org.pl/db/institutions/"
	DefaultOutputPath   = "extracted_csv.csv"
	DefaultOutputFormat = "csv"
	DefaultBatchSize    = 5
	DefaultProgressStep = 10000
)

// ErrNotFound is returned when the configuration file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// Config holds the settings of a run.
type Config struct {
	SourceDBName string `yaml:"source_db_name"`
	SkipDownload bool   `yaml:"skip_download"`
	DBDir        string `yaml:"db_dir"`
	BaseURL      string `yaml:"base_url"`
	OutputPath   string `yaml:"output_path"`
	OutputFormat string `yaml:"output_format"`
	BatchSize    int    `yaml:"batch_size"`
	ProgressStep int    `yaml:"progress_step"`
}

// Default returns a Config with every default applied.
func Default() Config {
	return Config{
		DBDir:        DefaultDBDir,
		BaseURL:      DefaultBaseURL,
		OutputPath:   DefaultOutputPath,
		OutputFormat: DefaultOutputFormat,
		BatchSize:    DefaultBatchSize,
		ProgressStep: DefaultProgressStep,
	}
}

// Load reads path, fills defaults for unset keys and applies environment
// overrides. A missing file yields the defaults with env overrides and
// ErrNotFound, so callers may continue on flags alone.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		cfg.applyEnv()
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.fillDefaults()
	cfg.applyEnv()
	return cfg, nil
}

// DumpPath is the local location of the raw dump.
func (c Config) DumpPath() string {
	return filepath.Join(c.DBDir, c.SourceDBName)
}

// Validate checks the settings a run cannot do without.
func (c Config) Validate() error {
	if c.SourceDBName == "" {
		return fmt.Errorf("source_db_name is required")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	return nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.DBDir == "" {
		c.DBDir = d.DBDir
	}
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.OutputPath == "" {
		c.OutputPath = d.OutputPath
	}
	if c.OutputFormat == "" {
		c.OutputFormat = d.OutputFormat
	}
	if c.BatchSize == 0 {
		c.BatchSize = d.BatchSize
	}
	if c.ProgressStep == 0 {
		c.ProgressStep = d.ProgressStep
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSourceDB); v != "" {
		c.SourceDBName = v
	}
	if v := os.Getenv(EnvSkipDownload); v != "" {
		if skip, err := strconv.ParseBool(v); err == nil {
			c.SkipDownload = skip
		}
	}
}
