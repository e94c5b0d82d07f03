package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ReportConfig describes the run a report belongs to
type ReportConfig struct {
	SourceDB     string `yaml:"source_db"`
	OutputPath   string `yaml:"output_path"`
	OutputFormat string `yaml:"output_format"`
	Timestamp    string `yaml:"timestamp"`
}

// ReportCounts are the run counters
type ReportCounts struct {
	Read         int            `yaml:"read"`
	Undecodable  int            `yaml:"undecodable"`
	NotSelected  int            `yaml:"not_selected"`
	Strict       int            `yaml:"selected_strict"`
	Broad        int            `yaml:"selected_broad"`
	Placeholders int            `yaml:"placeholder_rows"`
	Anomalies    map[string]int `yaml:"anomalies,omitempty"`
}

// Report is the complete run report
type Report struct {
	Config ReportConfig `yaml:"config"`
	Counts ReportCounts `yaml:"counts"`
}

// NewReport builds a report for stats stamped with now.
func NewReport(cfg ReportConfig, stats Stats, now time.Time) Report {
	cfg.Timestamp = now.Format("2006-01-02_15-04-05")

	counts := ReportCounts{
		Read:         stats.Read,
		Undecodable:  stats.Undecodable,
		NotSelected:  stats.NotSelected,
		Strict:       stats.Strict,
		Broad:        stats.Broad,
		Placeholders: stats.Placeholders,
	}
	if len(stats.Anomalies) > 0 {
		counts.Anomalies = make(map[string]int, len(stats.Anomalies))
		for kind, n := range stats.Anomalies {
			counts.Anomalies[string(kind)] = n
		}
	}
	return Report{Config: cfg, Counts: counts}
}

// SaveReport writes report to dir as <source>-<timestamp>.yaml and returns
// the file path.
func SaveReport(dir string, report Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	name := filepath.Base(report.Config.SourceDB)
	if name == "." || name == string(filepath.Separator) {
		name = "run"
	}
	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", name, report.Config.Timestamp))

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}
