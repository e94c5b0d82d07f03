package extract

import (
	"io"
	"log/slog"
	"maps"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

// Anomaly classifies a data-quality diagnostic.
type Anomaly string

const (
	AnomalyMissingField       Anomaly = "missing_field"
	AnomalyMalformedValue     Anomaly = "malformed_value"
	AnomalyMissingIdentifiers Anomaly = "missing_identifiers"
	AnomalyClassifierFailure  Anomaly = "classifier_failure"
	AnomalyExtractionFailure  Anomaly = "extraction_failure"
)

// Diagnostics is the sink extractors and the classifier report
// cataloging anomalies to. Entries are keyed by the record's 001/009
// identifiers and counted per kind. A Diagnostics is not safe for
// concurrent use; run one per pipeline.
type Diagnostics struct {
	logger *slog.Logger
	counts map[Anomaly]int
}

// NewDiagnostics creates a sink writing to logger. A nil logger discards
// entries but still counts them.
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Diagnostics{
		logger: logger,
		counts: make(map[Anomaly]int),
	}
}

// Report records one anomaly for rec.
func (d *Diagnostics) Report(rec *marc.Record, kind Anomaly, msg string, args ...any) {
	if d == nil {
		return
	}
	d.counts[kind]++

	ids := rec.IDs()
	attrs := append([]any{"kind", string(kind), "001", ids.ControlNumber, "009", ids.MMSID}, args...)

	switch kind {
	case AnomalyMissingField, AnomalyMissingIdentifiers:
		d.logger.Debug(msg, attrs...)
	default:
		d.logger.Warn(msg, attrs...)
	}
}

// Counts returns a copy of the per-kind anomaly counters.
func (d *Diagnostics) Counts() map[Anomaly]int {
	if d == nil {
		return nil
	}
	return maps.Clone(d.counts)
}

// Logger is the slog logger backing the sink.
func (d *Diagnostics) Logger() *slog.Logger {
	if d == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.logger
}
