package extract

import (
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

// Extractor bundles the attribute extractors with the diagnostics sink
// they report to. Extractors never mutate the record.
type Extractor struct {
	diag        *Diagnostics
	translation *TranslationDetector
}

// New creates an Extractor reporting to diag. A nil diag discards reports.
func New(diag *Diagnostics) *Extractor {
	return &Extractor{
		diag:        diag,
		translation: NewTranslationDetector(),
	}
}

// IsTranslation runs the free-text translation detector.
func (e *Extractor) IsTranslation(rec *marc.Record) bool {
	return e.translation.IsTranslation(rec)
}

// Diagnostics returns the sink the extractor reports to.
func (e *Extractor) Diagnostics() *Diagnostics {
	if e == nil {
		return nil
	}
	return e.diag
}

func (e *Extractor) report(rec *marc.Record, kind Anomaly, msg string, args ...any) {
	e.diag.Report(rec, kind, msg, args...)
}

// fixedField returns the first 008 value, if any.
func fixedField(rec *marc.Record) (string, bool) {
	values := ValuesByField(rec, "008")
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Language008 returns the language code at 008/35-37, or "" when the
// positions are absent or blank. Blank positions ("   ") count as no code
// even though the slice itself is non-empty.
func Language008(rec *marc.Record) string {
	f008, ok := fixedField(rec)
	if !ok {
		return ""
	}
	code := slice(f008, 35, 38)
	if strings.TrimSpace(code) == "" {
		return ""
	}
	return code
}
