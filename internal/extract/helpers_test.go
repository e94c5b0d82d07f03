package extract

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

// fixed008 builds a 40-character 008 with the positions the extractors read.
func fixed008(dateType byte, date1, date2, country, lang string) string {
	return fmt.Sprintf("870101%c%-4s%-4s%-3s%s%-3s d",
		dateType, date1, date2, country, strings.Repeat(" ", 17), lang)
}

func record(fields ...marc.Field) *marc.Record {
	return &marc.Record{Fields: fields}
}

func newTestExtractor() (*Extractor, *Diagnostics) {
	diag := NewDiagnostics(nil)
	return New(diag), diag
}
