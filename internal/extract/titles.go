package extract

import (
	"regexp"
	"slices"
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

// originalTitleLabels are the exact 246‡i display texts catalogers use to
// introduce the title of the original.
var originalTitleLabels = []string{
	"Tyt. oryg.:",
	"Tyt. oryg.",
	"Tyt. oryg. :",
	"Tyt. oryginału:",
	"Tytuł oryginału:",
	"Tytuł oryginału",
	"Tytuł oryginału :",
	"Tytuł oryginalny:",
	"Oryg. tyt.:",
	"Przekład z:",
	"Przekład z :",
}

// trailingYear matches a bundled publication year such as ", 1925".
var trailingYear = regexp.MustCompile(`,\s*\d+\s*$`)

const titlePunctuation = "/,:;. \t"

// TitleOfOriginal returns ‡a‡b‡n‡p of the first 246 whose ‡i labels it as
// the original title, without a trailing year and punctuation.
func (e *Extractor) TitleOfOriginal(rec *marc.Record) Result[string] {
	for _, f := range rec.FieldsByTag("246") {
		if !isOriginalTitleField(f) {
			continue
		}

		raw := first(FieldSubfieldValues(f, "a", "b", "n", "p"))
		if raw == "" {
			e.report(rec, AnomalyMissingField, "246 labelled as original title has no a/b/n/p subfields")
			return missing[string]()
		}

		title := trailingYear.ReplaceAllString(raw, "")
		return textResult(strings.TrimSpace(strings.TrimRight(title, titlePunctuation)))
	}

	e.report(rec, AnomalyMissingField, "No 246 labelled as original title")
	return missing[string]()
}

func isOriginalTitleField(f marc.Field) bool {
	for _, label := range f.Subfield("i") {
		if slices.Contains(originalTitleLabels, label) {
			return true
		}
	}
	return false
}

// Title is the first 245‡a‡b‡n‡p with the trailing statement-of-responsibility
// slash removed.
func (e *Extractor) Title(rec *marc.Record) Result[string] {
	raw := first(ValuesByFieldAndSubfield(rec, "245", "a", "b", "n", "p"))
	return textResult(strings.TrimSpace(strings.TrimRight(raw, "/ ")))
}
