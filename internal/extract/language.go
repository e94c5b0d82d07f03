package extract

import (
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

const languageCodeLen = 3

// LanguageOfOriginal returns the language(s) the work was translated from.
// 041‡h wins over 008/35-37; run-together codes such as "gerfre" are
// sliced into three-letter chunks.
func (e *Extractor) LanguageOfOriginal(rec *marc.Record) Result[[]string] {
	lang008 := Language008(rec)
	coded := ValuesByFieldAndSubfield(rec, "041", "h")

	if len(coded) == 0 {
		if lang008 == "" {
			return missing[[]string]()
		}
		return present([]string{lang008})
	}

	var languages []string
	for _, value := range coded {
		languages = append(languages, e.splitLanguageCodes(rec, value)...)
	}
	return listResult(languages)
}

// splitLanguageCodes normalizes one 041‡h value into individual codes.
func (e *Extractor) splitLanguageCodes(rec *marc.Record, value string) []string {
	runes := []rune(value)
	switch {
	case len(runes) == languageCodeLen:
		return []string{value}
	case strings.Contains(value, " "):
		return strings.Fields(value)
	case len(runes) > languageCodeLen && len(runes)%languageCodeLen == 0:
		codes := make([]string, 0, len(runes)/languageCodeLen)
		for i := 0; i < len(runes); i += languageCodeLen {
			codes = append(codes, string(runes[i:i+languageCodeLen]))
		}
		return codes
	default:
		e.report(rec, AnomalyMalformedValue, "Language code in 041h is not a multiple of 3 characters", "value", value)
		return []string{value}
	}
}

// LanguageOfPublication is the union of 008/35-37 and every 041‡a value.
func (e *Extractor) LanguageOfPublication(rec *marc.Record) Result[[]string] {
	languages := []string{Language008(rec)}
	for _, f := range rec.FieldsByTag("041") {
		languages = append(languages, f.Subfield("a")...)
	}
	return listResult(dedupe(languages))
}

// CountryOfPublication is the union of 008/15-17 and the space-separated
// codes of 044‡a, each right-trimmed.
func (e *Extractor) CountryOfPublication(rec *marc.Record) Result[[]string] {
	var countries []string
	if f008, ok := fixedField(rec); ok {
		countries = append(countries, strings.TrimRight(slice(f008, 15, 18), " "))
	}
	for _, value := range ValuesByFieldAndSubfield(rec, "044", "a") {
		for _, token := range strings.Split(value, " ") {
			countries = append(countries, strings.TrimRight(token, " "))
		}
	}
	return listResult(dedupe(countries))
}
