package extract

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

// translatorStems are abbreviations of "tłumacz", "przekład" and
// "przełożył" found in relator terms (700‡e).
var translatorStems = []string{"TŁ", "PRZEKŁ", "PRZEŁ"}

// translationPhrases are the literal forms used in statements of
// responsibility (245‡c). The bare stems are too short for free text.
var translationPhrases = []string{"TŁUM.", "TŁUMACZENIE", "PRZEKŁAD", "PRZEŁOŻYŁ"}

// summaryMarker flags a summary ("streszczenie") rather than a translation.
const summaryMarker = "STRESZCZ"

// TranslationDetector classifies free-text responsibility statements as
// evidence of a translated work.
type TranslationDetector struct {
	upper     cases.Caser
	relators  *ahocorasick.Matcher
	statement *ahocorasick.Matcher
}

// NewTranslationDetector builds the keyword matchers.
func NewTranslationDetector() *TranslationDetector {
	return &TranslationDetector{
		upper:     cases.Upper(language.Polish),
		relators:  ahocorasick.NewStringMatcher(translatorStems),
		statement: ahocorasick.NewStringMatcher(translationPhrases),
	}
}

// IsTranslation reports whether 700‡e or 245‡c names a translator, unless
// 245‡c describes a summary.
func (d *TranslationDetector) IsTranslation(rec *marc.Record) bool {
	relators := d.upper.String(strings.Join(ValuesByFieldAndSubfield(rec, "700", "e"), " "))
	statement := d.upper.String(strings.Join(ValuesByFieldAndSubfield(rec, "245", "c"), " "))

	if strings.Contains(statement, summaryMarker) {
		return false
	}
	return d.relators.Contains([]byte(relators)) || d.statement.Contains([]byte(statement))
}
