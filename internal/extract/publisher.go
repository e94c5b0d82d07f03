package extract

import (
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

const publisherRelator = "pbl"

// publisherSeparator splits "A : B ; C" publisher statements.
var publisherSeparator = regexp.MustCompile(` [:;] `)

const publisherPunctuation = ",.:; \t"

// PublisherUniformName prefers 710‡a of corporate bodies with relator code
// pbl and falls back to the publisher statement in 260‡b.
func (e *Extractor) PublisherUniformName(rec *marc.Record) Result[[]string] {
	publishers := []string{}
	for _, f := range rec.FieldsByTag("710") {
		if !strings.Contains(strings.Join(f.Subfield("4"), " "), publisherRelator) {
			continue
		}
		name := first(FieldSubfieldValues(f, "a"))
		if name == "" {
			e.report(rec, AnomalyMissingField, "Publisher 710 has no a subfield")
			continue
		}
		publishers = append(publishers, name)
	}
	if len(publishers) > 0 {
		return present(publishers)
	}

	for _, statement := range ValuesByFieldAndSubfield(rec, "260", "b") {
		statement = strings.TrimRight(statement, publisherPunctuation)
		for _, token := range publisherSeparator.Split(statement, -1) {
			if token = strings.TrimSpace(strings.TrimRight(token, publisherPunctuation)); token != "" {
				publishers = append(publishers, token)
			}
		}
	}
	return listResult(publishers)
}
