package extract

import (
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

const ageGroupMarker = "Grupa wiekowa"

// AudienceCharacteristics collects 385‡a of audience fields whose ‡m marks
// an age group.
func (e *Extractor) AudienceCharacteristics(rec *marc.Record) Result[[]string] {
	audiences := []string{}
	for _, f := range rec.FieldsByTag("385") {
		if !strings.Contains(strings.Join(f.Subfield("m"), " "), ageGroupMarker) {
			continue
		}
		value := first(FieldSubfieldValues(f, "a"))
		if value == "" {
			e.report(rec, AnomalyMissingField, "Age group 385 has no a subfield")
			continue
		}
		audiences = append(audiences, value)
	}
	return listResult(audiences)
}
