package extract

import (
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

// nameSubfields make up a personal name heading.
var nameSubfields = []string{"a", "b", "c", "d", "n"}

// TranslatorMarker identifies translator entries among formatted agents.
const TranslatorMarker = "[Tł"

// Creator formats every 100 field as "<name> [<roles>]".
func (e *Extractor) Creator(rec *marc.Record) Result[[]string] {
	return e.agents(rec, "100")
}

// Cocreator formats every 700 field as "<name> [<roles>]".
func (e *Extractor) Cocreator(rec *marc.Record) Result[[]string] {
	return e.agents(rec, "700")
}

func (e *Extractor) agents(rec *marc.Record, tag string) Result[[]string] {
	agents := []string{}
	for _, f := range rec.FieldsByTag(tag) {
		name := first(FieldSubfieldValues(f, nameSubfields...))
		roles := f.Subfield("e")

		if len(roles) == 0 {
			if name != "" {
				agents = append(agents, name)
			}
			continue
		}

		if name == "" {
			e.report(rec, AnomalyMissingField, "Agent has relator term but no name", "tag", tag, "roles", strings.Join(roles, ", "))
			continue
		}
		name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), "."))
		agents = append(agents, name+" ["+strings.Join(roles, ", ")+"]")
	}
	return listResult(agents)
}

// SplitTranslators partitions formatted cocreators into translators and
// everyone else, preserving order.
func SplitTranslators(cocreators []string) (translators, others []string) {
	translators, others = []string{}, []string{}
	for _, c := range cocreators {
		if strings.Contains(c, TranslatorMarker) {
			translators = append(translators, c)
		} else {
			others = append(others, c)
		}
	}
	return translators, others
}
