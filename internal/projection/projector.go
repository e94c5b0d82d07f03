package projection

import (
	"fmt"

	"github.com/lehigh-university-libraries/marc2csv/internal/extract"
	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
	"github.com/lehigh-university-libraries/marc2csv/internal/selection"
)

// Projector runs the full extractor set over selected records.
type Projector struct {
	extractor *extract.Extractor
}

// New creates a Projector on top of an Extractor.
func New(extractor *extract.Extractor) *Projector {
	return &Projector{extractor: extractor}
}

// Project builds the attribute set of rec. The publication date and the
// language of the original come from cr, which the classifier already
// extracted. A failure inside any extractor is reported and yields an empty
// placeholder row, so the batch continues.
func (p *Projector) Project(rec *marc.Record, cr selection.Criteria, decision selection.Decision) (row Row) {
	defer func() {
		if r := recover(); r != nil {
			p.extractor.Diagnostics().Report(rec, extract.AnomalyExtractionFailure,
				"Failed to extract attributes", "err", fmt.Sprint(r))
			row = Row{}
		}
	}()

	e := p.extractor
	cocreators := e.Cocreator(rec).Value
	translators, others := extract.SplitTranslators(cocreators)

	row = Row{
		MMSID:                             firstValue(extract.ValuesByField(rec, "009")),
		PublicationCountry:                e.CountryOfPublication(rec).Value,
		ISBN:                              extract.ValuesByFieldAndSubfield(rec, "020", "a"),
		LanguageOfOriginal:                cr.LanguageOfOriginal,
		LanguageOfIntermediateTranslation: extract.ValuesByFieldAndSubfield(rec, "041", "k"),
		UDC:                               extract.ValuesByFieldAndSubfield(rec, "080", "a"),
		OtherClassificationNumber:         extract.ValuesByFieldAndSubfield(rec, "084", "a"),
		Creator:                           e.Creator(rec).Value,
		Title:                             e.Title(rec).Value,
		TitleOfOriginal:                   e.TitleOfOriginal(rec).Value,
		Edition:                           extract.ValuesByFieldAndSubfield(rec, "250", "a"),
		PublicationPlace:                  extract.ValuesByFieldAndSubfield(rec, "260", "a"),
		Extent:                            extract.ValuesByFieldAndSubfield(rec, "300", "a"),
		FormOfWork:                        extract.ValuesByFieldAndSubfield(rec, "380", "a"),
		AudienceCharacteristics:           e.AudienceCharacteristics(rec).Value,
		ContributorCharacteristics:        extract.ValuesByFieldAndSubfield(rec, "386", "a"),
		Genre:                             extract.ValuesByFieldAndSubfield(rec, "655", "a"),
		Cocreator:                         cocreators,
		CocreatorOnlyTranslator:           translators,
		CocreatorWithoutTranslator:        others,
		PublisherUniformName:              e.PublisherUniformName(rec).Value,
		SeriesPersonal:                    extract.ValuesByFieldAndSubfield(rec, "800", "a", "b", "c", "d", "t", "v"),
		SeriesTitle:                       extract.ValuesByFieldAndSubfield(rec, "490", "a", "v"),
		IsSelectedValue:                   int(decision),
	}

	if date := cr.PublicationDate; date.OK() {
		year := date.Value
		row.PublicationDate = &year
	}

	return row
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
