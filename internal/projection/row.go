// Package projection assembles the output attribute set of a selected
// record.
package projection

import (
	"strconv"
	"strings"
)

// ListSeparator joins list-valued attributes in flat output formats.
const ListSeparator = "|"

// Row is the attribute set of one selected record.
type Row struct {
	MMSID                             string
	PublicationDate                   *int
	PublicationCountry                []string
	ISBN                              []string
	LanguageOfOriginal                []string
	LanguageOfIntermediateTranslation []string
	UDC                               []string
	OtherClassificationNumber         []string
	Creator                           []string
	Title                             string
	TitleOfOriginal                   string
	Edition                           []string
	PublicationPlace                  []string
	Extent                            []string
	FormOfWork                        []string
	AudienceCharacteristics           []string
	ContributorCharacteristics        []string
	Genre                             []string
	Cocreator                         []string
	CocreatorOnlyTranslator           []string
	CocreatorWithoutTranslator        []string
	PublisherUniformName              []string
	SeriesPersonal                    []string
	SeriesTitle                       []string
	IsSelectedValue                   int
}

// Columns lists the output keys in their fixed order.
var Columns = []string{
	"mms_id",
	"publication_date",
	"publication_country",
	"isbn",
	"language_of_original",
	"language_of_intermediate_translation",
	"udc",
	"other_classification_number",
	"creator",
	"title",
	"title_of_original",
	"edition",
	"publication_place",
	"extent",
	"form_of_work",
	"audience_characteristics",
	"contributor_characteristics",
	"genre",
	"cocreator",
	"cocreator_only_translator",
	"cocreator_without_translator",
	"publisher_uniform_name",
	"series_personal",
	"series_title",
	"is_selected_value",
}

// Values serializes the row in Columns order: lists are joined with "|",
// scalars pass through, absent values become "".
func (r Row) Values() []string {
	return []string{
		r.MMSID,
		optionalInt(r.PublicationDate),
		list(r.PublicationCountry),
		list(r.ISBN),
		list(r.LanguageOfOriginal),
		list(r.LanguageOfIntermediateTranslation),
		list(r.UDC),
		list(r.OtherClassificationNumber),
		list(r.Creator),
		r.Title,
		r.TitleOfOriginal,
		list(r.Edition),
		list(r.PublicationPlace),
		list(r.Extent),
		list(r.FormOfWork),
		list(r.AudienceCharacteristics),
		list(r.ContributorCharacteristics),
		list(r.Genre),
		list(r.Cocreator),
		list(r.CocreatorOnlyTranslator),
		list(r.CocreatorWithoutTranslator),
		list(r.PublisherUniformName),
		list(r.SeriesPersonal),
		list(r.SeriesTitle),
		optionalInt(nonZero(r.IsSelectedValue)),
	}
}

// Map returns the serialized row keyed by column name.
func (r Row) Map() map[string]string {
	values := r.Values()
	m := make(map[string]string, len(Columns))
	for i, col := range Columns {
		m[col] = values[i]
	}
	return m
}

// IsPlaceholder reports whether the row is the empty row emitted for a
// record whose extraction failed.
func (r Row) IsPlaceholder() bool {
	return r.MMSID == "" && r.IsSelectedValue == 0 && r.Title == "" && r.PublicationDate == nil
}

func list(values []string) string {
	return strings.Join(values, ListSeparator)
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func nonZero(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
