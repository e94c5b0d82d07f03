// Package selection decides whether a record describes a work translated
// into Polish.
package selection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/extract"
	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

// Decision is the outcome of classification. The numeric values are the
// ones written to is_selected_value.
type Decision int

const (
	NotSelected    Decision = 0
	SelectedStrict Decision = 1
	SelectedBroad  Decision = 2
)

func (d Decision) String() string {
	switch d {
	case SelectedStrict:
		return "selected_strict"
	case SelectedBroad:
		return "selected_broad"
	default:
		return "not_selected"
	}
}

// Selected reports whether the record should be projected.
func (d Decision) Selected() bool {
	return d == SelectedStrict || d == SelectedBroad
}

// MinPublicationYear is the earliest publication year considered.
const MinPublicationYear = 1918

const (
	polish         = "pol"
	formBooks      = "Książki"
	formEbooks     = "E-booki"
	formArticles   = "Artykuły"
	genreOffprints = "Nadbitki i odbitki"
)

// Criteria are the extracted attributes the decision is made from.
type Criteria struct {
	PublicationDate       extract.Result[int]
	LanguageOfOriginal    []string
	LanguageOfPublication []string
	HasOriginalLanguage   bool // 041‡h present
	FormOfWork            []string
	Genre                 []string
	IsTranslation         bool
}

// Classifier computes decisions for records.
type Classifier struct {
	extractor *extract.Extractor
}

// New creates a Classifier on top of an Extractor.
func New(extractor *extract.Extractor) *Classifier {
	return &Classifier{extractor: extractor}
}

// Criteria extracts the attributes the decision depends on.
func (c *Classifier) Criteria(rec *marc.Record) Criteria {
	return Criteria{
		PublicationDate:       c.extractor.PublicationDate(rec),
		LanguageOfOriginal:    c.extractor.LanguageOfOriginal(rec).Value,
		LanguageOfPublication: c.extractor.LanguageOfPublication(rec).Value,
		HasOriginalLanguage:   len(extract.ValuesByFieldAndSubfield(rec, "041", "h")) > 0,
		FormOfWork:            extract.ValuesByFieldAndSubfield(rec, "380", "a"),
		Genre:                 extract.ValuesByFieldAndSubfield(rec, "655", "a"),
		IsTranslation:         c.extractor.IsTranslation(rec),
	}
}

// Classify decides rec. Any failure while evaluating is reported and
// treated as NotSelected.
func (c *Classifier) Classify(rec *marc.Record) Decision {
	_, decision := c.Evaluate(rec)
	return decision
}

// Evaluate extracts the criteria of rec and decides it. The criteria are
// returned so callers can reuse them without extracting twice. On failure
// the criteria are zero and the decision is NotSelected.
func (c *Classifier) Evaluate(rec *marc.Record) (cr Criteria, decision Decision) {
	defer func() {
		if r := recover(); r != nil {
			c.extractor.Diagnostics().Report(rec, extract.AnomalyClassifierFailure,
				"Classification failed", "err", fmt.Sprint(r))
			cr, decision = Criteria{}, NotSelected
		}
	}()

	cr = c.Criteria(rec)
	return cr, Decide(cr)
}

// Decide applies the selection rule.
//
// Strict requires an explicit 041‡h marker. Broad also accepts free-text
// translator evidence and records with no form of work at all.
func Decide(cr Criteria) Decision {
	if !cr.PublicationDate.OK() || cr.PublicationDate.Value < MinPublicationYear {
		return NotSelected
	}
	if strings.Join(cr.LanguageOfOriginal, " ") == polish {
		return NotSelected
	}
	if !strings.Contains(strings.Join(cr.LanguageOfPublication, " "), polish) {
		return NotSelected
	}

	formMatches := matchesForm(cr.FormOfWork, cr.Genre)

	if cr.HasOriginalLanguage && formMatches {
		return SelectedStrict
	}
	if (cr.IsTranslation || cr.HasOriginalLanguage) && (formMatches || len(cr.FormOfWork) == 0) {
		return SelectedBroad
	}
	return NotSelected
}

// matchesForm accepts books, e-books, and offprinted articles.
func matchesForm(form, genre []string) bool {
	if slices.Contains(form, formBooks) || slices.Contains(form, formEbooks) {
		return true
	}
	return slices.Contains(form, formArticles) && strings.Contains(strings.Join(genre, " "), genreOffprints)
}
