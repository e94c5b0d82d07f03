// Package marc holds the read-only MARC21 record model consumed by the
// attribute extractors, plus a lazy record stream over a raw dump.
package marc

import "strings"

// Subfield is a single (code, value) pair of a data field.
type Subfield struct {
	Code  string
	Value string
}

// Field is either a control field (Value set, no subfields) or a data
// field (Subfields set, indicators optional).
type Field struct {
	Tag        string
	Indicator1 string
	Indicator2 string
	// Value holds the positional content of a control field (tags < "010").
	Value     string
	Subfields []Subfield
}

// IsControl reports whether the field is a fixed-length control field.
func (f Field) IsControl() bool {
	return f.Tag < "010"
}

// Text returns the raw value of the field: the positional string for
// control fields, or all subfield values joined by a single space.
func (f Field) Text() string {
	if f.IsControl() {
		return f.Value
	}
	parts := make([]string, 0, len(f.Subfields))
	for _, sf := range f.Subfields {
		parts = append(parts, sf.Value)
	}
	return strings.Join(parts, " ")
}

// Subfield returns every value of the given code, in field order.
func (f Field) Subfield(code string) []string {
	var values []string
	for _, sf := range f.Subfields {
		if sf.Code == code {
			values = append(values, sf.Value)
		}
	}
	return values
}

// HasSubfield reports whether the field carries at least one subfield with code.
func (f Field) HasSubfield(code string) bool {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return true
		}
	}
	return false
}

// Record is an ordered collection of fields. Extractors treat it as
// immutable.
type Record struct {
	Fields []Field
}

// FieldsByTag returns every field with the given tag in record order.
func (r *Record) FieldsByTag(tag string) []Field {
	if r == nil {
		return nil
	}
	var fields []Field
	for _, f := range r.Fields {
		if f.Tag == tag {
			fields = append(fields, f)
		}
	}
	return fields
}

// Has reports whether the record carries at least one field with tag.
func (r *Record) Has(tag string) bool {
	if r == nil {
		return false
	}
	for _, f := range r.Fields {
		if f.Tag == tag {
			return true
		}
	}
	return false
}

// ControlValue returns the value of the first control field with tag.
func (r *Record) ControlValue(tag string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, f := range r.Fields {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return "", false
}

// IDs identifies a record in diagnostics: the system number (001) and
// the MMS id (009). Either may be empty.
type IDs struct {
	ControlNumber string
	MMSID         string
}

// Empty reports whether neither identifier is present.
func (i IDs) Empty() bool {
	return i.ControlNumber == "" && i.MMSID == ""
}

// IDs returns the record's identifying control fields.
func (r *Record) IDs() IDs {
	cn, _ := r.ControlValue("001")
	mms, _ := r.ControlValue("009")
	return IDs{
		ControlNumber: strings.TrimSpace(cn),
		MMSID:         strings.TrimSpace(mms),
	}
}

// NewControlField builds a control field.
func NewControlField(tag, value string) Field {
	return Field{Tag: tag, Value: value}
}

// NewDataField builds a data field with blank indicators from
// alternating code/value pairs: NewDataField("245", "a", "Title", "c", "Author").
// A trailing code without a value is ignored.
func NewDataField(tag string, pairs ...string) Field {
	f := Field{Tag: tag, Indicator1: " ", Indicator2: " "}
	for i := 0; i+1 < len(pairs); i += 2 {
		f.Subfields = append(f.Subfields, Subfield{Code: pairs[i], Value: pairs[i+1]})
	}
	return f
}
