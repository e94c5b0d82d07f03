// Package extract reads semantic bibliographic attributes out of MARC21
// records. Every extractor tolerates absent fields and reports anomalies
// to an explicit Diagnostics sink instead of failing.
package extract

import (
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

// ValuesByField returns the raw value of every field with tag, in field
// order. Returns an empty slice if the record has no such field.
func ValuesByField(rec *marc.Record, tag string) []string {
	fields := rec.FieldsByTag(tag)
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		values = append(values, f.Text())
	}
	return values
}

// ValuesByFieldAndSubfield returns, for each field with tag, the values of
// the requested subfield codes joined with a single space. Fields where
// the join is empty are skipped. Without codes it behaves like
// ValuesByField.
func ValuesByFieldAndSubfield(rec *marc.Record, tag string, codes ...string) []string {
	if len(codes) == 0 {
		return ValuesByField(rec, tag)
	}

	values := []string{}
	for _, f := range rec.FieldsByTag(tag) {
		if joined := joinSubfields(f, codes); joined != "" {
			values = append(values, joined)
		}
	}
	return values
}

// FieldSubfieldValues applies the same subfield concatenation to a single
// field, returning zero or one value.
func FieldSubfieldValues(f marc.Field, codes ...string) []string {
	if joined := joinSubfields(f, codes); joined != "" {
		return []string{joined}
	}
	return []string{}
}

// joinSubfields concatenates values in the order codes are requested,
// taking every occurrence of each code.
func joinSubfields(f marc.Field, codes []string) string {
	var parts []string
	for _, code := range codes {
		parts = append(parts, f.Subfield(code)...)
	}
	return strings.Join(parts, " ")
}

// first returns the first element of values, or "" if there is none.
func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// dedupe drops empty strings and repeated values, keeping first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// slice returns s[from:to] clamped to the string's bounds.
func slice(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
