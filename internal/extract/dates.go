package extract

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

// openEndedYear marks a continuing resource in 008/11-14.
const openEndedYear = 9999

// singleDateTypes are 008/06 codes whose Date 1 is a usable single date.
var singleDateTypes = map[byte]bool{'r': true, 's': true, 'p': true, 't': true}

var unknownDigits = strings.NewReplacer("u", "0", " ", "0", "X", "0")

// PublicationDate reconciles 008/06-14 with 260‡c.
//
// Single-date types take Date 1. Range types take Date 2 unless it is
// open-ended (9999). Without a usable 008 date, every digit of the first
// 260‡c is parsed instead.
func (e *Extractor) PublicationDate(rec *marc.Record) Result[int] {
	if rec.IDs().Empty() {
		e.report(rec, AnomalyMissingIdentifiers, "Record has neither 001 nor 009")
	}

	result := e.date008(rec)
	if result.OK() {
		return result
	}

	fallback := e.date260(rec)
	if fallback.OK() || result.Status == Missing {
		return fallback
	}
	return result
}

func (e *Extractor) date008(rec *marc.Record) Result[int] {
	f008, ok := fixedField(rec)
	if !ok || len(f008) <= 6 {
		return missing[int]()
	}

	if singleDateTypes[f008[6]] {
		year, err := parseYear(slice(f008, 7, 11))
		if err != nil {
			e.report(rec, AnomalyMalformedValue, "Unparsable date in 008/07-10", "value", slice(f008, 7, 11))
			return malformed[int]()
		}
		return present(year)
	}

	if _, err := parseYear(slice(f008, 7, 11)); err != nil {
		e.report(rec, AnomalyMalformedValue, "Unparsable date range start in 008/07-10", "value", slice(f008, 7, 11))
		return malformed[int]()
	}
	to, err := parseYear(slice(f008, 11, 15))
	if err != nil {
		e.report(rec, AnomalyMalformedValue, "Unparsable date range end in 008/11-14", "value", slice(f008, 11, 15))
		return malformed[int]()
	}
	if to == openEndedYear {
		return missing[int]()
	}
	return present(to)
}

func (e *Extractor) date260(rec *marc.Record) Result[int] {
	raw := first(ValuesByFieldAndSubfield(rec, "260", "c"))
	if raw == "" {
		return missing[int]()
	}

	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r <= unicode.MaxASCII {
			return r
		}
		return -1
	}, raw)

	year, err := strconv.Atoi(digits)
	if err != nil {
		e.report(rec, AnomalyMalformedValue, "No digits in 260c", "value", raw)
		return malformed[int]()
	}
	return present(year)
}

// parseYear substitutes 0 for unknown positions (u, blank, X) and parses.
func parseYear(s string) (int, error) {
	return strconv.Atoi(unknownDigits.Replace(s))
}
