package extract

import (
	"testing"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

func TestPublicationDate(t *testing.T) {
	tests := []struct {
		name     string
		record   *marc.Record
		expected int
		status   Status
	}{
		{
			name:     "single date type",
			record:   record(marc.NewControlField("008", fixed008('s', "1987", "", "pl", "pol"))),
			expected: 1987,
			status:   Present,
		},
		{
			name:     "reprint date type with unknown digits",
			record:   record(marc.NewControlField("008", fixed008('r', "19uu", "1925", "pl", "pol"))),
			expected: 1900,
			status:   Present,
		},
		{
			name:     "range takes the to bound",
			record:   record(marc.NewControlField("008", fixed008('c', "19uu", "1999", "pl", "pol"))),
			expected: 1999,
			status:   Present,
		},
		{
			name:     "X is an unknown digit",
			record:   record(marc.NewControlField("008", fixed008('m', "1990", "199X", "pl", "pol"))),
			expected: 1990,
			status:   Present,
		},
		{
			name:   "open-ended range without 260",
			record: record(marc.NewControlField("008", fixed008('c', "1990", "9999", "pl", "pol"))),
			status: Missing,
		},
		{
			name: "open-ended range falls through to 260c",
			record: record(
				marc.NewControlField("008", fixed008('c', "1990", "9999", "pl", "pol")),
				marc.NewDataField("260", "a", "Warszawa :", "b", "PIW,", "c", "cop. 1994."),
			),
			expected: 1994,
			status:   Present,
		},
		{
			name:     "missing 008 uses 260c",
			record:   record(marc.NewDataField("260", "c", "[2005]")),
			expected: 2005,
			status:   Present,
		},
		{
			name:   "unparsable 008 date",
			record: record(marc.NewControlField("008", fixed008('s', "19--", "", "pl", "pol"))),
			status: Malformed,
		},
		{
			name:   "260c without digits",
			record: record(marc.NewDataField("260", "c", "[s.a.]")),
			status: Malformed,
		},
		{
			name:   "empty record",
			record: record(),
			status: Missing,
		},
		{
			name:   "truncated 008",
			record: record(marc.NewControlField("008", "870101")),
			status: Missing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestExtractor()
			result := e.PublicationDate(tt.record)

			if result.Status != tt.status {
				t.Fatalf("Expected status %s, got %s (value %d)", tt.status, result.Status, result.Value)
			}
			if result.Value != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, result.Value)
			}
		})
	}
}

func TestPublicationDateLogsMissingIdentifiers(t *testing.T) {
	e, diag := newTestExtractor()

	e.PublicationDate(record(marc.NewControlField("008", fixed008('s', "1987", "", "pl", "pol"))))
	if got := diag.Counts()[AnomalyMissingIdentifiers]; got != 1 {
		t.Errorf("Expected 1 missing identifiers anomaly, got %d", got)
	}

	e.PublicationDate(record(
		marc.NewControlField("009", "991234"),
		marc.NewControlField("008", fixed008('s', "1987", "", "pl", "pol")),
	))
	if got := diag.Counts()[AnomalyMissingIdentifiers]; got != 1 {
		t.Errorf("Expected count to stay at 1, got %d", got)
	}
}
