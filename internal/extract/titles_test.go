package extract

import (
	"testing"

	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
)

func TestTitleOfOriginal(t *testing.T) {
	tests := []struct {
		name     string
		record   *marc.Record
		expected string
		status   Status
	}{
		{
			name:     "strips bundled year",
			record:   record(marc.NewDataField("246", "i", "Tyt. oryg.:", "a", "Der Prozess, 1925")),
			expected: "Der Prozess",
			status:   Present,
		},
		{
			name: "joins a b n p in order",
			record: record(marc.NewDataField("246",
				"i", "Tytuł oryginału:", "p", "Die Verwandlung.", "a", "Erzählungen.", "n", "Bd. 2,")),
			expected: "Erzählungen. Bd. 2, Die Verwandlung",
			status:   Present,
		},
		{
			name: "first labelled field wins",
			record: record(
				marc.NewDataField("246", "i", "Tyt. okł.:", "a", "Proces"),
				marc.NewDataField("246", "i", "Przekład z:", "a", "The Trial /"),
				marc.NewDataField("246", "i", "Tyt. oryg.:", "a", "Der Prozess"),
			),
			expected: "The Trial",
			status:   Present,
		},
		{
			name:   "label must match exactly",
			record: record(marc.NewDataField("246", "i", "Tyt. oryg. w jęz. ang.:", "a", "The Trial")),
			status: Missing,
		},
		{
			name:   "labelled field without title subfields",
			record: record(marc.NewDataField("246", "i", "Tyt. oryg.:")),
			status: Missing,
		},
		{
			name:   "no 246",
			record: record(),
			status: Missing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, diag := newTestExtractor()
			result := e.TitleOfOriginal(tt.record)

			if result.Status != tt.status {
				t.Errorf("Expected status %s, got %s", tt.status, result.Status)
			}
			if result.Value != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result.Value)
			}
			if tt.status == Missing && diag.Counts()[AnomalyMissingField] == 0 {
				t.Error("Expected missing field to be reported")
			}
		})
	}
}

func TestTitle(t *testing.T) {
	e, _ := newTestExtractor()
	rec := record(marc.NewDataField("245", "a", "Proces :", "b", "powieść /", "c", "Franz Kafka"))

	if got := e.Title(rec).Value; got != "Proces : powieść" {
		t.Errorf("Expected %q, got %q", "Proces : powieść", got)
	}
	if got := e.Title(record()); got.OK() {
		t.Errorf("Expected missing title, got %q", got.Value)
	}
}
