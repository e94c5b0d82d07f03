package projection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRowValues(t *testing.T) {
	year := 1999
	tests := []struct {
		name     string
		row      Row
		column   string
		expected string
	}{
		{
			name:     "list joined with separator",
			row:      Row{ISBN: []string{"83-01", "83-02"}},
			column:   "isbn",
			expected: "83-01|83-02",
		},
		{
			name:     "empty list",
			row:      Row{ISBN: []string{}},
			column:   "isbn",
			expected: "",
		},
		{
			name:     "publication date",
			row:      Row{PublicationDate: &year},
			column:   "publication_date",
			expected: "1999",
		},
		{
			name:     "absent publication date",
			row:      Row{},
			column:   "publication_date",
			expected: "",
		},
		{
			name:     "broad selection",
			row:      Row{IsSelectedValue: 2},
			column:   "is_selected_value",
			expected: "2",
		},
		{
			name:     "unset selection",
			row:      Row{},
			column:   "is_selected_value",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Map()[tt.column]; got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRowValuesMatchColumns(t *testing.T) {
	if got := len(Row{}.Values()); got != len(Columns) {
		t.Fatalf("Expected %d values, got %d", len(Columns), got)
	}

	row := Row{MMSID: "991234", Title: "Proces", IsSelectedValue: 1}
	values := row.Values()
	got := map[string]string{
		"mms_id":            values[0],
		"title":             values[9],
		"is_selected_value": values[len(values)-1],
	}
	want := map[string]string{"mms_id": "991234", "title": "Proces", "is_selected_value": "1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Values order mismatch (-want +got):\n%s", diff)
	}
}

func TestIsPlaceholder(t *testing.T) {
	if !(Row{}).IsPlaceholder() {
		t.Error("Expected empty row to be a placeholder")
	}
	if (Row{MMSID: "991234", IsSelectedValue: 1}).IsPlaceholder() {
		t.Error("Expected populated row not to be a placeholder")
	}
}
