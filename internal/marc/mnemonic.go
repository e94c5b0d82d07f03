package marc

import (
	"fmt"
	"strings"
)

// Mnemonic renders the record in MarcEdit mnemonic form, one "=TAG  " line
// per field. Blank indicators are written as backslashes.
func (r *Record) Mnemonic() string {
	if r == nil {
		return ""
	}

	var marc strings.Builder
	for _, f := range r.Fields {
		if f.IsControl() {
			marc.WriteString(fmt.Sprintf("=%s  %s\n", f.Tag, strings.ReplaceAll(f.Value, " ", "\\")))
			continue
		}

		marc.WriteString(fmt.Sprintf("=%s  %s%s", f.Tag, indicator(f.Indicator1), indicator(f.Indicator2)))
		for _, sf := range f.Subfields {
			marc.WriteString("$" + sf.Code + sf.Value)
		}
		marc.WriteString("\n")
	}
	return marc.String()
}

func indicator(ind string) string {
	if ind == "" || ind == " " {
		return "\\"
	}
	return ind
}
