package pipeline

import (
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/lehigh-university-libraries/marc2csv/internal/extract"
)

// Summary renders the run counters and anomaly counts as a terminal table,
// or as a Markdown table when markdown is set.
func (s Stats) Summary(markdown bool) string {
	w := table.NewWriter()
	if !markdown {
		w.SetStyle(table.StyleLight)
	}
	w.AppendHeader(table.Row{"metric", "count"})
	w.AppendRows([]table.Row{
		{"records read", s.Read},
		{"undecodable records", s.Undecodable},
		{"not selected", s.NotSelected},
		{"selected strict", s.Strict},
		{"selected broad", s.Broad},
		{"placeholder rows", s.Placeholders},
	})

	if len(s.Anomalies) > 0 {
		w.AppendSeparator()
		for _, kind := range sortedAnomalies(s.Anomalies) {
			w.AppendRow(table.Row{"anomaly: " + string(kind), s.Anomalies[kind]})
		}
	}

	w.AppendFooter(table.Row{"rows written", s.Selected()})
	w.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})

	if markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func sortedAnomalies(counts map[extract.Anomaly]int) []extract.Anomaly {
	kinds := make([]extract.Anomaly, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}
