package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/marc2csv/internal/extract"
	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
	"github.com/lehigh-university-libraries/marc2csv/internal/projection"
	"github.com/lehigh-university-libraries/marc2csv/internal/selection"
)

type sliceSource struct {
	records []*marc.Record
	skipped int
	err     error
}

func (s *sliceSource) Next() (*marc.Record, error) {
	if len(s.records) == 0 {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	rec := s.records[0]
	s.records = s.records[1:]
	return rec, nil
}

func (s *sliceSource) Skipped() int {
	return s.skipped
}

type memorySink struct {
	rows    []projection.Row
	flushes int
}

func (m *memorySink) Add(row projection.Row) error {
	m.rows = append(m.rows, row)
	return nil
}

func (m *memorySink) Flush() error {
	m.flushes++
	return nil
}

func fixed008(date, lang string) string {
	return fmt.Sprintf("870101s%-4s    pl %s%-3s d", date, strings.Repeat(" ", 17), lang)
}

func strictRecord(id string) *marc.Record {
	return &marc.Record{Fields: []marc.Field{
		marc.NewControlField("008", fixed008("2001", "pol")),
		marc.NewControlField("009", id),
		marc.NewDataField("041", "a", "pol", "h", "ger"),
		marc.NewDataField("380", "a", "Książki"),
	}}
}

func broadRecord(id string) *marc.Record {
	return &marc.Record{Fields: []marc.Field{
		marc.NewControlField("008", fixed008("1995", "ger")),
		marc.NewControlField("009", id),
		marc.NewDataField("041", "a", "pol"),
		marc.NewDataField("245", "a", "Proces /", "c", "Franz Kafka."),
		marc.NewDataField("700", "a", "Schulz, Bruno", "e", "tł."),
	}}
}

func rejectedRecord(id string) *marc.Record {
	return &marc.Record{Fields: []marc.Field{
		marc.NewControlField("008", fixed008("1900", "pol")),
		marc.NewControlField("009", id),
	}}
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestRun(t *testing.T) {
	var logs bytes.Buffer
	p := New(extract.New(extract.NewDiagnostics(nil)), testLogger(&logs), 2)

	src := &sliceSource{
		records: []*marc.Record{
			strictRecord("1"),
			rejectedRecord("2"),
			broadRecord("3"),
			strictRecord("4"),
		},
		skipped: 1,
	}
	sink := &memorySink{}

	stats, err := p.Run(context.Background(), src, sink)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var ids []string
	var values []int
	for _, row := range sink.rows {
		ids = append(ids, row.MMSID)
		values = append(values, row.IsSelectedValue)
	}
	if diff := cmp.Diff([]string{"1", "3", "4"}, ids); diff != "" {
		t.Errorf("Row order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 1}, values); diff != "" {
		t.Errorf("Selection values mismatch (-want +got):\n%s", diff)
	}

	if stats.Read != 4 || stats.Strict != 2 || stats.Broad != 1 || stats.NotSelected != 1 || stats.Undecodable != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.Selected() != 3 {
		t.Errorf("Expected 3 selected, got %d", stats.Selected())
	}
	if sink.flushes != 1 {
		t.Errorf("Expected final flush, got %d", sink.flushes)
	}
	if strings.Count(logs.String(), "Processed ") != 2 {
		t.Errorf("Expected 2 progress lines, got:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), "Processed 4 records") {
		t.Errorf("Expected progress message, got:\n%s", logs.String())
	}
}

func TestRunCanceled(t *testing.T) {
	p := New(extract.New(nil), testLogger(&bytes.Buffer{}), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &memorySink{}
	stats, err := p.Run(ctx, &sliceSource{records: []*marc.Record{strictRecord("1")}}, sink)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if stats.Read != 0 || len(sink.rows) != 0 {
		t.Errorf("Expected nothing processed, got %+v", stats)
	}
	if sink.flushes != 1 {
		t.Errorf("Expected flush on cancellation, got %d", sink.flushes)
	}
}

func TestRunSourceError(t *testing.T) {
	p := New(extract.New(nil), testLogger(&bytes.Buffer{}), 0)
	sink := &memorySink{}
	broken := errors.New("stream broken")

	stats, err := p.Run(context.Background(), &sliceSource{records: []*marc.Record{strictRecord("1")}, err: broken}, sink)
	if !errors.Is(err, broken) {
		t.Errorf("Expected stream error, got %v", err)
	}
	if stats.Read != 1 || len(sink.rows) != 1 {
		t.Errorf("Expected the record before the error to be written, got %+v", stats)
	}
}

func TestRunCountsAnomalies(t *testing.T) {
	p := New(extract.New(extract.NewDiagnostics(nil)), testLogger(&bytes.Buffer{}), 0)
	rec := strictRecord("1")
	rec.Fields = append(rec.Fields, marc.NewDataField("700", "e", "Tłumaczenie"))

	stats, err := p.Run(context.Background(), &sliceSource{records: []*marc.Record{rec}}, &memorySink{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Anomalies[extract.AnomalyMissingField] == 0 {
		t.Errorf("Expected missing_field anomalies, got %v", stats.Anomalies)
	}
}

func TestRunReportsEachAnomalyOnce(t *testing.T) {
	// No 001/009, a run-together 041h and no 246 labelled as original.
	rec := &marc.Record{Fields: []marc.Field{
		marc.NewControlField("008", fixed008("2001", "pol")),
		marc.NewDataField("041", "a", "pol", "h", "gerfr"),
		marc.NewDataField("380", "a", "Książki"),
	}}

	for _, mode := range []string{"run", "inspect"} {
		t.Run(mode, func(t *testing.T) {
			diag := extract.NewDiagnostics(nil)
			p := New(extract.New(diag), testLogger(&bytes.Buffer{}), 0)
			src := &sliceSource{records: []*marc.Record{rec}}

			var err error
			if mode == "run" {
				var stats Stats
				stats, err = p.Run(context.Background(), src, &memorySink{})
				if stats.Strict != 1 {
					t.Errorf("Expected the record to be selected, got %+v", stats)
				}
			} else {
				err = p.Inspect(context.Background(), src, 0, func(Inspection) error { return nil })
			}
			if err != nil {
				t.Fatalf("%s failed: %v", mode, err)
			}

			want := map[extract.Anomaly]int{
				extract.AnomalyMalformedValue:     1,
				extract.AnomalyMissingField:       1,
				extract.AnomalyMissingIdentifiers: 1,
			}
			if diff := cmp.Diff(want, diag.Counts()); diff != "" {
				t.Errorf("Anomaly counts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	p := New(extract.New(nil), testLogger(&bytes.Buffer{}), 0)
	src := &sliceSource{records: []*marc.Record{strictRecord("1"), rejectedRecord("2"), broadRecord("3")}}

	var got []selection.Decision
	err := p.Inspect(context.Background(), src, 2, func(in Inspection) error {
		got = append(got, in.Decision)
		if in.Row.MMSID != in.IDs.MMSID {
			t.Errorf("Expected row for %s, got %s", in.IDs.MMSID, in.Row.MMSID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if diff := cmp.Diff([]selection.Decision{selection.SelectedStrict, selection.NotSelected}, got); diff != "" {
		t.Errorf("Decisions mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary(t *testing.T) {
	stats := Stats{
		Read:        10,
		NotSelected: 7,
		Strict:      2,
		Broad:       1,
		Anomalies:   map[extract.Anomaly]int{extract.AnomalyMissingField: 4},
	}

	// Headers and footers are upper-cased by the terminal style.
	out := strings.ToLower(stats.Summary(false))
	for _, want := range []string{"records read", "selected broad", "anomaly: missing_field", "rows written"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in summary:\n%s", want, out)
		}
	}
	if md := stats.Summary(true); !strings.Contains(md, "| records read |") {
		t.Errorf("Expected markdown table, got:\n%s", md)
	}
}

func TestSaveReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	stats := Stats{Read: 3, Strict: 1, Anomalies: map[extract.Anomaly]int{extract.AnomalyMalformedValue: 2}}
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	report := NewReport(ReportConfig{SourceDB: "db/bibs-all.marc", OutputFormat: "csv"}, stats, now)
	path, err := SaveReport(dir, report)
	if err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	if filepath.Base(path) != "bibs-all.marc-2024-05-01_12-30-00.yaml" {
		t.Errorf("Unexpected report name %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	var loaded Report
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Failed to parse report: %v", err)
	}
	if diff := cmp.Diff(report, loaded); diff != "" {
		t.Errorf("Report mismatch (-want +got):\n%s", diff)
	}
}
