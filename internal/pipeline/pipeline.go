// Package pipeline streams records through classification and projection
// into an output sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lehigh-university-libraries/marc2csv/internal/extract"
	"github.com/lehigh-university-libraries/marc2csv/internal/marc"
	"github.com/lehigh-university-libraries/marc2csv/internal/projection"
	"github.com/lehigh-university-libraries/marc2csv/internal/selection"
)

// DefaultProgressStep is how many records pass between progress logs.
const DefaultProgressStep = 10000

// RecordSource yields records until io.EOF.
type RecordSource interface {
	Next() (*marc.Record, error)
	Skipped() int
}

// RowSink receives projected rows in input order.
type RowSink interface {
	Add(row projection.Row) error
	Flush() error
}

// Stats summarizes one run.
type Stats struct {
	Read         int
	Undecodable  int
	NotSelected  int
	Strict       int
	Broad        int
	Placeholders int
	Anomalies    map[extract.Anomaly]int
}

// Selected is the number of rows handed to the sink.
func (s Stats) Selected() int {
	return s.Strict + s.Broad
}

// Pipeline wires the classifier and projector over a shared extractor.
type Pipeline struct {
	extractor    *extract.Extractor
	classifier   *selection.Classifier
	projector    *projection.Projector
	logger       *slog.Logger
	progressStep int
}

// New creates a Pipeline. A progressStep below 1 uses DefaultProgressStep.
func New(extractor *extract.Extractor, logger *slog.Logger, progressStep int) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if progressStep < 1 {
		progressStep = DefaultProgressStep
	}
	return &Pipeline{
		extractor:    extractor,
		classifier:   selection.New(extractor),
		projector:    projection.New(extractor),
		logger:       logger,
		progressStep: progressStep,
	}
}

// Run consumes src until it is exhausted or ctx is canceled. Records are
// classified first and only selected ones are projected. The sink is
// flushed before Run returns, also on cancellation.
func (p *Pipeline) Run(ctx context.Context, src RecordSource, sink RowSink) (Stats, error) {
	var stats Stats

	finish := func(err error) (Stats, error) {
		stats.Undecodable = src.Skipped()
		stats.Anomalies = p.extractor.Diagnostics().Counts()
		if flushErr := sink.Flush(); flushErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to flush output: %w", flushErr))
		}
		return stats, err
	}

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Run interrupted", "processed", stats.Read)
			return finish(ctx.Err())
		default:
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return finish(fmt.Errorf("failed to read records: %w", err))
		}

		stats.Read++
		if stats.Read%p.progressStep == 0 {
			p.logger.Info(fmt.Sprintf("Processed %d records", stats.Read))
		}

		cr, decision := p.classifier.Evaluate(rec)
		switch decision {
		case selection.SelectedStrict:
			stats.Strict++
		case selection.SelectedBroad:
			stats.Broad++
		default:
			stats.NotSelected++
			continue
		}

		row := p.projector.Project(rec, cr, decision)
		if row.IsPlaceholder() {
			stats.Placeholders++
		}
		if err := sink.Add(row); err != nil {
			return finish(fmt.Errorf("failed to write row: %w", err))
		}
	}

	p.logger.Info("Finished processing records",
		"read", stats.Read,
		"strict", stats.Strict,
		"broad", stats.Broad)
	return finish(nil)
}

// Inspection is the decision and serialized attributes of one record.
type Inspection struct {
	Position int
	Record   *marc.Record
	IDs      marc.IDs
	Decision selection.Decision
	Row      projection.Row
}

// Inspect evaluates up to limit records without writing anything. Every
// record is projected, including the ones that are not selected. A limit
// below 1 inspects the whole source.
func (p *Pipeline) Inspect(ctx context.Context, src RecordSource, limit int, visit func(Inspection) error) error {
	for i := 1; limit < 1 || i <= limit; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read records: %w", err)
		}

		cr, decision := p.classifier.Evaluate(rec)
		if err := visit(Inspection{
			Position: i,
			Record:   rec,
			IDs:      rec.IDs(),
			Decision: decision,
			Row:      p.projector.Project(rec, cr, decision),
		}); err != nil {
			return err
		}
	}
	return nil
}
