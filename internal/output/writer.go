// Package output persists projected rows in batches.
package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/projection"
)

// ErrUnsupportedFormat is returned for an output format with no writer.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format names an output encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatXLSX    Format = "xlsx"
)

// ParseFormat normalizes a format name from config or flags.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatParquet, FormatXLSX:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s (supported: csv, parquet, xlsx)", ErrUnsupportedFormat, name)
	}
}

// RowWriter is a destination for projected rows.
type RowWriter interface {
	WriteRows(rows []projection.Row) error
	Close() error
}

// New opens a writer for format at path.
func New(format Format, path string) (RowWriter, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(path)
	case FormatParquet:
		return NewParquetWriter(path)
	case FormatXLSX:
		return NewXLSXWriter(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// BatchWriter buffers rows and hands them to the underlying writer once
// size rows have accumulated.
type BatchWriter struct {
	w       RowWriter
	size    int
	pending []projection.Row
	written int
}

// NewBatchWriter wraps w. A size below 1 writes every row immediately.
func NewBatchWriter(w RowWriter, size int) *BatchWriter {
	if size < 1 {
		size = 1
	}
	return &BatchWriter{w: w, size: size, pending: make([]projection.Row, 0, size)}
}

// Add queues row and flushes when the batch is full.
func (b *BatchWriter) Add(row projection.Row) error {
	b.pending = append(b.pending, row)
	if len(b.pending) >= b.size {
		return b.Flush()
	}
	return nil
}

// Flush writes any queued rows.
func (b *BatchWriter) Flush() error {
	if len(b.pending) == 0 {
		return nil
	}
	if err := b.w.WriteRows(b.pending); err != nil {
		return fmt.Errorf("failed to write batch of %d rows: %w", len(b.pending), err)
	}
	b.written += len(b.pending)
	b.pending = b.pending[:0]
	return nil
}

// Written returns the number of rows handed to the underlying writer.
func (b *BatchWriter) Written() int {
	return b.written
}

// Close flushes the partial batch and closes the underlying writer.
func (b *BatchWriter) Close() error {
	flushErr := b.Flush()
	closeErr := b.w.Close()
	return errors.Join(flushErr, closeErr)
}
