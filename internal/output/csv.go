package output

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lehigh-university-libraries/marc2csv/internal/projection"
)

// CSVWriter appends rows to a CSV file with every field quoted. The header
// is written only when the file is new or empty.
type CSVWriter struct {
	file *os.File
	buf  *bufio.Writer
}

// NewCSVWriter opens path for appending.
func NewCSVWriter(path string) (*CSVWriter, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv output: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat csv output: %w", err)
	}

	w := &CSVWriter{file: file, buf: bufio.NewWriter(file)}
	if info.Size() == 0 {
		if err := w.writeRecord(projection.Columns); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write csv header: %w", err)
		}
	}
	return w, nil
}

// WriteRows appends rows and flushes them to disk.
func (w *CSVWriter) WriteRows(rows []projection.Row) error {
	for _, row := range rows {
		if err := w.writeRecord(row.Values()); err != nil {
			return err
		}
	}
	return w.buf.Flush()
}

// Close flushes buffered output and closes the file.
func (w *CSVWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush csv output: %w", err)
	}
	return w.file.Close()
}

func (w *CSVWriter) writeRecord(fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if err := w.buf.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.buf.WriteString(quote(field)); err != nil {
			return err
		}
	}
	return w.buf.WriteByte('\n')
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
