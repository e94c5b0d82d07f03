package output

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/lehigh-university-libraries/marc2csv/internal/projection"
)

// XLSXSheet is the worksheet rows are written to.
const XLSXSheet = "records"

// XLSXWriter accumulates rows in a workbook and saves it on Close. An
// existing workbook is reopened and extended.
type XLSXWriter struct {
	path string
	file *excelize.File
	next int // 1-based row for the next write
}

// NewXLSXWriter opens or creates the workbook at path.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open xlsx output: %w", err)
		}
		rows, err := f.GetRows(XLSXSheet)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to read sheet %s: %w", XLSXSheet, err)
		}
		return &XLSXWriter{path: path, file: f, next: len(rows) + 1}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat xlsx output: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	w := &XLSXWriter{path: path, file: f, next: 1}
	if err := w.writeRow(projection.Columns); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write xlsx header: %w", err)
	}
	return w, nil
}

// WriteRows adds rows below the last written one.
func (w *XLSXWriter) WriteRows(rows []projection.Row) error {
	for _, row := range rows {
		if err := w.writeRow(row.Values()); err != nil {
			return err
		}
	}
	return nil
}

// Close saves the workbook.
func (w *XLSXWriter) Close() error {
	saveErr := w.file.SaveAs(w.path)
	if saveErr != nil {
		saveErr = fmt.Errorf("failed to save xlsx output: %w", saveErr)
	}
	return errors.Join(saveErr, w.file.Close())
}

func (w *XLSXWriter) writeRow(values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", w.next, err)
	}
	if err := w.file.SetSheetRow(XLSXSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", w.next, err)
	}
	w.next++
	return nil
}
