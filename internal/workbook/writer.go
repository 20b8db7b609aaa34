// Package workbook serializes extracted record sets into .xlsx artifacts
// and owns the monthly file naming contract.
package workbook

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ErrNoRecords is returned when a write is requested for zero records.
// Callers use it to tell "no data in period" apart from a write failure.
var ErrNoRecords = errors.New("no records to write")

// maxColumnWidth caps auto-sized column widths so the sheet stays usable
// when opened interactively.
const maxColumnWidth = 50

// Category is the fixed artifact suffix for one extraction path.
type Category string

const (
	CategoryAppointments Category = "agendamentos"
	CategorySales        Category = "vendas"
	CategoryVaccines     Category = "vacina"
	CategoryExams        Category = "exames"
)

// ArtifactPath builds the artifact name for a month label and category:
// "202510-vendas.xlsx". An empty label falls back to a timestamp so a
// manual run still produces a findable file.
func ArtifactPath(dir, label string, category Category) string {
	base := label
	if base == "" {
		base = time.Now().Format("20060102_150405")
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.xlsx", base, category))
}

// Write serializes rows into a single-sheet workbook at path, overwriting
// any existing file. Columns follow the given header order; cell values may
// be string, float64, or nil for a missing value. Zero rows return
// ErrNoRecords and no file is created.
func Write(path, sheet string, headers []string, rows [][]any) error {
	if len(rows) == 0 {
		return ErrNoRecords
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	widths := make([]int, len(headers))
	for col, header := range headers {
		if err := setCell(f, sheet, col, 0, header); err != nil {
			return err
		}
		widths[col] = utf8.RuneCountInString(header)
	}

	for rowIdx, row := range rows {
		for col := 0; col < len(headers) && col < len(row); col++ {
			value := row[col]
			if value == nil {
				continue
			}
			if err := setCell(f, sheet, col, rowIdx+1, value); err != nil {
				return err
			}
			if n := valueWidth(value); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col := range headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("invalid column index %d: %w", col, err)
		}
		width := widths[col] + 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}

// valueWidth measures a cell value in characters, not bytes, so accented
// text does not inflate the column.
func valueWidth(value any) int {
	return utf8.RuneCountInString(fmt.Sprintf("%v", value))
}
