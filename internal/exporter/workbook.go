package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"hoopsight/internal/config"
)

// WorkbookWriter assembles multi-sheet XLSX workbooks from view tables.
type WorkbookWriter struct {
	paths *config.Paths
}

// NewWorkbookWriter creates a new workbook writer instance
func NewWorkbookWriter(paths *config.Paths) *WorkbookWriter {
	return &WorkbookWriter{paths: paths}
}

// WriteWorkbook writes tables into an XLSX file in the reports directory
// and returns the full path of the written file.
func (w *WorkbookWriter) WriteWorkbook(filename string, tables []Table) (string, error) {
	fullPath := filename
	if !filepath.IsAbs(fullPath) {
		fullPath = w.paths.ReportPath(filename)
	}

	slog.Info("Writing workbook",
		slog.String("file_path", filename),
		slog.String("full_path", fullPath),
		slog.Int("sheet_count", len(tables)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := BuildWorkbook(tables)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return fullPath, nil
}

// EncodeWorkbook streams a workbook built from tables to w. Used by the
// HTTP export surface where no file is involved.
func EncodeWorkbook(w io.Writer, tables []Table) error {
	f, err := BuildWorkbook(tables)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook creates an in-memory workbook with one sheet per table.
// The caller owns the returned file and must Close it.
func BuildWorkbook(tables []Table) (*excelize.File, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to export")
	}

	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, table := range tables {
		// The first table takes over the default sheet, the rest get
		// their own.
		if i == 0 {
			if err := f.SetSheetName("Sheet1", table.Sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(table.Sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to create sheet %q: %w", table.Sheet, err)
			}
		}

		if err := writeSheet(f, table, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to fill sheet %q: %w", table.Sheet, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, table Table, headerStyle int) error {
	for i, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(table.Sheet, cell, header); err != nil {
			return err
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(table.Sheet, col, col, 16); err != nil {
			return err
		}
	}

	if len(table.Headers) > 0 {
		lastCell, err := excelize.CoordinatesToCellName(len(table.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(table.Sheet, "A1", lastCell, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range table.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := setCell(f, table.Sheet, cell, value); err != nil {
				return err
			}
		}
	}

	// Keep the header visible while scrolling
	return f.SetPanes(table.Sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// setCell writes numeric-looking cells as numbers so spreadsheet formulas
// work on exported stats.
func setCell(f *excelize.File, sheet, cell, value string) error {
	if v, err := strconv.ParseFloat(value, 64); err == nil {
		return f.SetCellValue(sheet, cell, v)
	}
	return f.SetCellValue(sheet, cell, value)
}
