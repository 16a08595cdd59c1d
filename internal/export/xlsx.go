// Package export writes list pages to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// WriteXLSX writes sheets as an .xlsx workbook to w. Headers are bold and
// frozen; columns are sized to their longest cell.
func WriteXLSX(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("export: no sheets")
	}
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F2F2F2"}},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	for i, sh := range sheets {
		name := sh.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("export: naming sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("export: adding sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, sh, bold); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, sh Sheet, headerStyle int) error {
	widths := make([]int, len(sh.Headers))
	for i, h := range sh.Headers {
		widths[i] = len(h)
	}

	if err := f.SetSheetRow(name, "A1", &sh.Headers); err != nil {
		return fmt.Errorf("export: header row: %w", err)
	}
	for r, row := range sh.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for i, v := range row {
			values[i] = v
			if i < len(widths) {
				widths[i] = max(widths[i], len(v))
			}
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("export: row %d: %w", r+1, err)
		}
	}

	if len(sh.Headers) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(sh.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("export: styling header: %w", err)
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, col, col, float64(min(w, 60)+2)); err != nil {
			return fmt.Errorf("export: column width: %w", err)
		}
	}
	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// SaveXLSX writes the workbook to path, creating parent directories.
func SaveXLSX(path string, sheets ...Sheet) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: creating %s: %w", dir, err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: closing %s: %w", path, cerr)
		}
	}()
	return WriteXLSX(out, sheets...)
}
