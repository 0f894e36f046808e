// Package export writes the employee list to an Excel workbook.
package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	excelize "github.com/xuri/excelize/v2"

	"github.com/kingrea/staff-directory/internal/employee"
)

// SheetName is the worksheet holding the rows.
const SheetName = "Employees"

var headers = []string{"Name", "Gender", "Age", "Hobby", "Department", "Photo"}

const (
	minColumnWidth = 8
	maxColumnWidth = 60
)

// WriteWorkbook saves employees to path.
func WriteWorkbook(employees []employee.Employee, path string) error {
	f, err := build(employees, SheetName)
	if err != nil {
		return err
	}
	defer func() { _ = closeWorkbook(f) }()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// Bytes renders employees to an in-memory workbook.
func Bytes(employees []employee.Employee) ([]byte, error) {
	f, err := build(employees, SheetName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeWorkbook(f) }()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: write to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// closeWorkbook releases a workbook's temporary files.
var closeWorkbook = func(f *excelize.File) error { return f.Close() }

// build returns an open workbook the caller must close. On error the
// workbook is closed before returning.
func build(employees []employee.Employee, sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fill(f, employees, sheet); err != nil {
		_ = closeWorkbook(f)
		return nil, err
	}
	return f, nil
}

func fill(f *excelize.File, employees []employee.Employee, sheet string) error {
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if err := writeHeaders(f, sheet); err != nil {
		return fmt.Errorf("export: write headers: %w", err)
	}
	if err := writeRows(f, sheet, employees); err != nil {
		return fmt.Errorf("export: write rows: %w", err)
	}
	if err := fitColumns(f, sheet, employees); err != nil {
		return fmt.Errorf("export: fit columns: %w", err)
	}
	return nil
}

func writeHeaders(f *excelize.File, sheet string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, employees []employee.Employee) error {
	for i, e := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			e.Name,
			e.Gender,
			e.Age,
			strings.Join(e.Hobbies(), ", "),
			e.Department,
			e.PhotoURL(),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func fitColumns(f *excelize.File, sheet string, employees []employee.Employee) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, e := range employees {
		values := []string{
			e.Name,
			e.Gender,
			fmt.Sprint(e.Age),
			strings.Join(e.Hobbies(), ", "),
			e.Department,
			e.PhotoURL(),
		}
		for i, v := range values {
			widths[i] = max(widths[i], utf8.RuneCountInString(v))
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(min(max(w+2, minColumnWidth), maxColumnWidth))
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
