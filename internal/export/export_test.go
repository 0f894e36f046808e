package export

import (
	"bytes"
	"path/filepath"
	"testing"

	excelize "github.com/xuri/excelize/v2"

	"github.com/kingrea/staff-directory/internal/employee"
)

func sample() []employee.Employee {
	return []employee.Employee{
		{Name: "Kira Takada", Gender: "female", Age: 28, Hobby: "reading,chess", Department: "Design"},
		{Name: "Arman", Gender: "male", Age: 35, Hobby: "go", Department: "Sales", Photo: "https://cdn.example.com/a.png"},
	}
}

func TestWriteWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.xlsx")
	if err := WriteWorkbook(sample(), path); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][5] != "Photo" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][3] != "reading, chess" {
		t.Fatalf("hobby cell = %q", rows[1][3])
	}
	if rows[1][5] != "https://i.pravatar.cc/40?u=Kira+Takada" {
		t.Fatalf("photo cell = %q", rows[1][5])
	}
	if rows[2][2] != "35" {
		t.Fatalf("age cell = %q", rows[2][2])
	}
}

func TestBytesOpensAsWorkbook(t *testing.T) {
	data, err := Bytes(nil)
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("empty export should hold only the header, got %d rows", len(rows))
	}
}

func TestBuildClosesWorkbookOnError(t *testing.T) {
	closed := 0
	prev := closeWorkbook
	closeWorkbook = func(f *excelize.File) error {
		closed++
		return f.Close()
	}
	t.Cleanup(func() { closeWorkbook = prev })

	f, err := build(sample(), "bad[sheet]")
	if err == nil {
		t.Fatalf("expected invalid sheet name to fail")
	}
	if f != nil {
		t.Fatalf("failed build should not hand back a workbook")
	}
	if closed != 1 {
		t.Fatalf("workbook should be closed once on failure, closed %d times", closed)
	}
}
