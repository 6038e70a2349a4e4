package export_test

import (
	"bytes"
	"testing"

	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/export"
	"github.com/hrms-lite-console/internal/view"
	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = file.Close() }()

	rows, err := file.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return rows
}

func TestEmployees(t *testing.T) {
	var buf bytes.Buffer
	employees := []domain.Employee{
		{ID: 1, EmployeeID: "E100", Name: "Ann Lee", Email: "ann@x.io", Department: "Sales"},
		{ID: 2, EmployeeID: "E101", Name: "Bob Roe", Email: "bob@x.io", Department: "Finance"},
	}

	if err := export.Employees(&buf, employees); err != nil {
		t.Fatalf("export: %v", err)
	}

	rows := readRows(t, buf.Bytes(), export.EmployeesSheet)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Employee ID" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[2][0] != "E101" || rows[2][3] != "Finance" {
		t.Errorf("unexpected row %v", rows[2])
	}
}

func TestAttendance(t *testing.T) {
	var buf bytes.Buffer
	records := []domain.Attendance{
		{ID: 2, EmployeeID: 1, Date: "2024-03-02", Status: domain.StatusAbsent},
		{ID: 1, EmployeeID: 1, Date: "2024-03-01", Status: domain.StatusPresent},
	}
	summary := view.Summary{Total: 3, Present: 2, Absent: 1}

	if err := export.Attendance(&buf, "Ann Lee", records, summary); err != nil {
		t.Fatalf("export: %v", err)
	}

	rows := readRows(t, buf.Bytes(), export.AttendanceSheet)
	if rows[0][1] != "Ann Lee" {
		t.Errorf("expected employee name, got %v", rows[0])
	}
	if rows[1][1] != "3" || rows[2][1] != "2" || rows[3][1] != "1" {
		t.Errorf("unexpected summary rows %v", rows[1:4])
	}

	last := rows[len(rows)-1]
	if last[0] != "2024-03-01" || last[1] != "present" {
		t.Errorf("unexpected last row %v", last)
	}
	if len(rows) != 8 {
		t.Errorf("expected 8 rows, got %d", len(rows))
	}
}
