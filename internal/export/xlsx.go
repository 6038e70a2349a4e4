// Package export выгружает списки консоли в XLSX.
package export

import (
	"fmt"
	"io"

	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/view"
	"github.com/xuri/excelize/v2"
)

const (
	EmployeesSheet  = "Employees"
	AttendanceSheet = "Attendance"
)

// Employees записывает таблицу сотрудников
func Employees(w io.Writer, employees []domain.Employee) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName(file.GetSheetName(0), EmployeesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	rows := make([][]any, 0, len(employees)+1)
	rows = append(rows, []any{"Employee ID", "Name", "Email", "Department"})
	for _, emp := range employees {
		rows = append(rows, []any{emp.EmployeeID, emp.Name, emp.Email, emp.Department})
	}

	if err := writeRows(file, EmployeesSheet, 1, rows); err != nil {
		return err
	}
	return file.Write(w)
}

// Attendance записывает видимые строки посещаемости и сводку по всем отметкам сотрудника
func Attendance(w io.Writer, employeeName string, records []domain.Attendance, summary view.Summary) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName(file.GetSheetName(0), AttendanceSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]any{
		{"Employee", employeeName},
		{"Total Records", summary.Total},
		{"Days Present", summary.Present},
		{"Days Absent", summary.Absent},
		{},
		{"Date", "Status"},
	}
	for _, rec := range records {
		rows = append(rows, []any{rec.Date, string(rec.Status)})
	}

	if err := writeRows(file, AttendanceSheet, 1, rows); err != nil {
		return err
	}
	return file.Write(w)
}

func writeRows(file *excelize.File, sheet string, startRow int, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", startRow+i, err)
		}
	}
	return nil
}
