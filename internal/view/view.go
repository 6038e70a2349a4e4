// Package view содержит чистые функции, строящие представление из снимков хранилища:
// фильтрацию, сортировку и сводные счётчики. Входные срезы никогда не изменяются.
package view

import (
	"slices"
	"strings"

	"github.com/hrms-lite-console/internal/domain"
)

// StatusFilter - фильтр таблицы посещаемости по статусу
type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusPresent StatusFilter = StatusFilter(domain.StatusPresent)
	StatusAbsent  StatusFilter = StatusFilter(domain.StatusAbsent)
)

// SortOrder - порядок сортировки по дате
type SortOrder string

const (
	NewestFirst SortOrder = "date-desc"
	OldestFirst SortOrder = "date-asc"
)

// Summary - сводка посещаемости
type Summary struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

// FilterEmployees оставляет сотрудников, у которых имя, табельный номер или email
// содержат term без учёта регистра. Пустой term возвращает вход без изменений.
func FilterEmployees(employees []domain.Employee, term string) []domain.Employee {
	if term == "" {
		return employees
	}

	needle := strings.ToLower(term)
	result := make([]domain.Employee, 0, len(employees))
	for _, emp := range employees {
		if strings.Contains(strings.ToLower(emp.Name), needle) ||
			strings.Contains(strings.ToLower(emp.EmployeeID), needle) ||
			strings.Contains(strings.ToLower(emp.Email), needle) {
			result = append(result, emp)
		}
	}
	return result
}

// FilterAttendance оставляет отметки с точным совпадением статуса; StatusAll - без фильтра
func FilterAttendance(records []domain.Attendance, status StatusFilter) []domain.Attendance {
	if status == StatusAll || status == "" {
		return records
	}

	result := make([]domain.Attendance, 0, len(records))
	for _, rec := range records {
		if string(rec.Status) == string(status) {
			result = append(result, rec)
		}
	}
	return result
}

// SortAttendance возвращает отсортированную по дате копию.
// Сортировка устойчивая: отметки с одной датой сохраняют исходный порядок в обоих направлениях.
func SortAttendance(records []domain.Attendance, order SortOrder) []domain.Attendance {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b domain.Attendance) int {
		cmp := a.ParsedDate().Compare(b.ParsedDate())
		if order == OldestFirst {
			return cmp
		}
		return -cmp
	})
	return sorted
}

// AttendanceTable - видимые строки таблицы: фильтр, затем сортировка
func AttendanceTable(records []domain.Attendance, status StatusFilter, order SortOrder) []domain.Attendance {
	return SortAttendance(FilterAttendance(records, status), order)
}

// Summarize считает отметки. Неизвестные статусы учитываются только в Total.
func Summarize(records []domain.Attendance) Summary {
	var s Summary
	for _, rec := range records {
		s.Total++
		switch rec.Status {
		case domain.StatusPresent:
			s.Present++
		case domain.StatusAbsent:
			s.Absent++
		}
	}
	return s
}

// FindEmployee ищет сотрудника по серверному ID
func FindEmployee(employees []domain.Employee, id int64) (domain.Employee, bool) {
	for _, emp := range employees {
		if emp.ID == id {
			return emp, true
		}
	}
	return domain.Employee{}, false
}

// EmptyEmployeesMessage - текст пустого списка сотрудников (пустая строка, если список не пуст)
func EmptyEmployeesMessage(all, visible []domain.Employee) string {
	switch {
	case len(visible) > 0:
		return ""
	case len(all) == 0:
		return "No employees yet"
	default:
		return "No employees match your search"
	}
}

// EmptyAttendanceMessage - текст пустой таблицы посещаемости
func EmptyAttendanceMessage(all, visible []domain.Attendance) string {
	switch {
	case len(visible) > 0:
		return ""
	case len(all) == 0:
		return "No attendance records yet"
	default:
		return "No matching records"
	}
}

// ParseStatusFilter разбирает пользовательский ввод фильтра
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case StatusAll, StatusPresent, StatusAbsent:
		return f, true
	default:
		return "", false
	}
}

// ParseSortOrder разбирает пользовательский ввод порядка сортировки
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "newest", string(NewestFirst), "desc":
		return NewestFirst, true
	case "oldest", string(OldestFirst), "asc":
		return OldestFirst, true
	default:
		return "", false
	}
}
