package dto

import "github.com/hrms-lite-console/internal/domain"

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,min=1,max=50"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Email      string `json:"email" validate:"required,basic_email"`
	Department string `json:"department" validate:"required,min=1,max=100"`
}

// UpdateEmployeeRequest - запрос на обновление сотрудника.
// Табельный номер не передаётся: он неизменяем после создания.
type UpdateEmployeeRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,basic_email"`
	Department *string `json:"department,omitempty" validate:"omitempty,min=1,max=100"`
}

// CreateAttendanceRequest - запрос на отметку посещаемости
type CreateAttendanceRequest struct {
	EmployeeID int64                   `json:"employee_id" validate:"required,min=1"`
	Date       string                  `json:"date" validate:"required,datetime=2006-01-02"`
	Status     domain.AttendanceStatus `json:"status" validate:"required,oneof=present absent"`
}

// UpdateAttendanceRequest - частичное обновление отметки
type UpdateAttendanceRequest struct {
	Date   *string                  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status *domain.AttendanceStatus `json:"status,omitempty" validate:"omitempty,oneof=present absent"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at"`
}

// AttendanceResponse - ответ с данными отметки
type AttendanceResponse struct {
	ID         int64                   `json:"id"`
	EmployeeID int64                   `json:"employee_id"`
	Date       string                  `json:"date"`
	Status     domain.AttendanceStatus `json:"status"`
}

// EmployeeCountResponse - ответ статистики по количеству сотрудников
type EmployeeCountResponse struct {
	TotalEmployees int64 `json:"total_employees"`
}

// AttendanceSummaryResponse - сводка посещаемости сотрудника
type AttendanceSummaryResponse struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	TotalRecords int64  `json:"total_records"`
	PresentDays  int64  `json:"present_days"`
	AbsentDays   int64  `json:"absent_days"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Detail string `json:"detail"`
}
