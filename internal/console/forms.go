package console

import (
	"errors"
	"maps"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hrms-lite-console/internal/domain"
)

// Имена полей форм
const (
	FieldEmployeeID = "employee_id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldDepartment = "department"
	FieldDate       = "date"
	FieldStatus     = "status"
)

// Departments - значения, предлагаемые в форме сотрудника
var Departments = []string{
	"Engineering",
	"Sales",
	"Marketing",
	"Human Resources",
	"Finance",
	"Operations",
	"Other",
}

// EmployeeFields - значения полей формы сотрудника
type EmployeeFields struct {
	EmployeeID string `validate:"required"`
	Name       string `validate:"required"`
	Email      string `validate:"required,basic_email"`
	Department string `validate:"required"`
}

// EmployeeForm - состояние формы создания/редактирования сотрудника.
// Controller отдаёт наружу только копии.
type EmployeeForm struct {
	EditingID   int64
	Values      EmployeeFields
	Errors      map[string]string
	SubmitError string
}

// Editing сообщает, редактируется ли существующий сотрудник
func (f EmployeeForm) Editing() bool {
	return f.EditingID != 0
}

func newEmployeeForm(emp *domain.Employee) *EmployeeForm {
	form := &EmployeeForm{Errors: map[string]string{}}
	if emp != nil {
		form.EditingID = emp.ID
		form.Values = EmployeeFields{
			EmployeeID: emp.EmployeeID,
			Name:       emp.Name,
			Email:      emp.Email,
			Department: emp.Department,
		}
	}
	return form
}

// setField меняет значение поля и снимает ошибку только этого поля
func (f *EmployeeForm) setField(field, value string) error {
	switch field {
	case FieldEmployeeID:
		if f.Editing() {
			return domain.ErrReadOnlyField
		}
		f.Values.EmployeeID = value
	case FieldName:
		f.Values.Name = value
	case FieldEmail:
		f.Values.Email = value
	case FieldDepartment:
		f.Values.Department = value
	default:
		return domain.ErrUnknownField
	}
	delete(f.Errors, field)
	return nil
}

func (f *EmployeeForm) clone() EmployeeForm {
	c := *f
	c.Errors = maps.Clone(f.Errors)
	return c
}

func (f EmployeeFields) trimmed() EmployeeFields {
	return EmployeeFields{
		EmployeeID: strings.TrimSpace(f.EmployeeID),
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.TrimSpace(f.Email),
		Department: strings.TrimSpace(f.Department),
	}
}

// AttendanceFields - значения полей формы отметки
type AttendanceFields struct {
	Date   string                  `validate:"required,datetime=2006-01-02"`
	Status domain.AttendanceStatus `validate:"required,oneof=present absent"`
}

// AttendanceForm - состояние формы отметки посещаемости
type AttendanceForm struct {
	Values AttendanceFields
	Error  string
}

// setField меняет поле формы отметки. Дата позже today отклоняется и не записывается.
func (f *AttendanceForm) setField(field, value string, today time.Time) error {
	switch field {
	case FieldDate:
		if isFutureDate(strings.TrimSpace(value), today) {
			f.Error = MsgFutureDate
			return domain.ErrFutureDate
		}
		f.Values.Date = value
		f.Error = ""
	case FieldStatus:
		status := domain.AttendanceStatus(strings.ToLower(strings.TrimSpace(value)))
		if !status.Valid() {
			return domain.ErrInvalidStatus
		}
		f.Values.Status = status
	default:
		return domain.ErrUnknownField
	}
	return nil
}

// isFutureDate сравнивает только календарные даты; неразборчивую строку оставляет валидатору
func isFutureDate(value string, today time.Time) bool {
	date, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return false
	}
	return date.Format(domain.DateLayout) > today.Format(domain.DateLayout)
}

var fieldNames = map[string]string{
	"EmployeeID": FieldEmployeeID,
	"Name":       FieldName,
	"Email":      FieldEmail,
	"Department": FieldDepartment,
	"Date":       FieldDate,
	"Status":     FieldStatus,
}

var fieldLabels = map[string]string{
	FieldEmployeeID: "Employee ID",
	FieldName:       "Name",
	FieldEmail:      "Email",
	FieldDepartment: "Department",
	FieldDate:       "Date",
	FieldStatus:     "Status",
}

// fieldErrors превращает ошибки validator в сообщения по полям
func fieldErrors(err error) map[string]string {
	result := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result["form"] = err.Error()
		return result
	}

	for _, fe := range verrs {
		field := fieldNames[fe.StructField()]
		label := fieldLabels[field]
		switch fe.Tag() {
		case "required":
			result[field] = label + " is required"
		case "basic_email":
			result[field] = "Invalid email format"
		case "datetime":
			result[field] = "Invalid date format"
		case "oneof":
			result[field] = label + " must be present or absent"
		default:
			result[field] = "Invalid " + strings.ToLower(label)
		}
	}
	return result
}
