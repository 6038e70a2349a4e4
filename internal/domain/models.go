package domain

import (
	"time"
)

// DateLayout - формат даты посещаемости (ISO, без времени)
const DateLayout = "2006-01-02"

// AttendanceStatus - статус отметки посещаемости
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// Valid сообщает, входит ли статус в допустимое множество
func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Employee представляет сотрудника
type Employee struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID string    `json:"employee_id" gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null;index"`
	Email      string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Department string    `json:"department" gorm:"type:varchar(100);not null"`
	CreatedAt  time.Time `json:"-" gorm:"autoCreateTime"`

	Attendance []Attendance `json:"-" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// Attendance представляет отметку посещаемости сотрудника за день.
// EmployeeID ссылается на Employee.ID, а не на табельный номер.
type Attendance struct {
	ID         int64            `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID int64            `json:"employee_id" gorm:"not null;index"`
	Date       string           `json:"date" gorm:"type:varchar(10);not null;index"`
	Status     AttendanceStatus `json:"status" gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time        `json:"-" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Attendance) TableName() string {
	return "attendance"
}

// ParsedDate разбирает дату отметки. Некорректная дата возвращает нулевое время.
func (a Attendance) ParsedDate() time.Time {
	t, err := time.Parse(DateLayout, a.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
