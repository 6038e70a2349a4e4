package repository

import (
	"context"
	"errors"

	"github.com/hrms-lite-console/internal/domain"
	"gorm.io/gorm"
)

// AttendanceRepository определяет интерфейс для работы с посещаемостью
type AttendanceRepository interface {
	Create(ctx context.Context, rec *domain.Attendance) error
	List(ctx context.Context) ([]domain.Attendance, error)
	ListByEmployeeID(ctx context.Context, employeeID int64) ([]domain.Attendance, error)
	GetByID(ctx context.Context, id int64) (*domain.Attendance, error)
	Update(ctx context.Context, rec *domain.Attendance) error
	Delete(ctx context.Context, id int64) error
	ExistsForDate(ctx context.Context, employeeID int64, date string) (bool, error)
	CountByStatus(ctx context.Context, employeeID int64) (map[domain.AttendanceStatus]int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository создаёт новый экземпляр репозитория
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, rec *domain.Attendance) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *attendanceRepository) List(ctx context.Context) ([]domain.Attendance, error) {
	records := []domain.Attendance{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error
	return records, err
}

func (r *attendanceRepository) ListByEmployeeID(ctx context.Context, employeeID int64) ([]domain.Attendance, error) {
	records := []domain.Attendance{}
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("id ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (*domain.Attendance, error) {
	var rec domain.Attendance
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *attendanceRepository) Update(ctx context.Context, rec *domain.Attendance) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *attendanceRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Attendance{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepository) ExistsForDate(ctx context.Context, employeeID int64, date string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Attendance{}).
		Where("employee_id = ? AND date = ?", employeeID, date).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus возвращает количество отметок сотрудника по статусам
func (r *attendanceRepository) CountByStatus(ctx context.Context, employeeID int64) (map[domain.AttendanceStatus]int64, error) {
	var rows []struct {
		Status domain.AttendanceStatus
		Total  int64
	}

	err := r.db.WithContext(ctx).
		Model(&domain.Attendance{}).
		Select("status, COUNT(*) AS total").
		Where("employee_id = ?", employeeID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[domain.AttendanceStatus]int64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Total
	}
	return result, nil
}
