package service

import (
	"context"

	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/dto"
	"github.com/hrms-lite-console/internal/repository"
)

// AttendanceService определяет интерфейс бизнес-логики посещаемости
type AttendanceService interface {
	Create(ctx context.Context, req *dto.CreateAttendanceRequest) (*domain.Attendance, error)
	List(ctx context.Context) ([]domain.Attendance, error)
	ListByEmployeeID(ctx context.Context, employeeID int64) ([]domain.Attendance, error)
	Update(ctx context.Context, id int64, req *dto.UpdateAttendanceRequest) (*domain.Attendance, error)
	Delete(ctx context.Context, id int64) error
}

type attendanceService struct {
	attRepo repository.AttendanceRepository
	empRepo repository.EmployeeRepository
}

// NewAttendanceService создаёт новый экземпляр сервиса
func NewAttendanceService(attRepo repository.AttendanceRepository, empRepo repository.EmployeeRepository) AttendanceService {
	return &attendanceService{
		attRepo: attRepo,
		empRepo: empRepo,
	}
}

func (s *attendanceService) Create(ctx context.Context, req *dto.CreateAttendanceRequest) (*domain.Attendance, error) {
	// Проверяем существование сотрудника
	if _, err := s.empRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	if !req.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	// Одна отметка на сотрудника в день
	exists, err := s.attRepo.ExistsForDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateAttendance
	}

	rec := &domain.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     req.Status,
	}

	if err := s.attRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *attendanceService) List(ctx context.Context) ([]domain.Attendance, error) {
	return s.attRepo.List(ctx)
}

func (s *attendanceService) ListByEmployeeID(ctx context.Context, employeeID int64) ([]domain.Attendance, error) {
	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	return s.attRepo.ListByEmployeeID(ctx, employeeID)
}

func (s *attendanceService) Update(ctx context.Context, id int64, req *dto.UpdateAttendanceRequest) (*domain.Attendance, error) {
	rec, err := s.attRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		rec.Status = *req.Status
	}

	if req.Date != nil {
		rec.Date = *req.Date
	}

	if err := s.attRepo.Update(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *attendanceService) Delete(ctx context.Context, id int64) error {
	return s.attRepo.Delete(ctx, id)
}
