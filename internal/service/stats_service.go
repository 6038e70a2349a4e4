package service

import (
	"context"

	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/dto"
	"github.com/hrms-lite-console/internal/repository"
)

// StatsService определяет интерфейс статистики
type StatsService interface {
	EmployeeCount(ctx context.Context) (int64, error)
	AttendanceSummary(ctx context.Context, employeeID int64) (*dto.AttendanceSummaryResponse, error)
}

type statsService struct {
	empRepo repository.EmployeeRepository
	attRepo repository.AttendanceRepository
}

// NewStatsService создаёт новый экземпляр сервиса
func NewStatsService(empRepo repository.EmployeeRepository, attRepo repository.AttendanceRepository) StatsService {
	return &statsService{
		empRepo: empRepo,
		attRepo: attRepo,
	}
}

func (s *statsService) EmployeeCount(ctx context.Context) (int64, error) {
	return s.empRepo.Count(ctx)
}

func (s *statsService) AttendanceSummary(ctx context.Context, employeeID int64) (*dto.AttendanceSummaryResponse, error) {
	emp, err := s.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	counts, err := s.attRepo.CountByStatus(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return &dto.AttendanceSummaryResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		TotalRecords: total,
		PresentDays:  counts[domain.StatusPresent],
		AbsentDays:   counts[domain.StatusAbsent],
	}, nil
}
