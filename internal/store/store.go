// Package store хранит локальные снимки сотрудников и посещаемости.
// Снимок всегда заменяется целиком после повторной загрузки с сервера.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/dto"
)

// Remote - вызовы удалённого сервиса, нужные хранилищу
type Remote interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	ListAttendanceByEmployee(ctx context.Context, employeeID int64) ([]domain.Attendance, error)
	UpdateAttendance(ctx context.Context, id int64, req dto.UpdateAttendanceRequest) (*domain.Attendance, error)
}

// Store - кэш последнего успешно загруженного состояния.
// Писатель один (reloadMu), читатели видят только целые снимки.
type Store struct {
	remote Remote

	reloadMu sync.Mutex

	mu         sync.RWMutex
	employees  []domain.Employee
	attendance []domain.Attendance
	owner      int64
}

// New создаёт пустое хранилище
func New(remote Remote) *Store {
	return &Store{
		remote:     remote,
		employees:  []domain.Employee{},
		attendance: []domain.Attendance{},
	}
}

// ReloadEmployees заменяет список сотрудников результатом полного запроса.
// При ошибке прежний снимок остаётся нетронутым.
func (s *Store) ReloadEmployees(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	employees, err := s.remote.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("reload employees: %w", err)
	}
	if employees == nil {
		employees = []domain.Employee{}
	}

	s.mu.Lock()
	s.employees = employees
	s.mu.Unlock()
	return nil
}

// ReloadAttendance заменяет снимок посещаемости для сотрудника с указанным ID.
// employeeID == 0 означает «нет выбора»: снимок очищается без сетевого вызова.
func (s *Store) ReloadAttendance(ctx context.Context, employeeID int64) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if employeeID == 0 {
		s.swapAttendance(0, []domain.Attendance{})
		return nil
	}

	records, err := s.remote.ListAttendanceByEmployee(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("reload attendance for employee %d: %w", employeeID, err)
	}
	if records == nil {
		records = []domain.Attendance{}
	}

	s.swapAttendance(employeeID, records)
	return nil
}

// UpdateAttendance обновляет отметку на сервере и перечитывает посещаемость
// текущего владельца снимка. Сценария в консоли для этого нет.
func (s *Store) UpdateAttendance(ctx context.Context, id int64, req dto.UpdateAttendanceRequest) (*domain.Attendance, error) {
	rec, err := s.remote.UpdateAttendance(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update attendance %d: %w", id, err)
	}

	if owner := s.AttendanceOwner(); owner != 0 {
		if err := s.ReloadAttendance(ctx, owner); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// ClearAttendance сбрасывает снимок посещаемости без сетевого вызова
func (s *Store) ClearAttendance() {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	s.swapAttendance(0, []domain.Attendance{})
}

// Employees возвращает копию текущего снимка сотрудников
func (s *Store) Employees() []domain.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.employees)
}

// Attendance возвращает копию текущего снимка посещаемости
func (s *Store) Attendance() []domain.Attendance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.attendance)
}

// AttendanceOwner возвращает ID сотрудника, чьи отметки сейчас в снимке (0 - нет)
func (s *Store) AttendanceOwner() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner
}

func (s *Store) swapAttendance(owner int64, records []domain.Attendance) {
	s.mu.Lock()
	s.owner = owner
	s.attendance = records
	s.mu.Unlock()
}
