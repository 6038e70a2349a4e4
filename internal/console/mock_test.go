package console_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/hrms-lite-console/internal/console"
	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/dto"
	"github.com/hrms-lite-console/internal/store"
)

// fakeBackend - сервис в памяти, повторяющий правила REST API
type fakeBackend struct {
	mu         sync.Mutex
	employees  []domain.Employee
	attendance []domain.Attendance
	nextID     int64
	calls      []string
	updates    []dto.UpdateEmployeeRequest

	listErr       error
	attendanceErr error
	deleteErr     error
	countErr      error
	block         chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 1}
}

func (f *fakeBackend) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) addEmployee(employeeID, name string) domain.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp := domain.Employee{
		ID:         f.nextID,
		EmployeeID: employeeID,
		Name:       name,
		Email:      fmt.Sprintf("%s@corp.io", employeeID),
		Department: "Sales",
	}
	f.nextID++
	f.employees = append(f.employees, emp)
	return emp
}

func (f *fakeBackend) addAttendance(employeeID int64, date string, status domain.AttendanceStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attendance = append(f.attendance, domain.Attendance{
		ID:         f.nextID,
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
	})
	f.nextID++
}

func (f *fakeBackend) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list employees")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Employee(nil), f.employees...), nil
}

func (f *fakeBackend) ListAttendanceByEmployee(ctx context.Context, employeeID int64) ([]domain.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("list attendance %d", employeeID))
	if f.attendanceErr != nil {
		return nil, f.attendanceErr
	}
	var result []domain.Attendance
	for _, rec := range f.attendance {
		if rec.EmployeeID == employeeID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (f *fakeBackend) UpdateAttendance(ctx context.Context, id int64, req dto.UpdateAttendanceRequest) (*domain.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("update attendance %d", id))
	for i := range f.attendance {
		if f.attendance[i].ID == id {
			if req.Status != nil {
				f.attendance[i].Status = *req.Status
			}
			rec := f.attendance[i]
			return &rec, nil
		}
	}
	return nil, &domain.RemoteError{Op: "update attendance", StatusCode: 404, Detail: "Attendance record not found"}
}

func (f *fakeBackend) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create employee " + req.EmployeeID)
	for _, emp := range f.employees {
		if emp.EmployeeID == req.EmployeeID {
			return nil, &domain.RemoteError{
				Op:         "create employee",
				StatusCode: 400,
				Detail:     fmt.Sprintf("Employee ID '%s' already exists", req.EmployeeID),
			}
		}
	}
	emp := domain.Employee{
		ID:         f.nextID,
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
	}
	f.nextID++
	f.employees = append(f.employees, emp)
	return &emp, nil
}

func (f *fakeBackend) UpdateEmployee(ctx context.Context, id int64, req dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("update employee %d", id))
	f.updates = append(f.updates, req)
	for i := range f.employees {
		if f.employees[i].ID != id {
			continue
		}
		if req.Name != nil {
			f.employees[i].Name = *req.Name
		}
		if req.Email != nil {
			f.employees[i].Email = *req.Email
		}
		if req.Department != nil {
			f.employees[i].Department = *req.Department
		}
		emp := f.employees[i]
		return &emp, nil
	}
	return nil, &domain.RemoteError{Op: "update employee", StatusCode: 404, Detail: fmt.Sprintf("Employee with ID %d not found", id)}
}

func (f *fakeBackend) DeleteEmployee(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("delete employee %d", id))
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, emp := range f.employees {
		if emp.ID == id {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return &domain.RemoteError{Op: "delete employee", StatusCode: 404, Detail: fmt.Sprintf("Employee with ID %d not found", id)}
}

func (f *fakeBackend) CreateAttendance(ctx context.Context, req dto.CreateAttendanceRequest) (*domain.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("create attendance %d %s %s", req.EmployeeID, req.Date, req.Status))
	rec := domain.Attendance{ID: f.nextID, EmployeeID: req.EmployeeID, Date: req.Date, Status: req.Status}
	f.nextID++
	f.attendance = append(f.attendance, rec)
	return &rec, nil
}

func (f *fakeBackend) DeleteAttendance(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("delete attendance %d", id))
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, rec := range f.attendance {
		if rec.ID == id {
			f.attendance = append(f.attendance[:i], f.attendance[i+1:]...)
			return nil
		}
	}
	return &domain.RemoteError{Op: "delete attendance", StatusCode: 404}
}

func (f *fakeBackend) EmployeeCount(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.employees)), nil
}

type notification struct {
	kind string
	msg  string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{"success", msg})
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{"error", msg})
}

func (n *recordingNotifier) Events() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.events...)
}

func (n *recordingNotifier) last(t *testing.T) notification {
	t.Helper()
	events := n.Events()
	if len(events) == 0 {
		t.Fatal("expected a notification")
	}
	return events[len(events)-1]
}

type fixture struct {
	backend  *fakeBackend
	store    *store.Store
	notifier *recordingNotifier
	ctrl     *console.Controller
}

func newFixture(t *testing.T, opts ...console.Option) *fixture {
	t.Helper()
	backend := newFakeBackend()
	records := store.New(backend)
	notifier := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		backend:  backend,
		store:    records,
		notifier: notifier,
		ctrl:     console.New(backend, records, notifier, logger, opts...),
	}
}

func (fx *fixture) load(t *testing.T) {
	t.Helper()
	if err := fx.ctrl.LoadEmployees(context.Background()); err != nil {
		t.Fatalf("load employees: %v", err)
	}
}

func yes(string) bool { return true }

func no(string) bool { return false }
