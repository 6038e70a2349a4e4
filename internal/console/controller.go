// Package console - контроллер взаимодействия консоли HRMS.
//
// Каждое действие пользователя выполняется как одна транзакция: удалённый вызов,
// затем полная перезагрузка хранилища, затем уведомление. Пока вид (сотрудники или
// посещаемость) в состоянии Loading, новые действия этого вида отклоняются с ErrBusy.
package console

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/dto"
	"github.com/hrms-lite-console/internal/view"
)

// Remote - мутирующие вызовы удалённого сервиса
type Remote interface {
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, req dto.UpdateEmployeeRequest) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	CreateAttendance(ctx context.Context, req dto.CreateAttendanceRequest) (*domain.Attendance, error)
	DeleteAttendance(ctx context.Context, id int64) error
	EmployeeCount(ctx context.Context) (int64, error)
}

// Records - локальные снимки (реализуется store.Store)
type Records interface {
	ReloadEmployees(ctx context.Context) error
	ReloadAttendance(ctx context.Context, employeeID int64) error
	ClearAttendance()
	Employees() []domain.Employee
	Attendance() []domain.Attendance
	AttendanceOwner() int64
}

// Notifier - глобальные временные уведомления (реализуется notify.Channel)
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ConfirmFunc запрашивает у пользователя подтверждение
type ConfirmFunc func(prompt string) bool

// View - верхнеуровневый вид консоли
type View int

const (
	ViewEmployees View = iota
	ViewAttendance
)

func (v View) String() string {
	if v == ViewAttendance {
		return "attendance"
	}
	return "employees"
}

// Phase - состояние вида: Idle → Loading → Success|Error → Idle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Тексты подтверждений и уведомлений
const (
	ConfirmDeleteEmployee   = "Are you sure you want to delete this employee?"
	ConfirmDeleteAttendance = "Are you sure you want to delete this attendance record?"

	MsgEmployeeAdded     = "Employee added successfully!"
	MsgEmployeeUpdated   = "Employee updated successfully!"
	MsgEmployeeDeleted   = "Employee deleted successfully!"
	MsgAttendanceUpdated = "Attendance updated successfully!"

	MsgSaveEmployeeFailed     = "Failed to save employee"
	MsgMarkAttendanceFailed   = "Failed to mark attendance"
	MsgLoadAttendanceFailed   = "Failed to load attendance records"
	MsgDeleteAttendanceFailed = "Failed to delete attendance record"
	MsgSelectEmployeeFirst    = "Please select an employee first"
	MsgDateRequired           = "Date is required"
	MsgFutureDate             = "Date cannot be in the future"
)

// Option настраивает Controller
type Option func(*Controller)

// WithClock задаёт источник текущего времени (дата по умолчанию в форме отметки)
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithPhaseObserver регистрирует обработчик смены состояний видов
func WithPhaseObserver(fn func(View, Phase)) Option {
	return func(c *Controller) {
		c.onPhase = fn
	}
}

// Controller координирует формы, выбор, фильтры и сетевые вызовы
type Controller struct {
	remote   Remote
	records  Records
	notifier Notifier
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
	onPhase  func(View, Phase)

	mu             sync.Mutex
	phases         [2]Phase
	employeeForm   *EmployeeForm
	attendanceForm *AttendanceForm
	selected       int64
	search         string
	statusFilter   view.StatusFilter
	sortOrder      view.SortOrder
	employeeCount  int64
}

// New создаёт контроллер
func New(remote Remote, records Records, notifier Notifier, logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		remote:       remote,
		records:      records,
		notifier:     notifier,
		validate:     dto.NewValidator(),
		logger:       logger,
		now:          time.Now,
		statusFilter: view.StatusAll,
		sortOrder:    view.NewestFirst,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase возвращает текущее состояние вида
func (c *Controller) Phase(v View) Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phases[v]
}

// begin переводит вид в Loading; если вид уже занят - ErrBusy
func (c *Controller) begin(v View) error {
	c.mu.Lock()
	if c.phases[v] == PhaseLoading {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	c.phases[v] = PhaseLoading
	c.mu.Unlock()

	c.observe(v, PhaseLoading)
	return nil
}

// finish фиксирует исход транзакции и возвращает вид в Idle
func (c *Controller) finish(v View, err error) {
	outcome := PhaseSuccess
	if err != nil {
		outcome = PhaseError
	}

	c.mu.Lock()
	c.phases[v] = outcome
	c.mu.Unlock()
	c.observe(v, outcome)

	c.mu.Lock()
	c.phases[v] = PhaseIdle
	c.mu.Unlock()
	c.observe(v, PhaseIdle)
}

func (c *Controller) busy(v View) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phases[v] == PhaseLoading
}

func (c *Controller) observe(v View, p Phase) {
	if c.onPhase != nil {
		c.onPhase(v, p)
	}
}

// remoteMessage - текст для пользователя: detail сервиса или описание ошибки
func remoteMessage(err error) string {
	var remoteErr *domain.RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Message()
	}
	return err.Error()
}
