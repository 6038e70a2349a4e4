package console

import (
	"context"
	"log/slog"

	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/dto"
	"github.com/hrms-lite-console/internal/view"
)

// LoadEmployees перезагружает список сотрудников.
// Ошибка показывается глобальным уведомлением, снимок остаётся прежним.
func (c *Controller) LoadEmployees(ctx context.Context) error {
	if err := c.begin(ViewEmployees); err != nil {
		return err
	}

	err := c.reloadEmployees(ctx)
	c.finish(ViewEmployees, err)
	return err
}

// reloadEmployees выполняет полную перезагрузку и сверяет текущий выбор с новым снимком
func (c *Controller) reloadEmployees(ctx context.Context) error {
	if err := c.records.ReloadEmployees(ctx); err != nil {
		c.logger.Warn("failed to load employees", slog.Any("error", err))
		c.notifier.Error("Failed to load employees: " + remoteMessage(err))
		return err
	}
	c.reconcileSelection()
	return nil
}

// reconcileSelection сбрасывает выбор, если выбранного сотрудника больше нет в снимке
func (c *Controller) reconcileSelection() {
	c.mu.Lock()
	selected := c.selected
	c.mu.Unlock()

	if selected == 0 {
		return
	}
	if _, ok := view.FindEmployee(c.records.Employees(), selected); ok {
		return
	}

	c.logger.Info("selected employee disappeared after reload",
		slog.Int64("employee_id", selected),
		slog.Any("error", domain.ErrNotFoundLocally),
	)
	c.clearSelection()
}

func (c *Controller) clearSelection() {
	c.mu.Lock()
	c.selected = 0
	c.attendanceForm = nil
	c.mu.Unlock()
	c.records.ClearAttendance()
}

// Employees возвращает полный снимок сотрудников
func (c *Controller) Employees() []domain.Employee {
	return c.records.Employees()
}

// SetSearch задаёт строку поиска по сотрудникам
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	c.search = term
	c.mu.Unlock()
}

// VisibleEmployees - сотрудники с учётом строки поиска
func (c *Controller) VisibleEmployees() []domain.Employee {
	c.mu.Lock()
	term := c.search
	c.mu.Unlock()
	return view.FilterEmployees(c.records.Employees(), term)
}

// EmployeesEmptyMessage - подпись пустого списка или пустая строка
func (c *Controller) EmployeesEmptyMessage() string {
	return view.EmptyEmployeesMessage(c.records.Employees(), c.VisibleEmployees())
}

// OpenCreateForm открывает пустую форму нового сотрудника
func (c *Controller) OpenCreateForm() {
	c.mu.Lock()
	c.employeeForm = newEmployeeForm(nil)
	c.mu.Unlock()
}

// OpenEditForm открывает форму редактирования сотрудника из текущего снимка
func (c *Controller) OpenEditForm(id int64) error {
	emp, ok := view.FindEmployee(c.records.Employees(), id)
	if !ok {
		return domain.ErrNotFoundLocally
	}

	c.mu.Lock()
	c.employeeForm = newEmployeeForm(&emp)
	c.mu.Unlock()
	return nil
}

// CloseEmployeeForm закрывает форму без сохранения
func (c *Controller) CloseEmployeeForm() {
	c.mu.Lock()
	c.employeeForm = nil
	c.mu.Unlock()
}

// EmployeeForm возвращает копию состояния формы, если она открыта
func (c *Controller) EmployeeForm() (EmployeeForm, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.employeeForm == nil {
		return EmployeeForm{}, false
	}
	return c.employeeForm.clone(), true
}

// SetEmployeeField меняет поле формы и снимает ошибку только этого поля
func (c *Controller) SetEmployeeField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.employeeForm == nil {
		return domain.ErrFormClosed
	}
	return c.employeeForm.setField(field, value)
}

// SubmitEmployeeForm проверяет форму, создаёт или обновляет сотрудника и перезагружает список.
// При ошибке валидации сеть не вызывается; при ошибке сервиса форма остаётся открытой.
func (c *Controller) SubmitEmployeeForm(ctx context.Context) error {
	c.mu.Lock()
	if c.employeeForm == nil {
		c.mu.Unlock()
		return domain.ErrFormClosed
	}
	if c.phases[ViewEmployees] == PhaseLoading {
		c.mu.Unlock()
		return domain.ErrBusy
	}

	form := c.employeeForm
	values := form.Values.trimmed()
	if err := c.validate.Struct(&values); err != nil {
		verr := &domain.ValidationError{Fields: fieldErrors(err)}
		form.Errors = verr.Fields
		form.SubmitError = ""
		c.mu.Unlock()
		return verr
	}
	editingID := form.EditingID
	c.mu.Unlock()

	if err := c.begin(ViewEmployees); err != nil {
		return err
	}

	var err error
	if editingID != 0 {
		_, err = c.remote.UpdateEmployee(ctx, editingID, dto.UpdateEmployeeRequest{
			Name:       &values.Name,
			Email:      &values.Email,
			Department: &values.Department,
		})
	} else {
		_, err = c.remote.CreateEmployee(ctx, dto.CreateEmployeeRequest{
			EmployeeID: values.EmployeeID,
			Name:       values.Name,
			Email:      values.Email,
			Department: values.Department,
		})
	}
	if err != nil {
		c.logger.Warn("failed to save employee", slog.Int64("id", editingID), slog.Any("error", err))
		c.mu.Lock()
		if c.employeeForm == form {
			form.SubmitError = domain.Detail(err, MsgSaveEmployeeFailed)
		}
		c.mu.Unlock()
		c.finish(ViewEmployees, err)
		return err
	}

	// Ошибка перезагрузки уже показана уведомлением; сама запись сохранена
	_ = c.reloadEmployees(ctx)

	c.mu.Lock()
	if c.employeeForm == form {
		c.employeeForm = nil
	}
	c.mu.Unlock()

	if editingID != 0 {
		c.notifier.Success(MsgEmployeeUpdated)
	} else {
		c.notifier.Success(MsgEmployeeAdded)
	}
	c.finish(ViewEmployees, nil)
	return nil
}

// DeleteEmployee удаляет сотрудника после явного подтверждения и перезагружает список
func (c *Controller) DeleteEmployee(ctx context.Context, id int64, confirm ConfirmFunc) error {
	if c.busy(ViewEmployees) {
		return domain.ErrBusy
	}
	if confirm == nil || !confirm(ConfirmDeleteEmployee) {
		return domain.ErrNotConfirmed
	}
	if err := c.begin(ViewEmployees); err != nil {
		return err
	}

	if err := c.remote.DeleteEmployee(ctx, id); err != nil {
		c.logger.Warn("failed to delete employee", slog.Int64("id", id), slog.Any("error", err))
		c.notifier.Error("Failed to delete employee: " + remoteMessage(err))
		c.finish(ViewEmployees, err)
		return err
	}

	_ = c.reloadEmployees(ctx)
	c.notifier.Success(MsgEmployeeDeleted)
	c.finish(ViewEmployees, nil)
	return nil
}

// RefreshEmployeeCount обновляет счётчик сотрудников в заголовке.
// Ошибка только логируется.
func (c *Controller) RefreshEmployeeCount(ctx context.Context) int64 {
	count, err := c.remote.EmployeeCount(ctx)
	if err != nil {
		c.logger.Error("failed to load stats", slog.Any("error", err))
		return c.EmployeeCount()
	}

	c.mu.Lock()
	c.employeeCount = count
	c.mu.Unlock()
	return count
}

// EmployeeCount - последнее загруженное значение счётчика
func (c *Controller) EmployeeCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.employeeCount
}
