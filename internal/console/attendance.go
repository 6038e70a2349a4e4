package console

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/dto"
	"github.com/hrms-lite-console/internal/view"
)

// SelectEmployee выбирает сотрудника для просмотра посещаемости по его серверному ID.
// id == 0 снимает выбор и очищает отметки без сетевого вызова.
// Любая смена выбора закрывает форму отметки.
func (c *Controller) SelectEmployee(ctx context.Context, id int64) error {
	if c.busy(ViewAttendance) {
		return domain.ErrBusy
	}

	if id == 0 {
		c.clearSelection()
		return nil
	}

	if _, ok := view.FindEmployee(c.records.Employees(), id); !ok {
		c.clearSelection()
		return domain.ErrNotFoundLocally
	}

	if err := c.begin(ViewAttendance); err != nil {
		return err
	}

	c.mu.Lock()
	c.selected = id
	c.attendanceForm = nil
	c.mu.Unlock()

	err := c.reloadAttendance(ctx, id)
	c.finish(ViewAttendance, err)
	return err
}

func (c *Controller) reloadAttendance(ctx context.Context, id int64) error {
	if err := c.records.ReloadAttendance(ctx, id); err != nil {
		c.logger.Warn("failed to load attendance", slog.Int64("employee_id", id), slog.Any("error", err))
		c.notifier.Error(MsgLoadAttendanceFailed)
		return err
	}
	return nil
}

// Selected возвращает выбранного сотрудника, если он есть в текущем снимке
func (c *Controller) Selected() (domain.Employee, bool) {
	c.mu.Lock()
	id := c.selected
	c.mu.Unlock()

	if id == 0 {
		return domain.Employee{}, false
	}
	return view.FindEmployee(c.records.Employees(), id)
}

// SelectedID возвращает ID выбранного сотрудника (0 - нет выбора)
func (c *Controller) SelectedID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// OpenAttendanceForm открывает форму отметки для выбранного сотрудника.
// По умолчанию - сегодняшняя дата и статус present.
func (c *Controller) OpenAttendanceForm() error {
	c.mu.Lock()
	if c.selected == 0 {
		c.mu.Unlock()
		c.notifier.Error(MsgSelectEmployeeFirst)
		return domain.ErrNoSelection
	}
	c.attendanceForm = &AttendanceForm{
		Values: AttendanceFields{
			Date:   c.now().Format(domain.DateLayout),
			Status: domain.StatusPresent,
		},
	}
	c.mu.Unlock()
	return nil
}

// CloseAttendanceForm закрывает форму отметки
func (c *Controller) CloseAttendanceForm() {
	c.mu.Lock()
	c.attendanceForm = nil
	c.mu.Unlock()
}

// AttendanceForm возвращает копию формы отметки, если она открыта
func (c *Controller) AttendanceForm() (AttendanceForm, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attendanceForm == nil {
		return AttendanceForm{}, false
	}
	return *c.attendanceForm, true
}

// SetAttendanceField меняет дату или статус в форме отметки
func (c *Controller) SetAttendanceField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attendanceForm == nil {
		return domain.ErrFormClosed
	}
	return c.attendanceForm.setField(field, value, c.now())
}

// SubmitAttendanceForm отмечает посещаемость выбранного сотрудника.
// Дата в будущем повторно не проверяется: её ограничивает поле ввода.
func (c *Controller) SubmitAttendanceForm(ctx context.Context) error {
	c.mu.Lock()
	form := c.attendanceForm
	if form == nil {
		c.mu.Unlock()
		return domain.ErrFormClosed
	}
	if c.phases[ViewAttendance] == PhaseLoading {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	employeeID := c.selected
	if employeeID == 0 {
		c.mu.Unlock()
		return domain.ErrNoSelection
	}

	values := AttendanceFields{
		Date:   strings.TrimSpace(form.Values.Date),
		Status: form.Values.Status,
	}
	if values.Date == "" {
		form.Error = MsgDateRequired
		c.mu.Unlock()
		return &domain.ValidationError{Fields: map[string]string{FieldDate: MsgDateRequired}}
	}
	if err := c.validate.Struct(&values); err != nil {
		fields := fieldErrors(err)
		for _, field := range []string{FieldDate, FieldStatus} {
			if msg, ok := fields[field]; ok {
				form.Error = msg
				break
			}
		}
		c.mu.Unlock()
		return &domain.ValidationError{Fields: fields}
	}
	c.mu.Unlock()

	if err := c.begin(ViewAttendance); err != nil {
		return err
	}

	_, err := c.remote.CreateAttendance(ctx, dto.CreateAttendanceRequest{
		EmployeeID: employeeID,
		Date:       values.Date,
		Status:     values.Status,
	})
	if err != nil {
		c.logger.Warn("failed to mark attendance", slog.Int64("employee_id", employeeID), slog.Any("error", err))
		c.mu.Lock()
		if c.attendanceForm == form {
			form.Error = domain.Detail(err, MsgMarkAttendanceFailed)
		}
		c.mu.Unlock()
		c.finish(ViewAttendance, err)
		return err
	}

	_ = c.reloadAttendance(ctx, employeeID)

	c.mu.Lock()
	if c.attendanceForm == form {
		c.attendanceForm = nil
	}
	c.mu.Unlock()

	c.notifier.Success(MsgAttendanceUpdated)
	c.finish(ViewAttendance, nil)
	return nil
}

// DeleteAttendance удаляет отметку после явного подтверждения и перезагружает
// посещаемость выбранного сотрудника
func (c *Controller) DeleteAttendance(ctx context.Context, id int64, confirm ConfirmFunc) error {
	if c.busy(ViewAttendance) {
		return domain.ErrBusy
	}
	if confirm == nil || !confirm(ConfirmDeleteAttendance) {
		return domain.ErrNotConfirmed
	}
	if err := c.begin(ViewAttendance); err != nil {
		return err
	}

	if err := c.remote.DeleteAttendance(ctx, id); err != nil {
		c.logger.Warn("failed to delete attendance", slog.Int64("id", id), slog.Any("error", err))
		c.notifier.Error(MsgDeleteAttendanceFailed)
		c.finish(ViewAttendance, err)
		return err
	}

	if selected := c.SelectedID(); selected != 0 {
		_ = c.reloadAttendance(ctx, selected)
	}

	c.notifier.Success(MsgAttendanceUpdated)
	c.finish(ViewAttendance, nil)
	return nil
}

// SetStatusFilter меняет фильтр таблицы; сводка от него не зависит
func (c *Controller) SetStatusFilter(status view.StatusFilter) {
	c.mu.Lock()
	c.statusFilter = status
	c.mu.Unlock()
}

// SetSortOrder меняет порядок сортировки таблицы
func (c *Controller) SetSortOrder(order view.SortOrder) {
	c.mu.Lock()
	c.sortOrder = order
	c.mu.Unlock()
}

// Attendance - снимок отметок выбранного сотрудника.
// Если снимок принадлежит другому сотруднику (перезагрузка не удалась), он не показывается.
func (c *Controller) Attendance() []domain.Attendance {
	selected := c.SelectedID()
	if selected == 0 || c.records.AttendanceOwner() != selected {
		return []domain.Attendance{}
	}
	return c.records.Attendance()
}

// AttendanceRows - видимые строки таблицы с учётом фильтра и сортировки
func (c *Controller) AttendanceRows() []domain.Attendance {
	c.mu.Lock()
	status, order := c.statusFilter, c.sortOrder
	c.mu.Unlock()
	return view.AttendanceTable(c.Attendance(), status, order)
}

// AttendanceStats - сводка по всем отметкам выбранного сотрудника, без учёта фильтра
func (c *Controller) AttendanceStats() view.Summary {
	return view.Summarize(c.Attendance())
}

// AttendanceEmptyMessage - подпись пустой таблицы или пустая строка
func (c *Controller) AttendanceEmptyMessage() string {
	return view.EmptyAttendanceMessage(c.Attendance(), c.AttendanceRows())
}
