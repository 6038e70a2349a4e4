package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/hrms-lite-console/internal/console"
	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/export"
	"github.com/hrms-lite-console/internal/notify"
	"github.com/hrms-lite-console/internal/view"
)

const helpText = `Employees:
  list                      show employees
  search [term]             filter by name, employee ID or email
  add                       add an employee
  edit <id>                 edit an employee
  delete <id>               delete an employee
  count                     refresh the employee counter
Attendance:
  select <id>               select an employee (0 clears)
  show                      show attendance of the selected employee
  mark                      mark attendance for the selected employee
  rmatt <id>                delete an attendance record
  filter all|present|absent filter the attendance table
  sort newest|oldest        sort the attendance table
  stats                     attendance summary of the selected employee
Other:
  export employees|attendance <file.xlsx>
  help
  quit`

var errQuit = errors.New("quit")

// shell - построчный интерфейс поверх console.Controller
type shell struct {
	ctrl  *console.Controller
	lines chan string
	out   io.Writer
	outMu sync.Mutex
}

func newShell(in io.Reader, out io.Writer) *shell {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return &shell{lines: lines, out: out}
}

func (s *shell) printf(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// notification печатает новые уведомления; автосброс слота не печатается
func (s *shell) notification(kind notify.Kind, msg string) {
	if msg == "" {
		return
	}
	s.printf("[%s] %s\n", kind, msg)
}

// readLine возвращает false при закрытии ввода или отмене контекста
func (s *shell) readLine(ctx context.Context, prompt string) (string, bool) {
	s.printf("%s", prompt)
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-s.lines:
		return strings.TrimSpace(line), ok
	}
}

func (s *shell) confirm(ctx context.Context) console.ConfirmFunc {
	return func(prompt string) bool {
		answer, ok := s.readLine(ctx, prompt+" [y/N] ")
		return ok && strings.EqualFold(answer, "y")
	}
}

func (s *shell) run(ctx context.Context) error {
	_ = s.ctrl.LoadEmployees(ctx)
	s.printf("HRMS Lite - %d employees. Type \"help\" for commands.\n", s.ctrl.RefreshEmployeeCount(ctx))

	for {
		line, ok := s.readLine(ctx, "> ")
		if !ok {
			s.printf("\n")
			return nil
		}
		if line == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		err := s.dispatch(ctx, strings.ToLower(cmd), strings.TrimSpace(arg))
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			s.printf("%s\n", describe(err))
		}
	}
}

func (s *shell) dispatch(ctx context.Context, cmd, arg string) error {
	switch cmd {
	case "help", "?":
		s.printf("%s\n", helpText)
	case "quit", "exit":
		return errQuit
	case "list":
		// при ошибке показывается прежний снимок, уведомление уже напечатано
		_ = s.ctrl.LoadEmployees(ctx)
		s.printEmployees()
	case "search":
		s.ctrl.SetSearch(arg)
		s.printEmployees()
	case "count":
		s.printf("Total employees: %d\n", s.ctrl.RefreshEmployeeCount(ctx))
	case "add":
		s.ctrl.OpenCreateForm()
		return s.fillEmployeeForm(ctx)
	case "edit":
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		if err := s.ctrl.OpenEditForm(id); err != nil {
			return err
		}
		return s.fillEmployeeForm(ctx)
	case "delete":
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		if err := s.ctrl.DeleteEmployee(ctx, id, s.confirm(ctx)); err != nil {
			return quiet(err)
		}
		s.ctrl.RefreshEmployeeCount(ctx)
	case "select":
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		if err := s.ctrl.SelectEmployee(ctx, id); err != nil {
			return quiet(err)
		}
		s.printAttendance()
	case "show":
		s.printAttendance()
	case "mark":
		if err := s.ctrl.OpenAttendanceForm(); err != nil {
			return quiet(err)
		}
		return s.fillAttendanceForm(ctx)
	case "rmatt":
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		if err := s.ctrl.DeleteAttendance(ctx, id, s.confirm(ctx)); err != nil {
			return quiet(err)
		}
		s.printAttendance()
	case "filter":
		status, ok := view.ParseStatusFilter(arg)
		if !ok {
			return fmt.Errorf("unknown filter %q", arg)
		}
		s.ctrl.SetStatusFilter(status)
		s.printAttendance()
	case "sort":
		order, ok := view.ParseSortOrder(arg)
		if !ok {
			return fmt.Errorf("unknown sort order %q", arg)
		}
		s.ctrl.SetSortOrder(order)
		s.printAttendance()
	case "stats":
		return s.printStats()
	case "export":
		return s.export(arg)
	default:
		return fmt.Errorf("unknown command %q, type \"help\"", cmd)
	}
	return nil
}

// fillEmployeeForm запрашивает поля формы, пока она не будет сохранена или отменена.
// Пустой ввод оставляет текущее значение, "cancel" закрывает форму.
func (s *shell) fillEmployeeForm(ctx context.Context) error {
	fields := []string{console.FieldEmployeeID, console.FieldName, console.FieldEmail, console.FieldDepartment}
	firstPass := true

	for {
		form, ok := s.ctrl.EmployeeForm()
		if !ok {
			return nil
		}
		if firstPass && !form.Editing() {
			s.printf("Departments: %s\n", strings.Join(console.Departments, ", "))
		}

		for _, field := range fields {
			if field == console.FieldEmployeeID && form.Editing() {
				continue
			}
			msg, failed := form.Errors[field]
			if !firstPass && !failed {
				continue
			}
			if failed {
				s.printf("  %s\n", msg)
			}

			value, ok := s.readLine(ctx, fmt.Sprintf("%s [%s]: ", field, employeeValue(form.Values, field)))
			if !ok || value == "cancel" {
				s.ctrl.CloseEmployeeForm()
				return nil
			}
			if value == "" {
				continue
			}
			if err := s.ctrl.SetEmployeeField(field, value); err != nil {
				return err
			}
		}
		firstPass = false

		err := s.ctrl.SubmitEmployeeForm(ctx)
		if err == nil {
			s.ctrl.RefreshEmployeeCount(ctx)
			s.printEmployees()
			return nil
		}

		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			continue
		}
		if errors.Is(err, domain.ErrBusy) {
			return err
		}

		form, _ = s.ctrl.EmployeeForm()
		s.printf("%s\n", form.SubmitError)
		retry, ok := s.readLine(ctx, "Edit and retry? [y/N] ")
		if !ok || !strings.EqualFold(retry, "y") {
			s.ctrl.CloseEmployeeForm()
			return nil
		}
		firstPass = true
	}
}

func (s *shell) fillAttendanceForm(ctx context.Context) error {
	for {
		form, ok := s.ctrl.AttendanceForm()
		if !ok {
			return nil
		}
		if form.Error != "" {
			s.printf("  %s\n", form.Error)
		}

		for _, field := range []string{console.FieldDate, console.FieldStatus} {
			current := form.Values.Date
			if field == console.FieldStatus {
				current = string(form.Values.Status)
			}
			value, ok := s.readLine(ctx, fmt.Sprintf("%s [%s]: ", field, current))
			if !ok || value == "cancel" {
				s.ctrl.CloseAttendanceForm()
				return nil
			}
			if value == "" {
				continue
			}
			if err := s.ctrl.SetAttendanceField(field, value); err != nil {
				s.printf("  %s\n", describe(err))
			}
		}

		err := s.ctrl.SubmitAttendanceForm(ctx)
		if err == nil {
			s.printAttendance()
			return nil
		}

		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			continue
		}
		if errors.Is(err, domain.ErrBusy) {
			return err
		}

		form, _ = s.ctrl.AttendanceForm()
		s.printf("%s\n", form.Error)
		retry, ok := s.readLine(ctx, "Edit and retry? [y/N] ")
		if !ok || !strings.EqualFold(retry, "y") {
			s.ctrl.CloseAttendanceForm()
			return nil
		}
	}
}

func (s *shell) printEmployees() {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	if msg := s.ctrl.EmployeesEmptyMessage(); msg != "" {
		fmt.Fprintln(s.out, msg)
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMPLOYEE ID\tNAME\tEMAIL\tDEPARTMENT")
	for _, emp := range s.ctrl.VisibleEmployees() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", emp.ID, emp.EmployeeID, emp.Name, emp.Email, emp.Department)
	}
	_ = w.Flush()
}

func (s *shell) printAttendance() {
	emp, ok := s.ctrl.Selected()
	if !ok {
		s.printf("No employee selected\n")
		return
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()

	summary := s.ctrl.AttendanceStats()
	fmt.Fprintf(s.out, "%s (%s) - Total Records: %d, Days Present: %d, Days Absent: %d\n",
		emp.Name, emp.EmployeeID, summary.Total, summary.Present, summary.Absent)

	if msg := s.ctrl.AttendanceEmptyMessage(); msg != "" {
		fmt.Fprintln(s.out, msg)
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTATUS")
	for _, rec := range s.ctrl.AttendanceRows() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", rec.ID, rec.Date, rec.Status)
	}
	_ = w.Flush()
}

func (s *shell) printStats() error {
	if _, ok := s.ctrl.Selected(); !ok {
		return domain.ErrNoSelection
	}
	summary := s.ctrl.AttendanceStats()
	s.printf("Total Records: %d\nDays Present: %d\nDays Absent: %d\n", summary.Total, summary.Present, summary.Absent)
	return nil
}

func (s *shell) export(arg string) error {
	what, path, _ := strings.Cut(arg, " ")
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("usage: export employees|attendance <file.xlsx>")
	}

	var write func(io.Writer) error
	switch what {
	case "employees":
		employees := s.ctrl.VisibleEmployees()
		write = func(w io.Writer) error { return export.Employees(w, employees) }
	case "attendance":
		emp, ok := s.ctrl.Selected()
		if !ok {
			return domain.ErrNoSelection
		}
		rows, summary := s.ctrl.AttendanceRows(), s.ctrl.AttendanceStats()
		write = func(w io.Writer) error { return export.Attendance(w, emp.Name, rows, summary) }
	default:
		return fmt.Errorf("unknown export %q", what)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("export %s: %w", what, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	s.printf("Saved %s\n", path)
	return nil
}

func employeeValue(values console.EmployeeFields, field string) string {
	switch field {
	case console.FieldEmployeeID:
		return values.EmployeeID
	case console.FieldName:
		return values.Name
	case console.FieldEmail:
		return values.Email
	default:
		return values.Department
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// quiet скрывает ошибки, о которых пользователь уже узнал из уведомления
func quiet(err error) error {
	var remoteErr *domain.RemoteError
	if errors.As(err, &remoteErr) || errors.Is(err, domain.ErrNoSelection) {
		return nil
	}
	return err
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFoundLocally):
		return "Employee is no longer in the list"
	case errors.Is(err, domain.ErrNotConfirmed):
		return "Cancelled"
	case errors.Is(err, domain.ErrBusy):
		return "Please wait, another operation is in progress"
	case errors.Is(err, domain.ErrFutureDate):
		return console.MsgFutureDate
	case errors.Is(err, domain.ErrNoSelection):
		return "Please select an employee first"
	default:
		return err.Error()
	}
}
