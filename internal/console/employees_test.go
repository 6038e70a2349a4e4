package console_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hrms-lite-console/internal/console"
	"github.com/hrms-lite-console/internal/domain"
)

func TestSubmitEmployeeFormValidation(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.ctrl.OpenCreateForm()
	_ = fx.ctrl.SetEmployeeField(console.FieldName, "Ann Lee")
	_ = fx.ctrl.SetEmployeeField(console.FieldEmail, "ann-at-corp")

	err := fx.ctrl.SubmitEmployeeForm(ctx)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	want := map[string]string{
		console.FieldEmployeeID: "Employee ID is required",
		console.FieldEmail:      "Invalid email format",
		console.FieldDepartment: "Department is required",
	}
	if len(verr.Fields) != len(want) {
		t.Errorf("expected %v, got %v", want, verr.Fields)
	}
	for field, msg := range want {
		if verr.Fields[field] != msg {
			t.Errorf("field %s: expected %q, got %q", field, msg, verr.Fields[field])
		}
	}

	if calls := fx.backend.Calls(); len(calls) != 0 {
		t.Errorf("expected no remote calls, got %v", calls)
	}
	form, ok := fx.ctrl.EmployeeForm()
	if !ok || len(form.Errors) != 3 {
		t.Errorf("expected open form with 3 errors, got %+v", form)
	}
}

func TestSetEmployeeFieldClearsOnlyThatError(t *testing.T) {
	fx := newFixture(t)

	fx.ctrl.OpenCreateForm()
	_ = fx.ctrl.SubmitEmployeeForm(context.Background())

	if err := fx.ctrl.SetEmployeeField(console.FieldEmail, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	form, _ := fx.ctrl.EmployeeForm()
	if _, ok := form.Errors[console.FieldEmail]; ok {
		t.Error("expected email error to be cleared")
	}
	for _, field := range []string{console.FieldEmployeeID, console.FieldName, console.FieldDepartment} {
		if _, ok := form.Errors[field]; !ok {
			t.Errorf("expected error for %s to stay", field)
		}
	}
}

func TestEmployeeFormIsCopy(t *testing.T) {
	fx := newFixture(t)

	fx.ctrl.OpenCreateForm()
	_ = fx.ctrl.SubmitEmployeeForm(context.Background())

	form, _ := fx.ctrl.EmployeeForm()
	delete(form.Errors, console.FieldName)

	again, _ := fx.ctrl.EmployeeForm()
	if _, ok := again.Errors[console.FieldName]; !ok {
		t.Error("caller modified controller form state")
	}
}

func TestCreateEmployee(t *testing.T) {
	var phases []console.Phase
	fx := newFixture(t, console.WithPhaseObserver(func(v console.View, p console.Phase) {
		if v == console.ViewEmployees {
			phases = append(phases, p)
		}
	}))
	ctx := context.Background()

	fx.ctrl.OpenCreateForm()
	_ = fx.ctrl.SetEmployeeField(console.FieldEmployeeID, " E100 ")
	_ = fx.ctrl.SetEmployeeField(console.FieldName, "Ann Lee")
	_ = fx.ctrl.SetEmployeeField(console.FieldEmail, "ann@corp.io")
	_ = fx.ctrl.SetEmployeeField(console.FieldDepartment, "Engineering")

	if err := fx.ctrl.SubmitEmployeeForm(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := fx.backend.Calls()
	if len(calls) != 2 || calls[0] != "create employee E100" || calls[1] != "list employees" {
		t.Errorf("unexpected calls %v", calls)
	}
	if _, ok := fx.ctrl.EmployeeForm(); ok {
		t.Error("expected form to be closed")
	}
	if len(fx.ctrl.Employees()) != 1 {
		t.Errorf("expected reloaded list, got %v", fx.ctrl.Employees())
	}
	if n := fx.notifier.last(t); n.kind != "success" || n.msg != console.MsgEmployeeAdded {
		t.Errorf("unexpected notification %+v", n)
	}

	want := []console.Phase{console.PhaseLoading, console.PhaseSuccess, console.PhaseIdle}
	if len(phases) != len(want) {
		t.Fatalf("expected phases %v, got %v", want, phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d: expected %s, got %s", i, want[i], phases[i])
		}
	}
}

func TestCreateEmployeeDuplicate(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.backend.addEmployee("E100", "Existing")
	fx.load(t)

	fx.ctrl.OpenCreateForm()
	_ = fx.ctrl.SetEmployeeField(console.FieldEmployeeID, "E100")
	_ = fx.ctrl.SetEmployeeField(console.FieldName, "Ann Lee")
	_ = fx.ctrl.SetEmployeeField(console.FieldEmail, "ann@corp.io")
	_ = fx.ctrl.SetEmployeeField(console.FieldDepartment, "Engineering")

	err := fx.ctrl.SubmitEmployeeForm(ctx)
	if err == nil {
		t.Fatal("expected error")
	}

	form, ok := fx.ctrl.EmployeeForm()
	if !ok {
		t.Fatal("expected form to stay open")
	}
	if form.SubmitError != "Employee ID 'E100' already exists" {
		t.Errorf("unexpected submit error %q", form.SubmitError)
	}
	for _, n := range fx.notifier.Events() {
		if n.kind == "success" {
			t.Errorf("unexpected success notification %+v", n)
		}
	}
	if fx.ctrl.Phase(console.ViewEmployees) != console.PhaseIdle {
		t.Errorf("expected idle phase, got %s", fx.ctrl.Phase(console.ViewEmployees))
	}
	if len(fx.ctrl.Employees()) != 1 {
		t.Errorf("expected list unchanged, got %d", len(fx.ctrl.Employees()))
	}
}

func TestEditEmployee(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	emp := fx.backend.addEmployee("E100", "Ann Lee")
	fx.load(t)

	if err := fx.ctrl.OpenEditForm(emp.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.ctrl.SetEmployeeField(console.FieldEmployeeID, "E999"); !errors.Is(err, domain.ErrReadOnlyField) {
		t.Errorf("expected ErrReadOnlyField, got %v", err)
	}
	_ = fx.ctrl.SetEmployeeField(console.FieldName, "Ann Smith")

	if err := fx.ctrl.SubmitEmployeeForm(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fx.backend.updates) != 1 || *fx.backend.updates[0].Name != "Ann Smith" {
		t.Errorf("unexpected updates %+v", fx.backend.updates)
	}
	if got := fx.ctrl.Employees()[0]; got.Name != "Ann Smith" || got.EmployeeID != "E100" {
		t.Errorf("unexpected employee %+v", got)
	}
	if n := fx.notifier.last(t); n.msg != console.MsgEmployeeUpdated {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestOpenEditFormUnknown(t *testing.T) {
	fx := newFixture(t)
	if err := fx.ctrl.OpenEditForm(42); !errors.Is(err, domain.ErrNotFoundLocally) {
		t.Errorf("expected ErrNotFoundLocally, got %v", err)
	}
}

func TestFormClosed(t *testing.T) {
	fx := newFixture(t)
	if err := fx.ctrl.SetEmployeeField(console.FieldName, "x"); !errors.Is(err, domain.ErrFormClosed) {
		t.Errorf("expected ErrFormClosed, got %v", err)
	}
	if err := fx.ctrl.SubmitEmployeeForm(context.Background()); !errors.Is(err, domain.ErrFormClosed) {
		t.Errorf("expected ErrFormClosed, got %v", err)
	}
}

func TestDeleteEmployee(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		fx := newFixture(t)
		emp := fx.backend.addEmployee("E100", "Ann Lee")
		fx.load(t)

		err := fx.ctrl.DeleteEmployee(context.Background(), emp.ID, no)
		if !errors.Is(err, domain.ErrNotConfirmed) {
			t.Errorf("expected ErrNotConfirmed, got %v", err)
		}
		if calls := fx.backend.Calls(); len(calls) != 1 {
			t.Errorf("expected no delete call, got %v", calls)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		fx := newFixture(t)
		emp := fx.backend.addEmployee("E100", "Ann Lee")
		fx.backend.addEmployee("E200", "Bob Roe")
		fx.load(t)

		var prompt string
		confirm := func(p string) bool {
			prompt = p
			return true
		}
		if err := fx.ctrl.DeleteEmployee(context.Background(), emp.ID, confirm); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prompt != console.ConfirmDeleteEmployee {
			t.Errorf("unexpected prompt %q", prompt)
		}
		if len(fx.ctrl.Employees()) != 1 {
			t.Errorf("expected 1 employee after reload, got %d", len(fx.ctrl.Employees()))
		}
		if n := fx.notifier.last(t); n.msg != console.MsgEmployeeDeleted {
			t.Errorf("unexpected notification %+v", n)
		}
	})

	t.Run("remote failure", func(t *testing.T) {
		fx := newFixture(t)
		emp := fx.backend.addEmployee("E100", "Ann Lee")
		fx.load(t)
		fx.backend.deleteErr = &domain.RemoteError{Op: "delete employee", StatusCode: 500}

		if err := fx.ctrl.DeleteEmployee(context.Background(), emp.ID, yes); err == nil {
			t.Fatal("expected error")
		}
		n := fx.notifier.last(t)
		if n.kind != "error" || n.msg != "Failed to delete employee: Request failed with status code 500" {
			t.Errorf("unexpected notification %+v", n)
		}
		if len(fx.ctrl.Employees()) != 1 {
			t.Error("expected list unchanged")
		}
	})
}

func TestLoadEmployeesFailure(t *testing.T) {
	fx := newFixture(t)
	fx.backend.addEmployee("E100", "Ann Lee")
	fx.load(t)

	fx.backend.listErr = &domain.RemoteError{Op: "list employees"}
	if err := fx.ctrl.LoadEmployees(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	n := fx.notifier.last(t)
	if n.kind != "error" || n.msg != "Failed to load employees: "+domain.GenericRemoteMessage {
		t.Errorf("unexpected notification %+v", n)
	}
	if len(fx.ctrl.Employees()) != 1 {
		t.Error("expected previous snapshot to stay")
	}
}

func TestSearch(t *testing.T) {
	fx := newFixture(t)
	fx.backend.addEmployee("E100", "Ann Lee")
	fx.backend.addEmployee("E200", "Bob Roe")
	fx.load(t)

	fx.ctrl.SetSearch("bob")
	visible := fx.ctrl.VisibleEmployees()
	if len(visible) != 1 || visible[0].EmployeeID != "E200" {
		t.Errorf("unexpected visible employees %v", visible)
	}

	fx.ctrl.SetSearch("zzz")
	if msg := fx.ctrl.EmployeesEmptyMessage(); msg != "No employees match your search" {
		t.Errorf("unexpected empty message %q", msg)
	}
}

func TestBusyRejectsSecondAction(t *testing.T) {
	loading := make(chan struct{}, 1)
	fx := newFixture(t, console.WithPhaseObserver(func(v console.View, p console.Phase) {
		if v == console.ViewEmployees && p == console.PhaseLoading {
			loading <- struct{}{}
		}
	}))
	emp := fx.backend.addEmployee("E100", "Ann Lee")
	fx.load(t)
	<-loading

	fx.backend.block = make(chan struct{})
	fx.ctrl.OpenCreateForm()
	_ = fx.ctrl.SetEmployeeField(console.FieldEmployeeID, "E200")
	_ = fx.ctrl.SetEmployeeField(console.FieldName, "Bob Roe")
	_ = fx.ctrl.SetEmployeeField(console.FieldEmail, "bob@corp.io")
	_ = fx.ctrl.SetEmployeeField(console.FieldDepartment, "Sales")

	done := make(chan error, 1)
	go func() {
		done <- fx.ctrl.SubmitEmployeeForm(context.Background())
	}()
	<-loading

	confirmed := false
	err := fx.ctrl.DeleteEmployee(context.Background(), emp.ID, func(string) bool {
		confirmed = true
		return true
	})
	if !errors.Is(err, domain.ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	if confirmed {
		t.Error("confirmation must not be requested while busy")
	}
	if err := fx.ctrl.LoadEmployees(context.Background()); !errors.Is(err, domain.ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}

	// другой вид не заблокирован
	if err := fx.ctrl.SelectEmployee(context.Background(), emp.ID); err != nil {
		t.Errorf("unexpected error for attendance view: %v", err)
	}

	close(fx.backend.block)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fx.ctrl.Employees()) != 2 {
		t.Errorf("expected 2 employees, got %d", len(fx.ctrl.Employees()))
	}
}

func TestRefreshEmployeeCount(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.backend.addEmployee("E100", "Ann Lee")
	fx.backend.addEmployee("E200", "Bob Roe")

	if n := fx.ctrl.RefreshEmployeeCount(ctx); n != 2 {
		t.Errorf("expected 2, got %d", n)
	}

	fx.backend.countErr = errors.New("boom")
	if n := fx.ctrl.RefreshEmployeeCount(ctx); n != 2 {
		t.Errorf("expected last known value 2, got %d", n)
	}
	if len(fx.notifier.Events()) != 0 {
		t.Error("count failure must not notify")
	}
}
