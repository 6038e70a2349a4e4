package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hrms-lite-console/internal/config"
	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/repository"
	"github.com/hrms-lite-console/internal/storage"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.Open(config.DatabaseConfig{
		Driver: storage.DriverSQLite,
		Path:   "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createEmployee(t *testing.T, repo repository.EmployeeRepository, employeeID, email string) *domain.Employee {
	t.Helper()
	emp := &domain.Employee{
		EmployeeID: employeeID,
		Name:       "Ann Lee",
		Email:      email,
		Department: "Engineering",
	}
	if err := repo.Create(context.Background(), emp); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return emp
}

func TestEmployeeRepository(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	first := createEmployee(t, repo, "E100", "ann@corp.io")
	createEmployee(t, repo, "E101", "bob@corp.io")

	employees, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(employees) != 2 || employees[0].ID != first.ID {
		t.Errorf("unexpected employees %+v", employees)
	}

	count, err := repo.Count(ctx)
	if err != nil || count != 2 {
		t.Errorf("expected count 2, got %d (%v)", count, err)
	}

	if exists, _ := repo.ExistsByEmployeeID(ctx, "E100"); !exists {
		t.Error("expected E100 to exist")
	}
	if exists, _ := repo.ExistsByEmail(ctx, "ann@corp.io", &first.ID); exists {
		t.Error("own email must be excluded")
	}
	if exists, _ := repo.ExistsByEmail(ctx, "bob@corp.io", &first.ID); !exists {
		t.Error("expected bob@corp.io to exist")
	}

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	empRepo := repository.NewEmployeeRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	ctx := context.Background()

	emp := createEmployee(t, empRepo, "E100", "ann@corp.io")
	rec := &domain.Attendance{EmployeeID: emp.ID, Date: "2024-03-01", Status: domain.StatusPresent}
	if err := attRepo.Create(ctx, rec); err != nil {
		t.Fatalf("create attendance: %v", err)
	}

	if err := empRepo.Delete(ctx, emp.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := attRepo.GetByID(ctx, rec.ID); !errors.Is(err, domain.ErrAttendanceNotFound) {
		t.Errorf("expected attendance to be removed, got %v", err)
	}
	if err := empRepo.Delete(ctx, emp.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestAttendanceRepository(t *testing.T) {
	db := openTestDB(t)
	empRepo := repository.NewEmployeeRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	ctx := context.Background()

	emp := createEmployee(t, empRepo, "E100", "ann@corp.io")
	other := createEmployee(t, empRepo, "E101", "bob@corp.io")

	for _, rec := range []domain.Attendance{
		{EmployeeID: emp.ID, Date: "2024-03-01", Status: domain.StatusPresent},
		{EmployeeID: emp.ID, Date: "2024-03-02", Status: domain.StatusPresent},
		{EmployeeID: emp.ID, Date: "2024-03-03", Status: domain.StatusAbsent},
		{EmployeeID: other.ID, Date: "2024-03-01", Status: domain.StatusAbsent},
	} {
		if err := attRepo.Create(ctx, &rec); err != nil {
			t.Fatalf("create attendance: %v", err)
		}
	}

	records, err := attRepo.ListByEmployeeID(ctx, emp.ID)
	if err != nil || len(records) != 3 {
		t.Fatalf("expected 3 records, got %d (%v)", len(records), err)
	}
	if records[0].Date != "2024-03-01" {
		t.Errorf("expected date as stored, got %q", records[0].Date)
	}

	if exists, _ := attRepo.ExistsForDate(ctx, emp.ID, "2024-03-02"); !exists {
		t.Error("expected record for 2024-03-02")
	}
	if exists, _ := attRepo.ExistsForDate(ctx, other.ID, "2024-03-02"); exists {
		t.Error("unexpected record for other employee")
	}

	counts, err := attRepo.CountByStatus(ctx, emp.ID)
	if err != nil {
		t.Fatalf("count by status: %v", err)
	}
	if counts[domain.StatusPresent] != 2 || counts[domain.StatusAbsent] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}

	if err := attRepo.Delete(ctx, 999); !errors.Is(err, domain.ErrAttendanceNotFound) {
		t.Errorf("expected ErrAttendanceNotFound, got %v", err)
	}
}
