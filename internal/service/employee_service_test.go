package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/empleados-api/internal/domain"
	"github.com/empleados-api/internal/dto"
)

type employeeFixture struct {
	svc      EmployeeService
	empRepo  *mockEmployeeRepo
	attRepo  *mockAttendanceRepo
	prodRepo *mockProductionRepo
}

func setupEmployeeService() *employeeFixture {
	empRepo := newMockEmployeeRepo()
	attRepo := newMockAttendanceRepo()
	prodRepo := newMockProductionRepo()
	return &employeeFixture{
		svc:      NewEmployeeService(empRepo, attRepo, prodRepo),
		empRepo:  empRepo,
		attRepo:  attRepo,
		prodRepo: prodRepo,
	}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestCreateEmployee_Defaults(t *testing.T) {
	f := setupEmployeeService()

	emp, err := f.svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		FirstName: "Maria",
		LastNameP: "Garcia",
		LastNameM: "Santos",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if emp.Area != domain.AreaOffice {
		t.Errorf("expected default area %s, got %s", domain.AreaOffice, emp.Area)
	}
	if emp.Shift != domain.ShiftMorning {
		t.Errorf("expected default shift %s, got %s", domain.ShiftMorning, emp.Shift)
	}
	if emp.DailyWage != 0 {
		t.Errorf("expected default wage 0, got %v", emp.DailyWage)
	}
	if !emp.Active {
		t.Error("expected employee active by default")
	}
}

func TestCreateEmployee_TrimsNames(t *testing.T) {
	f := setupEmployeeService()

	emp, err := f.svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		FirstName: "  Maria ",
		LastNameP: " Garcia",
		LastNameM: "Santos  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.FirstName != "Maria" || emp.LastNameP != "Garcia" || emp.LastNameM != "Santos" {
		t.Errorf("names not trimmed: %q %q %q", emp.FirstName, emp.LastNameP, emp.LastNameM)
	}
}

func TestUpdateEmployee_PartialFields(t *testing.T) {
	f := setupEmployeeService()

	emp, _ := f.svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		FirstName: "Maria",
		LastNameP: "Garcia",
		LastNameM: "Santos",
		Shift:     strPtr("EVENING"),
		DailyWage: floatPtr(350),
	})

	updated, err := f.svc.Update(context.Background(), emp.ID, &dto.UpdateEmployeeRequest{
		DailyWage: floatPtr(400),
		Active:    boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.DailyWage != 400 {
		t.Errorf("expected wage 400, got %v", updated.DailyWage)
	}
	if updated.Active {
		t.Error("expected employee deactivated")
	}
	// Нетронутые поля остаются прежними
	if updated.FirstName != "Maria" || updated.Shift != domain.ShiftEvening {
		t.Errorf("untouched fields changed: %q %s", updated.FirstName, updated.Shift)
	}
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	f := setupEmployeeService()

	_, err := f.svc.Update(context.Background(), 42, &dto.UpdateEmployeeRequest{})
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	f := setupEmployeeService()

	err := f.svc.Delete(context.Background(), 42)
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func seedEmployees(f *employeeFixture, n int) {
	for i := 0; i < n; i++ {
		f.svc.Create(context.Background(), &dto.CreateEmployeeRequest{
			FirstName: "Empleado",
			LastNameP: "Numero",
			LastNameM: "Test",
		})
	}
}

func TestListEmployees_Pagination(t *testing.T) {
	f := setupEmployeeService()
	seedEmployees(f, 7)

	page, err := f.svc.List(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Total != 7 {
		t.Errorf("expected total 7, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", page.TotalPages)
	}
	if len(page.Employees) != 3 {
		t.Errorf("expected 3 employees on page 2, got %d", len(page.Employees))
	}
	// Порядок по id по возрастанию, страница 2 начинается с четвёртого
	if page.Employees[0].ID != 4 {
		t.Errorf("expected first employee on page 2 to have id 4, got %d", page.Employees[0].ID)
	}
}

func TestListEmployees_ClampsPageAndSize(t *testing.T) {
	f := setupEmployeeService()
	seedEmployees(f, 3)

	page, err := f.svc.List(context.Background(), 0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Page != 1 {
		t.Errorf("expected page clamped to 1, got %d", page.Page)
	}
	if page.PageSize != 1 {
		t.Errorf("expected page size clamped to 1, got %d", page.PageSize)
	}
	if len(page.Employees) != 1 {
		t.Errorf("expected 1 employee, got %d", len(page.Employees))
	}
}

func TestListEmployees_ZeroSizeMeansDefault(t *testing.T) {
	f := setupEmployeeService()
	seedEmployees(f, 12)

	page, err := f.svc.List(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.PageSize != 10 {
		t.Errorf("expected default page size 10, got %d", page.PageSize)
	}
	if len(page.Employees) != 10 {
		t.Errorf("expected 10 employees, got %d", len(page.Employees))
	}
	if page.TotalPages != 2 {
		t.Errorf("expected 2 total pages, got %d", page.TotalPages)
	}
}

func TestListEmployees_EmptyTableHasOnePage(t *testing.T) {
	f := setupEmployeeService()

	page, err := f.svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 1 {
		t.Errorf("expected minimum 1 total page, got %d", page.TotalPages)
	}
	if page.Total != 0 {
		t.Errorf("expected total 0, got %d", page.Total)
	}
}

func TestListEmployees_EnrichmentCapsAtFive(t *testing.T) {
	f := setupEmployeeService()
	seedEmployees(f, 1)

	for i := 0; i < 8; i++ {
		f.prodRepo.Create(context.Background(), &domain.ProductionRecord{
			EmployeeID: 1,
			Date:       time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.Local),
			Shift:      domain.ShiftMorning,
			Units:      int64(10 * (i + 1)),
		})
		f.attRepo.Create(context.Background(), &domain.AttendanceRecord{
			EmployeeID: 1,
			Date:       time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.Local),
			ClockIn:    time.Date(2025, 1, 1+i, 6, 0, 0, 0, time.Local),
			Shift:      domain.ShiftMorning,
			Status:     domain.StatusFinished,
		})
	}

	page, err := f.svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	emp := page.Employees[0]
	if len(emp.Production) != 5 {
		t.Errorf("expected 5 latest production records, got %d", len(emp.Production))
	}
	if len(emp.Attendance) != 5 {
		t.Errorf("expected 5 latest attendance records, got %d", len(emp.Attendance))
	}
	// Самая свежая запись выработки идёт первой (по id по убыванию)
	if emp.Production[0].Units != 80 {
		t.Errorf("expected latest production record first, got units %d", emp.Production[0].Units)
	}
}
