package service

import (
	"context"
	"strings"

	"github.com/empleados-api/internal/domain"
	"github.com/empleados-api/internal/dto"
	"github.com/empleados-api/internal/repository"
)

const (
	defaultPageSize = 10
	enrichmentLimit = 5
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int) (*domain.EmployeePage, error)
}

type employeeService struct {
	empRepo  repository.EmployeeRepository
	attRepo  repository.AttendanceRepository
	prodRepo repository.ProductionRepository
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(
	empRepo repository.EmployeeRepository,
	attRepo repository.AttendanceRepository,
	prodRepo repository.ProductionRepository,
) EmployeeService {
	return &employeeService{
		empRepo:  empRepo,
		attRepo:  attRepo,
		prodRepo: prodRepo,
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	emp := &domain.Employee{
		FirstName: strings.TrimSpace(req.FirstName),
		LastNameP: strings.TrimSpace(req.LastNameP),
		LastNameM: strings.TrimSpace(req.LastNameM),
		Area:      domain.AreaOffice,
		Shift:     domain.ShiftMorning,
		Active:    true,
	}

	if req.Area != nil {
		emp.Area = domain.WorkArea(*req.Area)
	}
	if req.Shift != nil {
		emp.Shift = domain.Shift(*req.Shift)
	}
	if req.DailyWage != nil {
		emp.DailyWage = *req.DailyWage
	}
	if req.Active != nil {
		emp.Active = *req.Active
	}

	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByIDWithRelations(ctx, id)
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Обновляем только переданные поля
	if req.FirstName != nil {
		emp.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastNameP != nil {
		emp.LastNameP = strings.TrimSpace(*req.LastNameP)
	}
	if req.LastNameM != nil {
		emp.LastNameM = strings.TrimSpace(*req.LastNameM)
	}
	if req.Area != nil {
		emp.Area = domain.WorkArea(*req.Area)
	}
	if req.Shift != nil {
		emp.Shift = domain.Shift(*req.Shift)
	}
	if req.DailyWage != nil {
		emp.DailyWage = *req.DailyWage
	}
	if req.Active != nil {
		emp.Active = *req.Active
	}

	if err := s.empRepo.Update(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	return s.empRepo.Delete(ctx, id)
}

func (s *employeeService) List(ctx context.Context, page, pageSize int) (*domain.EmployeePage, error) {
	// Страница и размер не могут быть меньше 1; нулевой размер означает
	// размер по умолчанию
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}

	offset := (page - 1) * pageSize

	employees, total, err := s.empRepo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, err
	}

	if err := s.enrich(ctx, employees); err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	return &domain.EmployeePage{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
		Employees:  employees,
	}, nil
}

// enrich прикрепляет к каждому сотруднику страницы его последние записи
// выработки и посещаемости одной групповой выборкой на отношение
func (s *employeeService) enrich(ctx context.Context, employees []domain.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	ids := make([]int64, len(employees))
	for i, emp := range employees {
		ids[i] = emp.ID
	}

	production, err := s.prodRepo.LatestByEmployeeIDs(ctx, ids, enrichmentLimit)
	if err != nil {
		return err
	}

	attendance, err := s.attRepo.LatestByEmployeeIDs(ctx, ids, enrichmentLimit)
	if err != nil {
		return err
	}

	for i := range employees {
		employees[i].Production = production[employees[i].ID]
		employees[i].Attendance = attendance[employees[i].ID]
	}
	return nil
}
