package dto

import (
	"time"

	"github.com/empleados-api/internal/domain"
)

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	FirstName string   `json:"first_name" validate:"required,min=3,max=255"`
	LastNameP string   `json:"last_name_p" validate:"required,min=3,max=255"`
	LastNameM string   `json:"last_name_m" validate:"required,min=3,max=255"`
	Area      *string  `json:"area" validate:"omitempty,oneof=OFFICE PRODUCTION INVENTORY"`
	Shift     *string  `json:"shift" validate:"omitempty,oneof=MORNING EVENING NIGHT MIXED"`
	DailyWage *float64 `json:"daily_wage" validate:"omitempty,gt=0"`
	Active    *bool    `json:"active"`
}

// UpdateEmployeeRequest - запрос на частичное обновление сотрудника
type UpdateEmployeeRequest struct {
	FirstName *string  `json:"first_name" validate:"omitempty,min=3,max=255"`
	LastNameP *string  `json:"last_name_p" validate:"omitempty,min=3,max=255"`
	LastNameM *string  `json:"last_name_m" validate:"omitempty,min=3,max=255"`
	Area      *string  `json:"area" validate:"omitempty,oneof=OFFICE PRODUCTION INVENTORY"`
	Shift     *string  `json:"shift" validate:"omitempty,oneof=MORNING EVENING NIGHT MIXED"`
	DailyWage *float64 `json:"daily_wage" validate:"omitempty,gt=0"`
	Active    *bool    `json:"active"`
}

// RecordProductionRequest - запрос на регистрацию выработки
type RecordProductionRequest struct {
	Units int64 `json:"units"`
}

// ReportQuery - параметры отчётных запросов за период
type ReportQuery struct {
	EmployeeID int64  `validate:"required,min=1"`
	StartDate  string `validate:"required,datetime=02/01/2006"`
	EndDate    string `validate:"required,datetime=02/01/2006"`
}

// ListEmployeesQuery - параметры запроса списка сотрудников
type ListEmployeesQuery struct {
	Page     int
	PageSize int
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID         int64                `json:"id"`
	FirstName  string               `json:"first_name"`
	LastNameP  string               `json:"last_name_p"`
	LastNameM  string               `json:"last_name_m"`
	Area       domain.WorkArea      `json:"area"`
	Shift      domain.Shift         `json:"shift"`
	DailyWage  float64              `json:"daily_wage"`
	Active     bool                 `json:"active"`
	CreatedAt  time.Time            `json:"created_at"`
	Attendance []AttendanceResponse `json:"attendance,omitempty"`
	Production []ProductionResponse `json:"production,omitempty"`
}

// AttendanceResponse - ответ с данными записи посещаемости
type AttendanceResponse struct {
	ID          int64                   `json:"id"`
	EmployeeID  int64                   `json:"employee_id"`
	Date        string                  `json:"date"`
	ClockIn     time.Time               `json:"clock_in"`
	ClockOut    *time.Time              `json:"clock_out"`
	Shift       domain.Shift            `json:"shift"`
	Punctual    bool                    `json:"punctual"`
	HoursWorked *float64                `json:"hours_worked"`
	Status      domain.AttendanceStatus `json:"status"`
}

// ProductionResponse - ответ с данными записи выработки
type ProductionResponse struct {
	ID         int64        `json:"id"`
	EmployeeID int64        `json:"employee_id"`
	Date       string       `json:"date"`
	Shift      domain.Shift `json:"shift"`
	Units      int64        `json:"units"`
}

// EmployeePageResponse - страница сотрудников с навигационными ссылками
type EmployeePageResponse struct {
	Total      int64              `json:"total"`
	TotalPages int                `json:"total_pages"`
	Prev       *string            `json:"prev"`
	Next       *string            `json:"next"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Data       []EmployeeResponse `json:"data"`
}

// PayrollResponse - итог расчёта зарплаты за период
type PayrollResponse struct {
	DaysWorked int                  `json:"days_worked"`
	Records    []AttendanceResponse `json:"records"`
	TotalPay   float64              `json:"total_pay"`
}

// AttendanceCountResponse - количество посещений за период
type AttendanceCountResponse struct {
	TotalAttendances int64 `json:"total_attendances"`
}

// AttendanceReportResponse - отчёт по посещаемости
type AttendanceReportResponse struct {
	Total int                          `json:"total"`
	Data  []domain.AttendanceReportRow `json:"data"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
