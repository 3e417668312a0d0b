package domain

import (
	"time"
)

// WorkArea - рабочая зона сотрудника
type WorkArea string

const (
	AreaOffice     WorkArea = "OFFICE"
	AreaProduction WorkArea = "PRODUCTION"
	AreaInventory  WorkArea = "INVENTORY"
)

// Shift - рабочая смена сотрудника
type Shift string

const (
	ShiftMorning Shift = "MORNING"
	ShiftEvening Shift = "EVENING"
	ShiftNight   Shift = "NIGHT"
	ShiftMixed   Shift = "MIXED"
)

// AttendanceStatus - статус записи посещаемости.
// Единственный допустимый переход: ON_SHIFT -> FINISHED при закрытии смены.
type AttendanceStatus string

const (
	StatusOnShift  AttendanceStatus = "ON_SHIFT"
	StatusFinished AttendanceStatus = "FINISHED"
)

// Employee представляет сотрудника
type Employee struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string    `json:"first_name" gorm:"type:varchar(255);not null"`
	LastNameP string    `json:"last_name_p" gorm:"type:varchar(255);not null"`
	LastNameM string    `json:"last_name_m" gorm:"type:varchar(255);not null"`
	Area      WorkArea  `json:"area" gorm:"type:varchar(20);not null;default:OFFICE"`
	Shift     Shift     `json:"shift" gorm:"type:varchar(20);not null;default:MORNING"`
	DailyWage float64   `json:"daily_wage" gorm:"not null;default:0"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Attendance []AttendanceRecord `json:"attendance,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Production []ProductionRecord `json:"production,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// AttendanceRecord представляет запись посещаемости (одна смена).
// Создаётся при входе в смену, мутирует ровно один раз при выходе.
type AttendanceRecord struct {
	ID          int64            `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID  int64            `json:"employee_id" gorm:"not null;index"`
	Date        time.Time        `json:"date" gorm:"type:date;not null"`
	ClockIn     time.Time        `json:"clock_in" gorm:"not null"`
	ClockOut    *time.Time       `json:"clock_out"`
	Shift       Shift            `json:"shift" gorm:"type:varchar(20);not null"`
	Punctual    bool             `json:"punctual" gorm:"not null"`
	HoursWorked *float64         `json:"hours_worked"`
	Status      AttendanceStatus `json:"status" gorm:"type:varchar(20);not null;index"`

	Employee *Employee `json:"-" gorm:"foreignKey:EmployeeID"`
}

// TableName задаёт имя таблицы для GORM
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// ProductionRecord представляет запись выработки. Неизменяема после создания.
type ProductionRecord struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID int64     `json:"employee_id" gorm:"not null;index"`
	Date       time.Time `json:"date" gorm:"type:date;not null"`
	Shift      Shift     `json:"shift" gorm:"type:varchar(20);not null"`
	Units      int64     `json:"units" gorm:"not null;default:0"`

	Employee *Employee `json:"-" gorm:"foreignKey:EmployeeID"`
}

// TableName задаёт имя таблицы для GORM
func (ProductionRecord) TableName() string {
	return "production_records"
}

// PayrollResult - итог расчёта зарплаты за период
type PayrollResult struct {
	DaysWorked int                `json:"days_worked"`
	Records    []AttendanceRecord `json:"records"`
	TotalPay   float64            `json:"total_pay"`
}

// WorkedDay - проекция отработанного дня
type WorkedDay struct {
	Date     time.Time  `json:"date"`
	ClockIn  time.Time  `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`
}

// AttendanceReportRow - строка отчёта по посещаемости с данными сотрудника
type AttendanceReportRow struct {
	ID         int64      `json:"id"`
	Date       time.Time  `json:"date"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out"`
	Shift      Shift      `json:"shift"`
	EmployeeID int64      `json:"employee_id"`
	FirstName  string     `json:"first_name"`
	LastNameP  string     `json:"last_name_p"`
	LastNameM  string     `json:"last_name_m"`
}

// ProductionReportRow - строка отчёта по выработке с данными сотрудника
type ProductionReportRow struct {
	ID         int64     `json:"id"`
	Date       time.Time `json:"date"`
	Shift      Shift     `json:"shift"`
	Units      int64     `json:"units"`
	EmployeeID int64     `json:"employee_id"`
	FirstName  string    `json:"first_name"`
	LastNameP  string    `json:"last_name_p"`
	LastNameM  string    `json:"last_name_m"`
}

// EmployeePage - страница сотрудников с общим количеством
type EmployeePage struct {
	Total      int64
	TotalPages int
	Page       int
	PageSize   int
	Employees  []Employee
}
