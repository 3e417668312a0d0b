package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/empleados-api/internal/domain"
	"github.com/empleados-api/internal/repository"
)

const dateLayout = "02/01/2006"

// AttendanceService определяет бизнес-логику учёта смен, выработки и зарплаты
type AttendanceService interface {
	ClockIn(ctx context.Context, employeeID int64) (*domain.AttendanceRecord, error)
	ClockOut(ctx context.Context, employeeID int64) (*domain.AttendanceRecord, error)
	RecordProduction(ctx context.Context, employeeID, units int64) (*domain.ProductionRecord, error)
	ComputePayroll(ctx context.Context, employeeID int64, startDate, endDate string) (*domain.PayrollResult, error)
	CountAttendance(ctx context.Context, employeeID int64, startDate, endDate string) (int64, error)
	ListWorkedDays(ctx context.Context, employeeID int64, startDate, endDate string) ([]domain.WorkedDay, error)
	AttendanceReport(ctx context.Context, employeeID int64, startDate, endDate string) ([]domain.AttendanceReportRow, error)
	ProductionReport(ctx context.Context, employeeID int64, startDate, endDate string) ([]domain.ProductionReportRow, error)
}

type attendanceService struct {
	empRepo  repository.EmployeeRepository
	attRepo  repository.AttendanceRepository
	prodRepo repository.ProductionRepository
	schedule domain.ShiftSchedule
	now      func() time.Time

	// Сериализация check-and-insert по сотруднику: ровно одна запись
	// ON_SHIFT на сотрудника в день даже при конкурентных входах.
	// Страховкой на уровне хранилища служит частичный уникальный индекс.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewAttendanceService создаёт новый экземпляр сервиса
func NewAttendanceService(
	empRepo repository.EmployeeRepository,
	attRepo repository.AttendanceRepository,
	prodRepo repository.ProductionRepository,
	schedule domain.ShiftSchedule,
) AttendanceService {
	return &attendanceService{
		empRepo:  empRepo,
		attRepo:  attRepo,
		prodRepo: prodRepo,
		schedule: schedule,
		now:      time.Now,
		locks:    make(map[int64]*sync.Mutex),
	}
}

func (s *attendanceService) employeeLock(employeeID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[employeeID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[employeeID] = lock
	}
	return lock
}

func (s *attendanceService) ClockIn(ctx context.Context, employeeID int64) (*domain.AttendanceRecord, error) {
	lock := s.employeeLock(employeeID)
	lock.Lock()
	defer lock.Unlock()

	emp, err := s.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := dateOnly(now)

	_, err = s.attRepo.GetActiveByDate(ctx, employeeID, today)
	if err == nil {
		return nil, domain.ErrShiftAlreadyActive
	}
	if !errors.Is(err, domain.ErrAttendanceNotFound) {
		return nil, err
	}

	rec := &domain.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       today,
		ClockIn:    now,
		Shift:      emp.Shift,
		Punctual:   s.schedule.IsPunctual(emp.Shift, now.Format("15:04")),
		Status:     domain.StatusOnShift,
	}

	if err := s.attRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *attendanceService) ClockOut(ctx context.Context, employeeID int64) (*domain.AttendanceRecord, error) {
	lock := s.employeeLock(employeeID)
	lock.Lock()
	defer lock.Unlock()

	rec, err := s.attRepo.GetActive(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrAttendanceNotFound) {
			return nil, domain.ErrNoActiveShift
		}
		return nil, err
	}

	now := s.now()
	hours := now.Sub(rec.ClockIn).Hours()

	rec.ClockOut = &now
	rec.HoursWorked = &hours
	rec.Status = domain.StatusFinished

	if err := s.attRepo.Update(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *attendanceService) RecordProduction(ctx context.Context, employeeID, units int64) (*domain.ProductionRecord, error) {
	emp, err := s.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec := &domain.ProductionRecord{
		EmployeeID: employeeID,
		Date:       dateOnly(now),
		Shift:      emp.Shift,
		Units:      units,
	}

	if err := s.prodRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *attendanceService) ComputePayroll(ctx context.Context, employeeID int64, startDate, endDate string) (*domain.PayrollResult, error) {
	emp, err := s.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	// Верхняя граница включает любой вход в течение конечного дня
	records, err := s.attRepo.ListByClockInRange(ctx, employeeID, from, to.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	daysWorked := len(records)

	return &domain.PayrollResult{
		DaysWorked: daysWorked,
		Records:    records,
		TotalPay:   float64(daysWorked) * emp.DailyWage,
	}, nil
}

func (s *attendanceService) CountAttendance(ctx context.Context, employeeID int64, startDate, endDate string) (int64, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return 0, err
	}
	return s.attRepo.CountByDateRange(ctx, employeeID, from, to)
}

func (s *attendanceService) ListWorkedDays(ctx context.Context, employeeID int64, startDate, endDate string) ([]domain.WorkedDay, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.attRepo.ListWorkedDays(ctx, employeeID, from, to)
}

func (s *attendanceService) AttendanceReport(ctx context.Context, employeeID int64, startDate, endDate string) ([]domain.AttendanceReportRow, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.attRepo.ReportRows(ctx, employeeID, from, to)
}

func (s *attendanceService) ProductionReport(ctx context.Context, employeeID int64, startDate, endDate string) ([]domain.ProductionReportRow, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.prodRepo.ReportRows(ctx, employeeID, from, to)
}

// parseDateRange разбирает границы периода в формате DD/MM/YYYY
// в локальную полночь
func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", domain.ErrInvalidDateRange, startDate)
	}
	to, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", domain.ErrInvalidDateRange, endDate)
	}
	return from, to, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
