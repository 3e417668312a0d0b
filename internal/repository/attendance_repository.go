package repository

import (
	"context"
	"errors"
	"time"

	"github.com/empleados-api/internal/domain"
	"gorm.io/gorm"
)

// AttendanceRepository определяет интерфейс для работы с записями посещаемости
type AttendanceRepository interface {
	Create(ctx context.Context, rec *domain.AttendanceRecord) error
	Update(ctx context.Context, rec *domain.AttendanceRecord) error
	GetActiveByDate(ctx context.Context, employeeID int64, date time.Time) (*domain.AttendanceRecord, error)
	GetActive(ctx context.Context, employeeID int64) (*domain.AttendanceRecord, error)
	ListByClockInRange(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.AttendanceRecord, error)
	CountByDateRange(ctx context.Context, employeeID int64, from, to time.Time) (int64, error)
	ListWorkedDays(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.WorkedDay, error)
	ReportRows(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.AttendanceReportRow, error)
	LatestByEmployeeIDs(ctx context.Context, employeeIDs []int64, perEmployee int) (map[int64][]domain.AttendanceRecord, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository создаёт новый экземпляр репозитория
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, rec *domain.AttendanceRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		// Частичный уникальный индекс на (employee_id, date, status=ON_SHIFT)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrShiftAlreadyActive
		}
		return err
	}
	return nil
}

func (r *attendanceRepository) Update(ctx context.Context, rec *domain.AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *attendanceRepository) GetActiveByDate(ctx context.Context, employeeID int64, date time.Time) (*domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ? AND status = ?", employeeID, date, domain.StatusOnShift).
		First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *attendanceRepository) GetActive(ctx context.Context, employeeID int64) (*domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, domain.StatusOnShift).
		Order("clock_in DESC").
		First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *attendanceRepository) ListByClockInRange(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.AttendanceRecord, error) {
	var records []domain.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND clock_in >= ? AND clock_in < ?", employeeID, from, to).
		Order("clock_in ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) CountByDateRange(ctx context.Context, employeeID int64, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.AttendanceRecord{}).
		Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, from, to).
		Count(&count).Error
	return count, err
}

func (r *attendanceRepository) ListWorkedDays(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.WorkedDay, error) {
	var days []domain.WorkedDay
	err := r.db.WithContext(ctx).
		Model(&domain.AttendanceRecord{}).
		Select("date", "clock_in", "clock_out").
		Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, from, to).
		Order("date ASC").
		Scan(&days).Error
	return days, err
}

func (r *attendanceRepository) ReportRows(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.AttendanceReportRow, error) {
	var rows []domain.AttendanceReportRow
	err := r.db.WithContext(ctx).
		Table("attendance_records AS a").
		Select(
			"a.id AS id",
			"a.date AS date",
			"a.clock_in AS clock_in",
			"a.clock_out AS clock_out",
			"a.shift AS shift",
			"e.id AS employee_id",
			"e.first_name AS first_name",
			"e.last_name_p AS last_name_p",
			"e.last_name_m AS last_name_m",
		).
		Joins("LEFT JOIN employees e ON e.id = a.employee_id").
		Where("a.employee_id = ? AND a.date BETWEEN ? AND ?", employeeID, from, to).
		Order("a.date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *attendanceRepository) LatestByEmployeeIDs(ctx context.Context, employeeIDs []int64, perEmployee int) (map[int64][]domain.AttendanceRecord, error) {
	result := make(map[int64][]domain.AttendanceRecord, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return result, nil
	}

	// Одна оконная выборка на всю страницу вместо подзапроса на сотрудника
	query := `
		SELECT * FROM (
			SELECT a.*, ROW_NUMBER() OVER (PARTITION BY employee_id ORDER BY date DESC, id DESC) AS rn
			FROM attendance_records a
			WHERE employee_id IN ?
		) ranked
		WHERE rn <= ?
		ORDER BY employee_id, rn
	`

	var records []domain.AttendanceRecord
	if err := r.db.WithContext(ctx).Raw(query, employeeIDs, perEmployee).Scan(&records).Error; err != nil {
		return nil, err
	}

	for _, rec := range records {
		result[rec.EmployeeID] = append(result[rec.EmployeeID], rec)
	}
	return result, nil
}
