package repository

import (
	"context"
	"time"

	"github.com/empleados-api/internal/domain"
	"gorm.io/gorm"
)

// ProductionRepository определяет интерфейс для работы с записями выработки
type ProductionRepository interface {
	Create(ctx context.Context, rec *domain.ProductionRecord) error
	ReportRows(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.ProductionReportRow, error)
	LatestByEmployeeIDs(ctx context.Context, employeeIDs []int64, perEmployee int) (map[int64][]domain.ProductionRecord, error)
}

type productionRepository struct {
	db *gorm.DB
}

// NewProductionRepository создаёт новый экземпляр репозитория
func NewProductionRepository(db *gorm.DB) ProductionRepository {
	return &productionRepository{db: db}
}

func (r *productionRepository) Create(ctx context.Context, rec *domain.ProductionRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *productionRepository) ReportRows(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.ProductionReportRow, error) {
	var rows []domain.ProductionReportRow
	err := r.db.WithContext(ctx).
		Table("production_records AS p").
		Select(
			"p.id AS id",
			"p.date AS date",
			"p.shift AS shift",
			"p.units AS units",
			"e.id AS employee_id",
			"e.first_name AS first_name",
			"e.last_name_p AS last_name_p",
			"e.last_name_m AS last_name_m",
		).
		Joins("LEFT JOIN employees e ON e.id = p.employee_id").
		Where("p.employee_id = ? AND p.date BETWEEN ? AND ?", employeeID, from, to).
		Order("p.date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *productionRepository) LatestByEmployeeIDs(ctx context.Context, employeeIDs []int64, perEmployee int) (map[int64][]domain.ProductionRecord, error) {
	result := make(map[int64][]domain.ProductionRecord, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT * FROM (
			SELECT p.*, ROW_NUMBER() OVER (PARTITION BY employee_id ORDER BY id DESC) AS rn
			FROM production_records p
			WHERE employee_id IN ?
		) ranked
		WHERE rn <= ?
		ORDER BY employee_id, rn
	`

	var records []domain.ProductionRecord
	if err := r.db.WithContext(ctx).Raw(query, employeeIDs, perEmployee).Scan(&records).Error; err != nil {
		return nil, err
	}

	for _, rec := range records {
		result[rec.EmployeeID] = append(result[rec.EmployeeID], rec)
	}
	return result, nil
}
