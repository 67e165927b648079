package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/domain/repository"
	"github.com/vendormap-service/internal/pkg/errors"
)

type vendorRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewVendorRepository создает новый экземпляр VendorRepository
func NewVendorRepository(db *DB) repository.VendorRepository {
	return &vendorRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// ListByCity возвращает вендоров города в порядке хранения.
// Грейд подтягивается LEFT JOIN-ом: вендоры без грейда получают 'Ungraded'.
// Бизнес-линия вендора - самая частая бизнес-линия его заказов.
func (r *vendorRepository) ListByCity(ctx context.Context, city string) ([]domain.Vendor, error) {
	query := `
		SELECT
			v.vendor_code, v.vendor_name, v.city_name,
			v.latitude, v.longitude,
			v.status_id, v.visible, v.open, v.radius,
			COALESCE(g.grade, 'Ungraded') AS grade,
			COALESCE(bl.business_line, '') AS business_line
		FROM vendors v
		LEFT JOIN vendor_grades g ON g.vendor_code = v.vendor_code
		LEFT JOIN LATERAL (
			SELECT o.business_line
			FROM orders o
			WHERE o.vendor_code = v.vendor_code
			GROUP BY o.business_line
			ORDER BY COUNT(*) DESC
			LIMIT 1
		) bl ON true
		WHERE v.latitude IS NOT NULL
		  AND v.longitude IS NOT NULL
		  AND ($1 = 'all' OR v.city_name = $1)
		ORDER BY v.id
	`

	var vendors []domain.Vendor
	if err := r.db.SelectContext(ctx, &vendors, query, city); err != nil {
		r.logger.Error("Failed to list vendors", zap.String("city", city), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return vendors, nil
}

// ListStatuses возвращает отсортированный список известных status_id
func (r *vendorRepository) ListStatuses(ctx context.Context) ([]int, error) {
	query := `
		SELECT DISTINCT status_id
		FROM vendors
		WHERE status_id IS NOT NULL
		ORDER BY status_id
	`

	statuses := []int{}
	if err := r.db.SelectContext(ctx, &statuses, query); err != nil {
		r.logger.Error("Failed to list vendor statuses", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return statuses, nil
}

// ListGrades возвращает отсортированный список известных грейдов
func (r *vendorRepository) ListGrades(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT COALESCE(grade, 'Ungraded')
		FROM vendor_grades
		ORDER BY 1
	`

	grades := []string{}
	if err := r.db.SelectContext(ctx, &grades, query); err != nil {
		r.logger.Error("Failed to list vendor grades", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return grades, nil
}
