package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/domain/repository"
	"github.com/vendormap-service/internal/pkg/errors"
)

type orderRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewOrderRepository создает новый экземпляр OrderRepository
func NewOrderRepository(db *DB) repository.OrderRepository {
	return &orderRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const orderColumns = `
	o.order_id, o.vendor_code, o.city_name, o.business_line,
	COALESCE(o.marketing_area, '') AS marketing_area,
	o.created_at, o.customer_latitude, o.customer_longitude,
	o.user_id, COALESCE(o.organic, false) AS organic
`

// ListByCity возвращает все заказы города в порядке хранения
func (r *orderRepository) ListByCity(ctx context.Context, city string) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE ($1 = 'all' OR o.city_name = $1)
		ORDER BY o.order_id
	`

	var orders []domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, city); err != nil {
		r.logger.Error("Failed to list orders", zap.String("city", city), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return orders, nil
}

// ListFiltered возвращает заказы города, ограниченные датами и бизнес-линиями.
// NULL-параметры и пустой массив бизнес-линий не ограничивают выборку.
func (r *orderRepository) ListFiltered(
	ctx context.Context,
	city string,
	businessLines []string,
	from, to *time.Time,
) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE ($1 = 'all' OR o.city_name = $1)
		  AND ($2::timestamptz IS NULL OR o.created_at >= $2)
		  AND ($3::timestamptz IS NULL OR o.created_at <= $3)
		  AND (cardinality($4::text[]) = 0 OR o.business_line = ANY($4))
		ORDER BY o.order_id
	`

	if businessLines == nil {
		businessLines = []string{}
	}

	var orders []domain.Order
	err := r.db.SelectContext(ctx, &orders, query, city, from, to, pq.Array(businessLines))
	if err != nil {
		r.logger.Error("Failed to list filtered orders",
			zap.String("city", city),
			zap.Strings("business_lines", businessLines),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return orders, nil
}

// ListBusinessLines возвращает отсортированный список бизнес-линий
func (r *orderRepository) ListBusinessLines(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT business_line
		FROM orders
		WHERE business_line IS NOT NULL AND business_line <> ''
		ORDER BY business_line
	`

	lines := []string{}
	if err := r.db.SelectContext(ctx, &lines, query); err != nil {
		r.logger.Error("Failed to list business lines", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return lines, nil
}
