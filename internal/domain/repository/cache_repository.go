package repository

import (
	"context"
	"time"

	"github.com/vendormap-service/internal/domain"
)

// CacheRepository - read-through кеш поверх Redis.
// Кешируются только производные и справочные данные: промахи и ошибки
// кеша никогда не фатальны для запроса.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetCoverageGrid возвращает закешированную сетку покрытия по хешу
	// фильтра или (nil, nil) при промахе
	GetCoverageGrid(ctx context.Context, filterHash string) ([]domain.GridCell, error)
	SetCoverageGrid(ctx context.Context, filterHash string, cells []domain.GridCell, ttl time.Duration) error

	// GetInitialData возвращает закешированные справочные данные
	// или (nil, nil) при промахе
	GetInitialData(ctx context.Context) (*domain.InitialData, error)
	SetInitialData(ctx context.Context, data *domain.InitialData, ttl time.Duration) error
}
