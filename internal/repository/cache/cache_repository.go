package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetCoverageGrid получает сетку покрытия из кеша по хешу фильтра
func (r *cacheRepository) GetCoverageGrid(ctx context.Context, filterHash string) ([]domain.GridCell, error) {
	data, err := r.Get(ctx, coverageGridKey(filterHash))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var cells []domain.GridCell
	if err := json.Unmarshal(data, &cells); err != nil {
		r.logger.Warn("Failed to unmarshal cached coverage grid", zap.Error(err))
		return nil, nil
	}
	return cells, nil
}

// SetCoverageGrid кеширует сетку покрытия
func (r *cacheRepository) SetCoverageGrid(ctx context.Context, filterHash string, cells []domain.GridCell, ttl time.Duration) error {
	data, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("marshal coverage grid: %w", err)
	}
	return r.Set(ctx, coverageGridKey(filterHash), data, ttl)
}

// GetInitialData получает справочные данные из кеша
func (r *cacheRepository) GetInitialData(ctx context.Context) (*domain.InitialData, error) {
	data, err := r.Get(ctx, initialDataKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var initial domain.InitialData
	if err := json.Unmarshal(data, &initial); err != nil {
		r.logger.Warn("Failed to unmarshal cached initial data", zap.Error(err))
		return nil, nil
	}
	return &initial, nil
}

// SetInitialData кеширует справочные данные
func (r *cacheRepository) SetInitialData(ctx context.Context, initial *domain.InitialData, ttl time.Duration) error {
	data, err := json.Marshal(initial)
	if err != nil {
		return fmt.Errorf("marshal initial data: %w", err)
	}
	return r.Set(ctx, initialDataKey, data, ttl)
}

const initialDataKey = "refdata:initial"

func coverageGridKey(filterHash string) string {
	return fmt.Sprintf("coverage:%s", filterHash)
}
