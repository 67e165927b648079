package geo

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/domain/repository"
)

// Store владеет справочными слоями полигонов. Слой загружается один раз
// на комбинацию (город, слой) и кешируется на время жизни процесса:
// файлы геометрии неизменяемы, инвалидации нет. Кеш явный, с RWMutex -
// безопасен для любого числа одновременных читателей.
type Store struct {
	repo   repository.GeometryRepository
	logger *zap.Logger

	mu     sync.RWMutex
	layers map[string][]domain.AreaPolygon
}

// NewStore создает новый Store поверх репозитория геометрии
func NewStore(repo repository.GeometryRepository, logger *zap.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: logger,
		layers: make(map[string][]domain.AreaPolygon),
	}
}

func layerKey(city, layer string) string {
	return fmt.Sprintf("%s/%s", city, layer)
}

// Layer возвращает слой полигонов города, загружая его при первом обращении.
// Возвращает errors.ErrDataNotFound, если файла геометрии нет.
func (s *Store) Layer(ctx context.Context, city, layer string) ([]domain.AreaPolygon, error) {
	key := layerKey(city, layer)

	s.mu.RLock()
	cached, ok := s.layers[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	loaded, err := s.repo.LoadLayer(ctx, city, layer)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Повторная проверка: слой мог загрузить конкурентный запрос.
	// Обе загрузки читают один и тот же неизменяемый файл, берем любую.
	if cached, ok := s.layers[key]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.layers[key] = loaded
	s.mu.Unlock()

	s.logger.Info("Polygon layer loaded",
		zap.String("city", city),
		zap.String("layer", layer),
		zap.Int("polygons", len(loaded)),
	)
	return loaded, nil
}

// LayerNames возвращает имена полигонов слоя в порядке следования,
// или пустой список, если слой недоступен
func (s *Store) LayerNames(ctx context.Context, city, layer string) []string {
	areas, err := s.Layer(ctx, city, layer)
	if err != nil {
		return []string{}
	}
	names := make([]string, 0, len(areas))
	for i := range areas {
		names = append(names, areas[i].Name)
	}
	return names
}
