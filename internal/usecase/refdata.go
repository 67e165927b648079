package usecase

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/vendormap-service/internal/config"
	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/domain/repository"
	"github.com/vendormap-service/internal/geo"
)

// RefDataUseCase - use case справочных данных для инициализации дашборда.
// Справочники неизменяемы в рамках процесса, поэтому собранный ответ
// держится в Redis с длинным TTL.
type RefDataUseCase struct {
	vendorRepo repository.VendorRepository
	orderRepo  repository.OrderRepository
	cacheRepo  repository.CacheRepository
	geoStore   *geo.Store
	cities     map[string]config.CityConfig
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewRefDataUseCase создает новый RefDataUseCase
func NewRefDataUseCase(
	vendorRepo repository.VendorRepository,
	orderRepo repository.OrderRepository,
	cacheRepo repository.CacheRepository,
	geoStore *geo.Store,
	cities map[string]config.CityConfig,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *RefDataUseCase {
	return &RefDataUseCase{
		vendorRepo: vendorRepo,
		orderRepo:  orderRepo,
		cacheRepo:  cacheRepo,
		geoStore:   geoStore,
		cities:     cities,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// GetInitialData собирает справочники дашборда с read-through кешированием
func (uc *RefDataUseCase) GetInitialData(ctx context.Context) (*domain.InitialData, error) {
	if cached, err := uc.cacheRepo.GetInitialData(ctx); err == nil && cached != nil {
		uc.logger.Debug("Initial data cache hit")
		return cached, nil
	}

	businessLines, err := uc.orderRepo.ListBusinessLines(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := uc.vendorRepo.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	grades, err := uc.vendorRepo.ListGrades(ctx)
	if err != nil {
		return nil, err
	}

	data := &domain.InitialData{
		Cities:                uc.cityList(),
		BusinessLines:         businessLines,
		MarketingAreasByCity:  uc.marketingAreas(ctx),
		TehranRegionDistricts: uc.layerNames(ctx, "tehran", domain.LayerTehranRegion),
		TehranMainDistricts:   uc.layerNames(ctx, "tehran", domain.LayerTehranMain),
		VendorStatuses:        statuses,
		VendorGrades:          grades,
	}

	if err := uc.cacheRepo.SetInitialData(ctx, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache initial data", zap.Error(err))
	}
	return data, nil
}

// cityList возвращает справочник городов, отсортированный по id
func (uc *RefDataUseCase) cityList() []domain.City {
	cities := make([]domain.City, 0, len(uc.cities))
	for name, c := range uc.cities {
		cities = append(cities, domain.City{ID: c.ID, Name: name})
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].ID < cities[j].ID })
	return cities
}

// marketingAreas собирает имена маркетинговых зон по каждому городу.
// Город без файла зон получает пустой список: переключатель городов
// на дашборде показывает все сконфигурированные города.
func (uc *RefDataUseCase) marketingAreas(ctx context.Context) map[string][]string {
	areas := make(map[string][]string, len(uc.cities))
	for name := range uc.cities {
		areas[name] = uc.layerNames(ctx, name, domain.LayerMarketingAreas)
	}
	return areas
}

// layerNames возвращает отсортированные имена полигонов слоя,
// деградируя до пустого списка при отсутствии слоя
func (uc *RefDataUseCase) layerNames(ctx context.Context, city, layer string) []string {
	names := uc.geoStore.LayerNames(ctx, city, layer)
	sort.Strings(names)
	return names
}
