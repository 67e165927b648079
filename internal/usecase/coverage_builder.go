package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vendormap-service/internal/config"
	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/domain/repository"
	"github.com/vendormap-service/internal/geo"
	"github.com/vendormap-service/internal/pkg/errors"
	"github.com/vendormap-service/internal/pkg/utils"
)

// CoverageGridBuilder - use case построения сетки покрытия: регулярная
// решетка по bounding box города, для каждой ячейки - счетчики вендоров,
// чей display-радиус достает до центра ячейки. Результат зависит только
// от города, набора кодов вендоров и радиусных параметров, поэтому
// кешируется в Redis под хешем этих входов.
type CoverageGridBuilder struct {
	geoStore  *geo.Store
	cacheRepo repository.CacheRepository
	cities    map[string]config.CityConfig
	cellSize  float64
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewCoverageGridBuilder создает новый CoverageGridBuilder
func NewCoverageGridBuilder(
	geoStore *geo.Store,
	cacheRepo repository.CacheRepository,
	cities map[string]config.CityConfig,
	cellSizeMeters float64,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CoverageGridBuilder {
	return &CoverageGridBuilder{
		geoStore:  geoStore,
		cacheRepo: cacheRepo,
		cities:    cities,
		cellSize:  cellSizeMeters,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Build строит разреженную сетку покрытия по отобранным вендорам
func (b *CoverageGridBuilder) Build(
	ctx context.Context,
	f *domain.Filter,
	vendors []domain.Vendor,
) ([]domain.GridCell, error) {
	if len(vendors) == 0 {
		return []domain.GridCell{}, nil
	}

	city, ok := b.cities[f.City]
	if !ok {
		return nil, errors.ErrDataNotFound.WithMessage("no bounds configured for city %s", f.City)
	}

	hash := coverageHash(f, vendors)
	if cached, err := b.cacheRepo.GetCoverageGrid(ctx, hash); err == nil && cached != nil {
		b.logger.Debug("Coverage grid cache hit", zap.String("hash", hash))
		return cached, nil
	}

	cells := b.compute(ctx, f, city, vendors)

	if err := b.cacheRepo.SetCoverageGrid(ctx, hash, cells, b.cacheTTL); err != nil {
		b.logger.Warn("Failed to cache coverage grid", zap.Error(err))
	}
	return cells, nil
}

// compute обходит центры ячеек, ограничивая кандидатов R-деревом:
// вендор не может покрыть ячейку дальше максимального display-радиуса
func (b *CoverageGridBuilder) compute(
	ctx context.Context,
	f *domain.Filter,
	city config.CityConfig,
	vendors []domain.Vendor,
) []domain.GridCell {
	centers := geo.GenerateGrid(city.Bounds, b.cellSize, city.RefLat)
	index := geo.NewVendorIndex(vendors)
	maxRadius := geo.MaxDisplayRadiusKm(vendors)

	byCode := make(map[string]*domain.Vendor, len(vendors))
	for i := range vendors {
		byCode[vendors[i].Code] = &vendors[i]
	}

	areaIdx := b.marketingAreaIndex(ctx, f.City)

	cells := make([]domain.GridCell, 0, len(centers)/4)
	for _, center := range centers {
		coverage := coverCell(center, index, byCode, maxRadius)
		if coverage.Total == 0 {
			continue
		}
		cell := domain.GridCell{Position: center, Coverage: coverage}
		if areaIdx != nil {
			if area := areaIdx.Locate(center); area != nil {
				cell.MarketingArea = &area.Name
			}
		}
		cells = append(cells, cell)
	}

	b.logger.Debug("Coverage grid computed",
		zap.String("city", f.City),
		zap.Int("centers", len(centers)),
		zap.Int("covered", len(cells)))

	return cells
}

// coverCell считает покрытие одной ячейки точной хаверсинус-проверкой
// по кандидатам из индекса
func coverCell(
	center domain.Point,
	index *geo.VendorIndex,
	byCode map[string]*domain.Vendor,
	maxRadius float64,
) domain.CellCoverage {
	coverage := domain.CellCoverage{}
	for _, code := range index.SearchBox(geo.RadiusBox(center, maxRadius)) {
		v := byCode[code]
		if v == nil {
			continue
		}
		dist := utils.HaversineDistance(center.Lat, center.Lng, v.Lat, v.Lng)
		if dist > v.DisplayRadiusKm {
			continue
		}
		coverage.Total++
		if coverage.ByBusinessLine == nil {
			coverage.ByBusinessLine = make(map[string]int)
			coverage.ByGrade = make(map[string]int)
		}
		coverage.ByBusinessLine[v.EffectiveBusinessLine()]++
		coverage.ByGrade[v.EffectiveGrade()]++
	}
	return coverage
}

// marketingAreaIndex строит индекс маркетинговых зон для аннотации ячеек.
// Отсутствие слоя не фатально: сетка отдается без аннотаций.
func (b *CoverageGridBuilder) marketingAreaIndex(ctx context.Context, city string) *geo.LayerIndex {
	areas, err := b.geoStore.Layer(ctx, city, domain.LayerMarketingAreas)
	if err != nil {
		b.logger.Warn("Marketing areas unavailable, grid cells will not be annotated",
			zap.String("city", city), zap.Error(err))
		return nil
	}
	return geo.NewLayerIndex(areas)
}

// coverageHash - ключ кеша сетки: город, отсортированные коды вендоров
// и радиусные параметры. Порядок вендоров на входе на ключ не влияет.
func coverageHash(f *domain.Filter, vendors []domain.Vendor) string {
	codes := make([]string, 0, len(vendors))
	for i := range vendors {
		codes = append(codes, vendors[i].Code)
	}
	sort.Strings(codes)

	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%.4f|%.4f|", f.City, f.RadiusMode, f.RadiusModifier, f.RadiusFixedKm)
	h.Write([]byte(strings.Join(codes, ",")))
	return hex.EncodeToString(h.Sum(nil))
}
