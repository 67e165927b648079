package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/domain/repository"
	"github.com/vendormap-service/internal/pkg/errors"
	"github.com/vendormap-service/internal/usecase/dto"
)

// errComputationPanic отдается в partial_errors при панике подвычисления
var errComputationPanic = errors.ErrComputation.WithMessage("panic recovered during subcomputation")

// MapDataUseCase - оркестратор запроса map-data: нормализация фильтра,
// отбор вендоров, затем параллельный запуск независимых подвычислений.
// Ошибки фильтра и отбора фатальны, сбой отдельного подвычисления -
// нет: его поле ответа остается пустым, остальные отдаются как есть.
type MapDataUseCase struct {
	vendorRepo repository.VendorRepository
	orderRepo  repository.OrderRepository
	resolver   *FilterResolver
	selector   *VendorSelector
	aggregator *AreaAggregator
	gridBuild  *CoverageGridBuilder
	heatmapGen *HeatmapGenerator
	logger     *zap.Logger
}

// NewMapDataUseCase создает новый MapDataUseCase
func NewMapDataUseCase(
	vendorRepo repository.VendorRepository,
	orderRepo repository.OrderRepository,
	resolver *FilterResolver,
	selector *VendorSelector,
	aggregator *AreaAggregator,
	gridBuild *CoverageGridBuilder,
	heatmapGen *HeatmapGenerator,
	logger *zap.Logger,
) *MapDataUseCase {
	return &MapDataUseCase{
		vendorRepo: vendorRepo,
		orderRepo:  orderRepo,
		resolver:   resolver,
		selector:   selector,
		aggregator: aggregator,
		gridBuild:  gridBuild,
		heatmapGen: heatmapGen,
		logger:     logger,
	}
}

// GetMapData выполняет полный цикл map-data для одного запроса
func (uc *MapDataUseCase) GetMapData(ctx context.Context, req *dto.MapDataRequest) (*dto.MapDataResponse, error) {
	// 1. Нормализуем фильтр (fail fast: частично примененный фильтр не отдаем)
	f, err := uc.resolver.Resolve(req)
	if err != nil {
		return nil, err
	}

	// 2. Загружаем и отбираем вендоров города
	vendors, err := uc.vendorRepo.ListByCity(ctx, f.City)
	if err != nil {
		return nil, err
	}
	selected, err := uc.selector.Select(ctx, vendors, f)
	if err != nil {
		return nil, err
	}

	// 3. Готовим оба фрейма заказов: фильтрованный и полный за всю историю
	ordersFiltered, ordersAll, err := uc.loadOrders(ctx, f)
	if err != nil {
		return nil, err
	}

	resp := &dto.MapDataResponse{
		Vendors:      dto.NewVendorMarkers(selected),
		CoverageGrid: []domain.GridCell{},
		HeatmapData:  nil,
	}

	// 4. Независимые подвычисления параллельно, с деградацией по частям
	uc.runSubcomputations(ctx, f, selected, ordersFiltered, ordersAll, resp)

	return resp, nil
}

// runSubcomputations запускает агрегацию полигонов, сетку покрытия и
// тепловую карту в отдельных горутинах. Паника или ошибка внутри одного
// подвычисления логируется и фиксируется в PartialErrors, не трогая другие.
func (uc *MapDataUseCase) runSubcomputations(
	ctx context.Context,
	f *domain.Filter,
	vendors []domain.Vendor,
	ordersFiltered, ordersAll []domain.Order,
	resp *dto.MapDataResponse,
) {
	var wg sync.WaitGroup
	var mu sync.Mutex

	fail := func(part string, err error) {
		uc.logger.Error("Map-data subcomputation failed",
			zap.String("part", part),
			zap.String("city", f.City),
			zap.Error(err))
		mu.Lock()
		if resp.PartialErrors == nil {
			resp.PartialErrors = make(map[string]string)
		}
		resp.PartialErrors[part] = err.Error()
		mu.Unlock()
	}

	if wantPolygons(f) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer uc.recoverPart("polygons", fail)

			agg, err := uc.aggregator.Aggregate(ctx, f, vendors, ordersFiltered, ordersAll)
			if err != nil {
				fail("polygons", err)
				return
			}
			mu.Lock()
			resp.Polygons = dto.NewPolygonCollection(agg)
			resp.Unassigned = &agg.Unassigned
			mu.Unlock()
		}()
	}

	if f.DisplayLayer == domain.DisplayCoverageGrid {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer uc.recoverPart("coverage_grid", fail)

			cells, err := uc.gridBuild.Build(ctx, f, vendors)
			if err != nil {
				fail("coverage_grid", err)
				return
			}
			mu.Lock()
			resp.CoverageGrid = cells
			mu.Unlock()
		}()
	}

	if f.Heatmap != domain.HeatmapNone {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer uc.recoverPart("heatmap", fail)

			points, err := uc.heatmapGen.Generate(ctx, f, ordersFiltered)
			if err != nil {
				fail("heatmap", err)
				return
			}
			mu.Lock()
			resp.HeatmapData = points
			mu.Unlock()
		}()
	}

	wg.Wait()
}

// recoverPart переводит панику подвычисления в частичную ошибку ответа
func (uc *MapDataUseCase) recoverPart(part string, fail func(string, error)) {
	if r := recover(); r != nil {
		uc.logger.Error("Map-data subcomputation panicked",
			zap.String("part", part),
			zap.Any("panic", r))
		fail(part, errComputationPanic)
	}
}

// loadOrders загружает оба фрейма заказов, пропуская загрузку там,
// где активные подвычисления в заказах не нуждаются
func (uc *MapDataUseCase) loadOrders(ctx context.Context, f *domain.Filter) ([]domain.Order, []domain.Order, error) {
	needFiltered := wantPolygons(f) || wantOrderHeatmap(f)
	needAll := wantPolygons(f)

	var filtered, all []domain.Order
	var err error

	if needFiltered {
		filtered, err = uc.orderRepo.ListFiltered(ctx, f.City, f.BusinessLines.Values(), f.DateFrom, f.DateTo)
		if err != nil {
			return nil, nil, err
		}
	}
	if needAll {
		all, err = uc.orderRepo.ListByCity(ctx, f.City)
		if err != nil {
			return nil, nil, err
		}
	}
	return filtered, all, nil
}

// wantPolygons - display-слой требует агрегации полигонов
func wantPolygons(f *domain.Filter) bool {
	return f.DisplayLayer != domain.DisplayNone && f.DisplayLayer != domain.DisplayCoverageGrid
}

// wantOrderHeatmap - выбранная тепловая карта строится по заказам
func wantOrderHeatmap(f *domain.Filter) bool {
	switch f.Heatmap {
	case domain.HeatmapOrderDensity, domain.HeatmapOrganicOrders,
		domain.HeatmapNonOrganicOrders, domain.HeatmapUserDensity:
		return true
	}
	return false
}
