package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/geo"
)

// AreaAggregator - use case обогащения полигонов display-слоя агрегатами
// по отфильтрованным вендорам и заказам. Каждый вендор относится не более
// чем к одному полигону: при перекрытии слоев побеждает первый полигон
// в порядке следования слоя.
type AreaAggregator struct {
	geoStore *geo.Store
	logger   *zap.Logger
}

// NewAreaAggregator создает новый AreaAggregator
func NewAreaAggregator(geoStore *geo.Store, logger *zap.Logger) *AreaAggregator {
	return &AreaAggregator{
		geoStore: geoStore,
		logger:   logger,
	}
}

// Aggregate считает статистику полигонов display-слоя.
// ordersFiltered - заказы в рамках дат/бизнес-линий фильтра,
// ordersAll - все заказы города за всю историю (для total_unique_user_count).
func (a *AreaAggregator) Aggregate(
	ctx context.Context,
	f *domain.Filter,
	vendors []domain.Vendor,
	ordersFiltered []domain.Order,
	ordersAll []domain.Order,
) (*domain.AreaAggregation, error) {
	areas, err := a.displayAreas(ctx, f)
	if err != nil {
		return nil, err
	}

	enriched := make([]domain.EnrichedArea, len(areas))
	for i := range areas {
		enriched[i] = domain.EnrichedArea{
			AreaPolygon: areas[i],
			Stats: domain.AreaStats{
				GradeCounts:        make(map[string]int),
				BusinessLineCounts: make(map[string]int),
			},
		}
	}

	idx := geo.NewLayerIndex(areas)
	unassigned := a.assignVendors(idx, enriched, vendors)
	a.countUsers(idx, enriched, ordersFiltered, ordersAll)

	for i := range enriched {
		e := &enriched[i]
		if e.Population != nil && *e.Population > 0 {
			per10k := float64(e.Stats.VendorCount) / *e.Population * 10000
			e.Stats.VendorPer10kPop = &per10k
		}
	}

	a.logger.Debug("Areas aggregated",
		zap.String("layer", f.DisplayLayer),
		zap.Int("areas", len(enriched)),
		zap.Int("unassigned", unassigned))

	return &domain.AreaAggregation{Areas: enriched, Unassigned: unassigned}, nil
}

// displayAreas загружает полигоны display-слоя с учетом фильтра подобластей.
// Сводный слой all_tehran_districts - конкатенация районных слоев Тегерана,
// порядок конкатенации фиксирован и определяет tie-break.
func (a *AreaAggregator) displayAreas(ctx context.Context, f *domain.Filter) ([]domain.AreaPolygon, error) {
	var areas []domain.AreaPolygon

	if f.DisplayLayer == domain.LayerAllTehran {
		region, err := a.geoStore.Layer(ctx, f.City, domain.LayerTehranRegion)
		if err != nil {
			return nil, err
		}
		main, err := a.geoStore.Layer(ctx, f.City, domain.LayerTehranMain)
		if err != nil {
			return nil, err
		}
		areas = make([]domain.AreaPolygon, 0, len(region)+len(main))
		areas = append(areas, region...)
		areas = append(areas, main...)
	} else {
		layer, err := a.geoStore.Layer(ctx, f.City, f.DisplayLayer)
		if err != nil {
			return nil, err
		}
		areas = layer
	}

	if f.DisplayNames.Empty() {
		return areas, nil
	}
	filtered := make([]domain.AreaPolygon, 0, len(areas))
	for _, area := range areas {
		if f.DisplayNames.Allows(area.Name) {
			filtered = append(filtered, area)
		}
	}
	return filtered, nil
}

// assignVendors раскладывает вендоров по полигонам и считает счетчики
// грейдов и бизнес-линий; возвращает число вендоров вне слоя
func (a *AreaAggregator) assignVendors(idx *geo.LayerIndex, enriched []domain.EnrichedArea, vendors []domain.Vendor) int {
	unassigned := 0
	for i := range vendors {
		v := &vendors[i]
		n := idx.LocateIndex(v.Position())
		if n < 0 {
			unassigned++
			continue
		}
		stats := &enriched[n].Stats
		stats.VendorCount++
		stats.GradeCounts[v.EffectiveGrade()]++
		stats.BusinessLineCounts[v.EffectiveBusinessLine()]++
	}
	return unassigned
}

// countUsers считает уникальных пользователей по точкам доставки заказов.
// Заказы без координат клиента или без пользователя пропускаются.
func (a *AreaAggregator) countUsers(idx *geo.LayerIndex, enriched []domain.EnrichedArea, ordersFiltered, ordersAll []domain.Order) {
	filtered := a.uniqueUsersByArea(idx, ordersFiltered)
	total := a.uniqueUsersByArea(idx, ordersAll)

	for i := range enriched {
		enriched[i].Stats.UniqueUserCount = len(filtered[i])
		enriched[i].Stats.TotalUniqueUserCount = len(total[i])
	}
}

func (a *AreaAggregator) uniqueUsersByArea(idx *geo.LayerIndex, orders []domain.Order) map[int]map[int64]struct{} {
	users := make(map[int]map[int64]struct{})
	for i := range orders {
		o := &orders[i]
		if o.UserID == nil || !o.HasCustomerLocation() {
			continue
		}
		n := idx.LocateIndex(domain.Point{Lat: *o.CustomerLat, Lng: *o.CustomerLng})
		if n < 0 {
			continue
		}
		if users[n] == nil {
			users[n] = make(map[int64]struct{})
		}
		users[n][*o.UserID] = struct{}{}
	}
	return users
}
