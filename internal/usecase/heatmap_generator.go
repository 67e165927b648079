package usecase

import (
	"context"
	"math"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/geo"
)

// heatmapPrecision - координаты точек доставки округляются до 4 знаков
// (~11 м) перед агрегацией, чтобы склеить точки одного адреса
const heatmapPrecision = 1e4

// populationPerPoint - одна репрезентативная точка на каждую тысячу
// жителей полигона
const populationPerPoint = 1000.0

// maxSampleAttempts ограничивает rejection sampling для вырожденных
// полигонов (узких, с большой дырой)
const maxSampleAttempts = 100

// HeatmapGenerator - use case генерации тепловой карты.
// Все метрики проходят общий конвейер "сырые значения → нормализация":
// интенсивности делятся на максимум серии, максимум равен ровно 1.0.
type HeatmapGenerator struct {
	geoStore *geo.Store
	logger   *zap.Logger
}

// NewHeatmapGenerator создает новый HeatmapGenerator
func NewHeatmapGenerator(geoStore *geo.Store, logger *zap.Logger) *HeatmapGenerator {
	return &HeatmapGenerator{
		geoStore: geoStore,
		logger:   logger,
	}
}

// Generate строит тепловую карту выбранной метрики.
// orders - заказы города, уже ограниченные датами и бизнес-линиями фильтра.
func (g *HeatmapGenerator) Generate(
	ctx context.Context,
	f *domain.Filter,
	orders []domain.Order,
) ([]domain.HeatmapPoint, error) {
	switch f.Heatmap {
	case domain.HeatmapNone:
		return nil, nil
	case domain.HeatmapOrderDensity:
		return normalize(g.orderDensity(orders, nil)), nil
	case domain.HeatmapOrganicOrders:
		organic := true
		return normalize(g.orderDensity(orders, &organic)), nil
	case domain.HeatmapNonOrganicOrders:
		organic := false
		return normalize(g.orderDensity(orders, &organic)), nil
	case domain.HeatmapUserDensity:
		return normalize(g.userDensity(orders)), nil
	case domain.HeatmapPopulation:
		return g.population(ctx, f)
	}
	return nil, nil
}

// cellKey - округленная координата как ключ агрегации
type cellKey struct {
	lat int64
	lng int64
}

func keyOf(lat, lng float64) cellKey {
	return cellKey{
		lat: int64(math.Round(lat * heatmapPrecision)),
		lng: int64(math.Round(lng * heatmapPrecision)),
	}
}

func (k cellKey) point() domain.Point {
	return domain.Point{
		Lat: float64(k.lat) / heatmapPrecision,
		Lng: float64(k.lng) / heatmapPrecision,
	}
}

// orderDensity считает заказы на округленную координату доставки.
// organic=nil не ограничивает источник заказа.
func (g *HeatmapGenerator) orderDensity(orders []domain.Order, organic *bool) map[cellKey]float64 {
	raw := make(map[cellKey]float64)
	for i := range orders {
		o := &orders[i]
		if !o.HasCustomerLocation() {
			continue
		}
		if organic != nil && o.Organic != *organic {
			continue
		}
		raw[keyOf(*o.CustomerLat, *o.CustomerLng)]++
	}
	return raw
}

// userDensity считает уникальных пользователей на округленную координату
func (g *HeatmapGenerator) userDensity(orders []domain.Order) map[cellKey]float64 {
	users := make(map[cellKey]map[int64]struct{})
	for i := range orders {
		o := &orders[i]
		if !o.HasCustomerLocation() || o.UserID == nil {
			continue
		}
		k := keyOf(*o.CustomerLat, *o.CustomerLng)
		if users[k] == nil {
			users[k] = make(map[int64]struct{})
		}
		users[k][*o.UserID] = struct{}{}
	}

	raw := make(map[cellKey]float64, len(users))
	for k, set := range users {
		raw[k] = float64(len(set))
	}
	return raw
}

// population генерирует репрезентативные точки населения по полигонам
// display-слоя. Данные о населении есть только у районных слоев Тегерана.
func (g *HeatmapGenerator) population(ctx context.Context, f *domain.Filter) ([]domain.HeatmapPoint, error) {
	if f.City != "tehran" {
		g.logger.Debug("Population heatmap requested for city without census data",
			zap.String("city", f.City))
		return []domain.HeatmapPoint{}, nil
	}

	// Данные о населении несут только районные слои; all_tehran сводится
	// к main-районам, чтобы не дублировать одну географию двумя слоями
	var layer string
	switch f.DisplayLayer {
	case domain.LayerTehranRegion, domain.LayerTehranMain:
		layer = f.DisplayLayer
	case domain.LayerAllTehran:
		layer = domain.LayerTehranMain
	default:
		g.logger.Debug("Population heatmap skipped: display layer has no census data",
			zap.String("layer", f.DisplayLayer))
		return []domain.HeatmapPoint{}, nil
	}

	areas, err := g.geoStore.Layer(ctx, f.City, layer)
	if err != nil {
		return nil, err
	}

	points := make([]domain.HeatmapPoint, 0)
	for i := range areas {
		area := &areas[i]
		if area.Population == nil || *area.Population <= 0 {
			continue
		}
		if !f.DisplayNames.Empty() && !f.DisplayNames.Allows(area.Name) {
			continue
		}
		n := int(*area.Population / populationPerPoint)
		for j := 0; j < n; j++ {
			p, ok := randomPointIn(area.Geometry)
			if !ok {
				break
			}
			points = append(points, domain.HeatmapPoint{Position: p, Value: 1.0})
		}
	}
	return points, nil
}

// randomPointIn подбирает случайную точку внутри мультиполигона
// rejection sampling по его ограничивающему прямоугольнику
func randomPointIn(mp orb.MultiPolygon) (domain.Point, bool) {
	b := mp.Bound()
	if b.IsEmpty() {
		return domain.Point{}, false
	}
	for i := 0; i < maxSampleAttempts; i++ {
		p := orb.Point{
			b.Min[0] + rand.Float64()*(b.Max[0]-b.Min[0]),
			b.Min[1] + rand.Float64()*(b.Max[1]-b.Min[1]),
		}
		if planar.MultiPolygonContains(mp, p) {
			return domain.Point{Lat: p[1], Lng: p[0]}, true
		}
	}
	return domain.Point{}, false
}

// normalize переводит сырые интенсивности в (0, 1]: деление на максимум
// серии. Пустой вход дает пустую серию, а не nil: тепловая карта
// запрашивалась, но данных нет.
func normalize(raw map[cellKey]float64) []domain.HeatmapPoint {
	points := make([]domain.HeatmapPoint, 0, len(raw))
	if len(raw) == 0 {
		return points
	}

	max := 0.0
	for _, v := range raw {
		max = math.Max(max, v)
	}
	for k, v := range raw {
		points = append(points, domain.HeatmapPoint{
			Position: k.point(),
			Value:    v / max,
		})
	}
	return points
}
