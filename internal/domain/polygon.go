package domain

import "github.com/paulmach/orb"

// Идентификаторы слоев полигонов. Слои - неизменяемые справочные данные,
// загружаются один раз на город и переиспользуются всеми запросами.
const (
	LayerMarketingAreas = "tapsifood_marketing_areas"
	LayerTehranRegion   = "tehran_region_districts"
	LayerTehranMain     = "tehran_main_districts"
	LayerAllTehran      = "all_tehran_districts"

	// DisplayNone и DisplayCoverageGrid - специальные значения area_type_display,
	// не являющиеся слоями геометрии
	DisplayNone         = "none"
	DisplayCoverageGrid = "coverage_grid"

	// VendorAreaAll - пространственный фильтр вендоров отключен
	VendorAreaAll = "all"
)

// AreaPolygon представляет полигон справочного слоя (маркетинговая зона,
// административный район). Геометрия хранится как MultiPolygon, чтобы
// единообразно работать и с составными районами.
type AreaPolygon struct {
	Layer      string           `json:"layer"`
	Name       string           `json:"name"`
	Geometry   orb.MultiPolygon `json:"-"`
	Population *float64         `json:"population,omitempty"`
	PopDensity *float64         `json:"pop_density,omitempty"`
}

// Bound возвращает ограничивающий прямоугольник геометрии
func (p *AreaPolygon) Bound() orb.Bound {
	return p.Geometry.Bound()
}

// AreaStats - агрегаты по одному полигону display-слоя.
// Мапы возвращаются неотсортированными: сортировка по убыванию счетчиков -
// ответственность рендера, не движка.
type AreaStats struct {
	VendorCount          int            `json:"vendor_count"`
	GradeCounts          map[string]int `json:"grade_counts,omitempty"`
	BusinessLineCounts   map[string]int `json:"business_line_counts,omitempty"`
	VendorPer10kPop      *float64       `json:"vendor_per_10k_pop,omitempty"`
	UniqueUserCount      int            `json:"unique_user_count"`
	TotalUniqueUserCount int            `json:"total_unique_user_count"`
}

// EnrichedArea - полигон display-слоя вместе с агрегатами
type EnrichedArea struct {
	AreaPolygon
	Stats AreaStats `json:"stats"`
}

// AreaAggregation - результат работы Area Aggregator: обогащенные полигоны
// плюс счетчик вендоров, не попавших ни в один полигон слоя
type AreaAggregation struct {
	Areas      []EnrichedArea `json:"areas"`
	Unassigned int            `json:"unassigned_vendors"`
}
