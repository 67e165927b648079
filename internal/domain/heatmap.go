package domain

// HeatmapType - тип метрики тепловой карты. Пять вариантов делят общую
// структуру (источник сэмплов -> нормализация -> точки), различаясь
// только источником; диспетчеризация по enum, не пять параллельных путей.
type HeatmapType string

const (
	HeatmapNone             HeatmapType = "none"
	HeatmapOrderDensity     HeatmapType = "order_density"
	HeatmapOrganicOrders    HeatmapType = "order_density_organic"
	HeatmapNonOrganicOrders HeatmapType = "order_density_non_organic"
	HeatmapUserDensity      HeatmapType = "user_density"
	HeatmapPopulation       HeatmapType = "population"
)

// Valid проверяет, что значение является известным типом тепловой карты
func (t HeatmapType) Valid() bool {
	switch t {
	case HeatmapNone, HeatmapOrderDensity, HeatmapOrganicOrders,
		HeatmapNonOrganicOrders, HeatmapUserDensity, HeatmapPopulation:
		return true
	}
	return false
}

// HeatmapPoint - анонимный сэмпл тепловой карты.
// Value нормализовано в [0,1]: сырое значение, деленное на максимум
// в текущей выборке (пер-запросная нормализация, не глобальная константа).
type HeatmapPoint struct {
	Position Point   `json:"position"`
	Value    float64 `json:"normalized_value"`
}
