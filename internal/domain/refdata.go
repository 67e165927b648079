package domain

// InitialData - неизменяемые справочные данные для инициализации дашборда
type InitialData struct {
	Cities                []City              `json:"cities"`
	BusinessLines         []string            `json:"business_lines"`
	MarketingAreasByCity  map[string][]string `json:"marketing_areas_by_city"`
	TehranRegionDistricts []string            `json:"tehran_region_districts"`
	TehranMainDistricts   []string            `json:"tehran_main_districts"`
	VendorStatuses        []int               `json:"vendor_statuses"`
	VendorGrades          []string            `json:"vendor_grades"`
}
