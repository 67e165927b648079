package dto

// MapDataRequest - сырые параметры запроса map-data до нормализации.
// Имена query-параметров повторяют контракт дашборда; set-значные поля
// передаются повтором параметра.
type MapDataRequest struct {
	City      string `query:"city" json:"city"`
	StartDate string `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`

	BusinessLines     []string `query:"business_lines" json:"business_lines"`
	VendorStatusIDs   []string `query:"vendor_status_ids" json:"vendor_status_ids"`
	VendorGrades      []string `query:"vendor_grades" json:"vendor_grades"`
	VendorCodesFilter string   `query:"vendor_codes_filter" json:"vendor_codes_filter"`

	VendorVisible string `query:"vendor_visible" json:"vendor_visible" validate:"omitempty,oneof=any 0 1"`
	VendorIsOpen  string `query:"vendor_is_open" json:"vendor_is_open" validate:"omitempty,oneof=any 0 1"`

	VendorAreaMainType string   `query:"vendor_area_main_type" json:"vendor_area_main_type"`
	VendorAreaSubTypes []string `query:"vendor_area_sub_type" json:"vendor_area_sub_type"`

	AreaTypeDisplay   string   `query:"area_type_display" json:"area_type_display"`
	AreaSubTypeFilter []string `query:"area_sub_type_filter" json:"area_sub_type_filter"`

	HeatmapType string `query:"heatmap_type_request" json:"heatmap_type_request"`

	// RadiusModifier/RadiusFixed: нулевое значение означает "не передано",
	// дефолты подставляет резолвер фильтра
	RadiusMode     string  `query:"radius_mode" json:"radius_mode" validate:"omitempty,oneof=percentage fixed"`
	RadiusModifier float64 `query:"radius_modifier" json:"radius_modifier" validate:"omitempty,min=0.1,max=1"`
	RadiusFixed    float64 `query:"radius_fixed" json:"radius_fixed" validate:"omitempty,min=0.5,max=10"`
}
