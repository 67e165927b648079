package dto

import (
	"github.com/paulmach/orb/geojson"

	"github.com/vendormap-service/internal/domain"
)

// VendorMarker - маркер вендора на карте с вычисленным радиусом отображения
type VendorMarker struct {
	Code            string       `json:"vendor_code"`
	Name            string       `json:"vendor_name"`
	Position        domain.Point `json:"position"`
	StatusID        *int         `json:"status_id"`
	Grade           string       `json:"grade"`
	Visible         *bool        `json:"visible"`
	Open            *bool        `json:"open"`
	BusinessLine    string       `json:"business_line"`
	DisplayRadiusKm float64      `json:"radius"`
}

// MapDataResponse - полный ответ map-data. Поля подвычислений, завершившихся
// с ошибкой, отдаются пустыми, а сам сбой описывается в PartialErrors.
type MapDataResponse struct {
	Vendors       []VendorMarker             `json:"vendors"`
	Polygons      *geojson.FeatureCollection `json:"polygons"`
	CoverageGrid  []domain.GridCell          `json:"coverage_grid"`
	HeatmapData   []domain.HeatmapPoint      `json:"heatmap_data"`
	Unassigned    *int                       `json:"unassigned_vendors,omitempty"`
	PartialErrors map[string]string          `json:"partial_errors,omitempty"`
}

// NewVendorMarkers переводит отобранных вендоров в маркеры, сохраняя порядок
func NewVendorMarkers(vendors []domain.Vendor) []VendorMarker {
	markers := make([]VendorMarker, 0, len(vendors))
	for _, v := range vendors {
		markers = append(markers, VendorMarker{
			Code:            v.Code,
			Name:            v.Name,
			Position:        domain.Point{Lat: v.Lat, Lng: v.Lng},
			StatusID:        v.StatusID,
			Grade:           v.EffectiveGrade(),
			Visible:         v.Visible,
			Open:            v.Open,
			BusinessLine:    v.BusinessLine,
			DisplayRadiusKm: v.DisplayRadiusKm,
		})
	}
	return markers
}

// NewPolygonCollection собирает GeoJSON FeatureCollection по агрегированным
// областям: геометрия области плюс её статистика в properties
func NewPolygonCollection(agg *domain.AreaAggregation) *geojson.FeatureCollection {
	if agg == nil {
		return nil
	}
	fc := geojson.NewFeatureCollection()
	for _, area := range agg.Areas {
		f := geojson.NewFeature(area.Geometry)
		f.Properties = geojson.Properties{
			"name":                 area.Name,
			"layer":                area.Layer,
			"vendor_count":         area.Stats.VendorCount,
			"grade_counts":         area.Stats.GradeCounts,
			"business_line_counts": area.Stats.BusinessLineCounts,
			"unique_user_count":    area.Stats.UniqueUserCount,
			"total_user_count":     area.Stats.TotalUniqueUserCount,
		}
		if area.Population != nil {
			f.Properties["population"] = *area.Population
		}
		if area.PopDensity != nil {
			f.Properties["population_density"] = *area.PopDensity
		}
		if area.Stats.VendorPer10kPop != nil {
			f.Properties["vendor_per_10k_pop"] = *area.Stats.VendorPer10kPop
		}
		fc.Append(f)
	}
	return fc
}
