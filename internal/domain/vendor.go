package domain

// Vendor представляет вендора из каталога.
// Записи неизменяемы в рамках запроса: движок только фильтрует их
// и аннотирует вычисленным display-радиусом.
type Vendor struct {
	Code         string   `json:"code" db:"vendor_code"`
	Name         string   `json:"name" db:"vendor_name"`
	CityName     string   `json:"city" db:"city_name"`
	Lat          float64  `json:"lat" db:"latitude"`
	Lng          float64  `json:"lng" db:"longitude"`
	StatusID     *int     `json:"status_id" db:"status_id"`
	Grade        string   `json:"grade" db:"grade"`
	Visible      *bool    `json:"visible" db:"visible"`
	Open         *bool    `json:"open" db:"open"`
	BusinessLine string   `json:"business_line" db:"business_line"`
	RadiusKm     float64  `json:"radius_km" db:"radius"`

	// DisplayRadiusKm - радиус после применения модификатора
	// (процентного или фиксированного). Не хранится в БД.
	DisplayRadiusKm float64 `json:"display_radius_km" db:"-"`
}

// GradeUnknown используется для вендоров без присвоенного грейда
const GradeUnknown = "Ungraded"

// EffectiveGrade возвращает грейд вендора или GradeUnknown
func (v *Vendor) EffectiveGrade() string {
	if v.Grade == "" {
		return GradeUnknown
	}
	return v.Grade
}

// BusinessLineUnknown используется для вендоров без бизнес-линии
const BusinessLineUnknown = "Unknown"

// EffectiveBusinessLine возвращает бизнес-линию вендора или BusinessLineUnknown
func (v *Vendor) EffectiveBusinessLine() string {
	if v.BusinessLine == "" {
		return BusinessLineUnknown
	}
	return v.BusinessLine
}

// Position возвращает координаты вендора
func (v *Vendor) Position() Point {
	return Point{Lat: v.Lat, Lng: v.Lng}
}
