package domain

import "time"

// TriState - трехзначный фильтр да/нет/любой
type TriState int

const (
	TriAny TriState = iota
	TriYes
	TriNo
)

// Allows проверяет булево значение против трехзначного фильтра.
// nil (значение неизвестно) проходит только при TriAny.
func (t TriState) Allows(v *bool) bool {
	switch t {
	case TriAny:
		return true
	case TriYes:
		return v != nil && *v
	case TriNo:
		return v != nil && !*v
	}
	return false
}

// RadiusMode - режим модификации сервисного радиуса вендоров
type RadiusMode string

const (
	// RadiusPercentage умножает базовый радиус каждого вендора на модификатор
	RadiusPercentage RadiusMode = "percentage"
	// RadiusFixed заменяет радиус каждого вендора одной константой,
	// полностью игнорируя базовый радиус
	RadiusFixed RadiusMode = "fixed"
)

// Допустимые границы модификаторов радиуса
const (
	MinRadiusModifier = 0.10
	MaxRadiusModifier = 1.00
	MinRadiusFixedKm  = 0.5
	MaxRadiusFixedKm  = 10.0
)

// Filter - нормализованный набор критериев фильтрации после валидации.
// Все multi-select поля представлены множествами; пустое множество
// означает отсутствие ограничения независимо от того, отсутствовало поле
// в запросе или было передано пустым.
type Filter struct {
	City     string
	DateFrom *time.Time
	DateTo   *time.Time

	BusinessLines StringSet
	StatusIDs     IntSet
	Grades        StringSet
	VendorCodes   StringSet
	Visible       TriState
	Open          TriState

	// Пространственный фильтр вендоров: слой + выбранные подобласти.
	// VendorAreaAll отключает пространственный предикат.
	VendorAreaLayer string
	VendorAreaNames StringSet

	// Display-слой полигонов (независим от пространственного фильтра вендоров)
	DisplayLayer string
	DisplayNames StringSet

	Heatmap HeatmapType

	RadiusMode     RadiusMode
	RadiusModifier float64
	RadiusFixedKm  float64
}

// DisplayRadius вычисляет display-радиус вендора для активного режима
func (f *Filter) DisplayRadius(baseKm float64) float64 {
	if f.RadiusMode == RadiusFixed {
		return f.RadiusFixedKm
	}
	return baseKm * f.RadiusModifier
}

// InDateRange проверяет попадание момента времени в диапазон фильтра.
// Отсутствующая граница не ограничивает.
func (f *Filter) InDateRange(t time.Time) bool {
	if f.DateFrom != nil && t.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.After(*f.DateTo) {
		return false
	}
	return true
}
