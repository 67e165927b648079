package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/geo"
)

// VendorSelector - use case отбора вендоров по Filter.
// Дешёвые атрибутные предикаты применяются до пространственного,
// порядок вендоров на выходе совпадает с порядком на входе.
type VendorSelector struct {
	geoStore *geo.Store
	logger   *zap.Logger
}

// NewVendorSelector создает новый VendorSelector
func NewVendorSelector(geoStore *geo.Store, logger *zap.Logger) *VendorSelector {
	return &VendorSelector{
		geoStore: geoStore,
		logger:   logger,
	}
}

// Select применяет фильтр к вендорам города и аннотирует прошедших
// display-радиусом. Исходный срез не модифицируется.
func (s *VendorSelector) Select(
	ctx context.Context,
	vendors []domain.Vendor,
	f *domain.Filter,
) ([]domain.Vendor, error) {
	areas, err := s.vendorAreas(ctx, f)
	if err != nil {
		return nil, err
	}

	selected := make([]domain.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if !matchesAttributes(&v, f) {
			continue
		}
		if areas != nil && !containedInAny(areas, v.Position()) {
			continue
		}
		v.DisplayRadiusKm = f.DisplayRadius(v.RadiusKm)
		selected = append(selected, v)
	}

	s.logger.Debug("Vendors selected",
		zap.String("city", f.City),
		zap.Int("input", len(vendors)),
		zap.Int("selected", len(selected)))

	return selected, nil
}

// vendorAreas загружает полигоны пространственного фильтра.
// nil означает, что пространственный предикат выключен.
func (s *VendorSelector) vendorAreas(ctx context.Context, f *domain.Filter) ([]domain.AreaPolygon, error) {
	if f.VendorAreaLayer == domain.VendorAreaAll {
		return nil, nil
	}

	layer, err := s.geoStore.Layer(ctx, f.City, f.VendorAreaLayer)
	if err != nil {
		return nil, err
	}

	if f.VendorAreaNames.Empty() {
		return layer, nil
	}
	areas := make([]domain.AreaPolygon, 0, len(layer))
	for _, a := range layer {
		if f.VendorAreaNames.Allows(a.Name) {
			areas = append(areas, a)
		}
	}
	return areas, nil
}

// matchesAttributes проверяет все атрибутные предикаты фильтра.
// Вендор с неизвестным значением поля не проходит ограничение по нему.
func matchesAttributes(v *domain.Vendor, f *domain.Filter) bool {
	if !f.VendorCodes.Allows(v.Code) {
		return false
	}
	if !f.BusinessLines.Allows(v.BusinessLine) {
		return false
	}
	if !f.Grades.Allows(v.EffectiveGrade()) {
		return false
	}
	if !f.StatusIDs.Empty() {
		if v.StatusID == nil || !f.StatusIDs.Allows(*v.StatusID) {
			return false
		}
	}
	if !f.Visible.Allows(v.Visible) {
		return false
	}
	if !f.Open.Allows(v.Open) {
		return false
	}
	return true
}

// containedInAny возвращает true, если точка лежит хотя бы в одной области
func containedInAny(areas []domain.AreaPolygon, p domain.Point) bool {
	for i := range areas {
		if geo.Contains(&areas[i], p) {
			return true
		}
	}
	return false
}
