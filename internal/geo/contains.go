package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/vendormap-service/internal/domain"
)

// Contains проверяет принадлежность точки полигону слоя.
// Граница считается внутренностью (orb/planar: точки на границе - внутри):
// вендор, стоящий ровно на границе, засчитывается в полигон, как и ожидает
// пользователь, кликающий по граничному маркеру.
func Contains(area *domain.AreaPolygon, p domain.Point) bool {
	return planar.MultiPolygonContains(area.Geometry, orb.Point{p.Lng, p.Lat})
}

// FirstContaining возвращает индекс первого по порядку следования полигона,
// содержащего точку, или -1. Для точек на общей границе двух полигонов
// атрибуция детерминирована порядком итерации слоя: первая подошедшая
// область выигрывает. Это прагматичная задокументированная политика,
// ее изменение меняет наблюдаемые агрегаты.
func FirstContaining(areas []domain.AreaPolygon, p domain.Point) int {
	pt := orb.Point{p.Lng, p.Lat}
	for i := range areas {
		if !areas[i].Bound().Contains(pt) {
			continue
		}
		if planar.MultiPolygonContains(areas[i].Geometry, pt) {
			return i
		}
	}
	return -1
}
