package geo

import (
	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/pkg/utils"
)

// GenerateGrid тесселирует ограничивающий прямоугольник города квадратными
// ячейками фиксированного шага и возвращает центры ячеек построчно.
// Шаг в метрах переводится в градусы на опорной широте города: градус
// долготы короче градуса широты в cos(широты) раз.
func GenerateGrid(bounds domain.BoundingBox, cellSizeMeters, refLat float64) []domain.Point {
	latStep := utils.MetersToDegreesLat(cellSizeMeters)
	lngStep := utils.MetersToDegreesLng(cellSizeMeters, refLat)

	if latStep <= 0 || lngStep <= 0 {
		return nil
	}

	var centers []domain.Point
	for lat := bounds.MinLat + latStep/2; lat <= bounds.MaxLat; lat += latStep {
		for lng := bounds.MinLng + lngStep/2; lng <= bounds.MaxLng; lng += lngStep {
			centers = append(centers, domain.Point{Lat: lat, Lng: lng})
		}
	}
	return centers
}

// RadiusBox возвращает ограничивающий прямоугольник окружности заданного
// радиуса вокруг точки; используется как окно запроса к VendorIndex
func RadiusBox(center domain.Point, radiusKm float64) domain.BoundingBox {
	dLat := utils.KmToDegreesLat(radiusKm)
	dLng := utils.KmToDegreesLng(radiusKm, center.Lat)
	return domain.BoundingBox{
		MinLat: center.Lat - dLat,
		MaxLat: center.Lat + dLat,
		MinLng: center.Lng - dLng,
		MaxLng: center.Lng + dLng,
	}
}
