package utils

import "math"

const earthRadiusKm = 6371.0

// metersPerDegree - длина одного градуса широты в метрах (приближение WGS84)
const metersPerDegree = 111320.0

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// MetersToDegreesLat переводит метры в градусы широты
func MetersToDegreesLat(meters float64) float64 {
	return meters / metersPerDegree
}

// MetersToDegreesLng переводит метры в градусы долготы на опорной широте.
// Длина градуса долготы сжимается с cos(широты).
func MetersToDegreesLng(meters, refLat float64) float64 {
	return meters / (metersPerDegree * math.Cos(refLat*math.Pi/180.0))
}

// KmToDegreesLat переводит километры в градусы широты
func KmToDegreesLat(km float64) float64 {
	return MetersToDegreesLat(km * 1000)
}

// KmToDegreesLng переводит километры в градусы долготы на опорной широте
func KmToDegreesLng(km, refLat float64) float64 {
	return MetersToDegreesLng(km*1000, refLat)
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
