package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/geo"
)

func TestGenerateGrid(t *testing.T) {
	bounds := domain.BoundingBox{MinLat: 35.70, MaxLat: 35.71, MinLng: 51.40, MaxLng: 51.41}

	centers := geo.GenerateGrid(bounds, 200, 35.7)
	require.NotEmpty(t, centers)

	// 0.01 градуса широты ~ 1113 м: шесть центров с шагом 200 м
	latSteps := map[float64]struct{}{}
	for _, c := range centers {
		assert.True(t, bounds.Contains(c), "cell center %v outside bounds", c)
		latSteps[c.Lat] = struct{}{}
	}
	assert.Len(t, latSteps, 6)

	// Центры смещены на полшага от границы
	first := centers[0]
	assert.InDelta(t, bounds.MinLat+100.0/111320.0, first.Lat, 1e-9)

	// Шаг по долготе длиннее в градусах, чем шаг по широте
	var second domain.Point
	for _, c := range centers[1:] {
		if c.Lat == first.Lat {
			second = c
			break
		}
	}
	lngStep := second.Lng - first.Lng
	latStep := 200.0 / 111320.0
	assert.Greater(t, lngStep, latStep)
	assert.InDelta(t, latStep/math.Cos(35.7*math.Pi/180), lngStep, 1e-9)
}

func TestGenerateGrid_DegenerateBounds(t *testing.T) {
	bounds := domain.BoundingBox{MinLat: 35.7, MaxLat: 35.7, MinLng: 51.4, MaxLng: 51.4}
	assert.Empty(t, geo.GenerateGrid(bounds, 200, 35.7))
}

func TestRadiusBox(t *testing.T) {
	center := domain.Point{Lat: 35.7, Lng: 51.4}
	box := geo.RadiusBox(center, 1.0)

	assert.True(t, box.Contains(center))
	assert.InDelta(t, center.Lat-box.MinLat, box.MaxLat-center.Lat, 1e-12)
	assert.InDelta(t, center.Lng-box.MinLng, box.MaxLng-center.Lng, 1e-12)

	// Точка на километр севернее должна остаться внутри окна
	north := domain.Point{Lat: center.Lat + 1000.0/111320.0, Lng: center.Lng}
	assert.True(t, box.Contains(north))
}
