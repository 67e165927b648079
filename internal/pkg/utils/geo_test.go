package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vendormap-service/internal/pkg/utils"
)

func TestHaversineDistance(t *testing.T) {
	// Расстояние точки до самой себя
	assert.InDelta(t, 0, utils.HaversineDistance(35.7, 51.4, 35.7, 51.4), 1e-9)

	// Один градус широты ~ 111.2 км
	d := utils.HaversineDistance(35.0, 51.4, 36.0, 51.4)
	assert.InDelta(t, 111.2, d, 0.5)

	// Симметрия
	assert.InDelta(t,
		utils.HaversineDistance(35.7, 51.4, 35.75, 51.45),
		utils.HaversineDistance(35.75, 51.45, 35.7, 51.4),
		1e-12)
}

func TestMetersToDegrees(t *testing.T) {
	assert.InDelta(t, 200.0/111320.0, utils.MetersToDegreesLat(200), 1e-12)

	// На опорной широте градус долготы короче градуса широты
	assert.Greater(t, utils.MetersToDegreesLng(200, 35.7), utils.MetersToDegreesLat(200))

	// На экваторе они совпадают
	assert.InDelta(t, utils.MetersToDegreesLat(200), utils.MetersToDegreesLng(200, 0), 1e-12)
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, utils.ValidateCoordinates(35.7, 51.4))
	assert.True(t, utils.ValidateCoordinates(-90, 180))
	assert.False(t, utils.ValidateCoordinates(91, 0))
	assert.False(t, utils.ValidateCoordinates(0, -181))
}
