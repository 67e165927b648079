package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendormap-service/internal/config"
	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/pkg/errors"
	"github.com/vendormap-service/internal/usecase"
	"github.com/vendormap-service/internal/usecase/dto"
)

func testCities() map[string]config.CityConfig {
	return map[string]config.CityConfig{
		"tehran": {
			ID:     2,
			Bounds: domain.BoundingBox{MinLat: 35.5, MaxLat: 35.85, MinLng: 51.1, MaxLng: 51.7},
			RefLat: 35.7,
		},
		"mashhad": {
			ID:     1,
			Bounds: domain.BoundingBox{MinLat: 36.15, MaxLat: 36.45, MinLng: 59.35, MaxLng: 59.8},
			RefLat: 36.3,
		},
	}
}

func TestFilterResolver_Defaults(t *testing.T) {
	r := usecase.NewFilterResolver(testCities(), zap.NewNop())

	f, err := r.Resolve(&dto.MapDataRequest{})
	require.NoError(t, err)

	assert.Equal(t, "tehran", f.City)
	assert.Nil(t, f.DateFrom)
	assert.Nil(t, f.DateTo)
	assert.True(t, f.BusinessLines.Empty())
	assert.True(t, f.StatusIDs.Empty())
	assert.True(t, f.Grades.Empty())
	assert.True(t, f.VendorCodes.Empty())
	assert.Equal(t, domain.TriAny, f.Visible)
	assert.Equal(t, domain.TriAny, f.Open)
	assert.Equal(t, domain.VendorAreaAll, f.VendorAreaLayer)
	assert.Equal(t, domain.DisplayNone, f.DisplayLayer)
	assert.Equal(t, domain.HeatmapNone, f.Heatmap)
	assert.Equal(t, domain.RadiusPercentage, f.RadiusMode)
	assert.InDelta(t, 1.0, f.RadiusModifier, 1e-9)
	assert.InDelta(t, 3.0, f.RadiusFixedKm, 1e-9)
}

func TestFilterResolver_DateRange(t *testing.T) {
	r := usecase.NewFilterResolver(testCities(), zap.NewNop())

	t.Run("both bounds inclusive", func(t *testing.T) {
		f, err := r.Resolve(&dto.MapDataRequest{
			StartDate: "2024-03-01",
			EndDate:   "2024-03-31",
		})
		require.NoError(t, err)
		require.NotNil(t, f.DateFrom)
		require.NotNil(t, f.DateTo)

		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
		// Конец диапазона расширен до конца суток
		assert.True(t, f.InDateRange(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)))
		assert.False(t, f.InDateRange(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := r.Resolve(&dto.MapDataRequest{
			StartDate: "2024-03-31",
			EndDate:   "2024-03-01",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidFilter)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		_, err := r.Resolve(&dto.MapDataRequest{StartDate: "01.03.2024"})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidFilter)
	})
}

func TestFilterResolver_VendorCodes(t *testing.T) {
	r := usecase.NewFilterResolver(testCities(), zap.NewNop())

	f, err := r.Resolve(&dto.MapDataRequest{
		VendorCodesFilter: "v1, v2;v3\nv4  v5,,",
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"v1", "v2", "v3", "v4", "v5"}, f.VendorCodes.Values())
}

func TestFilterResolver_MultiSelect(t *testing.T) {
	r := usecase.NewFilterResolver(testCities(), zap.NewNop())

	// "all" и пустые значения эквивалентны отсутствию ограничения
	f, err := r.Resolve(&dto.MapDataRequest{
		BusinessLines: []string{"all", ""},
		VendorGrades:  []string{"A", "B"},
	})
	require.NoError(t, err)
	assert.True(t, f.BusinessLines.Empty())
	assert.ElementsMatch(t, []string{"A", "B"}, f.Grades.Values())
}

func TestFilterResolver_StatusIDs(t *testing.T) {
	r := usecase.NewFilterResolver(testCities(), zap.NewNop())

	f, err := r.Resolve(&dto.MapDataRequest{VendorStatusIDs: []string{"1", "5"}})
	require.NoError(t, err)
	assert.True(t, f.StatusIDs.Allows(5))
	assert.False(t, f.StatusIDs.Allows(2))

	_, err = r.Resolve(&dto.MapDataRequest{VendorStatusIDs: []string{"active"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidFilter)
}

func TestFilterResolver_TriStates(t *testing.T) {
	r := usecase.NewFilterResolver(testCities(), zap.NewNop())

	f, err := r.Resolve(&dto.MapDataRequest{VendorVisible: "1", VendorIsOpen: "0"})
	require.NoError(t, err)
	assert.Equal(t, domain.TriYes, f.Visible)
	assert.Equal(t, domain.TriNo, f.Open)
}

func TestFilterResolver_UnknownCity(t *testing.T) {
	r := usecase.NewFilterResolver(testCities(), zap.NewNop())

	_, err := r.Resolve(&dto.MapDataRequest{City: "isfahan"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidFilter)
}

func TestFilterResolver_RadiusBounds(t *testing.T) {
	r := usecase.NewFilterResolver(testCities(), zap.NewNop())

	t.Run("modifier below minimum", func(t *testing.T) {
		_, err := r.Resolve(&dto.MapDataRequest{RadiusModifier: 0.05})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidFilter)
	})

	t.Run("fixed above maximum", func(t *testing.T) {
		_, err := r.Resolve(&dto.MapDataRequest{RadiusMode: "fixed", RadiusFixed: 15})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidFilter)
	})

	t.Run("valid fixed mode", func(t *testing.T) {
		f, err := r.Resolve(&dto.MapDataRequest{RadiusMode: "fixed", RadiusFixed: 2.5})
		require.NoError(t, err)
		assert.Equal(t, domain.RadiusFixed, f.RadiusMode)
		assert.InDelta(t, 2.5, f.RadiusFixedKm, 1e-9)
	})
}

func TestFilterResolver_Layers(t *testing.T) {
	r := usecase.NewFilterResolver(testCities(), zap.NewNop())

	f, err := r.Resolve(&dto.MapDataRequest{
		VendorAreaMainType: domain.LayerMarketingAreas,
		VendorAreaSubTypes: []string{"zone1"},
		AreaTypeDisplay:    domain.DisplayCoverageGrid,
		HeatmapType:        string(domain.HeatmapOrderDensity),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LayerMarketingAreas, f.VendorAreaLayer)
	assert.Equal(t, domain.DisplayCoverageGrid, f.DisplayLayer)
	assert.Equal(t, domain.HeatmapOrderDensity, f.Heatmap)

	_, err = r.Resolve(&dto.MapDataRequest{AreaTypeDisplay: "nonsense_layer"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidFilter)

	_, err = r.Resolve(&dto.MapDataRequest{HeatmapType: "temperature"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidFilter)
}
