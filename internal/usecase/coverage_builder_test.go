package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/geo"
	"github.com/vendormap-service/internal/pkg/utils"
	"github.com/vendormap-service/internal/usecase"
)

func newCoverageBuilder(repo *fakeGeometryRepo, cache *MockCacheRepository) *usecase.CoverageGridBuilder {
	return usecase.NewCoverageGridBuilder(
		geo.NewStore(repo, zap.NewNop()),
		cache,
		testCities(),
		200,
		15*time.Minute,
		zap.NewNop(),
	)
}

func coverageVendor(code string, lat, lng, radiusKm float64) domain.Vendor {
	return domain.Vendor{Code: code, Lat: lat, Lng: lng, RadiusKm: radiusKm, DisplayRadiusKm: radiusKm}
}

func TestCoverageGridBuilder_EmptyVendors(t *testing.T) {
	cache := &MockCacheRepository{}
	b := newCoverageBuilder(newFakeGeometryRepo(), cache)

	cells, err := b.Build(context.Background(), baseFilter(), nil)
	require.NoError(t, err)
	assert.Empty(t, cells)

	// Пустой набор вендоров не ходит в кеш
	cache.AssertNotCalled(t, "GetCoverageGrid", mock.Anything, mock.Anything)
}

func TestCoverageGridBuilder_SparseOutput(t *testing.T) {
	cache := &MockCacheRepository{}
	cache.On("GetCoverageGrid", mock.Anything, mock.Anything).Return(nil, nil)
	cache.On("SetCoverageGrid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	b := newCoverageBuilder(newFakeGeometryRepo(), cache)

	// Один вендор с радиусом 1 км в центре Тегерана
	vendors := []domain.Vendor{coverageVendor("v1", 35.70, 51.40, 1.0)}
	cells, err := b.Build(context.Background(), baseFilter(), vendors)
	require.NoError(t, err)
	require.NotEmpty(t, cells)

	// Покрытая площадь ~ пи кв.км, ячейка 0.04 кв.км: около 78 ячеек
	assert.Greater(t, len(cells), 50)
	assert.Less(t, len(cells), 110)

	for _, cell := range cells {
		assert.Equal(t, 1, cell.Coverage.Total, "zero-coverage cells must be dropped")
		assert.Equal(t, map[string]int{domain.GradeUnknown: 1}, cell.Coverage.ByGrade)
		assert.Equal(t, map[string]int{domain.BusinessLineUnknown: 1}, cell.Coverage.ByBusinessLine)
		assert.Nil(t, cell.MarketingArea)
	}

	cache.AssertCalled(t, "SetCoverageGrid", mock.Anything, mock.Anything, mock.Anything, 15*time.Minute)
}

func TestCoverageGridBuilder_CoverageMonotonicity(t *testing.T) {
	cache := &MockCacheRepository{}
	cache.On("GetCoverageGrid", mock.Anything, mock.Anything).Return(nil, nil)
	cache.On("SetCoverageGrid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	b := newCoverageBuilder(newFakeGeometryRepo(), cache)
	ctx := context.Background()

	one := []domain.Vendor{coverageVendor("v1", 35.70, 51.40, 1.0)}
	two := []domain.Vendor{
		coverageVendor("v1", 35.70, 51.40, 1.0),
		coverageVendor("v2", 35.70, 51.40, 2.0),
	}

	cellsOne, err := b.Build(ctx, baseFilter(), one)
	require.NoError(t, err)
	cellsTwo, err := b.Build(ctx, baseFilter(), two)
	require.NoError(t, err)

	// Добавление вендора не уменьшает ни число ячеек, ни покрытие
	assert.GreaterOrEqual(t, len(cellsTwo), len(cellsOne))

	totals := make(map[domain.Point]int, len(cellsOne))
	for _, c := range cellsOne {
		totals[c.Position] = c.Coverage.Total
	}
	for _, c := range cellsTwo {
		if prev, ok := totals[c.Position]; ok {
			assert.GreaterOrEqual(t, c.Coverage.Total, prev)
		}
	}
}

func TestCoverageGridBuilder_ModifierMonotonicity(t *testing.T) {
	cache := &MockCacheRepository{}
	cache.On("GetCoverageGrid", mock.Anything, mock.Anything).Return(nil, nil)
	cache.On("SetCoverageGrid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	b := newCoverageBuilder(newFakeGeometryRepo(), cache)
	selector := usecase.NewVendorSelector(geo.NewStore(newFakeGeometryRepo(), zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	vendors := []domain.Vendor{
		{Code: "v1", CityName: "tehran", Lat: 35.70, Lng: 51.40, RadiusKm: 2.0},
		{Code: "v2", CityName: "tehran", Lat: 35.71, Lng: 51.43, RadiusKm: 1.0},
	}

	build := func(modifier float64) map[domain.Point]int {
		f := baseFilter()
		f.RadiusModifier = modifier
		selected, err := selector.Select(ctx, vendors, f)
		require.NoError(t, err)
		cells, err := b.Build(ctx, f, selected)
		require.NoError(t, err)
		totals := make(map[domain.Point]int, len(cells))
		for _, c := range cells {
			totals[c.Position] = c.Coverage.Total
		}
		return totals
	}

	full := build(1.0)
	half := build(0.5)

	// Уменьшение модификатора не добавляет покрытия ни одной ячейке
	assert.LessOrEqual(t, len(half), len(full))
	for pos, total := range half {
		assert.LessOrEqual(t, total, full[pos])
	}
}

func TestCoverageGridBuilder_DisplayRadiusThreshold(t *testing.T) {
	cache := &MockCacheRepository{}
	cache.On("GetCoverageGrid", mock.Anything, mock.Anything).Return(nil, nil)
	cache.On("SetCoverageGrid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	b := newCoverageBuilder(newFakeGeometryRepo(), cache)
	selector := usecase.NewVendorSelector(geo.NewStore(newFakeGeometryRepo(), zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	// База 5 км с модификатором 0.5: display-радиус ровно 2.5 км
	f := baseFilter()
	f.RadiusModifier = 0.5
	vendor := domain.Vendor{Code: "v1", CityName: "tehran", Lat: 35.70, Lng: 51.40, RadiusKm: 5.0}

	selected, err := selector.Select(ctx, []domain.Vendor{vendor}, f)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	require.InDelta(t, 2.5, selected[0].DisplayRadiusKm, 1e-9)

	cells, err := b.Build(ctx, f, selected)
	require.NoError(t, err)
	require.NotEmpty(t, cells)

	covered := make(map[domain.Point]bool, len(cells))
	for _, c := range cells {
		covered[c.Position] = true
	}

	// Находим центры ячеек примерно в 2.4 и 2.6 км от вендора
	city := testCities()["tehran"]
	var inside, outside *domain.Point
	for _, center := range geo.GenerateGrid(city.Bounds, 200, city.RefLat) {
		d := utils.HaversineDistance(center.Lat, center.Lng, vendor.Lat, vendor.Lng)
		switch {
		case inside == nil && d >= 2.35 && d <= 2.45:
			c := center
			inside = &c
		case outside == nil && d >= 2.55 && d <= 2.65:
			c := center
			outside = &c
		}
	}
	require.NotNil(t, inside, "no grid cell ~2.4 km from the vendor")
	require.NotNil(t, outside, "no grid cell ~2.6 km from the vendor")

	assert.True(t, covered[*inside], "cell within display radius must be covered")
	assert.False(t, covered[*outside], "cell beyond display radius must not be covered")

	for _, c := range cells {
		d := utils.HaversineDistance(c.Position.Lat, c.Position.Lng, vendor.Lat, vendor.Lng)
		assert.LessOrEqual(t, d, 2.5+1e-9)
	}
}

func TestCoverageGridBuilder_HashIgnoresVendorOrder(t *testing.T) {
	cache := &MockCacheRepository{}
	var hashes []string
	cache.On("GetCoverageGrid", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		hashes = append(hashes, args.String(1))
	}).Return(nil, nil)
	cache.On("SetCoverageGrid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	b := newCoverageBuilder(newFakeGeometryRepo(), cache)
	ctx := context.Background()

	v1 := coverageVendor("v1", 35.70, 51.40, 1.0)
	v2 := coverageVendor("v2", 35.71, 51.42, 1.0)

	_, err := b.Build(ctx, baseFilter(), []domain.Vendor{v1, v2})
	require.NoError(t, err)
	_, err = b.Build(ctx, baseFilter(), []domain.Vendor{v2, v1})
	require.NoError(t, err)

	require.Len(t, hashes, 2)
	assert.Equal(t, hashes[0], hashes[1])

	// Радиусные параметры меняют ключ
	f := baseFilter()
	f.RadiusModifier = 0.5
	_, err = b.Build(ctx, f, []domain.Vendor{v1, v2})
	require.NoError(t, err)
	require.Len(t, hashes, 3)
	assert.NotEqual(t, hashes[0], hashes[2])
}

func TestCoverageGridBuilder_CacheHit(t *testing.T) {
	cached := []domain.GridCell{{
		Position: domain.Point{Lat: 35.70, Lng: 51.40},
		Coverage: domain.CellCoverage{Total: 7},
	}}

	cache := &MockCacheRepository{}
	cache.On("GetCoverageGrid", mock.Anything, mock.Anything).Return(cached, nil)

	b := newCoverageBuilder(newFakeGeometryRepo(), cache)

	cells, err := b.Build(context.Background(), baseFilter(), []domain.Vendor{coverageVendor("v1", 35.70, 51.40, 1.0)})
	require.NoError(t, err)
	assert.Equal(t, cached, cells)

	cache.AssertNotCalled(t, "SetCoverageGrid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCoverageGridBuilder_MarketingAreaAnnotation(t *testing.T) {
	repo := newFakeGeometryRepo()
	repo.addLayer("tehran", domain.LayerMarketingAreas,
		domain.AreaPolygon{Layer: domain.LayerMarketingAreas, Name: "downtown", Geometry: square(51.39, 35.69, 0.02)},
	)

	cache := &MockCacheRepository{}
	cache.On("GetCoverageGrid", mock.Anything, mock.Anything).Return(nil, nil)
	cache.On("SetCoverageGrid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	b := newCoverageBuilder(repo, cache)

	cells, err := b.Build(context.Background(), baseFilter(), []domain.Vendor{coverageVendor("v1", 35.70, 51.40, 0.5)})
	require.NoError(t, err)
	require.NotEmpty(t, cells)

	annotated := 0
	for _, cell := range cells {
		if cell.MarketingArea != nil && *cell.MarketingArea == "downtown" {
			annotated++
		}
	}
	assert.Greater(t, annotated, 0)
}
