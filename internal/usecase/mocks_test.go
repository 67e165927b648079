package usecase_test

import (
	"context"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"

	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/pkg/errors"
)

// MockVendorRepository is a mock of VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) ListByCity(ctx context.Context, city string) ([]domain.Vendor, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) ListStatuses(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockVendorRepository) ListGrades(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockOrderRepository is a mock of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) ListByCity(ctx context.Context, city string) ([]domain.Order, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListFiltered(ctx context.Context, city string, businessLines []string, from, to *time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, city, businessLines, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListBusinessLines(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetCoverageGrid(ctx context.Context, filterHash string) ([]domain.GridCell, error) {
	args := m.Called(ctx, filterHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GridCell), args.Error(1)
}

func (m *MockCacheRepository) SetCoverageGrid(ctx context.Context, filterHash string, cells []domain.GridCell, ttl time.Duration) error {
	args := m.Called(ctx, filterHash, cells, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetInitialData(ctx context.Context) (*domain.InitialData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InitialData), args.Error(1)
}

func (m *MockCacheRepository) SetInitialData(ctx context.Context, data *domain.InitialData, ttl time.Duration) error {
	args := m.Called(ctx, data, ttl)
	return args.Error(0)
}

// fakeGeometryRepo отдает заранее заданные слои по ключу город/слой
type fakeGeometryRepo struct {
	layers map[string][]domain.AreaPolygon
}

func newFakeGeometryRepo() *fakeGeometryRepo {
	return &fakeGeometryRepo{layers: make(map[string][]domain.AreaPolygon)}
}

func (r *fakeGeometryRepo) addLayer(city, layer string, areas ...domain.AreaPolygon) {
	r.layers[city+"/"+layer] = areas
}

func (r *fakeGeometryRepo) LoadLayer(ctx context.Context, city, layer string) ([]domain.AreaPolygon, error) {
	areas, ok := r.layers[city+"/"+layer]
	if !ok {
		return nil, errors.ErrDataNotFound.WithMessage("layer %q is not available for city %q", layer, city)
	}
	return areas, nil
}

// square строит квадратный мультиполигон со стороной side градусов
func square(minLng, minLat, side float64) orb.MultiPolygon {
	return orb.MultiPolygon{{
		{
			{minLng, minLat},
			{minLng + side, minLat},
			{minLng + side, minLat + side},
			{minLng, minLat + side},
			{minLng, minLat},
		},
	}}
}

func ptrBool(v bool) *bool        { return &v }
func ptrInt(v int) *int           { return &v }
func ptrInt64(v int64) *int64     { return &v }
func ptrFloat(v float64) *float64 { return &v }
