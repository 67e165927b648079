// Package geofile загружает справочные слои полигонов из файлов:
// маркетинговые зоны из CSV с WKT-геометрией, районы Тегерана из GeoJSON.
// Файлы считаются неизменяемыми на время жизни процесса.
package geofile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/vendormap-service/internal/config"
	"github.com/vendormap-service/internal/domain"
	"github.com/vendormap-service/internal/domain/repository"
	"github.com/vendormap-service/internal/pkg/errors"
)

type geometryRepository struct {
	cfg    *config.DataConfig
	logger *zap.Logger
}

// NewGeometryRepository создает файловый репозиторий геометрии
func NewGeometryRepository(cfg *config.DataConfig, logger *zap.Logger) repository.GeometryRepository {
	return &geometryRepository{
		cfg:    cfg,
		logger: logger,
	}
}

func (r *geometryRepository) LoadLayer(ctx context.Context, city, layer string) ([]domain.AreaPolygon, error) {
	switch layer {
	case domain.LayerMarketingAreas:
		path := filepath.Join(r.cfg.MarketingAreasDir, city+"_polygons.csv")
		return r.loadMarketingAreas(path, city)
	case domain.LayerTehranRegion:
		// Районные слои есть только для Тегерана
		if city != "tehran" {
			return nil, errors.ErrDataNotFound.WithMessage("layer %q is not available for city %q", layer, city)
		}
		return r.loadDistricts(filepath.Join(r.cfg.DistrictsDir, "region_districts.geojson"), layer, "Name")
	case domain.LayerTehranMain:
		if city != "tehran" {
			return nil, errors.ErrDataNotFound.WithMessage("layer %q is not available for city %q", layer, city)
		}
		return r.loadDistricts(filepath.Join(r.cfg.DistrictsDir, "main_districts.geojson"), layer, "NAME_MAHAL")
	default:
		return nil, errors.ErrDataNotFound.WithMessage("unknown polygon layer %q", layer)
	}
}

// loadMarketingAreas читает CSV с колонками name и WKT.
// Строки с нечитаемой геометрией пропускаются с предупреждением:
// одна битая зона не должна ронять весь слой.
func (r *geometryRepository) loadMarketingAreas(path, city string) ([]domain.AreaPolygon, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrDataNotFound.WithMessage("no marketing areas file for city %q", city)
		}
		return nil, fmt.Errorf("open marketing areas %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read marketing areas %s: %w", path, err)
	}
	if len(records) == 0 {
		return []domain.AreaPolygon{}, nil
	}

	nameCol, wktCol := -1, -1
	for i, col := range records[0] {
		switch col {
		case "name":
			nameCol = i
		case "WKT":
			wktCol = i
		}
	}
	if wktCol < 0 {
		return nil, fmt.Errorf("marketing areas %s: missing WKT column", path)
	}

	areas := make([]domain.AreaPolygon, 0, len(records)-1)
	for i, rec := range records[1:] {
		if wktCol >= len(rec) || rec[wktCol] == "" {
			continue
		}

		geom, err := wkt.Unmarshal(rec[wktCol])
		if err != nil {
			r.logger.Warn("Skipping marketing area with invalid WKT",
				zap.String("city", city),
				zap.Int("row", i+1),
				zap.Error(err),
			)
			continue
		}

		mp, ok := toMultiPolygon(geom)
		if !ok {
			r.logger.Warn("Skipping marketing area with non-polygon geometry",
				zap.String("city", city),
				zap.Int("row", i+1),
				zap.String("type", string(geom.GeoJSONType())),
			)
			continue
		}

		name := fmt.Sprintf("%s_area_%d", city, i+1)
		if nameCol >= 0 && nameCol < len(rec) && rec[nameCol] != "" {
			name = rec[nameCol]
		}

		areas = append(areas, domain.AreaPolygon{
			Layer:    domain.LayerMarketingAreas,
			Name:     name,
			Geometry: mp,
		})
	}

	return areas, nil
}

// loadDistricts читает GeoJSON FeatureCollection районов.
// Имя берется из nameProp с fallback на "name"; Pop и PopDensity
// подхватываются, если присутствуют.
func (r *geometryRepository) loadDistricts(path, layer, nameProp string) ([]domain.AreaPolygon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrDataNotFound.WithMessage("no districts file for layer %q", layer)
		}
		return nil, fmt.Errorf("read districts %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse districts %s: %w", path, err)
	}

	areas := make([]domain.AreaPolygon, 0, len(fc.Features))
	for i, feat := range fc.Features {
		mp, ok := toMultiPolygon(feat.Geometry)
		if !ok {
			r.logger.Warn("Skipping district with non-polygon geometry",
				zap.String("layer", layer),
				zap.Int("feature", i),
			)
			continue
		}

		name := propString(feat, nameProp)
		if name == "" {
			name = propString(feat, "name")
		}
		if name == "" {
			name = fmt.Sprintf("District %d", i+1)
		}

		areas = append(areas, domain.AreaPolygon{
			Layer:      layer,
			Name:       name,
			Geometry:   mp,
			Population: propFloat(feat, "Pop"),
			PopDensity: propFloat(feat, "PopDensity"),
		})
	}

	return areas, nil
}

// toMultiPolygon нормализует геометрию к MultiPolygon
func toMultiPolygon(geom orb.Geometry) (orb.MultiPolygon, bool) {
	switch g := geom.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{g}, true
	case orb.MultiPolygon:
		return g, true
	default:
		return nil, false
	}
}

func propString(feat *geojson.Feature, key string) string {
	if v, ok := feat.Properties[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func propFloat(feat *geojson.Feature, key string) *float64 {
	v, ok := feat.Properties[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return &f
		}
	}
	return nil
}
