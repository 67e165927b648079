package repository

import (
	"context"

	"github.com/vendormap-service/internal/domain"
)

// GeometryRepository - загрузка справочных слоев полигонов.
// Файлы слоев считаются неизменяемыми на время жизни процесса;
// кеширование выполняется поверх репозитория (см. geo.Store).
type GeometryRepository interface {
	// LoadLayer загружает слой полигонов для города.
	// Возвращает errors.ErrDataNotFound, если у комбинации город/слой
	// нет файла геометрии.
	LoadLayer(ctx context.Context, city, layer string) ([]domain.AreaPolygon, error)
}
