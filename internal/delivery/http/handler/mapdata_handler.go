package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vendormap-service/internal/pkg/errors"
	"github.com/vendormap-service/internal/pkg/utils"
	"github.com/vendormap-service/internal/usecase"
	"github.com/vendormap-service/internal/usecase/dto"
)

// MapDataHandler - обработчик запросов map-data
type MapDataHandler struct {
	mapDataUC *usecase.MapDataUseCase
	logger    *zap.Logger
}

// NewMapDataHandler - создание нового MapDataHandler
func NewMapDataHandler(mapDataUC *usecase.MapDataUseCase, logger *zap.Logger) *MapDataHandler {
	return &MapDataHandler{
		mapDataUC: mapDataUC,
		logger:    logger,
	}
}

// GetMapData godoc
// @Summary Данные карты вендоров
// @Description Возвращает отфильтрованный набор вендоров с display-радиусами, агрегаты по полигонам выбранного слоя, сетку покрытия и тепловую карту. Multi-select параметры передаются повтором ключа; пустой multi-select не ограничивает выборку.
// @Tags MapData
// @Produce json
// @Param city query string false "Город (tehran, mashhad, shiraz)" default(tehran)
// @Param start_date query string false "Начало диапазона дат (YYYY-MM-DD, включительно)"
// @Param end_date query string false "Конец диапазона дат (YYYY-MM-DD, включительно)"
// @Param business_lines query []string false "Бизнес-линии"
// @Param vendor_status_ids query []int false "Статусы вендоров"
// @Param vendor_grades query []string false "Грейды вендоров"
// @Param vendor_codes_filter query string false "Коды вендоров через пробел, запятую или точку с запятой"
// @Param vendor_visible query string false "Видимость вендора (any, 0, 1)" default(any)
// @Param vendor_is_open query string false "Открытость вендора (any, 0, 1)" default(any)
// @Param vendor_area_main_type query string false "Слой пространственного фильтра вендоров" default(all)
// @Param vendor_area_sub_type query []string false "Подобласти пространственного фильтра"
// @Param area_type_display query string false "Display-слой (none, coverage_grid или имя слоя)" default(none)
// @Param area_sub_type_filter query []string false "Подобласти display-слоя"
// @Param heatmap_type_request query string false "Тип тепловой карты" default(none)
// @Param radius_mode query string false "Режим радиуса (percentage, fixed)" default(percentage)
// @Param radius_modifier query number false "Модификатор радиуса [0.1, 1.0]" default(1.0)
// @Param radius_fixed query number false "Фиксированный радиус, км [0.5, 10]" default(3.0)
// @Success 200 {object} utils.SuccessResponse{data=dto.MapDataResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/map-data [get]
func (h *MapDataHandler) GetMapData(c *fiber.Ctx) error {
	var req dto.MapDataRequest
	if err := c.QueryParser(&req); err != nil {
		h.logger.Warn("Failed to parse map-data query", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidFilter.WithMessage("malformed query parameters"))
	}

	start := time.Now()
	result, err := h.mapDataUC.GetMapData(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    len(result.Vendors),
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}
