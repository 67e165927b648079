package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vendormap-service/internal/pkg/utils"
	"github.com/vendormap-service/internal/usecase"
)

// RefDataHandler - обработчик справочных данных дашборда
type RefDataHandler struct {
	refDataUC *usecase.RefDataUseCase
	logger    *zap.Logger
}

// NewRefDataHandler - создание нового RefDataHandler
func NewRefDataHandler(refDataUC *usecase.RefDataUseCase, logger *zap.Logger) *RefDataHandler {
	return &RefDataHandler{
		refDataUC: refDataUC,
		logger:    logger,
	}
}

// GetInitialData godoc
// @Summary Справочные данные для инициализации дашборда
// @Description Возвращает города, бизнес-линии, статусы и грейды вендоров, имена маркетинговых зон по городам и списки районов Тегерана
// @Tags RefData
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.InitialData}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/initial-data [get]
func (h *RefDataHandler) GetInitialData(c *fiber.Ctx) error {
	data, err := h.refDataUC.GetInitialData(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, data, nil)
}
