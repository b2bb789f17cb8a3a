package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mountain-explorer/internal/pkg/errors"
	"github.com/mountain-explorer/internal/pkg/utils"
	"github.com/mountain-explorer/internal/pkg/validator"
	"github.com/mountain-explorer/internal/usecase/dto"
	"go.uber.org/zap"
)

// DetailsService - страница деталей вершины
type DetailsService interface {
	GetDetails(ctx context.Context, req dto.DetailsRequest) (*dto.MountainDetailsResponse, error)
}

// DetailsHandler - обработчик страницы деталей
type DetailsHandler struct {
	detailsUC DetailsService
	logger    *zap.Logger
}

// NewDetailsHandler - создание нового DetailsHandler
func NewDetailsHandler(detailsUC DetailsService, logger *zap.Logger) *DetailsHandler {
	return &DetailsHandler{
		detailsUC: detailsUC,
		logger:    logger,
	}
}

// GetDetails godoc
// @Summary Детали вершины
// @Description Возвращает вершину с местом (Nominatim), статьей Wikipedia, изображением и ссылками для "поделиться". Параметры запроса имеют приоритет над сохраненными после поиска данными.
// @Tags Mountains
// @Produce json
// @Param id path int true "OSM ID вершины"
// @Param name query string false "Название"
// @Param lat query number false "Широта"
// @Param lon query number false "Долгота"
// @Param ele query int false "Высота в метрах"
// @Param type query string false "Тип (peak, volcano)"
// @Success 200 {object} utils.SuccessResponse{data=dto.MountainDetailsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/mountains/{id}/details [get]
func (h *DetailsHandler) GetDetails(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Mountain ID must be a positive integer"))
	}

	req := dto.DetailsRequest{
		ID:   id,
		Name: c.Query("name"),
		Type: c.Query("type"),
	}
	if req.Lat, err = queryFloat(c, "lat"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Lon, err = queryFloat(c, "lon"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Elevation, err = queryIntPtr(c, "ele"); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.detailsUC.GetDetails(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
