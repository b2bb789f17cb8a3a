package handler

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/pkg/errors"
	"github.com/mountain-explorer/internal/pkg/utils"
	"github.com/mountain-explorer/internal/pkg/validator"
	"github.com/mountain-explorer/internal/usecase/dto"
	"go.uber.org/zap"
)

// LocationService - выбор точки, поиск места и состояние сессии
type LocationService interface {
	SelectLocation(ctx context.Context, req dto.SelectLocationRequest) (*dto.LocationResponse, error)
	SearchPlace(ctx context.Context, req dto.SearchPlaceRequest) (*dto.LocationResponse, error)
	SaveState(ctx context.Context, sessionID string, req dto.SaveStateRequest) (*domain.SearchSnapshot, error)
	LoadState(ctx context.Context, sessionID string) (*domain.SearchSnapshot, error)
	ClearState(ctx context.Context, sessionID string) error
}

// LocationHandler - обработчик выбора точки и состояния сессии
type LocationHandler struct {
	locationUC LocationService
	logger     *zap.Logger
}

// NewLocationHandler - создание нового LocationHandler
func NewLocationHandler(locationUC LocationService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// SelectLocation godoc
// @Summary Выбор точки на карте или геолокации устройства
// @Description Определяет адрес точки и ищет вершины вокруг неё. Результат сохраняется в состоянии сессии.
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body dto.SelectLocationRequest true "Координаты точки"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Failure 504 {object} utils.ErrorResponse
// @Router /api/v1/locations/select [post]
func (h *LocationHandler) SelectLocation(c *fiber.Ctx) error {
	var req dto.SelectLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.locationUC.SelectLocation(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   result.Total,
		Message: result.Message,
	})
}

// SearchPlace godoc
// @Summary Поиск места по названию
// @Description Геокодирует текстовый запрос через Nominatim и ищет вершины вокруг найденного места
// @Tags Locations
// @Produce json
// @Param q query string true "Название места"
// @Param session_id query string false "ID сессии"
// @Param radius query int false "Радиус поиска в метрах"
// @Param limit query int false "Максимальное количество результатов"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/places/search [get]
func (h *LocationHandler) SearchPlace(c *fiber.Ctx) error {
	var req dto.SearchPlaceRequest
	var err error
	req.Query = strings.TrimSpace(c.Query("q"))
	req.SessionID = c.Query("session_id")
	if req.Radius, err = queryInt(c, "radius"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Limit, err = queryInt(c, "limit"); err != nil {
		return utils.SendError(c, err)
	}

	if req.Query == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Please enter a location to search"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.locationUC.SearchPlace(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   result.Total,
		Message: result.Message,
	})
}

// LoadState godoc
// @Summary Состояние сессии
// @Description Возвращает последнюю выбранную точку и найденные вершины
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=domain.SearchSnapshot}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/state [get]
func (h *LocationHandler) LoadState(c *fiber.Ctx) error {
	snapshot, err := h.locationUC.LoadState(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, snapshot, nil)
}

// SaveState godoc
// @Summary Сохранение состояния сессии
// @Description Перезаписывает состояние сессии переданными данными
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии (UUID)"
// @Param request body dto.SaveStateRequest true "Состояние"
// @Success 200 {object} utils.SuccessResponse{data=domain.SearchSnapshot}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/state [put]
func (h *LocationHandler) SaveState(c *fiber.Ctx) error {
	var req dto.SaveStateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	snapshot, err := h.locationUC.SaveState(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, snapshot, nil)
}

// ClearState godoc
// @Summary Сброс состояния сессии
// @Description Удаляет сохраненную точку и найденные вершины сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии (UUID)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/state [delete]
func (h *LocationHandler) ClearState(c *fiber.Ctx) error {
	if err := h.locationUC.ClearState(c.UserContext(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, nil, &utils.Meta{Message: "Session state cleared"})
}
