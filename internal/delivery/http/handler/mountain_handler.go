package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/pkg/utils"
	"github.com/mountain-explorer/internal/pkg/validator"
	"github.com/mountain-explorer/internal/usecase/dto"
	"go.uber.org/zap"
)

// MountainSearcher - поиск вершин вокруг точки
type MountainSearcher interface {
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.Mountain, error)
	// Effective - запрос после подстановки настроенных значений по умолчанию
	Effective(q domain.SearchQuery) domain.SearchQuery
}

// MountainHandler - обработчик поиска вершин
type MountainHandler struct {
	searcher MountainSearcher
	logger   *zap.Logger
}

// NewMountainHandler - создание нового MountainHandler
func NewMountainHandler(searcher MountainSearcher, logger *zap.Logger) *MountainHandler {
	return &MountainHandler{
		searcher: searcher,
		logger:   logger,
	}
}

// Nearby godoc
// @Summary Поиск вершин и вулканов рядом с точкой
// @Description Запрашивает OSM узлы natural=peak и natural=volcano в радиусе от точки через Overpass API (с переключением между зеркалами), фильтрует безымянные и возвращает ближайшие
// @Tags Mountains
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param radius query int false "Радиус поиска в метрах" default(50000)
// @Param limit query int false "Максимальное количество результатов" default(30)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyMountainsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Failure 504 {object} utils.ErrorResponse
// @Router /api/v1/mountains/nearby [get]
func (h *MountainHandler) Nearby(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.NearbyMountainsRequest
	var err error
	if req.Lat, err = queryFloat(c, "lat"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Lon, err = queryFloat(c, "lon"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Radius, err = queryInt(c, "radius"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Limit, err = queryInt(c, "limit"); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	query := req.Query()
	mountains, err := h.searcher.Search(c.UserContext(), query)
	if err != nil {
		h.logger.Warn("Nearby search failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	effective := h.searcher.Effective(query)
	return utils.SendSuccess(c, dto.NearbyMountainsResponse{
		Origin:    effective.Origin,
		Radius:    effective.RadiusMeters,
		Mountains: mountains,
		Total:     len(mountains),
	}, &utils.Meta{
		Total:    len(mountains),
		Limit:    effective.MaxResults,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}
