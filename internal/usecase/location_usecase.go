package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/domain/repository"
	"github.com/mountain-explorer/internal/pkg/errors"
	"github.com/mountain-explorer/internal/usecase/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const noMountainsMessage = "No mountains found in the nearby area"

// MountainSearcher - поиск вершин вокруг точки
type MountainSearcher interface {
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.Mountain, error)
	Effective(q domain.SearchQuery) domain.SearchQuery
}

// LocationUseCase обрабатывает выбор точки пользователем: адрес, поиск вершин,
// сохранение результатов для страницы деталей и состояния сессии.
type LocationUseCase struct {
	searcher     MountainSearcher
	geocoder     repository.GeocoderRepository
	cacheRepo    repository.CacheRepository
	snapshotRepo repository.SnapshotRepository
	logger       *zap.Logger
	mountainTTL  time.Duration
	placeTTL     time.Duration
}

// NewLocationUseCase создает новый экземпляр LocationUseCase
func NewLocationUseCase(
	searcher MountainSearcher,
	geocoder repository.GeocoderRepository,
	cacheRepo repository.CacheRepository,
	snapshotRepo repository.SnapshotRepository,
	logger *zap.Logger,
	mountainTTL time.Duration,
	placeTTL time.Duration,
) *LocationUseCase {
	return &LocationUseCase{
		searcher:     searcher,
		geocoder:     geocoder,
		cacheRepo:    cacheRepo,
		snapshotRepo: snapshotRepo,
		logger:       logger,
		mountainTTL:  mountainTTL,
		placeTTL:     placeTTL,
	}
}

// SelectLocation ищет вершины вокруг выбранной точки.
// Адрес определяется параллельно с поиском и не влияет на его результат.
func (uc *LocationUseCase) SelectLocation(ctx context.Context, req dto.SelectLocationRequest) (*dto.LocationResponse, error) {
	if req.Lat == nil || req.Lon == nil {
		return nil, errors.ErrInvalidCoordinates
	}
	origin := domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	if !origin.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	sessionID, err := parseSessionID(req.SessionID)
	if err != nil {
		return nil, err
	}

	query := domain.SearchQuery{Origin: origin, RadiusMeters: req.Radius, MaxResults: req.Limit}

	var (
		address   = domain.AddressNotAvailable
		mountains []domain.Mountain
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		address = uc.resolveAddress(gctx, origin)
		return nil
	})
	g.Go(func() error {
		found, err := uc.searcher.Search(gctx, query)
		if err != nil {
			return err
		}
		mountains = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(mountains) > 0 {
		if err := uc.cacheRepo.SetMountains(ctx, mountains, uc.mountainTTL); err != nil {
			uc.logger.Warn("Failed to cache mountains", zap.Error(err))
		}
	}

	resp := &dto.LocationResponse{
		Origin:         origin,
		IsUserLocation: req.IsUserLocation,
		Coordinates:    fmt.Sprintf("%.6f, %.6f", origin.Lat, origin.Lon),
		Address:        address,
		Mountains:      mountains,
		Total:          len(mountains),
		Message:        statusMessage(len(mountains)),
	}

	if uc.snapshotRepo != nil {
		effective := uc.searcher.Effective(query)
		snapshot := &domain.SearchSnapshot{
			SessionID:    sessionID,
			Origin:       origin,
			Address:      address,
			IsUserOrigin: req.IsUserLocation,
			RadiusMeters: effective.RadiusMeters,
			MaxResults:   effective.MaxResults,
			Mountains:    mountains,
			CreatedAt:    time.Now().UTC(),
		}
		if err := uc.snapshotRepo.SaveState(ctx, snapshot); err != nil {
			uc.logger.Warn("Failed to save search snapshot",
				zap.String("session_id", sessionID.String()),
				zap.Error(err))
		} else {
			resp.SessionID = sessionID.String()
		}
	}

	return resp, nil
}

// SearchPlace геокодирует текстовый запрос и выбирает найденную точку
func (uc *LocationUseCase) SearchPlace(ctx context.Context, req dto.SearchPlaceRequest) (*dto.LocationResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errors.ErrInvalidRequest.WithMessage("Please enter a location to search")
	}

	place, err := uc.geocoder.Search(ctx, query)
	if err != nil {
		uc.logger.Warn("Place search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	lat, lon := place.Lat, place.Lon
	return uc.SelectLocation(ctx, dto.SelectLocationRequest{
		Lat:       &lat,
		Lon:       &lon,
		SessionID: req.SessionID,
		Radius:    req.Radius,
		Limit:     req.Limit,
	})
}

// SaveState сохраняет состояние сессии, переданное клиентом
func (uc *LocationUseCase) SaveState(ctx context.Context, sessionID string, req dto.SaveStateRequest) (*domain.SearchSnapshot, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, errors.ErrInvalidSessionID
	}

	origin := domain.Coordinate{Lat: req.Origin.Lat, Lon: req.Origin.Lon}
	if !origin.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	mountains := req.Mountains
	if mountains == nil {
		mountains = []domain.Mountain{}
	}

	effective := uc.searcher.Effective(domain.SearchQuery{Origin: origin, RadiusMeters: req.Radius, MaxResults: req.Limit})
	snapshot := &domain.SearchSnapshot{
		SessionID:    id,
		Origin:       origin,
		Address:      req.Address,
		IsUserOrigin: req.IsUserLocation,
		RadiusMeters: effective.RadiusMeters,
		MaxResults:   effective.MaxResults,
		Mountains:    mountains,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.snapshotRepo.SaveState(ctx, snapshot); err != nil {
		uc.logger.Error("Failed to save state", zap.String("session_id", sessionID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if len(mountains) > 0 {
		if err := uc.cacheRepo.SetMountains(ctx, mountains, uc.mountainTTL); err != nil {
			uc.logger.Warn("Failed to cache mountains", zap.Error(err))
		}
	}

	return snapshot, nil
}

// LoadState возвращает сохраненное состояние сессии
func (uc *LocationUseCase) LoadState(ctx context.Context, sessionID string) (*domain.SearchSnapshot, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, errors.ErrInvalidSessionID
	}

	snapshot, err := uc.snapshotRepo.LoadState(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to load state", zap.String("session_id", sessionID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if snapshot == nil {
		return nil, errors.ErrSessionNotFound
	}
	return snapshot, nil
}

// ClearState удаляет состояние сессии. Отсутствующая сессия не считается ошибкой.
func (uc *LocationUseCase) ClearState(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return errors.ErrInvalidSessionID
	}

	if err := uc.snapshotRepo.DeleteState(ctx, id); err != nil {
		uc.logger.Error("Failed to clear state", zap.String("session_id", sessionID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

// resolveAddress - подпись адреса точки, "Address not available" при любой ошибке
func (uc *LocationUseCase) resolveAddress(ctx context.Context, origin domain.Coordinate) string {
	place, err := uc.cacheRepo.GetPlace(ctx, origin)
	if err != nil {
		uc.logger.Warn("Failed to get place from cache", zap.Error(err))
	}
	if place == nil {
		place, err = uc.geocoder.Reverse(ctx, origin)
		if err != nil {
			uc.logger.Warn("Reverse geocoding failed",
				zap.Float64("lat", origin.Lat),
				zap.Float64("lon", origin.Lon),
				zap.Error(err))
			return domain.AddressNotAvailable
		}
		if err := uc.cacheRepo.SetPlace(ctx, origin, place, uc.placeTTL); err != nil {
			uc.logger.Warn("Failed to cache place", zap.Error(err))
		}
	}

	if place.Address == nil {
		return domain.AddressNotAvailable
	}
	return place.Address.Label()
}

func parseSessionID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ErrInvalidSessionID
	}
	return id, nil
}

func statusMessage(found int) string {
	if found == 0 {
		return noMountainsMessage
	}
	return fmt.Sprintf("Found %d nearby mountains!", found)
}
