package usecase

import (
	"context"
	"time"

	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/domain/repository"
	"github.com/mountain-explorer/internal/pkg/errors"
	"github.com/mountain-explorer/internal/pkg/utils"
	"go.uber.org/zap"
)

const maxResultsLimit = 200

// MountainSearchUseCase - точка входа поиска вершин вокруг координаты.
// Не хранит состояние между вызовами, безопасен для конкурентного использования.
type MountainSearchUseCase struct {
	featureRepo   repository.FeatureRepository
	logger        *zap.Logger
	defaultRadius int
	defaultLimit  int
}

// NewMountainSearchUseCase создает новый экземпляр MountainSearchUseCase
func NewMountainSearchUseCase(
	featureRepo repository.FeatureRepository,
	logger *zap.Logger,
	defaultRadius int,
	defaultLimit int,
) *MountainSearchUseCase {
	if defaultRadius <= 0 {
		defaultRadius = domain.DefaultSearchRadiusMeters
	}
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultMaxResults
	}
	return &MountainSearchUseCase{
		featureRepo:   featureRepo,
		logger:        logger,
		defaultRadius: defaultRadius,
		defaultLimit:  defaultLimit,
	}
}

// Search запрашивает объекты у FeatureRepository и ранжирует их.
// *domain.QueryFailure возвращается без обертки.
func (uc *MountainSearchUseCase) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Mountain, error) {
	q = uc.Effective(q)
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	start := time.Now()
	features, err := uc.featureRepo.FetchFeatures(ctx, q.Origin, q.RadiusMeters)
	if err != nil {
		uc.logger.Error("Failed to fetch features",
			zap.Float64("lat", q.Origin.Lat),
			zap.Float64("lon", q.Origin.Lon),
			zap.Error(err))
		return nil, err
	}

	mountains := ProcessFeatures(features, q.Origin, q.MaxResults)

	uc.logger.Info("Mountain search completed",
		zap.Float64("lat", q.Origin.Lat),
		zap.Float64("lon", q.Origin.Lon),
		zap.Int("radius_m", q.RadiusMeters),
		zap.Int("raw_features", len(features)),
		zap.Int("mountains", len(mountains)),
		zap.Duration("took", time.Since(start)))

	return mountains, nil
}

// Effective возвращает запрос в том виде, в котором его выполнит Search:
// незаданные радиус и лимит заменяются настроенными значениями по умолчанию.
func (uc *MountainSearchUseCase) Effective(q domain.SearchQuery) domain.SearchQuery {
	if q.RadiusMeters == 0 {
		q.RadiusMeters = uc.defaultRadius
	}
	if q.MaxResults == 0 {
		q.MaxResults = uc.defaultLimit
	}
	return q
}

func validateQuery(q domain.SearchQuery) error {
	if !q.Origin.Valid() {
		return errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadiusMeters(q.RadiusMeters) {
		return errors.ErrInvalidRadius
	}
	if q.MaxResults < 1 || q.MaxResults > maxResultsLimit {
		return errors.ErrInvalidLimit
	}
	return nil
}
