package repository

import (
	"context"

	"github.com/mountain-explorer/internal/domain"
)

// FeatureRepository - источник сырых объектов natural=peak|volcano
type FeatureRepository interface {
	// FetchFeatures возвращает объекты в радиусе radiusMeters от origin.
	// При исчерпании всех эндпоинтов возвращает *domain.QueryFailure.
	FetchFeatures(ctx context.Context, origin domain.Coordinate, radiusMeters int) ([]domain.RawFeature, error)
}
