package repository

import (
	"context"

	"github.com/mountain-explorer/internal/domain"
)

// GeocoderRepository - прямое и обратное геокодирование
type GeocoderRepository interface {
	// Search находит лучшее совпадение для текстового запроса
	Search(ctx context.Context, query string) (*domain.Place, error)

	// Reverse возвращает место для координаты
	Reverse(ctx context.Context, c domain.Coordinate) (*domain.Place, error)
}
