package repository

import (
	"context"
	"time"

	"github.com/mountain-explorer/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetMountain получает вершину, сохраненную после поиска (nil при промахе)
	GetMountain(ctx context.Context, id int64) (*domain.Mountain, error)

	// SetMountains сохраняет найденные вершины под ключами mountain:{id}
	SetMountains(ctx context.Context, mountains []domain.Mountain, ttl time.Duration) error

	// GetPlace получает результат обратного геокодирования
	GetPlace(ctx context.Context, c domain.Coordinate) (*domain.Place, error)

	// SetPlace сохраняет результат обратного геокодирования
	SetPlace(ctx context.Context, c domain.Coordinate, place *domain.Place, ttl time.Duration) error

	// GetSummary получает краткое содержание статьи
	GetSummary(ctx context.Context, lang, title string) (*domain.Summary, error)

	// SetSummary сохраняет краткое содержание статьи
	SetSummary(ctx context.Context, lang, title string, summary *domain.Summary, ttl time.Duration) error
}
