package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mountain-explorer/internal/domain"
)

// SnapshotRepository сохраняет и восстанавливает состояние поиска сессии
type SnapshotRepository interface {
	// SaveState сохраняет снимок (перезаписывает предыдущий для сессии)
	SaveState(ctx context.Context, snapshot *domain.SearchSnapshot) error

	// LoadState возвращает снимок сессии или nil, если его нет
	LoadState(ctx context.Context, sessionID uuid.UUID) (*domain.SearchSnapshot, error)

	// DeleteState удаляет снимок сессии
	DeleteState(ctx context.Context, sessionID uuid.UUID) error

	// PurgeOlderThan удаляет снимки старше maxAgeSeconds, возвращает число удаленных
	PurgeOlderThan(ctx context.Context, maxAgeSeconds int) (int64, error)
}
