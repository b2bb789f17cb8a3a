package domain

import (
	"time"

	"github.com/google/uuid"
)

// SearchSnapshot - сохраненное состояние последнего поиска пользователя.
// Позволяет восстановить список вершин после навигации.
type SearchSnapshot struct {
	SessionID    uuid.UUID  `json:"session_id" db:"session_id"`
	Origin       Coordinate `json:"origin"`
	Address      string     `json:"address"`
	IsUserOrigin bool       `json:"is_user_origin"`
	RadiusMeters int        `json:"radius_meters"`
	MaxResults   int        `json:"max_results"`
	Mountains    []Mountain `json:"mountains"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
