package repository

import (
	"context"

	"github.com/mountain-explorer/internal/domain"
)

// EncyclopediaRepository - краткие описания статей Wikipedia
type EncyclopediaRepository interface {
	SummaryByTitle(ctx context.Context, lang, title string) (*domain.Summary, error)

	// SearchTitle возвращает заголовок первой найденной статьи (пробелы заменены на "_")
	SearchTitle(ctx context.Context, lang, query string) (string, error)
}
