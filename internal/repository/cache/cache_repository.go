package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func mountainKey(id int64) string {
	return fmt.Sprintf("mountain:%d", id)
}

// placeKey округляет координаты до 4 знаков
func placeKey(c domain.Coordinate) string {
	return fmt.Sprintf("place:%.4f:%.4f", c.Lat, c.Lon)
}

func summaryKey(lang, title string) string {
	return fmt.Sprintf("wiki:%s:%s", lang, title)
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// GetMountain получает вершину из кеша
func (r *cacheRepository) GetMountain(ctx context.Context, id int64) (*domain.Mountain, error) {
	var m domain.Mountain
	ok, err := r.getJSON(ctx, mountainKey(id), &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

// SetMountains сохраняет найденные вершины одним pipeline
func (r *cacheRepository) SetMountains(ctx context.Context, mountains []domain.Mountain, ttl time.Duration) error {
	if len(mountains) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for i := range mountains {
		data, err := json.Marshal(&mountains[i])
		if err != nil {
			return fmt.Errorf("marshal mountain %d: %w", mountains[i].ID, err)
		}
		pipe.Set(ctx, mountainKey(mountains[i].ID), data, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to cache mountains", zap.Int("count", len(mountains)), zap.Error(err))
		return fmt.Errorf("cache set mountains: %w", err)
	}

	r.logger.Debug("Mountains cached", zap.Int("count", len(mountains)), zap.Duration("ttl", ttl))
	return nil
}

// GetPlace получает результат обратного геокодирования
func (r *cacheRepository) GetPlace(ctx context.Context, c domain.Coordinate) (*domain.Place, error) {
	var p domain.Place
	ok, err := r.getJSON(ctx, placeKey(c), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// SetPlace сохраняет результат обратного геокодирования
func (r *cacheRepository) SetPlace(ctx context.Context, c domain.Coordinate, place *domain.Place, ttl time.Duration) error {
	return r.setJSON(ctx, placeKey(c), place, ttl)
}

// GetSummary получает статью из кеша
func (r *cacheRepository) GetSummary(ctx context.Context, lang, title string) (*domain.Summary, error) {
	var s domain.Summary
	ok, err := r.getJSON(ctx, summaryKey(lang, title), &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

// SetSummary сохраняет статью в кеше
func (r *cacheRepository) SetSummary(ctx context.Context, lang, title string, summary *domain.Summary, ttl time.Duration) error {
	return r.setJSON(ctx, summaryKey(lang, title), summary, ttl)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Error("Failed to unmarshal from cache", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("Failed to marshal for cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.Set(ctx, key, data, ttl)
}
