package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mountain-explorer/internal/domain"
)

// MockFeatureRepository is a mock of FeatureRepository
type MockFeatureRepository struct {
	mock.Mock
}

func (m *MockFeatureRepository) FetchFeatures(ctx context.Context, origin domain.Coordinate, radiusMeters int) ([]domain.RawFeature, error) {
	args := m.Called(ctx, origin, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawFeature), args.Error(1)
}

// MockMountainSearcher is a mock of MountainSearcher
type MockMountainSearcher struct {
	mock.Mock
}

func (m *MockMountainSearcher) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Mountain, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mountain), args.Error(1)
}

// Effective applies the package defaults without recording a call
func (m *MockMountainSearcher) Effective(q domain.SearchQuery) domain.SearchQuery {
	return q.WithDefaults()
}

// MockGeocoderRepository is a mock of GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) Search(ctx context.Context, query string) (*domain.Place, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockGeocoderRepository) Reverse(ctx context.Context, c domain.Coordinate) (*domain.Place, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

// MockEncyclopediaRepository is a mock of EncyclopediaRepository
type MockEncyclopediaRepository struct {
	mock.Mock
}

func (m *MockEncyclopediaRepository) SummaryByTitle(ctx context.Context, lang, title string) (*domain.Summary, error) {
	args := m.Called(ctx, lang, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockEncyclopediaRepository) SearchTitle(ctx context.Context, lang, query string) (string, error) {
	args := m.Called(ctx, lang, query)
	return args.String(0), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetMountain(ctx context.Context, id int64) (*domain.Mountain, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mountain), args.Error(1)
}

func (m *MockCacheRepository) SetMountains(ctx context.Context, mountains []domain.Mountain, ttl time.Duration) error {
	args := m.Called(ctx, mountains, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetPlace(ctx context.Context, c domain.Coordinate) (*domain.Place, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockCacheRepository) SetPlace(ctx context.Context, c domain.Coordinate, place *domain.Place, ttl time.Duration) error {
	args := m.Called(ctx, c, place, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetSummary(ctx context.Context, lang, title string) (*domain.Summary, error) {
	args := m.Called(ctx, lang, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockCacheRepository) SetSummary(ctx context.Context, lang, title string, summary *domain.Summary, ttl time.Duration) error {
	args := m.Called(ctx, lang, title, summary, ttl)
	return args.Error(0)
}

// MockSnapshotRepository is a mock of SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) SaveState(ctx context.Context, snapshot *domain.SearchSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) LoadState(ctx context.Context, sessionID uuid.UUID) (*domain.SearchSnapshot, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) DeleteState(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSnapshotRepository) PurgeOlderThan(ctx context.Context, maxAgeSeconds int) (int64, error) {
	args := m.Called(ctx, maxAgeSeconds)
	return args.Get(0).(int64), args.Error(1)
}

func floatPtr(f float64) *float64 {
	return &f
}

func strPtr(s string) *string {
	return &s
}

func intValPtr(v int) *int {
	return &v
}
