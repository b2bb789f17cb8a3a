package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mountain-explorer/internal/domain"
	apperrors "github.com/mountain-explorer/internal/pkg/errors"
	"github.com/mountain-explorer/internal/usecase"
	"github.com/mountain-explorer/internal/usecase/dto"
)

type locationFixture struct {
	searcher  *MockMountainSearcher
	geocoder  *MockGeocoderRepository
	cache     *MockCacheRepository
	snapshots *MockSnapshotRepository
	uc        *usecase.LocationUseCase
}

func newLocationFixture() *locationFixture {
	f := &locationFixture{
		searcher:  new(MockMountainSearcher),
		geocoder:  new(MockGeocoderRepository),
		cache:     new(MockCacheRepository),
		snapshots: new(MockSnapshotRepository),
	}
	f.uc = usecase.NewLocationUseCase(f.searcher, f.geocoder, f.cache, f.snapshots, zap.NewNop(), time.Hour, 24*time.Hour)
	return f
}

var benasquePlace = &domain.Place{
	Lat:         42.6048,
	Lon:         0.5237,
	DisplayName: "Benasque, Huesca, Aragón, España",
	Address:     &domain.Address{Village: "Benasque", State: "Aragón", Country: "España"},
}

func TestLocationUseCase_SelectLocation(t *testing.T) {
	t.Run("found mountains", func(t *testing.T) {
		f := newLocationFixture()
		origin := domain.Coordinate{Lat: 42.6048, Lon: 0.5237}
		mountains := []domain.Mountain{
			{ID: 1, Name: "Aneto", Lat: 42.6319, Lon: 0.6578, Kind: domain.KindPeak, DistanceKm: 11.4},
			{ID: 2, Name: "Posets", Lat: 42.6553, Lon: 0.4356, Kind: domain.KindPeak, DistanceKm: 9.1},
		}

		f.cache.On("GetPlace", mock.Anything, origin).Return(nil, nil)
		f.geocoder.On("Reverse", mock.Anything, origin).Return(benasquePlace, nil)
		f.cache.On("SetPlace", mock.Anything, origin, benasquePlace, 24*time.Hour).Return(nil)
		f.searcher.On("Search", mock.Anything, domain.SearchQuery{Origin: origin}).Return(mountains, nil)
		f.cache.On("SetMountains", mock.Anything, mountains, time.Hour).Return(nil)
		f.snapshots.On("SaveState", mock.Anything, mock.MatchedBy(func(s *domain.SearchSnapshot) bool {
			return s.Origin == origin && len(s.Mountains) == 2 && s.Address == "Benasque, Aragón, España" && s.IsUserOrigin &&
				s.RadiusMeters == domain.DefaultSearchRadiusMeters && s.MaxResults == domain.DefaultMaxResults
		})).Return(nil)

		resp, err := f.uc.SelectLocation(context.Background(), dto.SelectLocationRequest{
			Lat:            floatPtr(origin.Lat),
			Lon:            floatPtr(origin.Lon),
			IsUserLocation: true,
		})
		require.NoError(t, err)

		assert.Equal(t, "Benasque, Aragón, España", resp.Address)
		assert.Equal(t, "42.604800, 0.523700", resp.Coordinates)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, "Found 2 nearby mountains!", resp.Message)
		assert.True(t, resp.IsUserLocation)
		_, err = uuid.Parse(resp.SessionID)
		assert.NoError(t, err)

		f.cache.AssertExpectations(t)
		f.snapshots.AssertExpectations(t)
	})

	t.Run("no mountains and geocoder failure", func(t *testing.T) {
		f := newLocationFixture()
		origin := domain.Coordinate{Lat: 0, Lon: -140}
		sessionID := uuid.New()

		f.cache.On("GetPlace", mock.Anything, origin).Return(nil, errors.New("redis down"))
		f.geocoder.On("Reverse", mock.Anything, origin).Return(nil, apperrors.ErrPlaceNotFound)
		f.searcher.On("Search", mock.Anything, mock.Anything).Return([]domain.Mountain{}, nil)
		f.snapshots.On("SaveState", mock.Anything, mock.MatchedBy(func(s *domain.SearchSnapshot) bool {
			return s.SessionID == sessionID
		})).Return(nil)

		resp, err := f.uc.SelectLocation(context.Background(), dto.SelectLocationRequest{
			Lat:       floatPtr(origin.Lat),
			Lon:       floatPtr(origin.Lon),
			SessionID: sessionID.String(),
		})
		require.NoError(t, err)

		assert.Equal(t, domain.AddressNotAvailable, resp.Address)
		assert.Equal(t, "No mountains found in the nearby area", resp.Message)
		assert.Equal(t, sessionID.String(), resp.SessionID)
		f.cache.AssertNotCalled(t, "SetMountains", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("search failure propagated", func(t *testing.T) {
		f := newLocationFixture()
		origin := domain.Coordinate{Lat: 42.6, Lon: 0.5}
		failure := &domain.QueryFailure{Reason: domain.ReasonRateLimited, StatusCode: 429}

		f.cache.On("GetPlace", mock.Anything, origin).Return(benasquePlace, nil)
		f.searcher.On("Search", mock.Anything, mock.Anything).Return(nil, failure)

		_, err := f.uc.SelectLocation(context.Background(), dto.SelectLocationRequest{
			Lat: floatPtr(origin.Lat),
			Lon: floatPtr(origin.Lon),
		})

		var qf *domain.QueryFailure
		require.True(t, errors.As(err, &qf))
		assert.Equal(t, domain.ReasonRateLimited, qf.Reason)
		f.snapshots.AssertNotCalled(t, "SaveState", mock.Anything, mock.Anything)
	})

	t.Run("snapshot failure is not fatal", func(t *testing.T) {
		f := newLocationFixture()
		origin := domain.Coordinate{Lat: 42.6, Lon: 0.5}

		f.cache.On("GetPlace", mock.Anything, origin).Return(benasquePlace, nil)
		f.searcher.On("Search", mock.Anything, mock.Anything).Return([]domain.Mountain{}, nil)
		f.snapshots.On("SaveState", mock.Anything, mock.Anything).Return(errors.New("db down"))

		resp, err := f.uc.SelectLocation(context.Background(), dto.SelectLocationRequest{
			Lat: floatPtr(origin.Lat),
			Lon: floatPtr(origin.Lon),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.SessionID)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newLocationFixture()

		_, err := f.uc.SelectLocation(context.Background(), dto.SelectLocationRequest{Lat: floatPtr(10)})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidCoordinates))

		_, err = f.uc.SelectLocation(context.Background(), dto.SelectLocationRequest{
			Lat: floatPtr(10), Lon: floatPtr(10), SessionID: "not-a-uuid",
		})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidSessionID))
	})
}

func TestLocationUseCase_SearchPlace(t *testing.T) {
	t.Run("geocodes and selects", func(t *testing.T) {
		f := newLocationFixture()
		origin := benasquePlace.Coordinate()

		f.geocoder.On("Search", mock.Anything, "Benasque").Return(benasquePlace, nil)
		f.cache.On("GetPlace", mock.Anything, origin).Return(benasquePlace, nil)
		f.searcher.On("Search", mock.Anything, domain.SearchQuery{Origin: origin, RadiusMeters: 10000}).
			Return([]domain.Mountain{}, nil)
		f.snapshots.On("SaveState", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.uc.SearchPlace(context.Background(), dto.SearchPlaceRequest{Query: "  Benasque ", Radius: 10000})
		require.NoError(t, err)
		assert.Equal(t, origin, resp.Origin)
		assert.False(t, resp.IsUserLocation)
		f.searcher.AssertExpectations(t)
	})

	t.Run("empty query", func(t *testing.T) {
		f := newLocationFixture()
		_, err := f.uc.SearchPlace(context.Background(), dto.SearchPlaceRequest{Query: "   "})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
	})

	t.Run("place not found", func(t *testing.T) {
		f := newLocationFixture()
		f.geocoder.On("Search", mock.Anything, "Atlantis").Return(nil, apperrors.ErrPlaceNotFound)

		_, err := f.uc.SearchPlace(context.Background(), dto.SearchPlaceRequest{Query: "Atlantis"})
		assert.True(t, errors.Is(err, apperrors.ErrPlaceNotFound))
	})
}

func TestLocationUseCase_State(t *testing.T) {
	t.Run("save and load", func(t *testing.T) {
		f := newLocationFixture()
		id := uuid.New()
		mountains := []domain.Mountain{{ID: 7, Name: "Teide", Kind: domain.KindVolcano}}

		f.snapshots.On("SaveState", mock.Anything, mock.MatchedBy(func(s *domain.SearchSnapshot) bool {
			return s.SessionID == id && s.Address == "Tenerife" &&
				s.RadiusMeters == 20000 && s.MaxResults == domain.DefaultMaxResults
		})).Return(nil)
		f.cache.On("SetMountains", mock.Anything, mountains, time.Hour).Return(nil)

		saved, err := f.uc.SaveState(context.Background(), id.String(), dto.SaveStateRequest{
			Origin:    dto.Point{Lat: 28.27, Lon: -16.64},
			Address:   "Tenerife",
			Radius:    20000,
			Mountains: mountains,
		})
		require.NoError(t, err)
		assert.Equal(t, id, saved.SessionID)

		f.snapshots.On("LoadState", mock.Anything, id).Return(saved, nil)
		loaded, err := f.uc.LoadState(context.Background(), id.String())
		require.NoError(t, err)
		assert.Same(t, saved, loaded)
	})

	t.Run("missing session", func(t *testing.T) {
		f := newLocationFixture()
		id := uuid.New()
		f.snapshots.On("LoadState", mock.Anything, id).Return(nil, nil)

		_, err := f.uc.LoadState(context.Background(), id.String())
		assert.True(t, errors.Is(err, apperrors.ErrSessionNotFound))
	})

	t.Run("invalid session id", func(t *testing.T) {
		f := newLocationFixture()
		_, err := f.uc.LoadState(context.Background(), "abc")
		assert.True(t, errors.Is(err, apperrors.ErrInvalidSessionID))

		_, err = f.uc.SaveState(context.Background(), "abc", dto.SaveStateRequest{})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidSessionID))
	})
}

func TestLocationUseCase_ClearState(t *testing.T) {
	t.Run("deletes snapshot", func(t *testing.T) {
		f := newLocationFixture()
		id := uuid.New()
		f.snapshots.On("DeleteState", mock.Anything, id).Return(nil)

		require.NoError(t, f.uc.ClearState(context.Background(), id.String()))
		f.snapshots.AssertExpectations(t)
	})

	t.Run("database error", func(t *testing.T) {
		f := newLocationFixture()
		id := uuid.New()
		f.snapshots.On("DeleteState", mock.Anything, id).Return(errors.New("connection reset"))

		err := f.uc.ClearState(context.Background(), id.String())
		assert.True(t, errors.Is(err, apperrors.ErrDatabaseError))
	})

	t.Run("invalid session id", func(t *testing.T) {
		f := newLocationFixture()
		err := f.uc.ClearState(context.Background(), "abc")
		assert.True(t, errors.Is(err, apperrors.ErrInvalidSessionID))
		f.snapshots.AssertNotCalled(t, "DeleteState", mock.Anything, mock.Anything)
	})
}
