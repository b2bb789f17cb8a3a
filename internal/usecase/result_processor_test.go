package usecase

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/mountain-explorer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var teideOrigin = domain.Coordinate{Lat: 28.2724, Lon: -16.6425}

func feature(id int64, lat, lon float64, tags map[string]string) domain.RawFeature {
	return domain.RawFeature{ID: id, Lat: &lat, Lon: &lon, Tags: tags}
}

func TestParseElevation(t *testing.T) {
	tests := []struct {
		raw      string
		expected *int
	}{
		{"3718", intPtr(3718)},
		{"3718.5", intPtr(3718)},
		{"2500 m", intPtr(2500)},
		{" 120", intPtr(120)},
		{"-28", intPtr(-28)},
		{"3404;3375", intPtr(3404)},
		{"abc", nil},
		{"", nil},
		{"-", nil},
		{"~3000", nil},
		{"99999999999999999999999", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseElevation(tt.raw))
		})
	}
}

func TestProcessFeatures_Mapping(t *testing.T) {
	features := []domain.RawFeature{
		feature(1, 28.2724, -16.6425, map[string]string{"natural": "volcano", "name": "Teide", "ele": "3718", "wikipedia": "es:Teide", "wikidata": "Q152"}),
	}

	result := ProcessFeatures(features, teideOrigin, 30)
	require.Len(t, result, 1)

	m := result[0]
	assert.Equal(t, int64(1), m.ID)
	assert.Equal(t, "Teide", m.Name)
	assert.Equal(t, domain.KindVolcano, m.Kind)
	require.NotNil(t, m.ElevationMeters)
	assert.Equal(t, 3718, *m.ElevationMeters)
	assert.Equal(t, 0.0, m.DistanceKm)
	require.NotNil(t, m.Wikipedia)
	assert.Equal(t, "es:Teide", *m.Wikipedia)
	require.NotNil(t, m.Wikidata)
	assert.Equal(t, "Q152", *m.Wikidata)
}

func TestProcessFeatures_Filtering(t *testing.T) {
	t.Run("empty tags dropped", func(t *testing.T) {
		result := ProcessFeatures([]domain.RawFeature{feature(1, 28.3, -16.6, map[string]string{})}, teideOrigin, 30)
		assert.Empty(t, result)
	})

	t.Run("nil tags dropped", func(t *testing.T) {
		result := ProcessFeatures([]domain.RawFeature{feature(1, 28.3, -16.6, nil)}, teideOrigin, 30)
		assert.Empty(t, result)
	})

	t.Run("elevation without name kept with sentinel", func(t *testing.T) {
		result := ProcessFeatures([]domain.RawFeature{feature(1, 28.3, -16.6, map[string]string{"ele": "3000"})}, teideOrigin, 30)
		require.Len(t, result, 1)
		assert.Equal(t, domain.UnnamedPeak, result[0].Name)
		require.NotNil(t, result[0].ElevationMeters)
		assert.Equal(t, 3000, *result[0].ElevationMeters)
		assert.Equal(t, domain.KindPeak, result[0].Kind)
	})

	t.Run("unparsable elevation kept only with name", func(t *testing.T) {
		features := []domain.RawFeature{
			feature(1, 28.3, -16.6, map[string]string{"ele": "abc", "name": "Guajara"}),
			feature(2, 28.3, -16.6, map[string]string{"ele": "abc"}),
		}
		result := ProcessFeatures(features, teideOrigin, 30)
		require.Len(t, result, 1)
		assert.Equal(t, "Guajara", result[0].Name)
		assert.Nil(t, result[0].ElevationMeters)
	})

	t.Run("invalid coordinates dropped", func(t *testing.T) {
		lat := 28.3
		badLon := 200.0
		features := []domain.RawFeature{
			{ID: 1, Lat: &lat, Tags: map[string]string{"name": "No lon"}},
			{ID: 2, Tags: map[string]string{"name": "No coords"}},
			{ID: 3, Lat: &lat, Lon: &badLon, Tags: map[string]string{"name": "Out of range"}},
			feature(4, 28.3, -16.6, map[string]string{"name": "Valid"}),
		}
		result := ProcessFeatures(features, teideOrigin, 30)
		require.Len(t, result, 1)
		assert.Equal(t, int64(4), result[0].ID)
	})

	t.Run("volcano classification", func(t *testing.T) {
		result := ProcessFeatures([]domain.RawFeature{
			feature(1, 28.3, -16.6, map[string]string{"natural": "volcano", "name": "Teide"}),
			feature(2, 28.3, -16.6, map[string]string{"name": "Roque"}),
		}, teideOrigin, 30)
		require.Len(t, result, 2)
		assert.Equal(t, domain.KindVolcano, result[0].Kind)
		assert.Equal(t, domain.KindPeak, result[1].Kind)
	})
}

func TestProcessFeatures_SortAndCap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	features := make([]domain.RawFeature, 0, 200)
	for i := 0; i < 200; i++ {
		features = append(features, feature(int64(i), 28+rng.Float64(), -17+rng.Float64(), map[string]string{"name": "P", "ele": "1000"}))
	}

	for _, max := range []int{1, 5, 30, 500} {
		result := ProcessFeatures(features, teideOrigin, max)
		assert.LessOrEqual(t, len(result), max)
		assert.True(t, sort.SliceIsSorted(result, func(i, j int) bool {
			return result[i].DistanceKm < result[j].DistanceKm
		}))
	}

	assert.Empty(t, ProcessFeatures(features, teideOrigin, 0))
	assert.Empty(t, ProcessFeatures(features, teideOrigin, -1))
}

func TestProcessFeatures_PermutationInvariant(t *testing.T) {
	features := []domain.RawFeature{
		feature(1, 28.50, -16.50, map[string]string{"name": "A"}),
		feature(2, 28.30, -16.60, map[string]string{"name": "B"}),
		feature(3, 28.90, -16.10, map[string]string{"name": "C"}),
		feature(4, 28.28, -16.64, map[string]string{"name": "D"}),
	}
	reversed := []domain.RawFeature{features[3], features[2], features[1], features[0]}

	a := ProcessFeatures(features, teideOrigin, 30)
	b := ProcessFeatures(reversed, teideOrigin, 30)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(4), a[0].ID)
}

func TestProcessFeatures_StableTies(t *testing.T) {
	features := []domain.RawFeature{
		feature(10, 28.5, -16.5, map[string]string{"name": "First"}),
		feature(11, 28.5, -16.5, map[string]string{"name": "Second"}),
	}

	for i := 0; i < 5; i++ {
		result := ProcessFeatures(features, teideOrigin, 30)
		require.Len(t, result, 2)
		assert.Equal(t, int64(10), result[0].ID)
		assert.Equal(t, int64(11), result[1].ID)
	}
}

func intPtr(v int) *int {
	return &v
}
