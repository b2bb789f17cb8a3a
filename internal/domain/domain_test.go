package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate_Valid(t *testing.T) {
	assert.True(t, Coordinate{Lat: 40.4168, Lon: -3.7038}.Valid())
	assert.True(t, Coordinate{Lat: -90, Lon: 180}.Valid())
	assert.False(t, Coordinate{Lat: 90.1, Lon: 0}.Valid())
	assert.False(t, Coordinate{Lat: 0, Lon: -180.5}.Valid())
	assert.False(t, Coordinate{Lat: math.NaN(), Lon: 0}.Valid())
	assert.False(t, Coordinate{Lat: 0, Lon: math.Inf(1)}.Valid())
}

func TestRawFeature_Coordinate(t *testing.T) {
	lat, lon := 28.2724, -16.6425

	c, ok := RawFeature{ID: 1, Lat: &lat, Lon: &lon}.Coordinate()
	assert.True(t, ok)
	assert.Equal(t, Coordinate{Lat: lat, Lon: lon}, c)

	_, ok = RawFeature{ID: 2, Lat: &lat}.Coordinate()
	assert.False(t, ok)

	bad := 200.0
	_, ok = RawFeature{ID: 3, Lat: &lat, Lon: &bad}.Coordinate()
	assert.False(t, ok)
}

func TestParseMountainKind(t *testing.T) {
	assert.Equal(t, KindVolcano, ParseMountainKind("volcano"))
	assert.Equal(t, KindPeak, ParseMountainKind("peak"))
	assert.Equal(t, KindPeak, ParseMountainKind(""))
	assert.Equal(t, KindPeak, ParseMountainKind("hill"))
}

func TestSearchQuery_WithDefaults(t *testing.T) {
	q := SearchQuery{Origin: Coordinate{Lat: 1, Lon: 2}}.WithDefaults()
	assert.Equal(t, 50000, q.RadiusMeters)
	assert.Equal(t, 30, q.MaxResults)

	q = SearchQuery{RadiusMeters: 1000, MaxResults: 3}.WithDefaults()
	assert.Equal(t, 1000, q.RadiusMeters)
	assert.Equal(t, 3, q.MaxResults)
}

func TestQueryFailure(t *testing.T) {
	cause := errors.New("boom")
	err := error(&QueryFailure{
		Reason:     ReasonUpstreamBusy,
		Endpoint:   "https://overpass.example/api/interpreter",
		StatusCode: 504,
		Err:        cause,
	})

	var qf *QueryFailure
	require.True(t, errors.As(err, &qf))
	assert.Equal(t, ReasonUpstreamBusy, qf.Reason)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "upstream-busy")
	assert.Contains(t, err.Error(), "status 504")
}

func TestReasonForStatus(t *testing.T) {
	assert.Equal(t, ReasonRateLimited, ReasonForStatus(429))
	assert.Equal(t, ReasonUpstreamBusy, ReasonForStatus(504))
	assert.Equal(t, ReasonMalformedQuery, ReasonForStatus(400))
	assert.Equal(t, ReasonGeneric, ReasonForStatus(500))
	assert.Equal(t, ReasonGeneric, ReasonForStatus(503))
}

func TestAddress_Label(t *testing.T) {
	tests := []struct {
		name     string
		address  Address
		expected string
	}{
		{"city state country", Address{City: "Madrid", State: "Comunidad de Madrid", Country: "España"}, "Madrid, Comunidad de Madrid, España"},
		{"town preferred over village", Address{Town: "Benasque", Village: "Cerler", Country: "España"}, "Benasque, España"},
		{"county ignored", Address{County: "Ribagorza", Country: "España"}, "España"},
		{"empty", Address{}, AddressNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.address.Label())
		})
	}
}

func TestPlace_Label(t *testing.T) {
	p := Place{Address: &Address{County: "Ribagorza", State: "Aragón", Country: "España"}}
	assert.Equal(t, "Ribagorza, Aragón, España", p.Label())

	p = Place{DisplayName: "Aneto, Benasque, Huesca"}
	assert.Equal(t, "Aneto, Benasque, Huesca", p.Label())

	p = Place{Address: &Address{}}
	assert.Equal(t, LocationNotAvailable, p.Label())
}

func TestParseWikipediaRef(t *testing.T) {
	ref, ok := ParseWikipediaRef("es:Pico del Teide")
	require.True(t, ok)
	assert.Equal(t, WikipediaRef{Lang: "es", Title: "Pico del Teide"}, ref)

	ref, ok = ParseWikipediaRef(" en : Aneto ")
	require.True(t, ok)
	assert.Equal(t, "en", ref.Lang)
	assert.Equal(t, "Aneto", ref.Title)

	for _, tag := range []string{"", "Aneto", ":Aneto", "es:", "es:  "} {
		_, ok := ParseWikipediaRef(tag)
		assert.False(t, ok, tag)
	}
}
