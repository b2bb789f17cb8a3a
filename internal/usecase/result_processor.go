package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/pkg/utils"
)

// ProcessFeatures превращает сырые объекты Overpass в отсортированный список вершин.
// Объекты без координат отбрасываются, как и безымянные без высоты.
// Результат упорядочен по расстоянию (стабильно) и обрезан до maxResults.
func ProcessFeatures(features []domain.RawFeature, origin domain.Coordinate, maxResults int) []domain.Mountain {
	if maxResults <= 0 {
		return []domain.Mountain{}
	}

	mountains := make([]domain.Mountain, 0, len(features))
	for _, f := range features {
		coord, ok := f.Coordinate()
		if !ok {
			continue
		}

		m := toMountain(f, coord, origin)
		if m.Name == domain.UnnamedPeak && m.ElevationMeters == nil {
			continue
		}
		mountains = append(mountains, m)
	}

	sort.SliceStable(mountains, func(i, j int) bool {
		return mountains[i].DistanceKm < mountains[j].DistanceKm
	})

	if len(mountains) > maxResults {
		mountains = mountains[:maxResults]
	}
	return mountains
}

func toMountain(f domain.RawFeature, coord, origin domain.Coordinate) domain.Mountain {
	name := strings.TrimSpace(f.Tags["name"])
	if name == "" {
		name = domain.UnnamedPeak
	}

	m := domain.Mountain{
		ID:              f.ID,
		Name:            name,
		Lat:             coord.Lat,
		Lon:             coord.Lon,
		ElevationMeters: ParseElevation(f.Tags["ele"]),
		Kind:            domain.ParseMountainKind(f.Tags["natural"]),
		DistanceKm:      utils.DistanceKm(origin, coord),
	}
	if v, ok := f.Tags["wikipedia"]; ok && v != "" {
		m.Wikipedia = &v
	}
	if v, ok := f.Tags["wikidata"]; ok && v != "" {
		m.Wikidata = &v
	}
	return m
}

// ParseElevation разбирает тег ele как целое по ведущим цифрам:
// "3718" -> 3718, "3718.5" -> 3718, "2500 m" -> 2500, "abc" -> nil.
func ParseElevation(raw string) *int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return nil
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &v
}
