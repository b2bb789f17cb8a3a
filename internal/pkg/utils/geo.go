package utils

import (
	"math"

	"github.com/mountain-explorer/internal/domain"
)

const (
	earthRadiusKm = 6371.0

	MaxSearchRadiusMeters = 200000
)

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	// у почти противоположных точек ошибка округления дает a > 1
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceKm - расстояние по большому кругу, округленное до 2 знаков
func DistanceKm(a, b domain.Coordinate) float64 {
	return RoundTo(HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon), 2)
}

// RoundTo округляет до places знаков после запятой
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ValidateRadiusMeters проверяет радиус поиска (1 м - 200 км)
func ValidateRadiusMeters(radius int) bool {
	return radius > 0 && radius <= MaxSearchRadiusMeters
}
