package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamMountainSearch = "stream:mountains:search"
	StreamMountainFound  = "stream:mountains:found"
)

// MountainSearchEvent - входящий запрос на поиск вершин
type MountainSearchEvent struct {
	RequestID    uuid.UUID `json:"request_id"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	RadiusMeters int       `json:"radius_meters,omitempty"`
	MaxResults   int       `json:"max_results,omitempty"`
}

// HasCoordinates проверяет наличие обеих координат
func (e *MountainSearchEvent) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// Query строит SearchQuery из события
func (e *MountainSearchEvent) Query() SearchQuery {
	q := SearchQuery{
		RadiusMeters: e.RadiusMeters,
		MaxResults:   e.MaxResults,
	}
	if e.HasCoordinates() {
		q.Origin = Coordinate{Lat: *e.Latitude, Lon: *e.Longitude}
	}
	return q.WithDefaults()
}

// MountainSearchDoneEvent - результат поиска
type MountainSearchDoneEvent struct {
	RequestID uuid.UUID     `json:"request_id"`
	Mountains []Mountain    `json:"mountains,omitempty"`
	Total     int           `json:"total"`
	Reason    FailureReason `json:"reason,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
