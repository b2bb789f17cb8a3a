package dto

import "github.com/mountain-explorer/internal/domain"

// NearbyMountainsRequest - поиск вершин вокруг точки
type NearbyMountainsRequest struct {
	Lat    *float64 `query:"lat" json:"lat" validate:"required,latitude"`
	Lon    *float64 `query:"lon" json:"lon" validate:"required,longitude"`
	Radius int      `query:"radius" json:"radius" validate:"omitempty,min=1,max=200000"` // meters
	Limit  int      `query:"limit" json:"limit" validate:"omitempty,min=1,max=200"`
}

// Query строит доменный запрос (нулевые поля заполняются значениями по умолчанию)
func (r NearbyMountainsRequest) Query() domain.SearchQuery {
	q := domain.SearchQuery{RadiusMeters: r.Radius, MaxResults: r.Limit}
	if r.Lat != nil && r.Lon != nil {
		q.Origin = domain.Coordinate{Lat: *r.Lat, Lon: *r.Lon}
	}
	return q
}

// NearbyMountainsResponse - найденные вершины
type NearbyMountainsResponse struct {
	Origin    domain.Coordinate `json:"origin"`
	Radius    int               `json:"radius"`
	Mountains []domain.Mountain `json:"mountains"`
	Total     int               `json:"total"`
}

// SelectLocationRequest - выбор точки (геолокация устройства или клик по карте)
type SelectLocationRequest struct {
	Lat            *float64 `json:"lat" validate:"required,latitude"`
	Lon            *float64 `json:"lon" validate:"required,longitude"`
	IsUserLocation bool     `json:"is_user_location"`
	SessionID      string   `json:"session_id,omitempty" validate:"omitempty,uuid"`
	Radius         int      `json:"radius,omitempty" validate:"omitempty,min=1,max=200000"`
	Limit          int      `json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
}

// SearchPlaceRequest - поиск места по тексту
type SearchPlaceRequest struct {
	Query     string `query:"q" json:"q" validate:"required,max=200"`
	SessionID string `query:"session_id" json:"session_id,omitempty" validate:"omitempty,uuid"`
	Radius    int    `query:"radius" json:"radius,omitempty" validate:"omitempty,min=1,max=200000"`
	Limit     int    `query:"limit" json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
}

// LocationResponse - результат выбора точки
type LocationResponse struct {
	Origin         domain.Coordinate `json:"origin"`
	IsUserLocation bool              `json:"is_user_location"`
	Coordinates    string            `json:"coordinates"`
	Address        string            `json:"address"`
	Mountains      []domain.Mountain `json:"mountains"`
	Total          int               `json:"total"`
	Message        string            `json:"message"`
	SessionID      string            `json:"session_id,omitempty"`
}

// SaveStateRequest - явное сохранение состояния сессии
type SaveStateRequest struct {
	Origin         Point             `json:"origin" validate:"required"`
	Address        string            `json:"address" validate:"max=500"`
	IsUserLocation bool              `json:"is_user_location"`
	Radius         int               `json:"radius,omitempty" validate:"omitempty,min=1,max=200000"`
	Limit          int               `json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
	Mountains      []domain.Mountain `json:"mountains" validate:"max=200"`
}

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}
