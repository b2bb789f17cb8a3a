package dto

import "github.com/mountain-explorer/internal/domain"

// DetailsRequest - параметры страницы деталей (совпадают с параметрами ссылки "поделиться")
type DetailsRequest struct {
	ID        int64    `params:"id" query:"id" validate:"required,min=1"`
	Name      string   `query:"name" validate:"max=200"`
	Lat       *float64 `query:"lat" validate:"omitempty,latitude"`
	Lon       *float64 `query:"lon" validate:"omitempty,longitude"`
	Elevation *int     `query:"ele"`
	Type      string   `query:"type" validate:"mountain_kind"`
}

// MountainDetailsResponse - обогащенная информация о вершине
type MountainDetailsResponse struct {
	Mountain       domain.Mountain `json:"mountain"`
	Place          string          `json:"place"`
	ElevationLabel string          `json:"elevation_label"`
	CoordsLabel    string          `json:"coords_label"`
	CopyText       string          `json:"copy_text,omitempty"`
	OSMURL         string          `json:"osm_url,omitempty"`
	ShareURL       string          `json:"share_url"`
	ShareTitle     string          `json:"share_title"`
	ShareText      string          `json:"share_text"`
	History        string          `json:"history"`
	SourceURL      string          `json:"source_url,omitempty"`
	ImageURL       string          `json:"image_url"`
}
