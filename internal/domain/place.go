package domain

import "strings"

const (
	AddressNotAvailable  = "Address not available"
	LocationNotAvailable = "Location not available"
)

// Address - детали адреса из ответа Nominatim (addressdetails=1)
type Address struct {
	City    string `json:"city,omitempty"`
	Town    string `json:"town,omitempty"`
	Village string `json:"village,omitempty"`
	County  string `json:"county,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

func (a Address) locality(withCounty bool) string {
	switch {
	case a.City != "":
		return a.City
	case a.Town != "":
		return a.Town
	case a.Village != "":
		return a.Village
	case withCounty:
		return a.County
	}
	return ""
}

func (a Address) join(withCounty bool) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.locality(withCounty), a.State, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Label - короткая подпись "город, регион, страна" для выбранной точки
func (a Address) Label() string {
	if s := a.join(false); s != "" {
		return s
	}
	return AddressNotAvailable
}

// Place - результат прямого или обратного геокодирования
type Place struct {
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	DisplayName string   `json:"display_name"`
	Address     *Address `json:"address,omitempty"`
}

// Coordinate возвращает координату места
func (p Place) Coordinate() Coordinate {
	return Coordinate{Lat: p.Lat, Lon: p.Lon}
}

// Label - подпись места для страницы деталей.
// Использует county, если нет населенного пункта, затем display_name.
func (p Place) Label() string {
	if p.Address != nil {
		if s := p.Address.join(true); s != "" {
			return s
		}
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return LocationNotAvailable
}
