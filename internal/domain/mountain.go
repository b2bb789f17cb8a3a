package domain

// UnnamedPeak - имя-заглушка для вершин без тега name
const UnnamedPeak = "Unnamed Peak"

const (
	DefaultSearchRadiusMeters = 50000
	DefaultMaxResults         = 30
)

// MountainKind - тип природного объекта
type MountainKind string

const (
	KindPeak    MountainKind = "peak"
	KindVolcano MountainKind = "volcano"
)

// ParseMountainKind возвращает Volcano для "volcano", иначе Peak
func ParseMountainKind(natural string) MountainKind {
	if natural == string(KindVolcano) {
		return KindVolcano
	}
	return KindPeak
}

// RawFeature - элемент ответа Overpass API как есть
type RawFeature struct {
	ID   int64             `json:"id"`
	Lat  *float64          `json:"lat,omitempty"`
	Lon  *float64          `json:"lon,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
}

// Coordinate возвращает координату элемента, false если координаты нет
func (f RawFeature) Coordinate() (Coordinate, bool) {
	if f.Lat == nil || f.Lon == nil {
		return Coordinate{}, false
	}
	c := Coordinate{Lat: *f.Lat, Lon: *f.Lon}
	return c, c.Valid()
}

// Mountain - нормализованная вершина относительно точки поиска
type Mountain struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	Lat             float64      `json:"lat"`
	Lon             float64      `json:"lon"`
	ElevationMeters *int         `json:"elevation,omitempty"`
	Kind            MountainKind `json:"type"`
	DistanceKm      float64      `json:"distance_km"`
	Wikipedia       *string      `json:"wikipedia,omitempty"`
	Wikidata        *string      `json:"wikidata,omitempty"`
}

// Coordinate возвращает координату вершины
func (m Mountain) Coordinate() Coordinate {
	return Coordinate{Lat: m.Lat, Lon: m.Lon}
}

// IsNamed - true если у вершины есть собственное имя
func (m Mountain) IsNamed() bool {
	return m.Name != "" && m.Name != UnnamedPeak
}

// SearchQuery - параметры поиска вершин вокруг точки
type SearchQuery struct {
	Origin       Coordinate `json:"origin"`
	RadiusMeters int        `json:"radius_meters"`
	MaxResults   int        `json:"max_results"`
}

// WithDefaults подставляет значения по умолчанию для незаданных полей
func (q SearchQuery) WithDefaults() SearchQuery {
	if q.RadiusMeters == 0 {
		q.RadiusMeters = DefaultSearchRadiusMeters
	}
	if q.MaxResults == 0 {
		q.MaxResults = DefaultMaxResults
	}
	return q
}
