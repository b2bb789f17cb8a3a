package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/domain/repository"
	"github.com/mountain-explorer/internal/pkg/errors"
	"github.com/mountain-explorer/internal/usecase/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMountainName = "Mountain"
	notAvailable        = "Not available"
	historyFallback     = "History is not available automatically. If this mountain has a Wikipedia page, " +
		"you can add the OSM 'wikipedia' tag to improve this section."
	fallbackImageURL = "https://source.unsplash.com/featured/1200x800/?mountain,peak,"
)

// DetailsUseCase собирает страницу деталей вершины: место, статья, изображение, ссылки
type DetailsUseCase struct {
	cacheRepo       repository.CacheRepository
	geocoder        repository.GeocoderRepository
	encyclopedia    repository.EncyclopediaRepository
	logger          *zap.Logger
	enrichmentTTL   time.Duration
	defaultLanguage string
	publicBaseURL   string
}

// NewDetailsUseCase создает новый экземпляр DetailsUseCase
func NewDetailsUseCase(
	cacheRepo repository.CacheRepository,
	geocoder repository.GeocoderRepository,
	encyclopedia repository.EncyclopediaRepository,
	logger *zap.Logger,
	enrichmentTTL time.Duration,
	defaultLanguage string,
	publicBaseURL string,
) *DetailsUseCase {
	if defaultLanguage == "" {
		defaultLanguage = "es"
	}
	return &DetailsUseCase{
		cacheRepo:       cacheRepo,
		geocoder:        geocoder,
		encyclopedia:    encyclopedia,
		logger:          logger,
		enrichmentTTL:   enrichmentTTL,
		defaultLanguage: defaultLanguage,
		publicBaseURL:   strings.TrimRight(publicBaseURL, "/"),
	}
}

// GetDetails возвращает обогащенную информацию о вершине.
// Все внешние запросы необязательны: при ошибке подставляются заглушки.
func (uc *DetailsUseCase) GetDetails(ctx context.Context, req dto.DetailsRequest) (*dto.MountainDetailsResponse, error) {
	if req.ID <= 0 {
		return nil, errors.ErrInvalidRequest
	}

	cached, err := uc.cacheRepo.GetMountain(ctx, req.ID)
	if err != nil {
		uc.logger.Warn("Failed to get mountain from cache", zap.Int64("id", req.ID), zap.Error(err))
	}

	mountain, hasCoords := mergeMountain(cached, req)

	var (
		place   = domain.LocationNotAvailable
		summary *domain.Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if hasCoords {
			place = uc.placeLabel(gctx, mountain.Coordinate())
		}
		return nil
	})
	g.Go(func() error {
		summary = uc.findSummary(gctx, mountain)
		return nil
	})
	_ = g.Wait()

	resp := &dto.MountainDetailsResponse{
		Mountain:       mountain,
		Place:          place,
		ElevationLabel: FormatElevation(mountain.ElevationMeters),
		CoordsLabel:    notAvailable,
		ShareURL:       uc.shareURL(mountain, hasCoords),
		ShareTitle:     "Mountain: " + mountain.Name,
		History:        historyFallback,
		ImageURL:       fallbackImageURL + url.QueryEscape(mountain.Name),
	}
	if hasCoords {
		resp.CoordsLabel = fmt.Sprintf("%.4f, %.4f", mountain.Lat, mountain.Lon)
		resp.CopyText = fmt.Sprintf("%.6f, %.6f", mountain.Lat, mountain.Lon)
		resp.OSMURL = osmURL(mountain.Lat, mountain.Lon)
	}
	resp.ShareText = fmt.Sprintf("Elevation: %s | Coordinates: %s", resp.ElevationLabel, resp.CoordsLabel)

	if summary != nil && summary.Extract != "" {
		resp.History = summary.Extract
		resp.SourceURL = summary.PageURL
		if summary.ThumbnailURL != "" {
			resp.ImageURL = summary.ThumbnailURL
		}
	}

	return resp, nil
}

// mergeMountain объединяет сохраненную после поиска вершину с параметрами запроса.
// Параметры запроса имеют приоритет.
func mergeMountain(cached *domain.Mountain, req dto.DetailsRequest) (domain.Mountain, bool) {
	var m domain.Mountain
	hasCoords := false
	if cached != nil {
		m = *cached
		hasCoords = m.Coordinate().Valid()
	}
	m.ID = req.ID

	name := req.Name
	if strings.TrimSpace(name) == "" {
		name = m.Name
	}
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		name = defaultMountainName
	}
	m.Name = name

	if req.Lat != nil && req.Lon != nil {
		c := domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
		if c.Valid() {
			m.Lat, m.Lon = c.Lat, c.Lon
			hasCoords = true
		}
	}

	if req.Elevation != nil {
		ele := *req.Elevation
		m.ElevationMeters = &ele
	}

	switch {
	case req.Type != "":
		m.Kind = domain.ParseMountainKind(req.Type)
	case m.Kind == "":
		m.Kind = domain.KindPeak
	}

	return m, hasCoords
}

func (uc *DetailsUseCase) placeLabel(ctx context.Context, c domain.Coordinate) string {
	place, err := uc.cacheRepo.GetPlace(ctx, c)
	if err != nil {
		uc.logger.Warn("Failed to get place from cache", zap.Error(err))
	}
	if place == nil {
		place, err = uc.geocoder.Reverse(ctx, c)
		if err != nil {
			uc.logger.Warn("Reverse geocoding failed", zap.Error(err))
			return domain.LocationNotAvailable
		}
		if err := uc.cacheRepo.SetPlace(ctx, c, place, uc.enrichmentTTL); err != nil {
			uc.logger.Warn("Failed to cache place", zap.Error(err))
		}
	}
	return place.Label()
}

// findSummary ищет статью по тегу wikipedia, иначе полнотекстовым поиском по имени
func (uc *DetailsUseCase) findSummary(ctx context.Context, m domain.Mountain) *domain.Summary {
	var ref domain.WikipediaRef
	ok := false
	if m.Wikipedia != nil {
		ref, ok = domain.ParseWikipediaRef(*m.Wikipedia)
	}

	if !ok {
		if !m.IsNamed() || m.Name == defaultMountainName {
			return nil
		}
		title, err := uc.encyclopedia.SearchTitle(ctx, uc.defaultLanguage, m.Name)
		if err != nil {
			uc.logEnrichmentError("Wikipedia search failed", err, zap.String("name", m.Name))
			return nil
		}
		ref = domain.WikipediaRef{Lang: uc.defaultLanguage, Title: title}
	}

	summary, err := uc.cacheRepo.GetSummary(ctx, ref.Lang, ref.Title)
	if err != nil {
		uc.logger.Warn("Failed to get summary from cache", zap.Error(err))
	}
	if summary != nil {
		return summary
	}

	summary, err = uc.encyclopedia.SummaryByTitle(ctx, ref.Lang, ref.Title)
	if err != nil {
		uc.logEnrichmentError("Wikipedia summary failed", err,
			zap.String("lang", ref.Lang),
			zap.String("title", ref.Title))
		return nil
	}
	if err := uc.cacheRepo.SetSummary(ctx, ref.Lang, ref.Title, summary, uc.enrichmentTTL); err != nil {
		uc.logger.Warn("Failed to cache summary", zap.Error(err))
	}
	return summary
}

func (uc *DetailsUseCase) logEnrichmentError(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if stderrors.Is(err, errors.ErrSummaryNotFound) {
		uc.logger.Debug(msg, fields...)
		return
	}
	uc.logger.Warn(msg, fields...)
}

func (uc *DetailsUseCase) shareURL(m domain.Mountain, hasCoords bool) string {
	p := url.Values{}
	p.Set("id", strconv.FormatInt(m.ID, 10))
	p.Set("name", m.Name)
	if hasCoords {
		p.Set("lat", strconv.FormatFloat(m.Lat, 'f', -1, 64))
		p.Set("lon", strconv.FormatFloat(m.Lon, 'f', -1, 64))
	}
	if m.ElevationMeters != nil {
		p.Set("ele", strconv.Itoa(*m.ElevationMeters))
	}
	p.Set("type", string(m.Kind))
	return uc.publicBaseURL + "/mountains/details?" + p.Encode()
}

func osmURL(lat, lon float64) string {
	la := strconv.FormatFloat(lat, 'f', -1, 64)
	lo := strconv.FormatFloat(lon, 'f', -1, 64)
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s#map=14/%s/%s", la, lo, la, lo)
}

// FormatElevation форматирует высоту с разделителем тысяч: 3718 -> "3,718 m"
func FormatElevation(ele *int) string {
	if ele == nil {
		return notAvailable
	}
	v := *ele
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := strconv.Itoa(v)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + " m"
}
