package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mountain-explorer/internal/config"
	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/domain/repository"
	apperrors "github.com/mountain-explorer/internal/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewNominatimClient создает клиент Nominatim с ограничением частоты запросов
// (политика OSM: не более 1 запроса в секунду и обязательный User-Agent).
func NewNominatimClient(cfg *config.NominatimConfig, logger *zap.Logger) repository.GeocoderRepository {
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}

	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger,
	}
}

type result struct {
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	DisplayName string          `json:"display_name"`
	Address     *domain.Address `json:"address"`
	Error       string          `json:"error"`
}

func (r result) toPlace() (*domain.Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lat %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lon %q: %w", r.Lon, err)
	}
	return &domain.Place{
		Lat:         lat,
		Lon:         lon,
		DisplayName: r.DisplayName,
		Address:     r.Address,
	}, nil
}

// Search выполняет прямое геокодирование и возвращает лучшее совпадение
func (c *client) Search(ctx context.Context, query string) (*domain.Place, error) {
	params := url.Values{
		"format":         {"json"},
		"q":              {query},
		"limit":          {"1"},
		"addressdetails": {"1"},
	}

	var results []result
	if err := c.get(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		c.logger.Debug("Nominatim search returned no results", zap.String("query", query))
		return nil, apperrors.ErrPlaceNotFound
	}

	place, err := results[0].toPlace()
	if err != nil {
		c.logger.Error("Failed to parse Nominatim result", zap.Error(err))
		return nil, err
	}
	return place, nil
}

// Reverse выполняет обратное геокодирование (zoom=10 - уровень города)
func (c *client) Reverse(ctx context.Context, coord domain.Coordinate) (*domain.Place, error) {
	params := url.Values{
		"format":         {"json"},
		"lat":            {strconv.FormatFloat(coord.Lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(coord.Lon, 'f', -1, 64)},
		"zoom":           {"10"},
		"addressdetails": {"1"},
	}

	var res result
	if err := c.get(ctx, "/reverse", params, &res); err != nil {
		return nil, err
	}
	if res.Error != "" {
		c.logger.Debug("Nominatim reverse returned error",
			zap.Float64("lat", coord.Lat),
			zap.Float64("lon", coord.Lon),
			zap.String("error", res.Error))
		return nil, apperrors.ErrPlaceNotFound
	}

	place, err := res.toPlace()
	if err != nil {
		// координаты в ответе не обязательны для подписи
		place = &domain.Place{Lat: coord.Lat, Lon: coord.Lon, DisplayName: res.DisplayName, Address: res.Address}
	}
	return place, nil
}

func (c *client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("nominatim rate limiter: %w", err)
	}

	reqURL := c.baseURL + path + "?" + params.Encode()
	c.logger.Debug("Calling Nominatim API", zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("Nominatim API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("nominatim API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Nominatim API call successful",
		zap.String("path", path),
		zap.Duration("took", time.Since(start)))
	return nil
}
