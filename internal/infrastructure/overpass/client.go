package overpass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mountain-explorer/internal/config"
	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	defaultRequestTimeout = 30 * time.Second
	// serverTimeoutMargin - запас между таймаутом сервера Overpass и клиентским
	serverTimeoutMargin = 5 * time.Second
	maxErrorBodyLog     = 512
)

// HTTPDoer - сетевой транспорт клиента
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type client struct {
	httpClient HTTPDoer
	endpoints  []string
	timeout    time.Duration
	userAgent  string
	logger     *zap.Logger
}

// Option настраивает клиент
type Option func(*client)

// WithHTTPDoer подменяет HTTP транспорт
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *client) {
		c.httpClient = doer
	}
}

// NewOverpassClient создает клиент Overpass API с перебором эндпоинтов
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger, opts ...Option) (repository.FeatureRepository, error) {
	endpoints := make([]string, 0, len(cfg.Endpoints))
	for _, e := range cfg.Endpoints {
		if e = strings.TrimSpace(e); e != "" {
			endpoints = append(endpoints, e)
		}
	}
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("overpass: at least one endpoint is required")
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	c := &client{
		httpClient: &http.Client{},
		endpoints:  endpoints,
		timeout:    timeout,
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BuildQuery строит Overpass QL запрос вершин и вулканов в радиусе от точки
func BuildQuery(origin domain.Coordinate, radiusMeters int, serverTimeout time.Duration) string {
	secs := int((serverTimeout - serverTimeoutMargin) / time.Second)
	if secs < 1 {
		secs = 1
	}

	around := fmt.Sprintf("(around:%d,%s,%s)",
		radiusMeters,
		strconv.FormatFloat(origin.Lat, 'f', -1, 64),
		strconv.FormatFloat(origin.Lon, 'f', -1, 64),
	)

	return fmt.Sprintf(
		`[out:json][timeout:%d];(node["natural"="peak"]%s;node["natural"="volcano"]%s;);out body;`,
		secs, around, around,
	)
}

// FetchFeatures опрашивает эндпоинты по порядку и возвращает первый успешный ответ.
// Если все эндпоинты отказали, возвращается причина последней попытки.
func (c *client) FetchFeatures(ctx context.Context, origin domain.Coordinate, radiusMeters int) ([]domain.RawFeature, error) {
	query := BuildQuery(origin, radiusMeters, c.timeout)

	c.logger.Debug("Querying Overpass API",
		zap.Float64("lat", origin.Lat),
		zap.Float64("lon", origin.Lon),
		zap.Int("radius_m", radiusMeters),
		zap.Int("endpoints", len(c.endpoints)))

	var lastFailure *domain.QueryFailure
	for i, endpoint := range c.endpoints {
		features, failure := c.attempt(ctx, endpoint, query)
		if failure == nil {
			c.logger.Debug("Overpass query successful",
				zap.String("endpoint", endpoint),
				zap.Int("elements", len(features)))
			return features, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		c.logger.Warn("Overpass endpoint failed",
			zap.String("endpoint", endpoint),
			zap.Int("attempt", i+1),
			zap.String("reason", string(failure.Reason)),
			zap.Error(failure))
		lastFailure = failure
	}

	c.logger.Error("All Overpass endpoints failed",
		zap.String("reason", string(lastFailure.Reason)),
		zap.Error(lastFailure))
	return nil, lastFailure
}

type response struct {
	Elements *[]element `json:"elements"`
}

type element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  *float64          `json:"lat"`
	Lon  *float64          `json:"lon"`
	Tags map[string]string `json:"tags"`
}

func (c *client) attempt(ctx context.Context, endpoint, query string) ([]domain.RawFeature, *domain.QueryFailure) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &domain.QueryFailure{Reason: domain.ReasonGeneric, Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportFailure(attemptCtx, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLog))
		c.logger.Debug("Overpass API returned error",
			zap.String("endpoint", endpoint),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, &domain.QueryFailure{
			Reason:     domain.ReasonForStatus(resp.StatusCode),
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
		}
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if attemptCtx.Err() != nil {
			return nil, transportFailure(attemptCtx, endpoint, err)
		}
		return nil, &domain.QueryFailure{Reason: domain.ReasonUnexpectedPayload, Endpoint: endpoint, Err: err}
	}
	if parsed.Elements == nil {
		return nil, &domain.QueryFailure{
			Reason:   domain.ReasonUnexpectedPayload,
			Endpoint: endpoint,
			Err:      errors.New("response has no elements array"),
		}
	}

	features := make([]domain.RawFeature, 0, len(*parsed.Elements))
	for _, el := range *parsed.Elements {
		features = append(features, domain.RawFeature{
			ID:   el.ID,
			Lat:  el.Lat,
			Lon:  el.Lon,
			Tags: el.Tags,
		})
	}
	return features, nil
}

func transportFailure(attemptCtx context.Context, endpoint string, err error) *domain.QueryFailure {
	reason := domain.ReasonGeneric
	var netErr net.Error
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		reason = domain.ReasonNetworkTimeout
	}
	return &domain.QueryFailure{Reason: reason, Endpoint: endpoint, Err: err}
}
