package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mountain-explorer/internal/config"
	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/domain/repository"
	apperrors "github.com/mountain-explorer/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient  *http.Client
	urlTemplate string
	userAgent   string
	logger      *zap.Logger
}

// NewWikipediaClient создает клиент REST API Wikipedia
func NewWikipediaClient(cfg *config.WikipediaConfig, logger *zap.Logger) repository.EncyclopediaRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		urlTemplate: cfg.BaseURLTemplate,
		userAgent:   cfg.UserAgent,
		logger:      logger,
	}
}

func (c *client) baseURL(lang string) string {
	if strings.Contains(c.urlTemplate, "%s") {
		return fmt.Sprintf(c.urlTemplate, lang)
	}
	return c.urlTemplate
}

type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// SummaryByTitle возвращает краткое содержание статьи по заголовку
func (c *client) SummaryByTitle(ctx context.Context, lang, title string) (*domain.Summary, error) {
	reqURL := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", c.baseURL(lang), url.PathEscape(title))

	var resp summaryResponse
	if err := c.get(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		Title:   resp.Title,
		Extract: resp.Extract,
		PageURL: resp.ContentURLs.Desktop.Page,
	}
	if resp.Thumbnail != nil {
		summary.ThumbnailURL = resp.Thumbnail.Source
	}
	return summary, nil
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// SearchTitle ищет статью полнотекстовым поиском и возвращает заголовок первой
func (c *client) SearchTitle(ctx context.Context, lang, query string) (string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {"1"},
		"format":   {"json"},
	}
	reqURL := c.baseURL(lang) + "/w/api.php?" + params.Encode()

	var resp searchResponse
	if err := c.get(ctx, reqURL, &resp); err != nil {
		return "", err
	}

	if len(resp.Query.Search) == 0 || resp.Query.Search[0].Title == "" {
		c.logger.Debug("Wikipedia search returned no hits",
			zap.String("lang", lang),
			zap.String("query", query))
		return "", apperrors.ErrSummaryNotFound
	}

	return strings.ReplaceAll(resp.Query.Search[0].Title, " ", "_"), nil
}

func (c *client) get(ctx context.Context, reqURL string, out interface{}) error {
	c.logger.Debug("Calling Wikipedia API", zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.ErrSummaryNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("Wikipedia API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("wikipedia API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
