package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mountain-explorer/internal/config"
	"github.com/mountain-explorer/internal/delivery/http/handler"
)

func newTestServer() *Server {
	logger := zap.NewNop()
	return NewServer(
		&config.Config{},
		logger,
		handler.NewMountainHandler(nil, logger),
		handler.NewLocationHandler(nil, logger),
		handler.NewDetailsHandler(nil, logger),
		handler.NewHealthHandler(map[string]handler.HealthChecker{}, logger),
	)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer()

	resp, err := s.App().Test(httptest.NewRequest(nethttp.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newTestServer()

	resp, err := s.App().Test(httptest.NewRequest(nethttp.MethodGet, "/api/v1/volcanoes", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "HTTP_ERROR", body.Error.Code)
}

func TestServer_ValidationBeforeUseCase(t *testing.T) {
	s := newTestServer()

	// nil use cases: validation must reject the request before they are touched
	resp, err := s.App().Test(httptest.NewRequest(nethttp.MethodGet, "/api/v1/mountains/nearby?lat=1", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp, err = s.App().Test(httptest.NewRequest(nethttp.MethodGet, "/api/v1/mountains/0/details", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}
