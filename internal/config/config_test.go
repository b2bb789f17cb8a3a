package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, defaultOverpassEndpoints, cfg.Overpass.Endpoints)
	assert.Equal(t, 30*time.Second, cfg.Overpass.RequestTimeout)
	assert.Equal(t, 50000, cfg.Search.DefaultRadiusMeters)
	assert.Equal(t, 30, cfg.Search.DefaultMaxResults)
	assert.Equal(t, 1.0, cfg.Nominatim.RequestsPerSec)
	assert.Equal(t, "es", cfg.Wikipedia.DefaultLanguage)
	assert.Equal(t, "mountain-search-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.Equal(t, 20, cfg.Redis.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Empty(t, cfg.Server.CORSOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("API_PORT", "9090")
	t.Setenv("OVERPASS_ENDPOINTS", " https://a.example/api/interpreter , ,https://b.example/api/interpreter")
	t.Setenv("OVERPASS_TIMEOUT", "12")
	t.Setenv("PUBLIC_BASE_URL", "https://mountains.example/")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://mountains.example,https://www.mountains.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example/api/interpreter", "https://b.example/api/interpreter"}, cfg.Overpass.Endpoints)
	assert.Equal(t, 12*time.Second, cfg.Overpass.RequestTimeout)
	assert.Equal(t, "https://mountains.example", cfg.Server.PublicBaseURL)
	assert.Contains(t, cfg.GetDatabaseDSN(), "password=secret")
	assert.Equal(t, []string{"https://mountains.example", "https://www.mountains.example"}, cfg.Server.CORSOrigins)
}
