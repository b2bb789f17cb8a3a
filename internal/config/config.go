package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Overpass  OverpassConfig
	Search    SearchConfig
	Nominatim NominatimConfig
	Wikipedia WikipediaConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
	// PublicBaseURL используется для ссылок "поделиться"
	PublicBaseURL string
	CORSOrigins   []string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN - строка подключения в формате key=value
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

// Addr - адрес Redis в формате host:port
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CacheConfig struct {
	MountainTTL   time.Duration
	EnrichmentTTL time.Duration
	SnapshotTTL   time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
}

type OverpassConfig struct {
	Endpoints      []string
	RequestTimeout time.Duration
	UserAgent      string
}

type SearchConfig struct {
	DefaultRadiusMeters int
	DefaultMaxResults   int
}

type NominatimConfig struct {
	BaseURL        string
	RequestsPerSec float64
	RequestTimeout time.Duration
	UserAgent      string
}

type WikipediaConfig struct {
	// BaseURLTemplate содержит %s для кода языка
	BaseURLTemplate string
	DefaultLanguage string
	RequestTimeout  time.Duration
	UserAgent       string
}

var defaultOverpassEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://overpass.private.coffee/api/interpreter",
}

const defaultUserAgent = "MountainExplorer/1.0"

// Load читает конфигурацию из .env (если файл есть) и переменных окружения
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:          v.GetString("API_HOST"),
			Port:          v.GetInt("API_PORT"),
			Env:           v.GetString("API_ENV"),
			PublicBaseURL: strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
			CORSOrigins:   parseList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:        v.GetString("REDIS_HOST"),
			Port:        v.GetInt("REDIS_PORT"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			PoolSize:    v.GetInt("REDIS_POOL_SIZE"),
			DialTimeout: time.Duration(v.GetInt("REDIS_DIAL_TIMEOUT")) * time.Second,
		},
		Cache: CacheConfig{
			MountainTTL:   time.Duration(v.GetInt("CACHE_MOUNTAIN_TTL")) * time.Second,
			EnrichmentTTL: time.Duration(v.GetInt("CACHE_ENRICHMENT_TTL")) * time.Second,
			SnapshotTTL:   time.Duration(v.GetInt("SNAPSHOT_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    v.GetInt("WORKER_MAX_RETRIES"),
		},
		Overpass: OverpassConfig{
			Endpoints:      parseList(v.GetString("OVERPASS_ENDPOINTS")),
			RequestTimeout: time.Duration(v.GetInt("OVERPASS_TIMEOUT")) * time.Second,
			UserAgent:      v.GetString("OVERPASS_USER_AGENT"),
		},
		Search: SearchConfig{
			DefaultRadiusMeters: v.GetInt("SEARCH_DEFAULT_RADIUS"),
			DefaultMaxResults:   v.GetInt("SEARCH_DEFAULT_LIMIT"),
		},
		Nominatim: NominatimConfig{
			BaseURL:        strings.TrimRight(v.GetString("NOMINATIM_BASE_URL"), "/"),
			RequestsPerSec: v.GetFloat64("NOMINATIM_RPS"),
			RequestTimeout: time.Duration(v.GetInt("NOMINATIM_TIMEOUT")) * time.Second,
			UserAgent:      v.GetString("NOMINATIM_USER_AGENT"),
		},
		Wikipedia: WikipediaConfig{
			BaseURLTemplate: v.GetString("WIKIPEDIA_BASE_URL"),
			DefaultLanguage: v.GetString("WIKIPEDIA_DEFAULT_LANG"),
			RequestTimeout:  time.Duration(v.GetInt("WIKIPEDIA_TIMEOUT")) * time.Second,
			UserAgent:       v.GetString("WIKIPEDIA_USER_AGENT"),
		},
	}

	if len(cfg.Overpass.Endpoints) == 0 {
		cfg.Overpass.Endpoints = append([]string(nil), defaultOverpassEndpoints...)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "mountains")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 20)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5)

	v.SetDefault("CACHE_MOUNTAIN_TTL", 24*3600)
	v.SetDefault("CACHE_ENRICHMENT_TTL", 7*24*3600)
	v.SetDefault("SNAPSHOT_TTL", 7*24*3600)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_CONSUMER_GROUP", "mountain-search-workers")
	v.SetDefault("WORKER_MAX_RETRIES", 3)

	v.SetDefault("OVERPASS_TIMEOUT", 30)
	v.SetDefault("OVERPASS_USER_AGENT", defaultUserAgent)

	v.SetDefault("SEARCH_DEFAULT_RADIUS", 50000)
	v.SetDefault("SEARCH_DEFAULT_LIMIT", 30)

	v.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("NOMINATIM_RPS", 1.0)
	v.SetDefault("NOMINATIM_TIMEOUT", 10)
	v.SetDefault("NOMINATIM_USER_AGENT", defaultUserAgent)

	v.SetDefault("WIKIPEDIA_BASE_URL", "https://%s.wikipedia.org")
	v.SetDefault("WIKIPEDIA_DEFAULT_LANG", "es")
	v.SetDefault("WIKIPEDIA_TIMEOUT", 10)
	v.SetDefault("WIKIPEDIA_USER_AGENT", defaultUserAgent)
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}
