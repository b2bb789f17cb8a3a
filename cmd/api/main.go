package main

// @title Mountain Explorer API
// @version 1.0.0
// @description Поиск вершин и вулканов рядом с точкой по данным OpenStreetMap.
// @description
// @description Основные возможности:
// @description - Поиск вершин через Overpass API с переключением между зеркалами
// @description - Выбор точки на карте и поиск места по названию (Nominatim)
// @description - Страница деталей вершины со статьей Wikipedia
// @description - Сохранение состояния сессии

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mountain-explorer/docs"
	"github.com/mountain-explorer/internal/config"
	httpDelivery "github.com/mountain-explorer/internal/delivery/http"
	"github.com/mountain-explorer/internal/delivery/http/handler"
	"github.com/mountain-explorer/internal/infrastructure/nominatim"
	"github.com/mountain-explorer/internal/infrastructure/overpass"
	"github.com/mountain-explorer/internal/infrastructure/wikipedia"
	"github.com/mountain-explorer/internal/pkg/logger"
	"github.com/mountain-explorer/internal/repository/cache"
	"github.com/mountain-explorer/internal/repository/postgres"
	"github.com/mountain-explorer/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Mountain Explorer API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Strings("overpass_endpoints", cfg.Overpass.Endpoints),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// 5. Initialize repositories and external clients
	cacheRepo := cache.NewCacheRepository(redisClient)
	snapshotRepo := postgres.NewSnapshotRepository(db)

	featureRepo, err := overpass.NewOverpassClient(&cfg.Overpass, log)
	if err != nil {
		log.Fatal("Failed to initialize Overpass client", zap.Error(err))
	}
	geocoder := nominatim.NewNominatimClient(&cfg.Nominatim, log)
	encyclopedia := wikipedia.NewWikipediaClient(&cfg.Wikipedia, log)

	log.Info("Repositories initialized")

	// 6. Initialize use cases
	mountainUC := usecase.NewMountainSearchUseCase(
		featureRepo,
		log,
		cfg.Search.DefaultRadiusMeters,
		cfg.Search.DefaultMaxResults,
	)

	locationUC := usecase.NewLocationUseCase(
		mountainUC,
		geocoder,
		cacheRepo,
		snapshotRepo,
		log,
		cfg.Cache.MountainTTL,
		cfg.Cache.EnrichmentTTL,
	)

	detailsUC := usecase.NewDetailsUseCase(
		cacheRepo,
		geocoder,
		encyclopedia,
		log,
		cfg.Cache.EnrichmentTTL,
		cfg.Wikipedia.DefaultLanguage,
		cfg.Server.PublicBaseURL,
	)

	log.Info("Use cases initialized")

	// 7. Initialize HTTP handlers
	mountainHandler := handler.NewMountainHandler(mountainUC, log)
	locationHandler := handler.NewLocationHandler(locationUC, log)
	detailsHandler := handler.NewDetailsHandler(detailsUC, log)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthChecker{
		"postgres": db,
		"redis":    redisClient,
	}, log)

	// 8. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		mountainHandler,
		locationHandler,
		detailsHandler,
		healthHandler,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
