package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mountain-explorer/internal/config"
	"github.com/mountain-explorer/internal/infrastructure/overpass"
	"github.com/mountain-explorer/internal/pkg/logger"
	"github.com/mountain-explorer/internal/repository/cache"
	"github.com/mountain-explorer/internal/repository/postgres"
	redisRepo "github.com/mountain-explorer/internal/repository/redis"
	"github.com/mountain-explorer/internal/usecase"
	"github.com/mountain-explorer/internal/worker"
	"github.com/mountain-explorer/internal/worker/search"
	"github.com/mountain-explorer/internal/worker/snapshot"
	"go.uber.org/zap"
)

const snapshotCleanupInterval = time.Hour

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Mountain Search Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Strings("overpass_endpoints", cfg.Overpass.Endpoints))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	snapshotRepo := postgres.NewSnapshotRepository(db)

	featureRepo, err := overpass.NewOverpassClient(&cfg.Overpass, log)
	if err != nil {
		log.Fatal("Failed to initialize Overpass client", zap.Error(err))
	}

	// 6. Initialize use cases
	mountainUC := usecase.NewMountainSearchUseCase(
		featureRepo,
		log,
		cfg.Search.DefaultRadiusMeters,
		cfg.Search.DefaultMaxResults,
	)

	// 7. Initialize workers
	searchWorker := search.NewSearchRequestWorker(
		streamRepo,
		mountainUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)
	cleanupWorker := snapshot.NewCleanupWorker(
		snapshotRepo,
		cfg.Cache.SnapshotTTL,
		snapshotCleanupInterval,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(searchWorker)
	workerManager.Register(cleanupWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
