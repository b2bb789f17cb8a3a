package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/mountain-explorer/internal/domain/repository"
	"github.com/mountain-explorer/internal/worker"
	"go.uber.org/zap"
)

// CleanupWorker периодически удаляет устаревшие снимки сессий
type CleanupWorker struct {
	*worker.BaseWorker
	snapshotRepo repository.SnapshotRepository
	maxAge       time.Duration
	interval     time.Duration
}

// NewCleanupWorker создает новый CleanupWorker
func NewCleanupWorker(
	snapshotRepo repository.SnapshotRepository,
	maxAge time.Duration,
	interval time.Duration,
	logger *zap.Logger,
) *CleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupWorker{
		BaseWorker:   worker.NewBaseWorker("snapshot-cleanup", "", logger),
		snapshotRepo: snapshotRepo,
		maxAge:       maxAge,
		interval:     interval,
	}
}

// Start запускает воркер. Первая очистка выполняется сразу.
func (w *CleanupWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting CleanupWorker",
		zap.Duration("max_age", w.maxAge),
		zap.Duration("interval", w.interval))

	err := w.Loop(ctx, worker.LoopConfig{Idle: w.interval, Backoff: w.interval},
		func(ctx context.Context) (bool, error) {
			deleted := w.RunOnce(ctx)
			if deleted > 0 {
				w.Logger().Info("Expired snapshots purged", zap.Int64("deleted", deleted))
			}
			return false, nil
		})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RunOnce выполняет одну очистку и возвращает число удаленных снимков
func (w *CleanupWorker) RunOnce(ctx context.Context) int64 {
	if w.maxAge <= 0 {
		return 0
	}

	deleted, err := w.snapshotRepo.PurgeOlderThan(ctx, int(w.maxAge.Seconds()))
	if err != nil {
		w.Logger().Error("Failed to purge snapshots", zap.Error(err))
		return 0
	}
	return deleted
}
