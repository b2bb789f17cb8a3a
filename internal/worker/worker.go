package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Worker - фоновый процесс, управляемый WorkerManager
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}

// StepFunc - одна итерация цикла воркера.
// busy=true означает, что работа была и следующую итерацию можно начинать сразу.
type StepFunc func(ctx context.Context) (busy bool, err error)

// LoopConfig - паузы между итерациями
type LoopConfig struct {
	Idle    time.Duration // после итерации без работы
	Backoff time.Duration // после ошибки
}

// Loop выполняет step до Stop (возвращает nil) или отмены ctx (возвращает ctx.Err()).
func (w *BaseWorker) Loop(ctx context.Context, cfg LoopConfig, step StepFunc) error {
	for {
		select {
		case <-w.stopChan:
			w.logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			w.logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		busy, err := step(ctx)

		var pause time.Duration
		switch {
		case err != nil:
			w.logger.Error("Worker iteration failed", zap.Error(err))
			pause = cfg.Backoff
		case !busy:
			pause = cfg.Idle
		}
		if pause > 0 {
			// выход определяется в начале следующей итерации
			w.Pause(ctx, pause)
		}
	}
}
