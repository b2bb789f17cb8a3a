package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultShutdownTimeout = 30 * time.Second

// WorkerManager запускает зарегистрированные воркеры и останавливает их с таймаутом
type WorkerManager struct {
	logger          *zap.Logger
	shutdownTimeout time.Duration

	mu      sync.Mutex
	workers []Worker
	running map[string]chan struct{} // закрывается, когда Start воркера вернул управление
}

// NewWorkerManager создает WorkerManager
func NewWorkerManager(logger *zap.Logger) *WorkerManager {
	return &WorkerManager{
		logger:          logger,
		shutdownTimeout: defaultShutdownTimeout,
		running:         make(map[string]chan struct{}),
	}
}

// SetShutdownTimeout задает время ожидания в Stop
func (m *WorkerManager) SetShutdownTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdownTimeout = d
}

// Register добавляет воркер. Вызывается до Start.
func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
}

// Start запускает каждый воркер в своей горутине
func (m *WorkerManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.workers) == 0 {
		return fmt.Errorf("no workers registered")
	}

	m.logger.Info("Starting workers", zap.Int("count", len(m.workers)))

	for _, w := range m.workers {
		done := make(chan struct{})
		m.running[w.Name()] = done

		go func(w Worker) {
			defer close(done)

			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				m.logger.Error("Worker failed", zap.String("name", w.Name()), zap.Error(err))
				return
			}
			m.logger.Info("Worker finished", zap.String("name", w.Name()))
		}(w)
	}

	return nil
}

// Stop останавливает все воркеры и ждет их завершения не дольше shutdownTimeout
func (m *WorkerManager) Stop() error {
	m.mu.Lock()
	workers := append([]Worker(nil), m.workers...)
	running := make(map[string]chan struct{}, len(m.running))
	for name, done := range m.running {
		running[name] = done
	}
	timeout := m.shutdownTimeout
	m.mu.Unlock()

	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker", zap.String("name", w.Name()), zap.Error(err))
		}
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	var pending []string
	expired := false
	for name, done := range running {
		if expired {
			select {
			case <-done:
			default:
				pending = append(pending, name)
			}
			continue
		}
		select {
		case <-done:
		case <-deadline.C:
			expired = true
			pending = append(pending, name)
		}
	}

	if len(pending) > 0 {
		m.logger.Warn("Workers shutdown timed out",
			zap.Duration("timeout", timeout),
			zap.Strings("pending", pending))
		return fmt.Errorf("workers shutdown timed out after %v: %s", timeout, strings.Join(pending, ", "))
	}

	m.logger.Info("All workers stopped gracefully")
	return nil
}
