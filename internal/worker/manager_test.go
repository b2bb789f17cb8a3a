package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mountain-explorer/internal/worker"
)

// loopWorker blocks until it is stopped
type loopWorker struct {
	*worker.BaseWorker
	started atomic.Int32
}

func newLoopWorker(name string) *loopWorker {
	return &loopWorker{BaseWorker: worker.NewBaseWorker(name, "group", zap.NewNop())}
}

func (w *loopWorker) Start(ctx context.Context) error {
	w.started.Add(1)
	for w.Pause(ctx, 10*time.Millisecond) {
	}
	return nil
}

// stuckWorker ignores Stop
type stuckWorker struct {
	*worker.BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop())
	a, b := newLoopWorker("a"), newLoopWorker("b")
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, func() bool {
		return a.started.Load() == 1 && b.started.Load() == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())

	// повторная остановка безопасна
	assert.NoError(t, a.Stop())
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_ShutdownTimeout(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop())
	m.SetShutdownTimeout(50 * time.Millisecond)

	w := &stuckWorker{
		BaseWorker: worker.NewBaseWorker("stuck", "group", zap.NewNop()),
		release:    make(chan struct{}),
	}
	defer close(w.release)
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Stop())
}

func TestBaseWorker_Pause(t *testing.T) {
	w := worker.NewBaseWorker("pause", "group", zap.NewNop())

	assert.True(t, w.Pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, w.Pause(ctx, time.Hour))

	require.NoError(t, w.Stop())
	assert.False(t, w.Pause(context.Background(), time.Hour))
	assert.Equal(t, "group", w.ConsumerGroup())
}

func TestBaseWorker_Loop(t *testing.T) {
	t.Run("stop returns nil", func(t *testing.T) {
		w := worker.NewBaseWorker("loop", "", zap.NewNop())
		var steps atomic.Int32

		done := make(chan error, 1)
		go func() {
			done <- w.Loop(context.Background(), worker.LoopConfig{Idle: time.Millisecond},
				func(context.Context) (bool, error) {
					steps.Add(1)
					return false, nil
				})
		}()

		assert.Eventually(t, func() bool { return steps.Load() >= 3 }, time.Second, time.Millisecond)
		require.NoError(t, w.Stop())
		assert.NoError(t, <-done)
	})

	t.Run("context cancel returns ctx error", func(t *testing.T) {
		w := worker.NewBaseWorker("loop", "", zap.NewNop())
		ctx, cancel := context.WithCancel(context.Background())
		var steps atomic.Int32

		done := make(chan error, 1)
		go func() {
			done <- w.Loop(ctx, worker.LoopConfig{Backoff: time.Hour},
				func(context.Context) (bool, error) {
					steps.Add(1)
					return false, errors.New("redis down")
				})
		}()

		assert.Eventually(t, func() bool { return steps.Load() == 1 }, time.Second, time.Millisecond)
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
		// backoff удерживает цикл от повторных попыток
		assert.Equal(t, int32(1), steps.Load())
	})
}
