package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mountain-explorer/internal/domain"
	"github.com/mountain-explorer/internal/domain/repository"
	"github.com/mountain-explorer/internal/usecase"
	"github.com/mountain-explorer/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxBatchSize      = 20                     // максимум сообщений за раз
	searchConcurrency = 4                      // параллельные поиски внутри batch
	emptyQueueSleep   = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep        = time.Second
	ackTimeout        = 2 * time.Second
)

var errMissingCoordinates = errors.New("latitude and longitude are required")

// SearchRequestWorker выполняет поиск вершин по запросам из stream:mountains:search
// и публикует результаты в stream:mountains:found
type SearchRequestWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	searcher     usecase.MountainSearcher
	consumerName string
	maxRetries   int
}

// NewSearchRequestWorker создает новый SearchRequestWorker
func NewSearchRequestWorker(
	streamRepo repository.StreamRepository,
	searcher usecase.MountainSearcher,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *SearchRequestWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &SearchRequestWorker{
		BaseWorker:   worker.NewBaseWorker("mountain-search", consumerGroup, logger),
		streamRepo:   streamRepo,
		searcher:     searcher,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *SearchRequestWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting SearchRequestWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamMountainSearch, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	return w.Loop(ctx, worker.LoopConfig{Idle: emptyQueueSleep, Backoff: errorSleep},
		func(ctx context.Context) (bool, error) {
			processed, err := w.ProcessBatch(ctx)
			return processed > 0, err
		})
}

// ProcessBatch читает и обрабатывает batch сообщений.
// Возвращает количество прочитанных сообщений.
func (w *SearchRequestWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamMountainSearch,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	var (
		mu     sync.Mutex
		ackIDs = make([]string, 0, len(messages))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			mu.Lock()
			ackIDs = append(ackIDs, msg.ID)
			mu.Unlock()
			continue
		}

		msgID := msg.ID
		g.Go(func() error {
			if w.handle(gctx, event) {
				mu.Lock()
				ackIDs = append(ackIDs, msgID)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	// результаты уже опубликованы, ACK нужен и при остановке воркера
	ackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ackTimeout)
	defer cancel()
	if err := w.streamRepo.AckMessages(ackCtx, domain.StreamMountainSearch, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Batch processed",
		zap.Int("received", len(messages)),
		zap.Int("acked", len(ackIDs)))

	return len(messages), nil
}

// handle выполняет поиск и публикует результат.
// Возвращает false, если сообщение нужно оставить неподтвержденным.
func (w *SearchRequestWorker) handle(ctx context.Context, event *domain.MountainSearchEvent) bool {
	logger := w.Logger().With(zap.String("request_id", event.RequestID.String()))

	done := &domain.MountainSearchDoneEvent{RequestID: event.RequestID}

	if !event.HasCoordinates() {
		done.Error = errMissingCoordinates.Error()
	} else {
		mountains, err := w.searcher.Search(ctx, event.Query())
		switch {
		case err == nil:
			done.Mountains = mountains
			done.Total = len(mountains)
		case ctx.Err() != nil:
			logger.Info("Search interrupted, message left pending", zap.Error(err))
			return false
		default:
			var failure *domain.QueryFailure
			if errors.As(err, &failure) {
				done.Reason = failure.Reason
			}
			done.Error = err.Error()
			logger.Warn("Mountain search failed", zap.Error(err))
		}
	}

	if err := w.publish(ctx, done); err != nil {
		logger.Error("Failed to publish search result", zap.Error(err))
		return false
	}
	return true
}

func (w *SearchRequestWorker) publish(ctx context.Context, event *domain.MountainSearchDoneEvent) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.streamRepo.PublishToStream(ctx, domain.StreamMountainFound, event); err == nil {
			return nil
		}
		if attempt < w.maxRetries && !w.Pause(ctx, time.Duration(attempt)*100*time.Millisecond) {
			break
		}
	}
	return err
}

// parseMessage парсит сообщение из стрима в MountainSearchEvent
func parseMessage(msg domain.StreamMessage) (*domain.MountainSearchEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.MountainSearchEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}
