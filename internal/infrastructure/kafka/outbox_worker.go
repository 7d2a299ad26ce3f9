package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/jitter"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	defaultBatchSize  = 10
	maxFailureBackoff = time.Minute
	listenTimeout     = 30 * time.Second
)

// OutboxWorker переносит события заказов из outbox в Kafka.
// Обработка идет в одной горутине: ее будят NOTIFY из PostgreSQL (если задан dbConnStr) и таймер опроса с jitter.
type OutboxWorker struct {
	repo         usecase.OutboxRepository
	logger       logger.Logger
	producer     usecase.MessageProducer
	dbConnStr    string
	channel      string
	pollInterval time.Duration
	batchSize    int

	wake     chan struct{}
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	failures int
}

// NewOutboxWorker создает воркер. Пустой dbConnStr отключает LISTEN, остается только опрос.
func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
	channel string,
	pollInterval time.Duration,
) *OutboxWorker {
	return &OutboxWorker{
		repo:         repo,
		logger:       logger,
		producer:     producer,
		dbConnStr:    dbConnStr,
		channel:      channel,
		pollInterval: pollInterval,
		batchSize:    defaultBatchSize,
		wake:         make(chan struct{}, 1),
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	if w.dbConnStr != "" {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.listenOutboxNotifications(ctx)
		}()
	}
}

func (w *OutboxWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

// Notify будит воркер без ожидания таймера.
func (w *OutboxWorker) Notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *OutboxWorker) run(ctx context.Context) {
	w.logger.Infof("Draining pending outbox events on startup...")

	for {
		w.drain(ctx)

		timer := time.NewTimer(w.nextDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Infof("Outbox worker stopped by context cancellation")
			return
		case <-w.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// nextDelay — интервал опроса с jitter, после сбоев отправки растет экспоненциально.
func (w *OutboxWorker) nextDelay() time.Duration {
	if w.failures == 0 {
		return jitter.Duration(w.pollInterval, jitter.DefaultJitter)
	}
	return jitter.ExponentialBackoff(w.pollInterval, maxFailureBackoff, w.failures, jitter.DefaultJitter)
}

func (w *OutboxWorker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

// processBatch отправляет пачку событий по порядку. При первой ошибке отправки
// событие и остаток пачки возвращаются в очередь, чтобы не нарушить порядок по заказу.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	for i, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			if !isRetryableError(err) {
				w.logger.Errorf(err, "Outbox event %s (%s) rejected, marking failed", event.EventID, event.EventType)
				if err := w.repo.MarkAsFailed(ctx, event.ID); err != nil {
					w.logger.Warnf("mark failed failed: %v", err)
				}
				continue
			}

			w.failures++
			w.logger.Warnf("Outbox event %s (%s) not delivered: %v", event.EventID, event.EventType, err)
			w.returnToPending(events[i:])
			return false, nil
		}

		w.failures = 0
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return len(events) == w.batchSize, nil
}

func (w *OutboxWorker) returnToPending(events []*usecase.OutboxEvent) {
	// ctx мог быть отменен при остановке, событие все равно нужно вернуть в очередь
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, event := range events {
		if err := w.repo.ReturnToPending(ctx, event.ID); err != nil {
			w.logger.Errorf(err, "return outbox event %d to pending failed", event.ID)
		}
	}
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	if err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.AggregateID, event.Payload)); err != nil {
		return e.Wrap("Kafka failure", err)
	}
	return nil
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		c, err := pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err = c.Exec(ctx, "LISTEN "+w.channel); err != nil {
			_ = c.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		conn = c
		w.logger.Infof("Subscribed to '%s' channel", w.channel)
		return nil
	}

	for attempt := 0; ; attempt++ {
		err := connect()
		if err == nil {
			break
		}
		w.logger.Warnf("LISTEN connect failed: %v", err)

		if jitter.Sleep(ctx, jitter.ExponentialBackoff(time.Second, maxFailureBackoff, attempt, jitter.DefaultJitter)) != nil {
			return
		}
	}
	defer func() { _ = conn.Close(context.Background()) }()

	for ctx.Err() == nil {
		waitCtx, cancel := context.WithTimeout(ctx, listenTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}
			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			_ = conn.Close(ctx)

			if jitter.Sleep(ctx, jitter.Duration(2*time.Second, jitter.DefaultJitter)) != nil {
				return
			}
			if err := connect(); err != nil {
				w.logger.Warnf("Reconnect failed: %v", err)
			}
			continue
		}

		if notif != nil && notif.Channel == w.channel {
			w.logger.Debugf("Received outbox notification")
			w.Notify()
		}
	}
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	// остановка воркера или таймаут записи: событие уходит обратно в очередь
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
