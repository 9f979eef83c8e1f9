package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/internal/metrics"
	"github.com/vikask011/react-native/internal/repository"
	"github.com/vikask011/react-native/pkg/logger"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// OutboxWorkerConfig contains configuration for the outbox worker
type OutboxWorkerConfig struct {
	// PollInterval is the interval between polls for unpublished messages
	PollInterval time.Duration
	BatchSize    int
	// CleanupInterval is the interval between purges of published messages
	CleanupInterval time.Duration
	// Retention is how long published messages are kept
	Retention time.Duration
}

// DefaultOutboxWorkerConfig returns default configuration
func DefaultOutboxWorkerConfig() *OutboxWorkerConfig {
	return &OutboxWorkerConfig{
		PollInterval:    time.Second,
		BatchSize:       100,
		CleanupInterval: time.Hour,
		Retention:       7 * 24 * time.Hour,
	}
}

// OutboxWorker relays outbox rows to the publisher. Delivery is at least
// once: a crash between publish and mark republishes the message, and
// consumers dedupe on the payload event_id.
type OutboxWorker struct {
	outboxRepo repository.OutboxRepository
	publisher  Publisher
	config     *OutboxWorkerConfig
	log        *logger.Logger
	stopCh     chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	running    bool

	totalPublished int64
	totalFailed    int64
	totalDeleted   int64
}

// NewOutboxWorker creates a new outbox worker
func NewOutboxWorker(outboxRepo repository.OutboxRepository, publisher Publisher, config *OutboxWorkerConfig) *OutboxWorker {
	defaults := DefaultOutboxWorkerConfig()
	if config == nil {
		config = defaults
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaults.CleanupInterval
	}
	if config.Retention <= 0 {
		config.Retention = defaults.Retention
	}
	if publisher == nil {
		publisher = NewNoOpPublisher()
	}

	return &OutboxWorker{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		config:     config,
		log:        logger.Get(),
		stopCh:     make(chan struct{}),
	}
}

// Start starts the outbox worker
func (w *OutboxWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.log.Info("Starting outbox worker", zap.Duration("interval", w.config.PollInterval))

	w.wg.Add(2)
	go w.poll(ctx)
	go w.cleanup(ctx)

	return nil
}

// Stop stops the outbox worker
func (w *OutboxWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	w.log.Info("Stopping outbox worker")
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("Outbox worker stopped")
}

func (w *OutboxWorker) poll(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

func (w *OutboxWorker) cleanup(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Cleanup(ctx)
		}
	}
}

// ProcessBatch publishes one batch of pending and retryable messages and
// returns how many were published
func (w *OutboxWorker) ProcessBatch(ctx context.Context) int {
	messages, err := w.outboxRepo.GetUnpublished(ctx, w.config.BatchSize)
	if err != nil {
		w.log.Error("Failed to get unpublished messages", zap.Error(err))
		return 0
	}

	published := 0
	for _, msg := range messages {
		if err := w.publish(ctx, msg); err != nil {
			w.log.Warn("Failed to publish outbox message",
				zap.String("id", msg.ID),
				zap.Int("attempt", msg.RetryCount+1),
				zap.Int("max_retries", msg.MaxRetries),
				zap.Error(err),
			)
			metrics.Record(ctx, metrics.Get().OutboxFailed)
			w.addStats(0, 1, 0)
			if markErr := w.outboxRepo.MarkAsFailed(ctx, msg.ID, err.Error()); markErr != nil {
				w.log.Error("Failed to mark message as failed", zap.String("id", msg.ID), zap.Error(markErr))
			}
			continue
		}

		if markErr := w.outboxRepo.MarkAsPublished(ctx, msg.ID); markErr != nil {
			w.log.Error("Failed to mark message as published", zap.String("id", msg.ID), zap.Error(markErr))
		}
		metrics.Record(ctx, metrics.Get().OutboxPublished)
		w.addStats(1, 0, 0)
		published++
	}
	return published
}

func (w *OutboxWorker) publish(ctx context.Context, msg *domain.OutboxMessage) error {
	// Continue the trace of the request that wrote the message
	ctx = telemetry.ExtractHeaders(ctx, msg.Headers)
	ctx, span := telemetry.StartSpan(ctx, "worker.outbox.publish")
	defer span.End()
	span.SetAttributes(
		attribute.String("outbox.id", msg.ID),
		attribute.String("outbox.event_type", msg.EventType),
		attribute.String("messaging.destination", msg.Topic),
	)

	if err := w.publisher.Publish(ctx, msg); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

// Cleanup deletes published messages older than the retention window
func (w *OutboxWorker) Cleanup(ctx context.Context) int64 {
	deleted, err := w.outboxRepo.DeletePublished(ctx, time.Now().Add(-w.config.Retention))
	if err != nil {
		w.log.Error("Failed to clean up published messages", zap.Error(err))
		return 0
	}
	if deleted > 0 {
		w.log.Info("Cleaned up published outbox messages", zap.Int64("count", deleted))
		w.addStats(0, 0, deleted)
	}
	return deleted
}

func (w *OutboxWorker) addStats(published, failed, deleted int64) {
	w.mu.Lock()
	w.totalPublished += published
	w.totalFailed += failed
	w.totalDeleted += deleted
	w.mu.Unlock()
}

// GetStats returns worker statistics
func (w *OutboxWorker) GetStats() *OutboxWorkerStats {
	w.mu.Lock()
	defer w.mu.Unlock()

	return &OutboxWorkerStats{
		IsRunning:      w.running,
		TotalPublished: w.totalPublished,
		TotalFailed:    w.totalFailed,
		TotalDeleted:   w.totalDeleted,
	}
}

// OutboxWorkerStats contains worker statistics
type OutboxWorkerStats struct {
	IsRunning      bool  `json:"is_running"`
	TotalPublished int64 `json:"total_published"`
	TotalFailed    int64 `json:"total_failed"`
	TotalDeleted   int64 `json:"total_deleted"`
}
