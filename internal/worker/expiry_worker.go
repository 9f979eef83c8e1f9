package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/internal/metrics"
	"github.com/vikask011/react-native/internal/repository"
	"github.com/vikask011/react-native/pkg/logger"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// ExpiryWorkerConfig contains configuration for the expiry worker
type ExpiryWorkerConfig struct {
	// PendingTTL is how long a booking may wait for payment
	PendingTTL time.Duration
	// ScanInterval is the interval between scans for stale bookings
	ScanInterval time.Duration
	BatchSize    int
	// Topic receives the booking.cancelled messages
	Topic string
}

// DefaultExpiryWorkerConfig returns default configuration
func DefaultExpiryWorkerConfig() *ExpiryWorkerConfig {
	return &ExpiryWorkerConfig{
		PendingTTL:   30 * time.Minute,
		ScanInterval: time.Minute,
		BatchSize:    100,
		Topic:        "booking-events",
	}
}

// ExpiryWorker cancels pending bookings whose payment never arrived.
// No seat is released since pending bookings never hold one.
type ExpiryWorker struct {
	bookingRepo repository.BookingRepository
	config      *ExpiryWorkerConfig
	log         *logger.Logger
	now         func() time.Time
	stopCh      chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	running     bool

	totalExpired     int64
	lastScanTime     time.Time
	lastExpiredCount int
}

// NewExpiryWorker creates a new expiry worker
func NewExpiryWorker(bookingRepo repository.BookingRepository, config *ExpiryWorkerConfig) *ExpiryWorker {
	defaults := DefaultExpiryWorkerConfig()
	if config == nil {
		config = defaults
	}
	if config.PendingTTL <= 0 {
		config.PendingTTL = defaults.PendingTTL
	}
	if config.ScanInterval <= 0 {
		config.ScanInterval = defaults.ScanInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.Topic == "" {
		config.Topic = defaults.Topic
	}

	return &ExpiryWorker{
		bookingRepo: bookingRepo,
		config:      config,
		log:         logger.Get(),
		now:         time.Now,
		stopCh:      make(chan struct{}),
	}
}

// Start starts the expiry worker
func (w *ExpiryWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("expiry worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.log.Info("Starting expiry worker",
		zap.Duration("pending_ttl", w.config.PendingTTL),
		zap.Duration("interval", w.config.ScanInterval),
	)

	w.wg.Add(1)
	go w.scan(ctx)

	return nil
}

// Stop stops the expiry worker and waits for the current scan to finish
func (w *ExpiryWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	w.log.Info("Stopping expiry worker")
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("Expiry worker stopped")
}

func (w *ExpiryWorker) scan(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.ScanInterval)
	defer ticker.Stop()

	w.ExpireStale(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.ExpireStale(ctx)
		}
	}
}

// ExpireStale runs one scan and returns how many bookings were cancelled
func (w *ExpiryWorker) ExpireStale(ctx context.Context) int {
	ctx, span := telemetry.StartSpan(ctx, "worker.expiry.scan")
	defer span.End()

	now := w.now()
	stale, err := w.bookingRepo.ListStalePending(ctx, now.Add(-w.config.PendingTTL), w.config.BatchSize)
	if err != nil {
		telemetry.RecordError(span, err)
		w.log.Error("Failed to list stale bookings", zap.Error(err))
		return 0
	}

	expired := 0
	for _, booking := range stale {
		if !booking.IsStale(w.config.PendingTTL, now) {
			continue
		}
		if err := w.expire(ctx, booking, now); err != nil {
			if errors.Is(err, domain.ErrInvalidStateTransition) {
				// Confirmed between the scan and the cancel
				w.log.Debug("Booking no longer pending", zap.Int64("booking_id", booking.ID))
				continue
			}
			w.log.Error("Failed to expire booking", zap.Int64("booking_id", booking.ID), zap.Error(err))
			continue
		}
		expired++
		metrics.Record(ctx, metrics.Get().BookingsExpired)
	}

	w.mu.Lock()
	w.lastScanTime = now
	w.lastExpiredCount = expired
	w.totalExpired += int64(expired)
	w.mu.Unlock()

	if expired > 0 {
		w.log.Info("Expired stale bookings", zap.Int("count", expired))
	}
	return expired
}

func (w *ExpiryWorker) expire(ctx context.Context, booking *domain.Booking, now time.Time) error {
	if err := booking.Cancel(now); err != nil {
		return err
	}

	msg, err := domain.NewBookingOutboxMessage(domain.EventTypeBookingCancelled, w.config.Topic, booking, telemetry.InjectHeaders(ctx))
	if err != nil {
		return fmt.Errorf("failed to build outbox message: %w", err)
	}

	if err := w.bookingRepo.CancelWithOutbox(ctx, booking, msg); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	w.log.Info("Cancelled unpaid booking",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", booking.UserID),
		zap.Int64("event_id", booking.EventID),
		zap.String("order_ref", booking.OrderRef),
	)
	return nil
}

// GetStats returns worker statistics
func (w *ExpiryWorker) GetStats() *ExpiryWorkerStats {
	w.mu.Lock()
	defer w.mu.Unlock()

	return &ExpiryWorkerStats{
		IsRunning:        w.running,
		TotalExpired:     w.totalExpired,
		LastScanTime:     w.lastScanTime,
		LastExpiredCount: w.lastExpiredCount,
	}
}

// ExpiryWorkerStats contains worker statistics
type ExpiryWorkerStats struct {
	IsRunning        bool      `json:"is_running"`
	TotalExpired     int64     `json:"total_expired"`
	LastScanTime     time.Time `json:"last_scan_time"`
	LastExpiredCount int       `json:"last_expired_count"`
}
