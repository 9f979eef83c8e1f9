package repository

import (
	"context"
	"time"

	"github.com/vikask011/react-native/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a user and fills ID and CreatedAt. Returns ErrDuplicateEmail on conflict.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// EventRepository defines the interface for catalog data access
type EventRepository interface {
	List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	// DecrementSeat takes one seat, returning ErrEventNotFound or ErrSoldOut when it cannot
	DecrementSeat(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	// CreateBatch inserts events whose title is not in the catalog yet and returns how many were added
	CreateBatch(ctx context.Context, events []*domain.Event) (int, error)
}

// EventCache is implemented by event repositories that keep a read cache
type EventCache interface {
	Invalidate(ctx context.Context, eventID int64)
}

// ConfirmRequest identifies the pending booking to confirm and the outbox message to emit
type ConfirmRequest struct {
	OrderRef   string
	PaymentRef string
	UserID     int64
	// EventID must match the booking when non-zero
	EventID int64
	Topic   string
	Headers map[string]string
}

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error)

	// ConfirmWithSeat locks the pending booking, takes a seat, confirms the
	// booking and writes a booking.confirmed outbox message in one transaction.
	ConfirmWithSeat(ctx context.Context, req *ConfirmRequest) (*domain.Booking, error)

	// ListStalePending returns pending bookings created before cutoff, oldest first
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Booking, error)
	// CancelWithOutbox cancels a still-pending booking and writes msg in the same transaction
	CancelWithOutbox(ctx context.Context, booking *domain.Booking, msg *domain.OutboxMessage) error
}

// OutboxRepository defines the interface for outbox relay access
type OutboxRepository interface {
	Create(ctx context.Context, msg *domain.OutboxMessage) error
	// GetUnpublished returns pending messages and failed ones that can still be retried
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxMessage, error)
	MarkAsPublished(ctx context.Context, id string) error
	MarkAsFailed(ctx context.Context, id string, errMsg string) error
	DeletePublished(ctx context.Context, olderThan time.Time) (int64, error)
}
