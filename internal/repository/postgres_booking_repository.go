package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vikask011/react-native/internal/domain"
)

// PostgresBookingRepository implements BookingRepository using PostgreSQL.
// State changes and their outbox messages are written in one transaction.
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

const bookingColumns = `id, user_id, event_id, order_ref,
	COALESCE(payment_ref, '') AS payment_ref,
	amount, currency, status, created_at, confirmed_at, cancelled_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	b := &domain.Booking{}
	var status string
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.EventID,
		&b.OrderRef,
		&b.PaymentRef,
		&b.Amount,
		&b.Currency,
		&status,
		&b.CreatedAt,
		&b.ConfirmedAt,
		&b.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	if b.Status, err = parseBookingStatus(status); err != nil {
		return nil, err
	}
	return b, nil
}

func parseBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidBookingStatus, s)
	}
	return status, nil
}

// Create inserts a pending booking
func (r *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (user_id, event_id, order_ref, amount, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		booking.UserID,
		booking.EventID,
		booking.OrderRef,
		booking.Amount,
		booking.Currency,
		booking.Status.String(),
		booking.CreatedAt,
	).Scan(&booking.ID)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// ListByUser returns the user's bookings newest first with the event embedded
func (r *PostgresBookingRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	query := `
		SELECT
			b.id, b.user_id, b.event_id, b.order_ref,
			COALESCE(b.payment_ref, ''), b.amount, b.currency, b.status,
			b.created_at, b.confirmed_at, b.cancelled_at,
			e.id, e.title, COALESCE(e.description, ''), e.location, e.date,
			e.price::float8, e.category, COALESCE(e.image_url, ''),
			e.available_seats, e.is_active, e.created_at
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{Event: &domain.Event{}}
		var status string
		err := rows.Scan(
			&b.ID, &b.UserID, &b.EventID, &b.OrderRef,
			&b.PaymentRef, &b.Amount, &b.Currency, &status,
			&b.CreatedAt, &b.ConfirmedAt, &b.CancelledAt,
			&b.Event.ID, &b.Event.Title, &b.Event.Description, &b.Event.Location, &b.Event.Date,
			&b.Event.Price, &b.Event.Category, &b.Event.ImageURL,
			&b.Event.AvailableSeats, &b.Event.IsActive, &b.Event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		if b.Status, err = parseBookingStatus(status); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

// ConfirmWithSeat confirms a pending booking. On ErrSoldOut the transaction
// is rolled back and the booking stays pending.
func (r *PostgresBookingRepository) ConfirmWithSeat(ctx context.Context, req *ConfirmRequest) (*domain.Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the booking so concurrent verifications of the same order serialize
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE order_ref = $1 AND user_id = $2 AND status = 'pending'
		FOR UPDATE
	`, bookingColumns)

	booking, err := scanBooking(tx.QueryRow(ctx, query, req.OrderRef, req.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}
	if req.EventID != 0 && booking.EventID != req.EventID {
		return nil, domain.ErrBookingNotFound
	}

	if err := decrementSeat(ctx, tx, booking.EventID); err != nil {
		return nil, err
	}

	if err := booking.Confirm(req.PaymentRef, time.Now()); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE bookings SET
			status = $2,
			payment_ref = $3,
			confirmed_at = $4
		WHERE id = $1
	`, booking.ID, booking.Status.String(), booking.PaymentRef, booking.ConfirmedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	msg, err := domain.NewBookingOutboxMessage(domain.EventTypeBookingConfirmed, req.Topic, booking, req.Headers)
	if err != nil {
		return nil, fmt.Errorf("failed to create outbox event: %w", err)
	}
	if err := createOutboxTx(ctx, tx, msg); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return booking, nil
}

// ListStalePending returns pending bookings created before cutoff
func (r *PostgresBookingRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at ASC
		LIMIT $2
	`, bookingColumns)

	rows, err := r.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get stale bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

// CancelWithOutbox cancels a booking that is still pending and writes msg
// in the same transaction. A booking confirmed in the meantime yields
// ErrInvalidStateTransition.
func (r *PostgresBookingRepository) CancelWithOutbox(ctx context.Context, booking *domain.Booking, msg *domain.OutboxMessage) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cancelledAt := time.Now()
	if booking.CancelledAt != nil {
		cancelledAt = *booking.CancelledAt
	}

	result, err := tx.Exec(ctx, `
		UPDATE bookings SET
			status = 'cancelled',
			cancelled_at = $2
		WHERE id = $1 AND status = 'pending'
	`, booking.ID, cancelledAt)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)", booking.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check booking existence: %w", err)
		}
		if !exists {
			return domain.ErrBookingNotFound
		}
		return domain.ErrInvalidStateTransition
	}

	if err := createOutboxTx(ctx, tx, msg); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
