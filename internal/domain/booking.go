package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

// Booking is one user's attempt to buy one seat at one event.
// Amount is a snapshot of the event price at order time, in minor units.
type Booking struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	EventID     int64         `json:"event_id"`
	OrderRef    string        `json:"order_ref"`
	PaymentRef  string        `json:"payment_ref,omitempty"`
	Amount      int64         `json:"amount"`
	Currency    string        `json:"currency"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`

	// Event is populated when listing a user's bookings
	Event *Event `json:"event,omitempty"`
}

// NewPendingBooking snapshots the event price for a freshly opened gateway order
func NewPendingBooking(userID int64, event *Event, orderRef, currency string) *Booking {
	return &Booking{
		UserID:    userID,
		EventID:   event.ID,
		OrderRef:  orderRef,
		Amount:    event.AmountMinor(),
		Currency:  currency,
		Status:    BookingStatusPending,
		CreatedAt: time.Now(),
	}
}

// Confirm moves a pending booking to confirmed
func (b *Booking) Confirm(paymentRef string, at time.Time) error {
	if b.Status != BookingStatusPending {
		return ErrInvalidStateTransition
	}
	b.Status = BookingStatusConfirmed
	b.PaymentRef = paymentRef
	b.ConfirmedAt = &at
	return nil
}

// Cancel moves a pending booking to cancelled. Confirmed bookings cannot be cancelled.
func (b *Booking) Cancel(at time.Time) error {
	if b.Status != BookingStatusPending {
		return ErrInvalidStateTransition
	}
	b.Status = BookingStatusCancelled
	b.CancelledAt = &at
	return nil
}

// IsStale reports whether a pending booking has outlived ttl
func (b *Booking) IsStale(ttl time.Duration, now time.Time) bool {
	return b.Status == BookingStatusPending && now.Sub(b.CreatedAt) > ttl
}
