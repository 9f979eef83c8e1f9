package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus represents the status of an outbox message
type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusPublished OutboxStatus = "published"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// Booking event types relayed through the outbox
const (
	EventTypeBookingConfirmed = "booking.confirmed"
	EventTypeBookingCancelled = "booking.cancelled"
)

// DefaultOutboxMaxRetries bounds how often a failed message is re-published
const DefaultOutboxMaxRetries = 5

// OutboxMessage is an integration event written in the same transaction
// as the state change it describes
type OutboxMessage struct {
	ID            string            `json:"id"`
	AggregateType string            `json:"aggregate_type"`
	AggregateID   string            `json:"aggregate_id"`
	EventType     string            `json:"event_type"`
	Payload       []byte            `json:"payload"`
	Headers       map[string]string `json:"headers,omitempty"`
	Topic         string            `json:"topic"`
	PartitionKey  string            `json:"partition_key"`
	Status        OutboxStatus      `json:"status"`
	RetryCount    int               `json:"retry_count"`
	MaxRetries    int               `json:"max_retries"`
	LastError     string            `json:"last_error,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	PublishedAt   *time.Time        `json:"published_at,omitempty"`
}

// BookingEvent is the payload published for booking state changes
type BookingEvent struct {
	EventID    string        `json:"event_id"`
	EventType  string        `json:"event_type"`
	OccurredAt time.Time     `json:"occurred_at"`
	BookingID  int64         `json:"booking_id"`
	UserID     int64         `json:"user_id"`
	CatalogID  int64         `json:"catalog_event_id"`
	OrderRef   string        `json:"order_ref"`
	PaymentRef string        `json:"payment_ref,omitempty"`
	Amount     int64         `json:"amount"`
	Currency   string        `json:"currency"`
	Status     BookingStatus `json:"status"`
}

// NewBookingOutboxMessage builds the outbox row for a booking state change
func NewBookingOutboxMessage(eventType, topic string, b *Booking, headers map[string]string) (*OutboxMessage, error) {
	eventID := uuid.New().String()
	now := time.Now()

	payload, err := json.Marshal(BookingEvent{
		EventID:    eventID,
		EventType:  eventType,
		OccurredAt: now,
		BookingID:  b.ID,
		UserID:     b.UserID,
		CatalogID:  b.EventID,
		OrderRef:   b.OrderRef,
		PaymentRef: b.PaymentRef,
		Amount:     b.Amount,
		Currency:   b.Currency,
		Status:     b.Status,
	})
	if err != nil {
		return nil, err
	}

	aggregateID := strconv.FormatInt(b.ID, 10)
	return &OutboxMessage{
		ID:            eventID,
		AggregateType: "booking",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       payload,
		Headers:       headers,
		Topic:         topic,
		PartitionKey:  strconv.FormatInt(b.EventID, 10),
		Status:        OutboxStatusPending,
		MaxRetries:    DefaultOutboxMaxRetries,
		CreatedAt:     now,
	}, nil
}

// CanRetry checks if the message can be retried
func (m *OutboxMessage) CanRetry() bool {
	return m.Status == OutboxStatusFailed && m.RetryCount < m.MaxRetries
}

// MarkAsPublished marks the message as successfully published
func (m *OutboxMessage) MarkAsPublished(at time.Time) {
	m.Status = OutboxStatusPublished
	m.PublishedAt = &at
}

// MarkAsFailed records a failed publish attempt
func (m *OutboxMessage) MarkAsFailed(err string) {
	m.Status = OutboxStatusFailed
	m.LastError = err
	m.RetryCount++
}
