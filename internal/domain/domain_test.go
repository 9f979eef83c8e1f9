package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"User@Example.com", "user@example.com"},
		{"  a@b.co ", "a@b.co"},
		{"already@lower.in", "already@lower.in"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEvent_AmountMinor(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{4999, 499900},
		{0, 0},
		{499.99, 49999},
		{0.1 + 0.2, 30},
	}
	for _, tt := range tests {
		e := &Event{Price: tt.price}
		if got := e.AmountMinor(); got != tt.want {
			t.Errorf("AmountMinor(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestEvent_IsBookable(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"active with seats", Event{IsActive: true, AvailableSeats: 1}, true},
		{"sold out", Event{IsActive: true, AvailableSeats: 0}, false},
		{"inactive", Event{IsActive: false, AvailableSeats: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsBookable(); got != tt.want {
				t.Errorf("IsBookable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventFilter_Matches(t *testing.T) {
	coldplay := &Event{Title: "Coldplay India Tour 2025", Location: "DY Patil Stadium, Mumbai", Description: "Music of the Spheres", Category: "Music", IsActive: true}
	devfest := &Event{Title: "DevFest Mumbai 2025", Location: "NSCI Dome, Mumbai", Description: "Google Developer Groups", Category: "Tech", IsActive: true}
	hidden := &Event{Title: "Coldplay Secret Show", Location: "Mumbai", Category: "Music", IsActive: false}

	tests := []struct {
		name   string
		filter EventFilter
		event  *Event
		want   bool
	}{
		{"empty filter", EventFilter{}, coldplay, true},
		{"search title any case", EventFilter{Search: "COLDPLAY"}, coldplay, true},
		{"search location", EventFilter{Search: "patil"}, coldplay, true},
		{"search description", EventFilter{Search: "spheres"}, coldplay, true},
		{"search miss", EventFilter{Search: "coldplay"}, devfest, false},
		{"category any case", EventFilter{Category: "music"}, coldplay, true},
		{"category mismatch", EventFilter{Category: "music"}, devfest, false},
		{"category partial is not a match", EventFilter{Category: "mus"}, coldplay, false},
		{"category all", EventFilter{Category: "ALL"}, devfest, true},
		{"search and category both apply", EventFilter{Search: "mumbai", Category: "Tech"}, coldplay, false},
		{"search and category both match", EventFilter{Search: "mumbai", Category: "Tech"}, devfest, true},
		{"inactive never matches", EventFilter{Search: "coldplay"}, hidden, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.event); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBooking_Lifecycle(t *testing.T) {
	event := &Event{ID: 9, Price: 500, IsActive: true, AvailableSeats: 1}
	b := NewPendingBooking(3, event, "order_1", "INR")

	if b.Status != BookingStatusPending {
		t.Fatalf("Status = %s, want pending", b.Status)
	}
	if b.Amount != 50000 {
		t.Errorf("Amount = %d, want 50000", b.Amount)
	}

	now := time.Now()
	if err := b.Confirm("pay_1", now); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if b.Status != BookingStatusConfirmed || b.PaymentRef != "pay_1" {
		t.Errorf("after Confirm: status=%s payment=%s", b.Status, b.PaymentRef)
	}
	if err := b.Confirm("pay_2", now); err != ErrInvalidStateTransition {
		t.Errorf("second Confirm() error = %v, want ErrInvalidStateTransition", err)
	}
	if err := b.Cancel(now); err != ErrInvalidStateTransition {
		t.Errorf("Cancel() on confirmed error = %v, want ErrInvalidStateTransition", err)
	}
}

func TestBooking_IsStale(t *testing.T) {
	now := time.Now()
	b := &Booking{Status: BookingStatusPending, CreatedAt: now.Add(-31 * time.Minute)}
	if !b.IsStale(30*time.Minute, now) {
		t.Error("pending booking older than ttl should be stale")
	}

	b.Status = BookingStatusConfirmed
	if b.IsStale(30*time.Minute, now) {
		t.Error("confirmed booking is never stale")
	}
}

func TestNewBookingOutboxMessage(t *testing.T) {
	b := &Booking{ID: 42, UserID: 3, EventID: 9, OrderRef: "order_1", PaymentRef: "pay_1", Amount: 50000, Currency: "INR", Status: BookingStatusConfirmed}

	msg, err := NewBookingOutboxMessage(EventTypeBookingConfirmed, "booking-events", b, nil)
	if err != nil {
		t.Fatalf("NewBookingOutboxMessage() error = %v", err)
	}
	if msg.AggregateID != "42" || msg.PartitionKey != "9" {
		t.Errorf("AggregateID = %s PartitionKey = %s", msg.AggregateID, msg.PartitionKey)
	}
	if msg.Status != OutboxStatusPending || msg.MaxRetries != DefaultOutboxMaxRetries {
		t.Errorf("Status = %s MaxRetries = %d", msg.Status, msg.MaxRetries)
	}

	var payload BookingEvent
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.BookingID != 42 || payload.EventType != EventTypeBookingConfirmed || payload.EventID != msg.ID {
		t.Errorf("payload = %+v", payload)
	}

	msg.MarkAsFailed("broker down")
	if !msg.CanRetry() || msg.RetryCount != 1 {
		t.Errorf("after one failure CanRetry=%v RetryCount=%d", msg.CanRetry(), msg.RetryCount)
	}
	msg.MarkAsPublished(time.Now())
	if msg.Status != OutboxStatusPublished || msg.CanRetry() {
		t.Error("published message must not be retried")
	}
}
