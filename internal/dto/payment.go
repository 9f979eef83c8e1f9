package dto

import (
	"time"

	"github.com/vikask011/react-native/internal/domain"
)

// CreateOrderRequest opens a gateway order for one seat
type CreateOrderRequest struct {
	EventID int64 `json:"event_id" binding:"required,gt=0"`
}

// CreateOrderResponse carries what the client needs to render the payment widget
type CreateOrderResponse struct {
	OrderID    string `json:"order_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	KeyID      string `json:"key_id"`
	EventTitle string `json:"event_title"`
	EventID    int64  `json:"event_id"`
	BookingID  int64  `json:"booking_id"`
}

// VerifyPaymentRequest is the signed payment proof returned by the gateway checkout
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required,max=100"`
	PaymentID string `json:"razorpay_payment_id" binding:"required,max=100"`
	Signature string `json:"razorpay_signature" binding:"required,max=256"`
	EventID   int64  `json:"event_id" binding:"required,gt=0"`
}

// ConfirmTestPaymentRequest confirms a pending booking without a signature
type ConfirmTestPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required,max=100"`
	PaymentID string `json:"razorpay_payment_id" binding:"required,max=100"`
}

// PaymentConfirmedResponse is returned once a booking is confirmed
type PaymentConfirmedResponse struct {
	Message   string `json:"message"`
	BookingID int64  `json:"booking_id"`
}

// BookingResponse is one entry of the user's booking history
type BookingResponse struct {
	ID          int64          `json:"id"`
	EventID     int64          `json:"event_id"`
	OrderID     string         `json:"order_id"`
	PaymentID   *string        `json:"payment_id"`
	Amount      float64        `json:"amount"`
	AmountMinor int64          `json:"amount_minor"`
	Currency    string         `json:"currency"`
	Status      string         `json:"status"`
	BookedAt    time.Time      `json:"booked_at"`
	Event       *EventResponse `json:"event"`
}

func NewBookingResponse(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:          b.ID,
		EventID:     b.EventID,
		OrderID:     b.OrderRef,
		PaymentID:   optional(b.PaymentRef),
		Amount:      float64(b.Amount) / 100,
		AmountMinor: b.Amount,
		Currency:    b.Currency,
		Status:      b.Status.String(),
		BookedAt:    b.CreatedAt,
	}
	if b.Event != nil {
		resp.Event = NewEventResponse(b.Event)
	}
	return resp
}

func NewBookingListResponse(bookings []*domain.Booking) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}
