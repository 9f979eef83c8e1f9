package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	// ErrUnavailable wraps every transport, timeout or 5xx failure of the remote gateway
	ErrUnavailable = errors.New("payment gateway unavailable")
	// ErrOrderRejected is returned when the gateway refuses the order request
	ErrOrderRejected = errors.New("payment gateway rejected the order")
	// ErrInvalidSignature is returned when the payment signature does not match
	ErrInvalidSignature = errors.New("invalid payment signature")
	// ErrPaymentIncomplete is returned when the gateway has not captured the payment
	ErrPaymentIncomplete = errors.New("payment not completed")
)

// PaymentGateway opens remote orders and verifies payment proofs
type PaymentGateway interface {
	// CreateOrder opens a remote order for amount in minor units
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)

	// VerifyPayment checks the signed proof returned by the checkout
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error

	// KeyID is the public key the client checkout is initialised with
	KeyID() string

	// Name returns the gateway name
	Name() string
}

// OrderRequest represents an order creation request
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order is the remote order returned by the gateway
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// Sign returns hex(HMAC-SHA256(secret, orderID|paymentID))
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares signature against the expected HMAC in constant time
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := Sign(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
