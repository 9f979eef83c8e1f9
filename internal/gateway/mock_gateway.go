package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockGateway implements PaymentGateway locally for development and load testing.
// Signatures are still real HMACs over the configured secret.
type MockGateway struct {
	config *MockGatewayConfig
}

// MockGatewayConfig holds configuration for the mock gateway
type MockGatewayConfig struct {
	KeyID     string
	KeySecret string

	// DelayMs is the simulated processing delay in milliseconds
	DelayMs int

	// FailOrders makes every CreateOrder fail with ErrUnavailable
	FailOrders bool
}

// DefaultMockGatewayConfig returns default configuration
func DefaultMockGatewayConfig() *MockGatewayConfig {
	return &MockGatewayConfig{
		KeyID:     "rzp_test_mock",
		KeySecret: "mock_secret",
	}
}

// NewMockGateway creates a new mock gateway
func NewMockGateway(config *MockGatewayConfig) *MockGateway {
	if config == nil {
		config = DefaultMockGatewayConfig()
	}
	return &MockGateway{config: config}
}

// CreateOrder returns a local order_<hex> reference
func (g *MockGateway) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is required")
	}

	if g.config.DelayMs > 0 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		case <-time.After(time.Duration(g.config.DelayMs) * time.Millisecond):
		}
	}

	if g.config.FailOrders {
		return nil, fmt.Errorf("%w: mock gateway configured to fail", ErrUnavailable)
	}

	return &Order{
		ID:       "order_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:14],
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

// VerifyPayment checks the HMAC signature
func (g *MockGateway) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error {
	if !VerifySignature(g.config.KeySecret, orderID, paymentID, signature) {
		return ErrInvalidSignature
	}
	return nil
}

func (g *MockGateway) KeyID() string {
	return g.config.KeyID
}

// Name returns the gateway name
func (g *MockGateway) Name() string {
	return "mock"
}
