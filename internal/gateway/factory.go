package gateway

import (
	"fmt"
	"strings"
	"time"
)

// GatewayType represents the type of payment gateway
type GatewayType string

const (
	GatewayTypeRazorpay GatewayType = "razorpay"
	GatewayTypeMock     GatewayType = "mock"
	GatewayTypeStripe   GatewayType = "stripe"
)

// GatewayConfig holds common gateway configuration
type GatewayConfig struct {
	KeyID           string
	KeySecret       string
	BaseURL         string
	StripeSecretKey string
	Timeout         time.Duration
	MaxRetries      int
}

// NewPaymentGateway creates a payment gateway based on the type
func NewPaymentGateway(gatewayType string, config *GatewayConfig) (PaymentGateway, error) {
	if config == nil {
		config = &GatewayConfig{}
	}

	switch GatewayType(strings.ToLower(gatewayType)) {
	case GatewayTypeRazorpay, "":
		return NewRazorpayGateway(&RazorpayGatewayConfig{
			KeyID:      config.KeyID,
			KeySecret:  config.KeySecret,
			BaseURL:    config.BaseURL,
			Timeout:    config.Timeout,
			MaxRetries: config.MaxRetries,
		})

	case GatewayTypeMock:
		mockCfg := DefaultMockGatewayConfig()
		if config.KeyID != "" {
			mockCfg.KeyID = config.KeyID
		}
		if config.KeySecret != "" {
			mockCfg.KeySecret = config.KeySecret
		}
		return NewMockGateway(mockCfg), nil

	case GatewayTypeStripe:
		return NewStripeGateway(&StripeGatewayConfig{
			SecretKey:      config.StripeSecretKey,
			PublishableKey: config.KeyID,
			SigningSecret:  config.KeySecret,
		})

	default:
		return nil, fmt.Errorf("unsupported gateway type: %s", gatewayType)
	}
}
