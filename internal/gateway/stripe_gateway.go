package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeGateway implements PaymentGateway with Stripe PaymentIntents.
// The PaymentIntent id is the order reference.
type StripeGateway struct {
	config *StripeGatewayConfig
}

// StripeGatewayConfig holds configuration for Stripe gateway
type StripeGatewayConfig struct {
	SecretKey string
	// PublishableKey is returned to the client as key_id
	PublishableKey string
	// SigningSecret signs order|payment proofs exchanged with the client
	SigningSecret string
}

// NewStripeGateway creates a new Stripe gateway
func NewStripeGateway(config *StripeGatewayConfig) (*StripeGateway, error) {
	if config == nil {
		return nil, fmt.Errorf("stripe config is required")
	}
	if config.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}
	if config.SigningSecret == "" {
		return nil, fmt.Errorf("stripe signing secret is required")
	}

	// Set Stripe API key globally
	stripe.Key = config.SecretKey

	return &StripeGateway{config: config}, nil
}

// CreateOrder creates a PaymentIntent for the amount in minor units
func (g *StripeGateway) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is required")
	}

	pi, err := paymentintent.New(newIntentParams(ctx, req))
	if err != nil {
		return nil, mapStripeError(err)
	}

	return &Order{
		ID:       pi.ID,
		Amount:   pi.Amount,
		Currency: strings.ToUpper(string(pi.Currency)),
		Receipt:  req.Receipt,
		Status:   string(pi.Status),
	}, nil
}

// newIntentParams binds ctx so the caller's deadline bounds the Stripe call
func newIntentParams(ctx context.Context, req *OrderRequest) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: make(map[string]string),
	}
	params.Metadata["receipt"] = req.Receipt
	for k, v := range req.Notes {
		params.Metadata[k] = v
	}
	return params
}

// VerifyPayment checks the signature, then requires the PaymentIntent to have succeeded
func (g *StripeGateway) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error {
	if !VerifySignature(g.config.SigningSecret, orderID, paymentID, signature) {
		return ErrInvalidSignature
	}

	pi, err := paymentintent.Get(orderID, &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return mapStripeError(err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("%w: status %s", ErrPaymentIncomplete, pi.Status)
	}
	return nil
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 &&
		stripeErr.HTTPStatusCode != 429 {
		return fmt.Errorf("%w: %s", ErrOrderRejected, stripeErr.Msg)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (g *StripeGateway) KeyID() string {
	return g.config.PublishableKey
}

// Name returns the gateway name
func (g *StripeGateway) Name() string {
	return "stripe"
}
