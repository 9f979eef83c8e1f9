package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vikask011/react-native/pkg/retry"
)

// RazorpayGatewayConfig holds configuration for the Razorpay Orders API
type RazorpayGatewayConfig struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// RazorpayGateway implements PaymentGateway over the Razorpay REST API
type RazorpayGateway struct {
	config *RazorpayGatewayConfig
	client *http.Client
	retry  *retry.Config
}

// NewRazorpayGateway creates a new Razorpay gateway
func NewRazorpayGateway(config *RazorpayGatewayConfig) (*RazorpayGateway, error) {
	if config == nil {
		return nil, fmt.Errorf("razorpay config is required")
	}
	if config.KeyID == "" || config.KeySecret == "" {
		return nil, fmt.Errorf("razorpay key id and secret are required")
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.razorpay.com/v1"
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = config.MaxRetries

	return &RazorpayGateway{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		retry:  retryCfg,
	}, nil
}

type razorpayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrder struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder opens a Razorpay order. Transport errors, 429 and 5xx are
// retried; other 4xx responses fail immediately with ErrOrderRejected.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is required")
	}

	body, err := json.Marshal(razorpayOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	var order razorpayOrder
	err = retry.Do(ctx, g.retry, func(ctx context.Context) error {
		return g.postOrder(ctx, body, &order)
	}, nil)
	if err != nil {
		if errors.Is(err, ErrOrderRejected) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &Order{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		Status:   order.Status,
	}, nil
}

func (g *RazorpayGateway) postOrder(ctx context.Context, body []byte, out *razorpayOrder) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(g.config.BaseURL, "/")+"/orders", bytes.NewReader(body))
	if err != nil {
		return retry.Permanent(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(g.config.KeyID, g.config.KeySecret)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		if err := json.Unmarshal(raw, out); err != nil {
			return retry.Permanent(fmt.Errorf("failed to decode order response: %w", err))
		}
		if out.ID == "" {
			return retry.Permanent(errors.New("order response has no id"))
		}
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("razorpay returned status %d", resp.StatusCode)
	default:
		var apiErr razorpayError
		_ = json.Unmarshal(raw, &apiErr)
		return retry.Permanent(fmt.Errorf("%w: status %d: %s %s", ErrOrderRejected,
			resp.StatusCode, apiErr.Error.Code, apiErr.Error.Description))
	}
}

// VerifyPayment checks the checkout signature with the key secret
func (g *RazorpayGateway) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error {
	if !VerifySignature(g.config.KeySecret, orderID, paymentID, signature) {
		return ErrInvalidSignature
	}
	return nil
}

func (g *RazorpayGateway) KeyID() string {
	return g.config.KeyID
}

// Name returns the gateway name
func (g *RazorpayGateway) Name() string {
	return "razorpay"
}
