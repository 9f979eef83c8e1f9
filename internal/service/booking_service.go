package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/internal/dto"
	"github.com/vikask011/react-native/internal/gateway"
	"github.com/vikask011/react-native/internal/metrics"
	"github.com/vikask011/react-native/internal/repository"
	"github.com/vikask011/react-native/pkg/logger"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// BookingServiceConfig holds configuration for BookingService
type BookingServiceConfig struct {
	Currency string
	// Topic is the Kafka topic written into outbox messages
	Topic string
	// GatewayTimeout bounds the whole order creation call including retries
	GatewayTimeout time.Duration
}

// BookingService defines the interface for the order and payment lifecycle
type BookingService interface {
	// CreateOrder opens a gateway order and records a pending booking
	CreateOrder(ctx context.Context, userID int64, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	// VerifyPayment checks the payment signature and confirms the booking
	VerifyPayment(ctx context.Context, userID int64, req *dto.VerifyPaymentRequest) (*dto.PaymentConfirmedResponse, error)
	// ConfirmTestPayment confirms the booking without a signature
	ConfirmTestPayment(ctx context.Context, userID int64, req *dto.ConfirmTestPaymentRequest) (*dto.PaymentConfirmedResponse, error)
	// GetUserBookings returns the user's bookings newest first
	GetUserBookings(ctx context.Context, userID int64) ([]*domain.Booking, error)
}

type bookingService struct {
	eventRepo   repository.EventRepository
	bookingRepo repository.BookingRepository
	gateway     gateway.PaymentGateway
	config      *BookingServiceConfig
	metrics     *metrics.Booking
	log         *logger.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	eventRepo repository.EventRepository,
	bookingRepo repository.BookingRepository,
	paymentGateway gateway.PaymentGateway,
	config *BookingServiceConfig,
) BookingService {
	if config == nil {
		config = &BookingServiceConfig{}
	}
	if config.Currency == "" {
		config.Currency = "INR"
	}
	if config.Topic == "" {
		config.Topic = "booking-events"
	}
	if config.GatewayTimeout <= 0 {
		config.GatewayTimeout = 15 * time.Second
	}
	return &bookingService{
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		gateway:     paymentGateway,
		config:      config,
		metrics:     metrics.Get(),
		log:         logger.Get(),
	}
}

// CreateOrder opens the remote order first and persists the pending booking
// only after the gateway succeeded.
func (s *bookingService) CreateOrder(ctx context.Context, userID int64, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.create_order")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("event_id", req.EventID),
	)

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !event.IsActive {
		telemetry.RecordError(span, domain.ErrEventNotFound)
		return nil, domain.ErrEventNotFound
	}
	if !event.IsBookable() {
		s.metrics.SoldOut.Inc(ctx)
		telemetry.RecordError(span, domain.ErrSoldOut)
		return nil, domain.ErrSoldOut
	}

	amount := event.AmountMinor()
	order, err := s.openOrder(ctx, &gateway.OrderRequest{
		Amount:   amount,
		Currency: s.config.Currency,
		Receipt:  newReceipt(),
		Notes: map[string]string{
			"event_id": strconv.FormatInt(event.ID, 10),
			"user_id":  strconv.FormatInt(userID, 10),
		},
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	booking := domain.NewPendingBooking(userID, event, order.ID, s.config.Currency)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.metrics.OrdersCreated.Inc(ctx, metrics.Gateway(s.gateway.Name()))
	span.SetAttributes(
		attribute.Int64("booking_id", booking.ID),
		attribute.String("order_id", order.ID),
	)

	return &dto.CreateOrderResponse{
		OrderID:    order.ID,
		Amount:     amount,
		Currency:   s.config.Currency,
		KeyID:      s.gateway.KeyID(),
		EventTitle: event.Title,
		EventID:    event.ID,
		BookingID:  booking.ID,
	}, nil
}

func (s *bookingService) openOrder(ctx context.Context, req *gateway.OrderRequest) (*gateway.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.GatewayTimeout)
	defer cancel()

	start := time.Now()
	order, err := s.gateway.CreateOrder(ctx, req)
	s.metrics.GatewayLatency.Record(ctx, float64(time.Since(start).Milliseconds()), metrics.Gateway(s.gateway.Name()))
	if err != nil {
		s.metrics.GatewayFailures.Inc(ctx, metrics.Gateway(s.gateway.Name()))
		s.log.WithContext(ctx).Error("payment gateway order failed",
			zap.String("gateway", s.gateway.Name()),
			zap.Int64("amount", req.Amount),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	return order, nil
}

// VerifyPayment checks the signature before touching the database
func (s *bookingService) VerifyPayment(ctx context.Context, userID int64, req *dto.VerifyPaymentRequest) (*dto.PaymentConfirmedResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.verify_payment")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.String("order_id", req.OrderID),
		attribute.Int64("event_id", req.EventID),
	)

	if err := s.gateway.VerifyPayment(ctx, req.OrderID, req.PaymentID, req.Signature); err != nil {
		err = s.mapVerifyError(ctx, err)
		telemetry.RecordError(span, err)
		return nil, err
	}

	booking, err := s.confirm(ctx, &repository.ConfirmRequest{
		OrderRef:   req.OrderID,
		PaymentRef: req.PaymentID,
		UserID:     userID,
		EventID:    req.EventID,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("booking_id", booking.ID))
	return &dto.PaymentConfirmedResponse{
		Message:   "Payment verified successfully",
		BookingID: booking.ID,
	}, nil
}

func (s *bookingService) mapVerifyError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, gateway.ErrInvalidSignature), errors.Is(err, gateway.ErrPaymentIncomplete):
		s.metrics.SignatureFailures.Inc(ctx, metrics.Gateway(s.gateway.Name()))
		return domain.ErrPaymentVerificationFailed
	case errors.Is(err, gateway.ErrUnavailable), errors.Is(err, gateway.ErrOrderRejected):
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	default:
		return err
	}
}

// ConfirmTestPayment runs the confirm transaction without a signature check
func (s *bookingService) ConfirmTestPayment(ctx context.Context, userID int64, req *dto.ConfirmTestPaymentRequest) (*dto.PaymentConfirmedResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.confirm_test_payment")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.String("order_id", req.OrderID),
	)

	booking, err := s.confirm(ctx, &repository.ConfirmRequest{
		OrderRef:   req.OrderID,
		PaymentRef: req.PaymentID,
		UserID:     userID,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.log.WithContext(ctx).Warn("booking confirmed without payment signature",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
	)
	return &dto.PaymentConfirmedResponse{
		Message:   "Test payment confirmed",
		BookingID: booking.ID,
	}, nil
}

func (s *bookingService) confirm(ctx context.Context, req *repository.ConfirmRequest) (*domain.Booking, error) {
	req.Topic = s.config.Topic
	req.Headers = telemetry.InjectHeaders(ctx)

	booking, err := s.bookingRepo.ConfirmWithSeat(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrSoldOut) {
			s.metrics.SoldOut.Inc(ctx)
		}
		return nil, err
	}

	if cache, ok := s.eventRepo.(repository.EventCache); ok {
		cache.Invalidate(ctx, booking.EventID)
	}
	s.metrics.BookingsConfirmed.Inc(ctx, metrics.Gateway(s.gateway.Name()))
	return booking, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.get_user_bookings")
	defer span.End()

	span.SetAttributes(attribute.Int64("user_id", userID))

	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return bookings, nil
}

// newReceipt returns a receipt id within the 40 character gateway limit
func newReceipt() string {
	return "rcpt_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
