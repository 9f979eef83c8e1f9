package handler

import (
	"context"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/internal/dto"
)

// MockAuthService is a mock implementation of AuthService for testing
type MockAuthService struct {
	RegisterFunc    func(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	LoginFunc       func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	VerifyTokenFunc func(token string) (int64, error)
	GetProfileFunc  func(ctx context.Context, userID int64) (*domain.User, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) VerifyToken(token string) (int64, error) {
	if m.VerifyTokenFunc != nil {
		return m.VerifyTokenFunc(token)
	}
	return 0, domain.ErrInvalidToken
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, nil
}

// MockEventService is a mock implementation of EventService for testing
type MockEventService struct {
	ListEventsFunc func(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
	GetEventFunc   func(ctx context.Context, id int64) (*domain.Event, error)
}

func (m *MockEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockEventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	if m.GetEventFunc != nil {
		return m.GetEventFunc(ctx, id)
	}
	return nil, domain.ErrEventNotFound
}

// MockBookingService is a mock implementation of BookingService for testing
type MockBookingService struct {
	CreateOrderFunc        func(ctx context.Context, userID int64, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	VerifyPaymentFunc      func(ctx context.Context, userID int64, req *dto.VerifyPaymentRequest) (*dto.PaymentConfirmedResponse, error)
	ConfirmTestPaymentFunc func(ctx context.Context, userID int64, req *dto.ConfirmTestPaymentRequest) (*dto.PaymentConfirmedResponse, error)
	GetUserBookingsFunc    func(ctx context.Context, userID int64) ([]*domain.Booking, error)
}

func (m *MockBookingService) CreateOrder(ctx context.Context, userID int64, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockBookingService) VerifyPayment(ctx context.Context, userID int64, req *dto.VerifyPaymentRequest) (*dto.PaymentConfirmedResponse, error) {
	if m.VerifyPaymentFunc != nil {
		return m.VerifyPaymentFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockBookingService) ConfirmTestPayment(ctx context.Context, userID int64, req *dto.ConfirmTestPaymentRequest) (*dto.PaymentConfirmedResponse, error) {
	if m.ConfirmTestPaymentFunc != nil {
		return m.ConfirmTestPaymentFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	if m.GetUserBookingsFunc != nil {
		return m.GetUserBookingsFunc(ctx, userID)
	}
	return nil, nil
}
