package domain

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")

	// Event errors
	ErrEventNotFound = errors.New("event not found")
	ErrSoldOut       = errors.New("no seats available")

	// Booking errors
	ErrBookingNotFound        = errors.New("booking not found")
	ErrInvalidBookingStatus   = errors.New("invalid booking status")
	ErrInvalidStateTransition = errors.New("invalid booking state transition")

	// Payment errors
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrGatewayUnavailable        = errors.New("payment gateway unavailable")
)
