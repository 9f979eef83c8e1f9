package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/pkg/logger"
	"github.com/vikask011/react-native/pkg/response"
)

// handleError maps domain errors to HTTP responses. Unknown errors are
// logged and answered with a generic 500.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
	case errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("Booking not found"))
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("User not found"))
	case errors.Is(err, domain.ErrSoldOut):
		c.JSON(http.StatusBadRequest, response.Error("SOLD_OUT", "No seats available"))
	case errors.Is(err, domain.ErrPaymentVerificationFailed):
		c.JSON(http.StatusBadRequest, response.Error("PAYMENT_VERIFICATION_FAILED", "Payment verification failed"))
	case errors.Is(err, domain.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, response.Conflict("Booking is no longer pending"))
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, response.Error("EMAIL_EXISTS", "Email already registered"))
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response.Error("INVALID_CREDENTIALS", "Invalid email or password"))
	case errors.Is(err, domain.ErrGatewayUnavailable):
		logger.Get().WithContext(c.Request.Context()).Warn("payment gateway error", zap.Error(err))
		c.JSON(http.StatusBadGateway, response.Error("GATEWAY_UNAVAILABLE", "Payment gateway unavailable"))
	default:
		logger.Get().WithContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, response.InternalError())
	}
}
