package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vikask011/react-native/internal/dto"
	"github.com/vikask011/react-native/internal/service"
	"github.com/vikask011/react-native/pkg/middleware"
	"github.com/vikask011/react-native/pkg/response"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// PaymentHandler handles order creation and payment confirmation
type PaymentHandler struct {
	bookingService service.BookingService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(bookingService service.BookingService) *PaymentHandler {
	return &PaymentHandler{bookingService: bookingService}
}

// CreateOrder handles POST /payment/create-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.payment.create_order")
	defer span.End()

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ValidationError(err.Error()))
		return
	}
	span.SetAttributes(attribute.Int64("user.id", userID), attribute.Int64("event.id", req.EventID))

	result, err := h.bookingService.CreateOrder(ctx, userID, &req)
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Verify handles POST /payment/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.payment.verify")
	defer span.End()

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ValidationError(err.Error()))
		return
	}
	span.SetAttributes(attribute.Int64("user.id", userID), attribute.String("order.id", req.OrderID))

	result, err := h.bookingService.VerifyPayment(ctx, userID, &req)
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// ConfirmTest handles POST /payment/confirm-test. Mounted only outside
// production when test confirmation is enabled.
func (h *PaymentHandler) ConfirmTest(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.payment.confirm_test")
	defer span.End()

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.ConfirmTestPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ValidationError(err.Error()))
		return
	}

	result, err := h.bookingService.ConfirmTestPayment(ctx, userID, &req)
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

func requireUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("User not authenticated"))
		return 0, false
	}
	return userID, true
}
