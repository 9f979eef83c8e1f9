package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikask011/react-native/internal/dto"
	"github.com/vikask011/react-native/internal/service"
	"github.com/vikask011/react-native/pkg/response"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// ProfileHandler serves the authenticated user's profile and bookings
type ProfileHandler struct {
	authService    service.AuthService
	bookingService service.BookingService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(authService service.AuthService, bookingService service.BookingService) *ProfileHandler {
	return &ProfileHandler{
		authService:    authService,
		bookingService: bookingService,
	}
}

// Profile handles GET /profile
func (h *ProfileHandler) Profile(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.profile.get")
	defer span.End()

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.NewUserProfileResponse(user)))
}

// Bookings handles GET /profile/bookings
func (h *ProfileHandler) Bookings(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.profile.bookings")
	defer span.End()

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.GetUserBookings(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMeta(dto.NewBookingListResponse(bookings), response.Meta{Total: len(bookings)}))
}
