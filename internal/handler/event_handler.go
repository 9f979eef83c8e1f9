package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vikask011/react-native/internal/dto"
	"github.com/vikask011/react-native/internal/service"
	"github.com/vikask011/react-native/pkg/response"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// EventHandler handles catalog HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /events?search=&category=
func (h *EventHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.list")
	defer span.End()

	var req dto.ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	events, err := h.eventService.ListEvents(ctx, req.Filter())
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMeta(dto.NewEventListResponse(events), response.Meta{Total: len(events)}))
}

// GetByID handles GET /events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.get")
	defer span.End()

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("event.id", id))

	event, err := h.eventService.GetEvent(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.NewEventResponse(event)))
}

// parseID reads a positive integer path parameter, answering 400 when it is not one
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid "+name))
		return 0, false
	}
	return id, true
}
