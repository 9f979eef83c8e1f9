package dto

import (
	"time"

	"github.com/vikask011/react-native/internal/domain"
)

// ListEventsRequest holds the catalog query string
type ListEventsRequest struct {
	Search   string `form:"search" binding:"max=100"`
	Category string `form:"category" binding:"max=50"`
}

// Filter converts the query into a domain filter
func (r *ListEventsRequest) Filter() domain.EventFilter {
	return domain.EventFilter{Search: r.Search, Category: r.Category}.Normalize()
}

// EventResponse is the public view of an event
type EventResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date"`
	Price          float64   `json:"price"`
	Category       string    `json:"category"`
	ImageURL       *string   `json:"image_url"`
	AvailableSeats int       `json:"available_seats"`
}

func NewEventResponse(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    optional(e.Description),
		Location:       e.Location,
		Date:           e.Date,
		Price:          e.Price,
		Category:       e.Category,
		ImageURL:       optional(e.ImageURL),
		AvailableSeats: e.AvailableSeats,
	}
}

func NewEventListResponse(events []*domain.Event) []*EventResponse {
	out := make([]*EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventResponse(e))
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
