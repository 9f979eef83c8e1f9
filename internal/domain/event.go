package domain

import (
	"math"
	"strings"
	"time"
)

// CategoryAll disables category filtering
const CategoryAll = "all"

// Event is a bookable catalog entry with a seat counter
type Event struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date"`
	Price          float64   `json:"price"`
	Category       string    `json:"category"`
	ImageURL       string    `json:"image_url,omitempty"`
	AvailableSeats int       `json:"available_seats"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsBookable reports whether an order may be opened for the event
func (e *Event) IsBookable() bool {
	return e.IsActive && e.AvailableSeats > 0
}

// AmountMinor returns the price in minor currency units (paise)
func (e *Event) AmountMinor() int64 {
	return int64(math.Round(e.Price * 100))
}

// EventFilter narrows a catalog listing. Both fields are optional and combine with AND.
type EventFilter struct {
	Search   string
	Category string
}

// Normalize trims input and drops the "all" category sentinel
func (f EventFilter) Normalize() EventFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)
	if strings.EqualFold(f.Category, CategoryAll) {
		f.Category = ""
	}
	return f
}

// Matches applies the listing rules to a single event: active only,
// case-insensitive substring search over title, location and description,
// and case-insensitive exact category match.
func (f EventFilter) Matches(e *Event) bool {
	if !e.IsActive {
		return false
	}
	f = f.Normalize()
	if f.Category != "" && !strings.EqualFold(e.Category, f.Category) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Title), needle) &&
			!strings.Contains(strings.ToLower(e.Location), needle) &&
			!strings.Contains(strings.ToLower(e.Description), needle) {
			return false
		}
	}
	return true
}
