package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/internal/repository"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// EventService defines the interface for catalog reads
type EventService interface {
	// ListEvents returns active events matching filter, soonest first
	ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
	// GetEvent returns a single event
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
}

type eventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.list")
	defer span.End()

	filter = filter.Normalize()
	span.SetAttributes(
		attribute.String("search", filter.Search),
		attribute.String("category", filter.Category),
	)

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(events)))
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.get")
	defer span.End()

	span.SetAttributes(attribute.Int64("event_id", id))

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return event, nil
}
