package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"classregistration/internal/catalog"
	"classregistration/internal/domain"
)

// DefaultUpcomingLimit caps ListUpcoming when the caller passes no limit.
const DefaultUpcomingLimit = 5

type eventLookupService struct {
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventLookupService returns an EventLookupService that reads live events and degrades to
// the fallback catalog on any error or empty result.
func NewEventLookupService(eventRepo domain.EventRepository, logger *slog.Logger, timeout time.Duration) domain.EventLookupService {
	return &eventLookupService{
		eventRepo:      eventRepo,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func live(events []*domain.Event) domain.EventLookup {
	return domain.EventLookup{Source: domain.EventSourceLive, Events: events}
}

func fallback(events []*domain.Event) domain.EventLookup {
	return domain.EventLookup{Source: domain.EventSourceFallback, Events: events}
}

// today is the current UTC calendar date at midnight.
func (s *eventLookupService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *eventLookupService) ResolveUpcoming(ctx context.Context, limit int) domain.EventLookup {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	events, err := s.eventRepo.ListUpcoming(ctx, s.today(), limit)
	if err != nil {
		s.logger.WarnContext(ctx, "using fallback events", "reason", "query failed", "err", err)
		return fallback(catalog.Events())
	}
	if len(events) == 0 {
		s.logger.InfoContext(ctx, "using fallback events", "reason", "no upcoming events")
		return fallback(catalog.Events())
	}
	return live(events)
}

func (s *eventLookupService) ResolveByID(ctx context.Context, id string) domain.EventLookup {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id == "" {
		return fallback([]*domain.Event{catalog.Find(id)})
	}
	ev, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.InfoContext(ctx, "using fallback event", "event_id", id, "reason", "not found")
		} else {
			s.logger.WarnContext(ctx, "using fallback event", "event_id", id, "reason", "query failed", "err", err)
		}
		return fallback([]*domain.Event{catalog.Find(id)})
	}
	return live([]*domain.Event{ev})
}

func (s *eventLookupService) ListUpcoming(ctx context.Context, limit int) []*domain.Event {
	return s.ResolveUpcoming(ctx, limit).Events
}

func (s *eventLookupService) GetByID(ctx context.Context, id string) *domain.Event {
	return s.ResolveByID(ctx, id).First()
}
