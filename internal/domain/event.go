package domain

import (
	"context"
	"time"
)

// Event is a scheduled session of the class.
// swagger:model Event
type Event struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	LocationName string    `json:"location_name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Zip          string    `json:"zip"`
	Time         string    `json:"time,omitempty"`
}

// EventRepository defines read access to the events table. Events are entered
// administratively; this service never writes them.
type EventRepository interface {
	// ListUpcoming returns events dated on or after from, ascending by date, at most limit rows.
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
}

// EventSource tells which branch produced an EventLookup.
type EventSource string

const (
	EventSourceLive     EventSource = "live"
	EventSourceFallback EventSource = "fallback"
)

// EventLookup is the result of resolving events: either live rows or the fallback catalog.
type EventLookup struct {
	Source EventSource
	Events []*Event
}

// IsFallback reports whether the lookup degraded to the fallback catalog.
func (l EventLookup) IsFallback() bool { return l.Source == EventSourceFallback }

// First returns the first event, or nil when the lookup is empty.
func (l EventLookup) First() *Event {
	if len(l.Events) == 0 {
		return nil
	}
	return l.Events[0]
}

// EventLookupService resolves events for display. It never returns errors: any failure or
// empty result degrades to the fallback catalog.
type EventLookupService interface {
	ResolveUpcoming(ctx context.Context, limit int) EventLookup
	ResolveByID(ctx context.Context, id string) EventLookup
	ListUpcoming(ctx context.Context, limit int) []*Event
	GetByID(ctx context.Context, id string) *Event
}
