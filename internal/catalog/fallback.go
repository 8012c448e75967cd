// Package catalog holds the hard-coded events shown when the events table cannot be read.
package catalog

import (
	"time"

	"classregistration/internal/domain"
)

const (
	calvinVenue   = "Calvin University Prince Conference Center"
	calvinAddress = "1800 E Beltline Ave SE"
	morningSlot   = "9:00 AM - 12:00 PM"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var fallbackEvents = []domain.Event{
	{ID: "1", Date: date(2025, time.April, 12), LocationName: calvinVenue, Address: calvinAddress, City: "Grand Rapids", State: "MI", Zip: "49546", Time: morningSlot},
	{ID: "2", Date: date(2025, time.May, 3), LocationName: calvinVenue, Address: calvinAddress, City: "Grand Rapids", State: "MI", Zip: "49546", Time: morningSlot},
	{ID: "3", Date: date(2025, time.May, 10), LocationName: "Lynn University International Business Center", Address: "3601 N. Military Trail", City: "Boca Raton", State: "FL", Zip: "33431", Time: morningSlot},
}

// Events returns copies of the fallback events in their fixed order.
func Events() []*domain.Event {
	out := make([]*domain.Event, len(fallbackEvents))
	for i := range fallbackEvents {
		ev := fallbackEvents[i]
		out[i] = &ev
	}
	return out
}

// Find returns the fallback event with id, or the first fallback event when none matches.
func Find(id string) *domain.Event {
	for i := range fallbackEvents {
		if fallbackEvents[i].ID == id {
			ev := fallbackEvents[i]
			return &ev
		}
	}
	ev := fallbackEvents[0]
	return &ev
}
