package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents_FixedOrder(t *testing.T) {
	events := Events()
	require.Len(t, events, 3)
	assert.Equal(t, "1", events[0].ID)
	assert.Equal(t, "2", events[1].ID)
	assert.Equal(t, "3", events[2].ID)
	assert.Equal(t, "Boca Raton", events[2].City)
}

func TestEvents_ReturnsCopies(t *testing.T) {
	events := Events()
	events[0].City = "Elsewhere"

	assert.Equal(t, "Grand Rapids", Events()[0].City)
}

func TestFind(t *testing.T) {
	ev := Find("2")
	assert.Equal(t, "2", ev.ID)
	assert.Equal(t, time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC), ev.Date)
	assert.Equal(t, "Calvin University Prince Conference Center", ev.LocationName)

	assert.Equal(t, "1", Find("unknown-id").ID)
	assert.Equal(t, "1", Find("").ID)
}
