package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSLAProgress(t *testing.T) {
	raised := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ticket := Ticket{
		DateRaised:  raised,
		SLADeadline: raised.Add(10 * time.Hour),
	}

	t.Run("halfway through the window", func(t *testing.T) {
		assert.InDelta(t, 50, ticket.SLAProgress(raised.Add(5*time.Hour)), 0.01)
	})

	t.Run("clamped at zero before the window", func(t *testing.T) {
		assert.Equal(t, float64(0), ticket.SLAProgress(raised.Add(-time.Hour)))
	})

	t.Run("clamped at one hundred past the deadline", func(t *testing.T) {
		assert.Equal(t, float64(100), ticket.SLAProgress(raised.Add(20*time.Hour)))
	})

	t.Run("degenerate window reports full", func(t *testing.T) {
		flat := Ticket{DateRaised: raised, SLADeadline: raised}
		assert.Equal(t, float64(100), flat.SLAProgress(raised))
	})
}

func TestSLABreached(t *testing.T) {
	raised := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	deadline := raised.Add(4 * time.Hour)

	t.Run("open ticket past deadline is breached", func(t *testing.T) {
		ticket := Ticket{Status: StatusOpen, DateRaised: raised, SLADeadline: deadline}
		assert.True(t, ticket.SLABreached(deadline.Add(time.Minute)))
	})

	t.Run("open ticket before deadline is not breached", func(t *testing.T) {
		ticket := Ticket{Status: StatusOpen, DateRaised: raised, SLADeadline: deadline}
		assert.False(t, ticket.SLABreached(deadline.Add(-time.Minute)))
	})

	t.Run("resolved ticket never breaches", func(t *testing.T) {
		ticket := Ticket{Status: StatusResolved, DateRaised: raised, SLADeadline: deadline}
		assert.False(t, ticket.SLABreached(deadline.Add(time.Hour)))
	})
}

func TestTicketFiltersIsZero(t *testing.T) {
	assert.True(t, TicketFilters{}.IsZero())
	assert.False(t, TicketFilters{Search: "pos"}.IsZero())
	assert.False(t, TicketFilters{Status: []TicketStatus{StatusOpen}}.IsZero())
}
