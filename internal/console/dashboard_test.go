package console

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

func TestDashboardPolling(t *testing.T) {
	t.Run("entering starts a fetch and arms the tick", func(t *testing.T) {
		m := newDashboardModel(testDeps())
		next, cmd := m.enter()

		assert.True(t, next.loading)
		assert.NotNil(t, cmd)
		assert.Equal(t, m.pollGen+1, next.pollGen)
	})

	t.Run("an active tick refetches and re-arms", func(t *testing.T) {
		m := newDashboardModel(testDeps())
		m, _ = m.enter()

		next, cmd := m.Update(statsTickMsg{gen: m.pollGen}, true)
		assert.True(t, next.loading)
		assert.NotNil(t, cmd)
	})

	t.Run("a tick while another screen shows stops the loop", func(t *testing.T) {
		m := newDashboardModel(testDeps())
		m, _ = m.enter()

		_, cmd := m.Update(statsTickMsg{gen: m.pollGen}, false)
		assert.Nil(t, cmd)
	})

	t.Run("a tick from a replaced loop is dropped", func(t *testing.T) {
		m := newDashboardModel(testDeps())
		m, _ = m.enter()
		stale := m.pollGen
		m, _ = m.enter()

		_, cmd := m.Update(statsTickMsg{gen: stale}, true)
		assert.Nil(t, cmd)
	})
}

func TestDashboardStatsDelivery(t *testing.T) {
	t.Run("a result installs the stats", func(t *testing.T) {
		m := newDashboardModel(testDeps())
		m, _ = m.enter()

		next, _ := m.Update(statsMsg{stats: domain.DashboardStats{OpenTickets: 4, TotalTickets: 9}}, true)

		assert.True(t, next.loaded)
		assert.False(t, next.loading)
		assert.Equal(t, 4, next.stats.OpenTickets)
		assert.Empty(t, next.errText)
	})

	t.Run("a failure keeps the last known stats", func(t *testing.T) {
		m := newDashboardModel(testDeps())
		m, _ = m.Update(statsMsg{stats: domain.DashboardStats{OpenTickets: 4}}, true)
		require.True(t, m.loaded)

		next, _ := m.Update(statsMsg{err: errors.New("api down")}, true)

		assert.True(t, next.loaded)
		assert.Equal(t, 4, next.stats.OpenTickets)
		assert.NotEmpty(t, next.errText)
	})
}

func TestDashboardIntervalFromConfig(t *testing.T) {
	deps := testDeps()
	deps.Config.API.StatsInterval = 5 * time.Second

	m := newDashboardModel(deps)
	assert.Equal(t, 5*time.Second, m.interval)
}
