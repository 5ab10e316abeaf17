package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lorrc/merchant-support-console/internal/apperrors"
	"github.com/lorrc/merchant-support-console/internal/domain"
	"github.com/lorrc/merchant-support-console/internal/querycache"
)

// statsKey is the cache key for the dashboard statistics query.
const statsKey = "dashboard/stats"

// dashboardModel shows the live statistic cards. The stats query is
// re-issued on a fixed interval; the cache TTL matches the interval so
// each tick actually hits the network while intermediate renders reuse
// the cached value.
type dashboardModel struct {
	deps     Deps
	interval time.Duration

	stats   domain.DashboardStats
	loaded  bool
	loading bool
	errText string
	fetched time.Time
	pollGen int
}

func newDashboardModel(deps Deps) dashboardModel {
	return dashboardModel{deps: deps, interval: deps.Config.API.StatsInterval}
}

func (m dashboardModel) enter() (dashboardModel, tea.Cmd) {
	m.loading = true
	m.pollGen++
	return m, tea.Batch(m.fetch(), m.tick())
}

func (m dashboardModel) tick() tea.Cmd {
	gen := m.pollGen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return statsTickMsg{gen: gen} })
}

func (m dashboardModel) fetch() tea.Cmd {
	deps := m.deps
	ttl := m.interval
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.API.RequestTimeout)
		defer cancel()
		stats, err := querycache.Query(deps.Cache, ctx, statsKey, querycache.Options{TTL: ttl, Retries: 1}, deps.Client.DashboardStats)
		return statsMsg{stats: stats, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg, active bool) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsTickMsg:
		if !active || msg.gen != m.pollGen {
			// Stop the poll loop when the dashboard is not showing or
			// a route re-entry already started a newer loop.
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.fetch(), m.tick())

	case statsMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = apperrors.UserMessage(msg.err, "Failed to load statistics")
			return m, nil
		}
		m.stats = msg.stats
		m.loaded = true
		m.errText = ""
		m.fetched = time.Now()
		return m, nil
	}
	return m, nil
}

func (m dashboardModel) View(theme Theme, width int) string {
	if !m.loaded && m.loading {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render("Loading statistics...")
	}
	if !m.loaded && m.errText != "" {
		return lipgloss.NewStyle().Foreground(theme.Error).Render(m.errText)
	}

	cards := []struct {
		label string
		value string
		color lipgloss.Color
	}{
		{"Open", fmt.Sprintf("%d", m.stats.OpenTickets), theme.StatusOpen},
		{"In Progress", fmt.Sprintf("%d", m.stats.InProgressTickets), theme.StatusInProgress},
		{"SLA Breaches", fmt.Sprintf("%d", m.stats.SLABreaches), theme.Error},
		{"Total", fmt.Sprintf("%d", m.stats.TotalTickets), theme.NormalText},
		{"Avg Resolution", fmt.Sprintf("%.1fh", m.stats.AvgResolutionTime), theme.NormalText},
		{"Satisfaction", fmt.Sprintf("%.1f/5", m.stats.CustomerSatisfaction), theme.NormalText},
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 2).
		Width(18)

	rendered := make([]string, len(cards))
	for i, c := range cards {
		value := lipgloss.NewStyle().Bold(true).Foreground(c.color).Render(c.value)
		label := lipgloss.NewStyle().Foreground(theme.FaintText).Render(c.label)
		rendered[i] = card.Render(value + "\n" + label)
	}

	perRow := 3
	if width >= 6*20 {
		perRow = 6
	}
	var rows []string
	for start := 0; start < len(rendered); start += perRow {
		end := start + perRow
		if end > len(rendered) {
			end = len(rendered)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered[start:end]...))
	}

	footer := ""
	if !m.fetched.IsZero() {
		footer = lipgloss.NewStyle().Foreground(theme.HelpText).Render(
			fmt.Sprintf("updated %s, refreshes every %s", m.fetched.Format("15:04:05"), m.interval))
	}
	if m.errText != "" {
		footer = lipgloss.NewStyle().Foreground(theme.Error).Render(m.errText + " (showing last known values)")
	}

	return strings.Join(rows, "\n") + "\n\n" + footer
}
