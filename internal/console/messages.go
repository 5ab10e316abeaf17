package console

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lorrc/merchant-support-console/internal/api"
	"github.com/lorrc/merchant-support-console/internal/domain"
)

// sessionInvalidatedMsg arrives when the API client saw a 401. The
// session is already cleared; the app's only job is navigation.
type sessionInvalidatedMsg struct {
	event api.SessionInvalidated
}

// currentUserMsg resolves the authenticated-user query.
type currentUserMsg struct {
	user    domain.User
	enabled bool
	err     error
}

// loginDoneMsg reports the outcome of a login attempt.
type loginDoneMsg struct {
	err error
}

// statsMsg delivers dashboard statistics.
type statsMsg struct {
	stats domain.DashboardStats
	err   error
}

// statsTickMsg fires on the dashboard polling interval. gen drops
// ticks from a poll loop that a route re-entry already replaced.
type statsTickMsg struct {
	gen int
}

// ticketsPageMsg delivers one page of the ticket list. seq guards
// against a stale page landing after the filters already changed.
type ticketsPageMsg struct {
	page domain.Page[domain.Ticket]
	err  error
	seq  int
}

// ticketDetailMsg delivers a single ticket for the detail pane.
type ticketDetailMsg struct {
	ticket domain.Ticket
	err    error
}

// ticketMutatedMsg reports a single-ticket mutation (status advance,
// assignment, note).
type ticketMutatedMsg struct {
	ticket  domain.Ticket
	refetch bool
	err     error
}

// bulkDoneMsg reports a bulk status update over the selection.
type bulkDoneMsg struct {
	status domain.TicketStatus
	count  int
	err    error
}

// exportDoneMsg reports the spreadsheet export.
type exportDoneMsg struct {
	path string
	err  error
}

// pulseMsg repaints the status bar while notices are visible.
type pulseMsg struct{}

func pulse() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return pulseMsg{} })
}
