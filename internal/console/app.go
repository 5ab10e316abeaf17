// Package console is the terminal front end: a bubbletea program with
// one screen per route, a pure route guard, transient notifications
// and a listener that turns transport-level session invalidation into
// navigation.
package console

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lorrc/merchant-support-console/internal/api"
	"github.com/lorrc/merchant-support-console/internal/auth"
	"github.com/lorrc/merchant-support-console/internal/config"
	"github.com/lorrc/merchant-support-console/internal/domain"
	"github.com/lorrc/merchant-support-console/internal/querycache"
	"github.com/lorrc/merchant-support-console/internal/session"
)

// Deps carries everything the views need. Built once in main and
// threaded through the sub-models.
type Deps struct {
	Config   *config.Config
	Sessions *session.Store
	Client   *api.Client
	Cache    *querycache.Cache
	Auth     *auth.Auth
	Notices  *Notices
	Logger   *slog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	deps  Deps
	keys  KeyMap
	theme Theme

	route Route
	// pendingRoute holds a navigation that arrived while the current
	// user was still resolving; the guard re-runs when it lands.
	pendingRoute Route
	userLoading  bool

	login         loginModel
	dashboard     dashboardModel
	tickets       ticketsModel
	reports       reportsModel
	configuration configurationModel

	width, height int
	pulsing       bool
}

// New builds the root model. The initial route depends on whether a
// restored session is present.
func New(deps Deps) Model {
	m := Model{
		deps:          deps,
		keys:          DefaultKeyMap,
		theme:         DefaultTheme,
		route:         RouteLogin,
		login:         newLoginModel(deps),
		dashboard:     newDashboardModel(deps),
		tickets:       newTicketsModel(deps),
		reports:       reportsModel{},
		configuration: configurationModel{},
	}
	if deps.Auth.IsAuthenticated() {
		m.route = RouteDashboard
		m.userLoading = true
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{watchInvalidated(m.deps.Client.Invalidated())}
	if m.route == RouteLogin {
		cmds = append(cmds, m.login.focusCmd())
	} else {
		cmds = append(cmds, m.fetchCurrentUser())
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.enter()
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// watchInvalidated blocks on the client's invalidation channel and
// re-arms itself after every delivery.
func watchInvalidated(ch <-chan api.SessionInvalidated) tea.Cmd {
	return func() tea.Msg {
		return sessionInvalidatedMsg{event: <-ch}
	}
}

func (m Model) fetchCurrentUser() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.API.RequestTimeout)
		defer cancel()
		user, enabled, err := deps.Auth.CurrentUser(ctx)
		return currentUserMsg{user: user, enabled: enabled, err: err}
	}
}

// navigate runs the route guard and installs the resulting route,
// firing the target screen's entry command.
func (m Model) navigate(route Route) (Model, tea.Cmd) {
	in := GuardInput{
		Authenticated: m.deps.Auth.IsAuthenticated(),
		UserLoading:   m.userLoading,
	}
	if user := m.deps.Auth.User(); user != nil {
		in.Role = user.Role
	}

	switch EvaluateGuard(in, route) {
	case GuardLoading:
		m.pendingRoute = route
		return m, nil
	case GuardLogin:
		m.route = RouteLogin
		return m, m.login.focusCmd()
	case GuardDashboard:
		m.deps.Logger.Info("route denied by role", "route", route)
		route = RouteDashboard
	}

	m.route = route
	var cmd tea.Cmd
	switch route {
	case RouteDashboard:
		m.dashboard, cmd = m.dashboard.enter()
	case RouteTickets:
		m.tickets, cmd = m.tickets.enter()
	}
	return m, cmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.FocusMsg:
		// The terminal regained focus after time away; everything on
		// screen may be stale.
		m.deps.Cache.Invalidate("")
		return m.reenter()

	case sessionInvalidatedMsg:
		m.deps.Logger.Info("navigating to login after invalidation", "endpoint", msg.event.Endpoint)
		m.deps.Notices.Error("Session expired, please sign in again")
		m.userLoading = false
		m.pendingRoute = ""
		next, cmd := m.navigate(RouteLogin)
		return next.withPulse(tea.Batch(cmd, watchInvalidated(m.deps.Client.Invalidated())))

	case currentUserMsg:
		m.userLoading = false
		if msg.err != nil {
			// A dead token surfaces through the 401 path; anything
			// else is transient and the session user still renders.
			m.deps.Logger.Warn("current user fetch failed", "error", msg.err)
		}
		if m.pendingRoute != "" {
			pending := m.pendingRoute
			m.pendingRoute = ""
			next, cmd := m.navigate(pending)
			return next.withPulse(cmd)
		}
		return m.withPulse(nil)

	case loginDoneMsg:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		if msg.err == nil {
			next, navCmd := m.navigate(RouteDashboard)
			return next.withPulse(tea.Batch(cmd, navCmd, next.fetchCurrentUser()))
		}
		return m.withPulse(cmd)

	case statsTickMsg, statsMsg:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg, m.route == RouteDashboard)
		return m.withPulse(cmd)

	case ticketsPageMsg, ticketDetailMsg, ticketMutatedMsg, bulkDoneMsg, exportDoneMsg:
		var cmd tea.Cmd
		m.tickets, cmd = m.tickets.Update(msg)
		return m.withPulse(cmd)

	case pulseMsg:
		m.pulsing = false
		return m.withPulse(nil)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// reenter refreshes whatever screen is showing.
func (m Model) reenter() (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case RouteDashboard:
		m.dashboard, cmd = m.dashboard.enter()
	case RouteTickets:
		m.tickets, cmd = m.tickets.refresh()
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	capturing := false
	switch m.route {
	case RouteLogin:
		capturing = m.login.capturingInput()
	case RouteTickets:
		capturing = m.tickets.capturingInput()
	}

	if !capturing {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Logout):
			m.deps.Auth.Logout()
			next, cmd := m.navigate(RouteLogin)
			return next.withPulse(cmd)
		case key.Matches(msg, m.keys.GoDashboard):
			next, cmd := m.navigate(RouteDashboard)
			return next.withPulse(cmd)
		case key.Matches(msg, m.keys.GoTickets):
			next, cmd := m.navigate(RouteTickets)
			return next.withPulse(cmd)
		case key.Matches(msg, m.keys.GoReports):
			next, cmd := m.navigate(RouteReports)
			return next.withPulse(cmd)
		case key.Matches(msg, m.keys.GoConfig):
			next, cmd := m.navigate(RouteConfiguration)
			return next.withPulse(cmd)
		}
	} else if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.route {
	case RouteLogin:
		m.login, cmd = m.login.Update(msg)
	case RouteTickets:
		m.tickets, cmd = m.tickets.Update(msg)
	}
	return m.withPulse(cmd)
}

// withPulse arms the status-bar repaint tick while notices are
// visible, at most one in flight.
func (m Model) withPulse(cmd tea.Cmd) (Model, tea.Cmd) {
	if m.pulsing || len(m.deps.Notices.Active()) == 0 {
		return m, cmd
	}
	m.pulsing = true
	if cmd == nil {
		return m, pulse()
	}
	return m, tea.Batch(cmd, pulse())
}

func (m Model) View() string {
	var body string
	switch m.route {
	case RouteLogin:
		body = m.login.View(m.theme, m.width)
	case RouteDashboard:
		body = m.dashboard.View(m.theme, m.width)
	case RouteTickets:
		body = m.tickets.View(m.theme, m.width)
	case RouteReports:
		body = m.reports.View(m.theme)
	case RouteConfiguration:
		body = m.configuration.View(m.theme)
	}

	if m.userLoading && m.route != RouteLogin {
		body = lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("Checking session...")
	}

	return m.header() + "\n\n" + body + "\n\n" + m.statusBar()
}

func (m Model) header() string {
	if m.route == RouteLogin {
		return ""
	}

	tabs := []struct {
		route Route
		label string
	}{
		{RouteDashboard, "1 Dashboard"},
		{RouteTickets, "2 Tickets"},
		{RouteReports, "3 Reports"},
		{RouteConfiguration, "4 Config"},
	}

	active := lipgloss.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground)
	inactive := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	parts := make([]string, 0, len(tabs)+1)
	for _, tab := range tabs {
		if tab.route == RouteConfiguration {
			if user := m.deps.Auth.User(); user == nil || user.Role != domain.RoleAdmin {
				continue
			}
		}
		if tab.route == m.route {
			parts = append(parts, active.Render(tab.label))
		} else {
			parts = append(parts, inactive.Render(tab.label))
		}
	}

	who := ""
	if user := m.deps.Auth.User(); user != nil {
		who = inactive.Render("  " + user.FullName() + " (" + string(user.Role) + ")")
	}
	return strings.Join(parts, "   ") + who
}

func (m Model) statusBar() string {
	notices := m.deps.Notices.Active()
	if len(notices) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.HelpText).Render("1-4 screens · C-l logout · q quit")
	}
	parts := make([]string, len(notices))
	for i, notice := range notices {
		style := lipgloss.NewStyle().Foreground(m.theme.Success)
		if notice.Level == NoticeError {
			style = lipgloss.NewStyle().Foreground(m.theme.Error)
		}
		parts[i] = style.Render(notice.Message)
	}
	return strings.Join(parts, "  ")
}
