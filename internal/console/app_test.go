package console

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/merchant-support-console/internal/api"
	"github.com/lorrc/merchant-support-console/internal/auth"
	"github.com/lorrc/merchant-support-console/internal/domain"
	"github.com/lorrc/merchant-support-console/internal/session"
)

// fullDeps wires real collaborators around an unreachable API; no
// command returned by these tests is ever executed.
func fullDeps(t *testing.T) Deps {
	t.Helper()
	deps := testDeps()
	deps.Sessions = session.NewStore("", deps.Logger)
	deps.Client = api.NewClient("http://127.0.0.1:0/api", deps.Sessions, deps.Logger)
	deps.Auth = auth.New(deps.Sessions, deps.Client, deps.Cache, deps.Notices, deps.Logger)
	return deps
}

func agentUser() domain.User {
	return domain.User{ID: "u-2", Username: "agent", Role: domain.RoleSupportAgent, FirstName: "Tomás", LastName: "Rivera"}
}

func adminUser() domain.User {
	return domain.User{ID: "u-1", Username: "admin", Role: domain.RoleAdmin, FirstName: "Asha", LastName: "Kapoor"}
}

func TestInitialRoute(t *testing.T) {
	t.Run("no session starts on login", func(t *testing.T) {
		m := New(fullDeps(t))
		assert.Equal(t, RouteLogin, m.route)
	})

	t.Run("restored session starts on the dashboard resolving the user", func(t *testing.T) {
		deps := fullDeps(t)
		deps.Sessions.Login(adminUser(), "tok-1")

		m := New(deps)
		assert.Equal(t, RouteDashboard, m.route)
		assert.True(t, m.userLoading)
	})
}

func TestNavigation(t *testing.T) {
	t.Run("agent navigating to configuration lands on the dashboard", func(t *testing.T) {
		deps := fullDeps(t)
		deps.Sessions.Login(agentUser(), "tok-2")

		m := New(deps)
		m.userLoading = false

		next, _ := m.navigate(RouteConfiguration)
		assert.Equal(t, RouteDashboard, next.route)
	})

	t.Run("admin navigating to configuration is admitted", func(t *testing.T) {
		deps := fullDeps(t)
		deps.Sessions.Login(adminUser(), "tok-1")

		m := New(deps)
		m.userLoading = false

		next, _ := m.navigate(RouteConfiguration)
		assert.Equal(t, RouteConfiguration, next.route)
	})

	t.Run("logged out navigation falls back to login", func(t *testing.T) {
		m := New(fullDeps(t))

		next, _ := m.navigate(RouteTickets)
		assert.Equal(t, RouteLogin, next.route)
	})

	t.Run("navigation during user resolution is parked", func(t *testing.T) {
		deps := fullDeps(t)
		deps.Sessions.Login(adminUser(), "tok-1")

		m := New(deps)
		require.True(t, m.userLoading)

		next, _ := m.navigate(RouteConfiguration)
		assert.Equal(t, RouteConfiguration, next.pendingRoute)
		assert.Equal(t, RouteDashboard, next.route, "the previous screen keeps showing")

		model, _ := next.Update(currentUserMsg{user: adminUser(), enabled: true})
		resolved := model.(Model)
		assert.Equal(t, RouteConfiguration, resolved.route)
		assert.Empty(t, resolved.pendingRoute)
	})
}

func TestSessionInvalidatedNavigatesToLogin(t *testing.T) {
	deps := fullDeps(t)
	deps.Sessions.Login(agentUser(), "tok-2")

	m := New(deps)
	m.userLoading = false
	m.route = RouteTickets

	// The transport clears the session before the event is delivered.
	deps.Sessions.Logout()

	model, cmd := m.Update(sessionInvalidatedMsg{event: api.SessionInvalidated{Endpoint: "/tickets"}})
	next := model.(Model)

	assert.Equal(t, RouteLogin, next.route)
	assert.NotNil(t, cmd, "the invalidation listener re-arms")

	notices := deps.Notices.Active()
	require.NotEmpty(t, notices)
	assert.Equal(t, NoticeError, notices[0].Level)
}

func TestLoginOutcomeNavigation(t *testing.T) {
	t.Run("a successful login lands on the dashboard", func(t *testing.T) {
		deps := fullDeps(t)
		m := New(deps)

		// The facade stored the session before the message arrives.
		deps.Sessions.Login(agentUser(), "tok-2")

		model, _ := m.Update(loginDoneMsg{})
		next := model.(Model)
		assert.Equal(t, RouteDashboard, next.route)
	})

	t.Run("a failed login stays on the form", func(t *testing.T) {
		m := New(fullDeps(t))

		model, _ := m.Update(loginDoneMsg{err: assert.AnError})
		next := model.(Model)
		assert.Equal(t, RouteLogin, next.route)
	})
}

func TestQuitKey(t *testing.T) {
	deps := fullDeps(t)
	deps.Sessions.Login(agentUser(), "tok-2")

	m := New(deps)
	m.userLoading = false
	m.route = RouteDashboard

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
