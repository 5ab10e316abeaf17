package console

import "github.com/lorrc/merchant-support-console/internal/domain"

// Route identifies one console screen.
type Route string

const (
	RouteLogin         Route = "login"
	RouteDashboard     Route = "dashboard"
	RouteTickets       Route = "tickets"
	RouteReports       Route = "reports"
	RouteConfiguration Route = "configuration"
)

// RequiredRole returns the role a route is restricted to, if any.
// Configuration is admin-only; everything else just needs a session.
func RequiredRole(route Route) (domain.Role, bool) {
	if route == RouteConfiguration {
		return domain.RoleAdmin, true
	}
	return "", false
}

// GuardDecision is the outcome of evaluating the route guard.
type GuardDecision int

const (
	// GuardAllow renders the requested route.
	GuardAllow GuardDecision = iota
	// GuardLoading holds rendering while the current user is being
	// resolved; neither a redirect nor the protected screen shows.
	GuardLoading
	// GuardLogin redirects to the login screen.
	GuardLogin
	// GuardDashboard redirects a role-mismatched user to the
	// dashboard instead of the login screen.
	GuardDashboard
)

// GuardInput is the authentication state the guard decides on.
type GuardInput struct {
	Authenticated bool
	UserLoading   bool
	Role          domain.Role
}

// EvaluateGuard decides what to do with a navigation to route. It is a
// pure function of the input so every branch is trivially testable:
// unresolved user means wait, missing session means login, wrong role
// means dashboard, otherwise the route renders.
func EvaluateGuard(in GuardInput, route Route) GuardDecision {
	if route == RouteLogin {
		return GuardAllow
	}
	if in.UserLoading {
		return GuardLoading
	}
	if !in.Authenticated {
		return GuardLogin
	}
	if required, restricted := RequiredRole(route); restricted && in.Role != required {
		return GuardDashboard
	}
	return GuardAllow
}
