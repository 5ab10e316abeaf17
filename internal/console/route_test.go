package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

func TestEvaluateGuard(t *testing.T) {
	admin := GuardInput{Authenticated: true, Role: domain.RoleAdmin}
	agent := GuardInput{Authenticated: true, Role: domain.RoleSupportAgent}
	anonymous := GuardInput{}
	resolving := GuardInput{Authenticated: true, UserLoading: true, Role: domain.RoleAdmin}

	tests := []struct {
		name  string
		input GuardInput
		route Route
		want  GuardDecision
	}{
		{"login is always reachable", anonymous, RouteLogin, GuardAllow},
		{"unauthenticated user is sent to login", anonymous, RouteTickets, GuardLogin},
		{"unresolved user holds rendering", resolving, RouteConfiguration, GuardLoading},
		{"admin reaches the dashboard", admin, RouteDashboard, GuardAllow},
		{"admin reaches configuration", admin, RouteConfiguration, GuardAllow},
		{"agent reaches tickets", agent, RouteTickets, GuardAllow},
		{"agent is redirected from configuration to the dashboard", agent, RouteConfiguration, GuardDashboard},
		{"agent reaches reports", agent, RouteReports, GuardAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateGuard(tt.input, tt.route))
		})
	}
}

func TestRequiredRole(t *testing.T) {
	role, restricted := RequiredRole(RouteConfiguration)
	assert.True(t, restricted)
	assert.Equal(t, domain.RoleAdmin, role)

	for _, route := range []Route{RouteLogin, RouteDashboard, RouteTickets, RouteReports} {
		_, restricted := RequiredRole(route)
		assert.False(t, restricted, string(route))
	}
}
