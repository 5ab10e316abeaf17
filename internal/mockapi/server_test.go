package mockapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/merchant-support-console/internal/config"
	"github.com/lorrc/merchant-support-console/internal/domain"
	"github.com/lorrc/merchant-support-console/internal/mockapi/token"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := NewStore()
	require.NoError(t, store.Seed())

	tokens := token.NewManager("test-secret", time.Hour)
	server := NewServer(store, tokens, testLogger())

	ts := httptest.NewServer(server.Router(config.RateLimitConfig{Enabled: false}))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, bearer string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response, data any) Envelope {
	t.Helper()
	defer resp.Body.Close()

	var env struct {
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
		Success bool            `json:"success"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	if data != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return Envelope{Message: env.Message, Success: env.Success}
}

func loginAs(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload LoginResponse
	decodeEnvelope(t, resp, &payload)
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func TestAuthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	t.Run("seeded admin can log in", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
			"username": "admin", "password": "admin123",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload LoginResponse
		env := decodeEnvelope(t, resp, &payload)
		assert.True(t, env.Success)
		assert.Equal(t, domain.RoleAdmin, payload.User.Role)
		assert.NotEmpty(t, payload.Token)
	})

	t.Run("wrong password is rejected with the generic message", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
			"username": "admin", "password": "nope",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		env := decodeEnvelope(t, resp, nil)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Message)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{"username": "admin"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("me returns the token owner", func(t *testing.T) {
		tok := loginAs(t, ts, "agent", "agent123")

		resp := doJSON(t, http.MethodGet, ts.URL+"/api/auth/me", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user domain.User
		decodeEnvelope(t, resp, &user)
		assert.Equal(t, "agent", user.Username)
		assert.Equal(t, domain.RoleSupportAgent, user.Role)
	})

	t.Run("protected endpoints reject missing tokens", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/tickets", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("refresh issues a new token", func(t *testing.T) {
		tok := loginAs(t, ts, "admin", "admin123")

		resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/refresh", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload RefreshResponse
		decodeEnvelope(t, resp, &payload)
		assert.NotEmpty(t, payload.Token)
	})
}

func TestTicketEndpoints(t *testing.T) {
	ts := newTestServer(t)
	tok := loginAs(t, ts, "admin", "admin123")

	t.Run("list is paginated newest first", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/tickets?page=0&size=5", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page domain.Page[domain.Ticket]
		decodeEnvelope(t, resp, &page)
		assert.Len(t, page.Content, 5)
		assert.Equal(t, int64(8), page.TotalElements)
		assert.Equal(t, 2, page.TotalPages)
		for i := 1; i < len(page.Content); i++ {
			assert.False(t, page.Content[i].DateRaised.After(page.Content[i-1].DateRaised))
		}
	})

	t.Run("comma joined status filter narrows the list", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/tickets?status=RESOLVED,CLOSED", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page domain.Page[domain.Ticket]
		decodeEnvelope(t, resp, &page)
		require.NotEmpty(t, page.Content)
		for _, ticket := range page.Content {
			assert.Contains(t, []domain.TicketStatus{domain.StatusResolved, domain.StatusClosed}, ticket.Status)
		}
	})

	t.Run("search matches ticket number and merchant", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/tickets?search=TCK-2026-0001", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page domain.Page[domain.Ticket]
		decodeEnvelope(t, resp, &page)
		require.Len(t, page.Content, 1)
		assert.Equal(t, "TCK-2026-0001", page.Content[0].TicketNumber)
	})

	t.Run("status update sets resolution time", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, ts.URL+"/api/tickets/t-001/status", tok, map[string]string{"status": "RESOLVED"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var ticket domain.Ticket
		decodeEnvelope(t, resp, &ticket)
		assert.Equal(t, domain.StatusResolved, ticket.Status)
		require.NotNil(t, ticket.ResolutionTime)
		assert.Greater(t, *ticket.ResolutionTime, float64(0))
	})

	t.Run("assignment records the agent", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, ts.URL+"/api/tickets/t-002/assign", tok, map[string]string{
			"agentId": "5f1c2a40-9a6e-4b8f-8a57-0f1fb1f2b002",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var ticket domain.Ticket
		decodeEnvelope(t, resp, &ticket)
		assert.Equal(t, "Tomás Rivera", ticket.AssignedAgentName)
	})

	t.Run("note lands on the ticket with the author name", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/tickets/t-002/notes", tok, map[string]any{
			"content": "called the merchant", "isInternal": true,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, http.MethodGet, ts.URL+"/api/tickets/t-002", tok, nil)
		var ticket domain.Ticket
		decodeEnvelope(t, resp, &ticket)

		require.NotEmpty(t, ticket.Notes)
		last := ticket.Notes[len(ticket.Notes)-1]
		assert.Equal(t, "called the merchant", last.Content)
		assert.Equal(t, "Asha Kapoor", last.AuthorName)
	})

	t.Run("unknown ticket is a 404", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/tickets/missing", tok, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestBulkStatus(t *testing.T) {
	ts := newTestServer(t)
	tok := loginAs(t, ts, "admin", "admin123")

	t.Run("updates every listed ticket", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, ts.URL+"/api/tickets/bulk-status", tok, map[string]any{
			"ticketIds": []string{"t-001", "t-002"}, "status": "IN_PROGRESS",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		for _, id := range []string{"t-001", "t-002"} {
			resp := doJSON(t, http.MethodGet, ts.URL+"/api/tickets/"+id, tok, nil)
			var ticket domain.Ticket
			decodeEnvelope(t, resp, &ticket)
			assert.Equal(t, domain.StatusInProgress, ticket.Status)
		}
	})

	t.Run("one unknown id rejects the whole batch", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, ts.URL+"/api/tickets/bulk-status", tok, map[string]any{
			"ticketIds": []string{"t-003", "missing"}, "status": "RESOLVED",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()

		// The valid ticket must be untouched.
		resp = doJSON(t, http.MethodGet, ts.URL+"/api/tickets/t-003", tok, nil)
		var ticket domain.Ticket
		decodeEnvelope(t, resp, &ticket)
		assert.NotEqual(t, domain.StatusResolved, ticket.Status)
	})
}

func TestAdminGate(t *testing.T) {
	ts := newTestServer(t)

	t.Run("agents cannot reach configuration", func(t *testing.T) {
		tok := loginAs(t, ts, "agent", "agent123")
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/config/categories", tok, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("admins manage categories", func(t *testing.T) {
		tok := loginAs(t, ts, "admin", "admin123")

		resp := doJSON(t, http.MethodPost, ts.URL+"/api/config/categories", tok, map[string]any{
			"name": "Hardware Returns", "description": "RMA flow", "slaHours": 48, "isActive": true,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var category domain.CategoryConfig
		decodeEnvelope(t, resp, &category)
		assert.Equal(t, "Hardware Returns", category.Name)
		assert.NotEmpty(t, category.ID)
	})
}

func TestReportsAndExport(t *testing.T) {
	ts := newTestServer(t)
	tok := loginAs(t, ts, "admin", "admin123")

	t.Run("volume report covers the seeded categories", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/reports/ticket-volume", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var volumes []domain.CategoryVolume
		decodeEnvelope(t, resp, &volumes)
		assert.NotEmpty(t, volumes)
	})

	t.Run("export streams an xlsx attachment", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/reports/export/tickets", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		assert.Equal(t,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		// xlsx files are zip archives.
		require.Greater(t, len(payload), 4)
		assert.Equal(t, []byte{0x50, 0x4b}, payload[:2])
	})
}

func TestDashboardStats(t *testing.T) {
	ts := newTestServer(t)
	tok := loginAs(t, ts, "agent", "agent123")

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/dashboard/stats", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats domain.DashboardStats
	decodeEnvelope(t, resp, &stats)
	assert.Equal(t, 8, stats.TotalTickets)
	assert.Equal(t, stats.TotalTickets,
		stats.OpenTickets+stats.InProgressTickets+statsClosedOrResolved(ts, t, tok))
}

// statsClosedOrResolved counts seeded tickets already past the active
// statuses so the stats identity can be checked without hardcoding the
// seed distribution.
func statsClosedOrResolved(ts *httptest.Server, t *testing.T, tok string) int {
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/tickets?status=RESOLVED,CLOSED&size=100", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page domain.Page[domain.Ticket]
	decodeEnvelope(t, resp, &page)
	return int(page.TotalElements)
}
