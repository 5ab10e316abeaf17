package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/merchant-support-console/internal/apperrors"
	"github.com/lorrc/merchant-support-console/internal/domain"
	"github.com/lorrc/merchant-support-console/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sessions := session.NewStore("", testLogger())
	return NewClient(server.URL+"/api", sessions, testLogger()), sessions
}

func TestClientRequests(t *testing.T) {
	t.Run("unwraps the response envelope", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/dashboard/stats", r.URL.Path)
			w.Write([]byte(`{"data":{"openTickets":7},"message":"","success":true}`))
		}))

		stats, err := client.DashboardStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, stats.OpenTickets)
	})

	t.Run("sends the bearer token when logged in", func(t *testing.T) {
		var seen string
		client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get("Authorization")
			w.Write([]byte(`{"data":null,"message":"","success":true}`))
		}))

		sessions.Login(domain.User{ID: "u-1", Username: "admin"}, "tok-abc")
		_, err := client.DashboardStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok-abc", seen)
	})

	t.Run("sends no authorization header when logged out", func(t *testing.T) {
		var seen string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get("Authorization")
			w.Write([]byte(`{"data":null,"message":"","success":true}`))
		}))

		_, err := client.DashboardStats(context.Background())
		require.NoError(t, err)
		assert.Empty(t, seen)
	})

	t.Run("flattens ticket filters into comma joined parameters", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			assert.Equal(t, "OPEN,IN_PROGRESS", query.Get("status"))
			assert.Equal(t, "BILLING", query.Get("category"))
			assert.Equal(t, "2", query.Get("page"))
			assert.Equal(t, "25", query.Get("size"))
			w.Write([]byte(`{"data":{"content":[],"totalElements":0,"totalPages":0,"size":25,"number":2},"message":"","success":true}`))
		}))

		_, err := client.Tickets(context.Background(), 2, 25, domain.TicketFilters{
			Status:   []domain.TicketStatus{domain.StatusOpen, domain.StatusInProgress},
			Category: []domain.TicketCategory{domain.CategoryBilling},
		})
		require.NoError(t, err)
	})

	t.Run("surfaces the server message on failure", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"data":null,"message":"ticket already closed","success":false}`))
		}))

		_, err := client.TicketByID(context.Background(), "t-1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
		assert.Equal(t, "ticket already closed", apperrors.UserMessage(err, "fallback"))
	})
}

func TestClientSessionInvalidation(t *testing.T) {
	t.Run("any 401 clears the session and emits one event", func(t *testing.T) {
		client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"data":null,"message":"token expired","success":false}`))
		}))
		sessions.Login(domain.User{ID: "u-1", Username: "agent"}, "stale-token")

		_, err := client.DashboardStats(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

		assert.False(t, sessions.State().Authenticated)
		assert.Empty(t, sessions.Token())

		select {
		case event := <-client.Invalidated():
			assert.Equal(t, "/dashboard/stats", event.Endpoint)
		case <-time.After(time.Second):
			t.Fatal("expected a session invalidation event")
		}
	})

	t.Run("other failures leave the session alone", func(t *testing.T) {
		client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"data":null,"message":"boom","success":false}`))
		}))
		sessions.Login(domain.User{ID: "u-1", Username: "agent"}, "good-token")

		_, err := client.DashboardStats(context.Background())
		require.Error(t, err)
		assert.True(t, sessions.State().Authenticated)

		select {
		case <-client.Invalidated():
			t.Fatal("no invalidation event expected")
		default:
		}
	})
}

func TestExportTickets(t *testing.T) {
	t.Run("returns raw bytes without envelope handling", func(t *testing.T) {
		payload := []byte{0x50, 0x4b, 0x03, 0x04} // xlsx files are zip archives
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/reports/export/tickets", r.URL.Path)
			assert.Equal(t, "OPEN", r.URL.Query().Get("status"))
			w.Write(payload)
		}))

		data, err := client.ExportTickets(context.Background(), domain.TicketFilters{
			Status: []domain.TicketStatus{domain.StatusOpen},
		})
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "tickets-2026-08-28.xlsx", ExportFilename(now))
}
