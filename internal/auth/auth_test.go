package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/merchant-support-console/internal/api"
	"github.com/lorrc/merchant-support-console/internal/apperrors"
	"github.com/lorrc/merchant-support-console/internal/domain"
	"github.com/lorrc/merchant-support-console/internal/querycache"
	"github.com/lorrc/merchant-support-console/internal/session"
)

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	auth     *Auth
	sessions *session.Store
	cache    *querycache.Cache
	notifier *recordingNotifier
	requests *atomic.Int32
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	sessions := session.NewStore("", testLogger())
	client := api.NewClient(server.URL+"/api", sessions, testLogger())
	cache := querycache.New(testLogger())
	notifier := &recordingNotifier{}

	return &fixture{
		auth:     New(sessions, client, cache, notifier, testLogger()),
		sessions: sessions,
		cache:    cache,
		notifier: notifier,
		requests: &requests,
	}
}

func loginHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Write([]byte(`{"data":{"user":{"id":"u-1","username":"admin","role":"ADMIN","firstName":"Asha","lastName":"Kapoor"},"token":"tok-1"},"message":"","success":true}`))
	}
}

func TestLogin(t *testing.T) {
	t.Run("success stores the session and notifies", func(t *testing.T) {
		f := newFixture(t, loginHandler(t))

		err := f.auth.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)

		state := f.sessions.State()
		assert.True(t, state.Authenticated)
		assert.Equal(t, "tok-1", f.sessions.Token())
		require.NotNil(t, state.User)
		assert.Equal(t, domain.RoleAdmin, state.User.Role)
		assert.Equal(t, []string{"Login successful"}, f.notifier.successes)
	})

	t.Run("empty username is rejected before any network call", func(t *testing.T) {
		f := newFixture(t, loginHandler(t))

		err := f.auth.Login(context.Background(), "", "admin123")
		assert.ErrorIs(t, err, apperrors.ErrUsernameRequired)
		assert.Equal(t, int32(0), f.requests.Load())
	})

	t.Run("empty password is rejected before any network call", func(t *testing.T) {
		f := newFixture(t, loginHandler(t))

		err := f.auth.Login(context.Background(), "admin", "")
		assert.ErrorIs(t, err, apperrors.ErrPasswordRequired)
		assert.Equal(t, int32(0), f.requests.Load())
	})

	t.Run("rejected credentials surface the server message", func(t *testing.T) {
		f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"data":null,"message":"Invalid username or password","success":false}`))
		})

		err := f.auth.Login(context.Background(), "admin", "wrong")
		require.Error(t, err)
		assert.False(t, f.sessions.State().Authenticated)
		assert.Equal(t, []string{"Invalid username or password"}, f.notifier.errors)
	})
}

func TestLogout(t *testing.T) {
	t.Run("clears the session and the cache", func(t *testing.T) {
		f := newFixture(t, loginHandler(t))
		require.NoError(t, f.auth.Login(context.Background(), "admin", "admin123"))

		_, err := querycache.Query(f.cache, context.Background(), "tickets/0/10", querycache.Options{}, func(context.Context) (string, error) {
			return "page", nil
		})
		require.NoError(t, err)

		f.auth.Logout()

		assert.False(t, f.sessions.State().Authenticated)
		assert.Empty(t, f.sessions.Token())
		_, ok := f.cache.Peek("tickets/0/10")
		assert.False(t, ok)
		assert.Contains(t, f.notifier.successes, "Logged out successfully")
	})
}

func TestCurrentUser(t *testing.T) {
	t.Run("disabled without a token and performs no fetch", func(t *testing.T) {
		f := newFixture(t, loginHandler(t))

		_, enabled, err := f.auth.CurrentUser(context.Background())
		require.NoError(t, err)
		assert.False(t, enabled)
		assert.Equal(t, int32(0), f.requests.Load())
	})

	t.Run("fetches and caches the user when a token is present", func(t *testing.T) {
		f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/me", r.URL.Path)
			w.Write([]byte(`{"data":{"id":"u-2","username":"agent","role":"SUPPORT_AGENT","firstName":"Tomás","lastName":"Rivera"},"message":"","success":true}`))
		})
		f.sessions.Login(domain.User{ID: "u-2", Username: "agent", Role: domain.RoleSupportAgent}, "tok-2")

		user, enabled, err := f.auth.CurrentUser(context.Background())
		require.NoError(t, err)
		assert.True(t, enabled)
		assert.Equal(t, "agent", user.Username)

		// Second resolution hits the cache.
		_, _, err = f.auth.CurrentUser(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(1), f.requests.Load())
	})
}

func TestUser(t *testing.T) {
	t.Run("prefers the fetched user over the login copy", func(t *testing.T) {
		f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"id":"u-2","username":"agent","role":"SUPPORT_AGENT","firstName":"Fresh","lastName":"Name"},"message":"","success":true}`))
		})
		f.sessions.Login(domain.User{ID: "u-2", Username: "agent", FirstName: "Stale"}, "tok-2")

		_, _, err := f.auth.CurrentUser(context.Background())
		require.NoError(t, err)

		user := f.auth.User()
		require.NotNil(t, user)
		assert.Equal(t, "Fresh", user.FirstName)
	})

	t.Run("falls back to the session user", func(t *testing.T) {
		f := newFixture(t, loginHandler(t))
		f.sessions.Login(domain.User{ID: "u-9", Username: "someone"}, "tok-9")

		user := f.auth.User()
		require.NotNil(t, user)
		assert.Equal(t, "someone", user.Username)
	})
}
