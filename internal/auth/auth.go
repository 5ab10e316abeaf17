// Package auth composes the session store, the API client and the
// query cache into the login/logout/current-user operations the view
// layer consumes.
package auth

import (
	"context"
	"log/slog"

	"github.com/lorrc/merchant-support-console/internal/api"
	"github.com/lorrc/merchant-support-console/internal/apperrors"
	"github.com/lorrc/merchant-support-console/internal/domain"
	"github.com/lorrc/merchant-support-console/internal/querycache"
	"github.com/lorrc/merchant-support-console/internal/session"
)

// CurrentUserKey is the cache key for the authenticated user query.
const CurrentUserKey = "currentUser"

// Notifier surfaces transient operator-facing messages. The console's
// status bar implements it; tests use a recording fake.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Auth is the facade over session state and the auth endpoints.
type Auth struct {
	sessions *session.Store
	client   *api.Client
	cache    *querycache.Cache
	notifier Notifier
	logger   *slog.Logger
}

// New creates the auth facade.
func New(sessions *session.Store, client *api.Client, cache *querycache.Cache, notifier Notifier, logger *slog.Logger) *Auth {
	return &Auth{
		sessions: sessions,
		client:   client,
		cache:    cache,
		notifier: notifier,
		logger:   logger.With("component", "auth"),
	}
}

// Login authenticates against the API, stores the session on success
// and surfaces a notification either way. The returned error carries
// the server's message when one was provided.
func (a *Auth) Login(ctx context.Context, username, password string) error {
	if username == "" {
		return apperrors.ErrUsernameRequired
	}
	if password == "" {
		return apperrors.ErrPasswordRequired
	}

	result, err := a.client.Login(ctx, username, password)
	if err != nil {
		a.logger.Info("login failed", "username", username, "error", err)
		a.notifier.Error(apperrors.UserMessage(err, "Login failed"))
		return err
	}

	a.sessions.Login(result.User, result.Token)
	a.logger.Info("login succeeded", "username", username, "role", result.User.Role)
	a.notifier.Success("Login successful")
	return nil
}

// Logout clears the session and the query cache. Purely local, no
// server call.
func (a *Auth) Logout() {
	a.sessions.Logout()
	a.cache.Invalidate("")
	a.notifier.Success("Logged out successfully")
}

// CurrentUser resolves the authenticated user. The query is only
// enabled while a token is present; when disabled it reports
// enabled=false without touching the network. Not retried: a failure
// here usually means the token died, and the 401 path handles that.
func (a *Auth) CurrentUser(ctx context.Context) (user domain.User, enabled bool, err error) {
	state := a.sessions.State()
	if state.Token == "" || !state.Authenticated {
		return domain.User{}, false, nil
	}
	user, err = querycache.Query(a.cache, ctx, CurrentUserKey, querycache.Options{Retries: 0}, a.client.CurrentUser)
	return user, true, err
}

// User returns the freshest known user: the fetched current user when
// cached, otherwise the one captured at login.
func (a *Auth) User() *domain.User {
	if entry, ok := a.cache.Peek(CurrentUserKey); ok && entry.Err == nil && !entry.Loading {
		if user, ok := entry.Data.(domain.User); ok {
			return &user
		}
	}
	return a.sessions.State().User
}

// IsAuthenticated reports the session flag.
func (a *Auth) IsAuthenticated() bool {
	return a.sessions.State().Authenticated
}
