package api

import (
	"context"
	"net/http"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// loginRequest is the body for POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// refreshResult is the payload returned by POST /auth/refresh.
type refreshResult struct {
	Token string `json:"token"`
}

// Login authenticates with username and password.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	return request[LoginResult](c, ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Username: username,
		Password: password,
	})
}

// RefreshToken exchanges the current token for a fresh one. Part of
// the remote contract; no console flow calls it today.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	result, err := request[refreshResult](c, ctx, http.MethodPost, "/auth/refresh", nil, nil)
	return result.Token, err
}

// CurrentUser fetches the authenticated user behind the bearer token.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	return request[domain.User](c, ctx, http.MethodGet, "/auth/me", nil, nil)
}
