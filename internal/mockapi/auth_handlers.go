package mockapi

import (
	"net/http"

	"github.com/lorrc/merchant-support-console/internal/apperrors"
	"github.com/lorrc/merchant-support-console/internal/domain"
	"github.com/lorrc/merchant-support-console/internal/mockapi/middleware"
)

// LoginRequest defines the expected JSON body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the data payload of a successful login.
type LoginResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// RefreshResponse is the data payload of POST /auth/refresh.
type RefreshResponse struct {
	Token string `json:"token"`
}

// HandleLogin handles POST /auth/login.
func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Username == "" {
		WriteError(w, apperrors.ErrUsernameRequired)
		return
	}
	if req.Password == "" {
		WriteError(w, apperrors.ErrPasswordRequired)
		return
	}

	user, err := s.store.Authenticate(req.Username, req.Password)
	if err != nil {
		s.logger.Warn("login rejected", "username", req.Username)
		WriteError(w, err)
		return
	}

	signed, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		WriteError(w, err)
		return
	}

	s.logger.Info("login accepted", "username", req.Username, "role", user.Role)
	WriteData(w, LoginResponse{User: user, Token: signed})
}

// HandleRefresh handles POST /auth/refresh.
func (s *Server) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		WriteError(w, apperrors.ErrUnauthorized)
		return
	}
	signed, err := s.tokens.GenerateToken(claims.UserID, claims.Role)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, RefreshResponse{Token: signed})
}

// HandleCurrentUser handles GET /auth/me.
func (s *Server) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		WriteError(w, apperrors.ErrUnauthorized)
		return
	}
	user, err := s.store.UserByID(claims.UserID)
	if err != nil {
		WriteError(w, apperrors.ErrUnauthorized)
		return
	}
	WriteData(w, user)
}

// RequireAdmin gates a route group behind the ADMIN role.
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			WriteError(w, apperrors.ErrUnauthorized)
			return
		}
		if claims.Role != domain.RoleAdmin {
			WriteError(w, apperrors.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
