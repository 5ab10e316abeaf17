package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lorrc/merchant-support-console/internal/mockapi/token"
)

// UserClaimsKey is the key used to store user claims in the request context.
const UserClaimsKey contextKey = "userClaims"

// JWTMiddleware validates the JWT token from the Authorization header.
// Failures answer 401 with the standard envelope, which is what drives
// the console's global logout-and-redirect behavior.
func JWTMiddleware(manager *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Authorization header is required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "Authorization header format must be Bearer {token}")
				return
			}

			claims, err := manager.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			// Add the claims to the context for downstream handlers to use.
			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims retrieves validated token claims from the request context.
func GetClaims(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*token.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"data":null,"message":"` + message + `","success":false}`))
}
