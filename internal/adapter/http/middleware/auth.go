package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/thara/minibank/internal/infrastructure/auth"
)

// ContextKey is the type for context keys.
type ContextKey string

// AdminContextKey is the context key for the authenticated admin username.
const AdminContextKey ContextKey = "admin"

// AdminAuth guards the administrative routes: it requires a valid
// Bearer session token issued at admin login.
func AdminAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext extracts the authenticated admin username from context.
func AdminFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(AdminContextKey).(string)
	return username, ok
}
