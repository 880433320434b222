package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/qflow/qflow-api/internal/api"
	"github.com/qflow/qflow-api/internal/auth"
	"github.com/qflow/qflow-api/internal/config"
)

// RequireAuth verifies the bearer token and stores the user id in the
// request context. Every route under it can rely on UserID being set.
func RequireAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "missing or malformed authorization header")
				return
			}
			claims, err := authService.VerifyToken(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), config.UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id from the request context.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(config.UserIDKey).(string)
	return id
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
