// Package auth resolves bearer tokens into the acting user's identity and
// role on the request context.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"campusreport/pkg/requestcontext"
)

// TokenValidator is the slice of the token service the middleware needs.
type TokenValidator interface {
	Validate(tokenString string) (*Claims, error)
}

// Claims are what the middleware expects back from the validator.
type Claims struct {
	UserID string
	Role   string
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token's identity in the context for handlers and the audit trail.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected bearer token", "error", err)
				unauthorized(w)
				return
			}

			ctx := requestcontext.WithUserID(r.Context(), claims.UserID)
			ctx = requestcontext.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
