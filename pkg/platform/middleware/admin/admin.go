// Package admin gates staff-only routes on the role claim placed in context by
// the auth middleware.
package admin

import (
	"log/slog"
	"net/http"
	"slices"

	"gatehouse/pkg/requestcontext"
)

// RequireRole lets the request through only when the authenticated role is one
// of allowed. It must run after auth.RequireAuth.
func RequireRole(logger *slog.Logger, allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			role := requestcontext.Role(ctx)
			if !slices.Contains(allowed, role) {
				logger.WarnContext(ctx, "forbidden - role not permitted",
					"role", role,
					"account_id", requestcontext.AccountID(ctx).String(),
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"staff role required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
