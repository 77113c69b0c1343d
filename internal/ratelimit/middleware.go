package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

type exceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// PerAccount limits POST requests per authenticated account. It must run after
// the auth middleware. Store errors let the request through.
func PerAccount(store Store, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			accountID := requestcontext.AccountID(ctx)

			result, err := store.Allow(ctx, "account:"+accountID.String(), limit, window)
			if err != nil {
				logger.WarnContext(ctx, "rate limit check failed", "error", err,
					"request_id", requestcontext.RequestID(ctx))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
			if !result.Allowed {
				logger.WarnContext(ctx, "rate limit exceeded",
					"account_id", accountID.String(),
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
				httputil.WriteJSON(w, http.StatusTooManyRequests, exceededResponse{
					Error:      "rate_limit_exceeded",
					Message:    "Too many submissions. Please try again later.",
					RetryAfter: result.RetryAfter,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
