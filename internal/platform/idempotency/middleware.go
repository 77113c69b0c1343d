package idempotency

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/requestcontext"
)

const (
	HeaderKey      = "Idempotency-Key"
	HeaderReplayed = "Idempotent-Replayed"

	maxKeyLength = 255
	// lockTTL bounds how long a crashed request can block retries.
	lockTTL = 30 * time.Second
)

// Middleware replays completed POST and PUT responses for a repeated
// Idempotency-Key. Keys are scoped to the calling account and bound to the
// method, path and body of the first request. Requests without the header
// pass through. 5xx and 429 responses are not stored so the client may retry.
func Middleware(store Store, ttl time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderKey)
			if key == "" || (r.Method != http.MethodPost && r.Method != http.MethodPut) {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			if len(key) > maxKeyLength {
				writeError(w, http.StatusBadRequest, "invalid_idempotency_key", "Idempotency-Key is too long")
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "Request body is too large")
					return
				}
				writeError(w, http.StatusBadRequest, "invalid_request", "Request body could not be read")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			scoped := requestcontext.AccountID(ctx).String() + ":" + key
			fingerprint := fingerprintOf(r, body)

			rec, err := store.Get(ctx, scoped)
			switch {
			case err == nil:
				if rec.Fingerprint != fingerprint {
					writeError(w, http.StatusUnprocessableEntity, "idempotency_key_reused",
						"Idempotency-Key was used for a different request")
					return
				}
				replay(w, rec)
				return
			case !errors.Is(err, sentinel.ErrNotFound):
				// Fail open: a cache outage must not block staff actions.
				logger.WarnContext(ctx, "idempotency lookup failed", "error", err,
					"request_id", requestcontext.RequestID(ctx))
				next.ServeHTTP(w, r)
				return
			}

			ok, err := store.Reserve(ctx, scoped, lockTTL)
			if err != nil {
				logger.WarnContext(ctx, "idempotency reserve failed", "error", err,
					"request_id", requestcontext.RequestID(ctx))
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				writeError(w, http.StatusConflict, "request_in_progress",
					"A request with this Idempotency-Key is still being processed")
				return
			}

			rw := &recorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			if !storable(rw.status) {
				if err := store.Release(ctx, scoped); err != nil {
					logger.WarnContext(ctx, "idempotency release failed", "error", err)
				}
				return
			}
			err = store.Save(ctx, scoped, &Record{
				Fingerprint: fingerprint,
				Status:      rw.status,
				ContentType: rw.Header().Get("Content-Type"),
				Body:        rw.body.Bytes(),
			}, ttl)
			if err != nil {
				logger.WarnContext(ctx, "idempotency save failed", "error", err,
					"request_id", requestcontext.RequestID(ctx))
			}
		})
	}
}

func fingerprintOf(r *http.Request, body []byte) string {
	sum := sha256.Sum256(body)
	return r.Method + " " + r.URL.Path + " " + hex.EncodeToString(sum[:])
}

func storable(status int) bool {
	return status < http.StatusInternalServerError && status != http.StatusTooManyRequests
}

func replay(w http.ResponseWriter, rec *Record) {
	if rec.ContentType != "" {
		w.Header().Set("Content-Type", rec.ContentType)
	}
	w.Header().Set(HeaderReplayed, "true")
	w.WriteHeader(rec.Status)
	_, _ = w.Write(rec.Body)
}

func writeError(w http.ResponseWriter, status int, code, desc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + code + `","error_description":"` + desc + `"}`))
}

// recorder tees the response body so it can be stored after the handler returns.
type recorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.wroteHeader = true
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
