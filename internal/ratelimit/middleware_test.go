package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "gatehouse/pkg/domain"
	"gatehouse/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*Result, error) {
	return nil, errors.New("redis: connection refused")
}

func serve(h http.Handler, method string, account id.AccountID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/payments", nil)
	req = req.WithContext(requestcontext.WithPrincipal(req.Context(), account, "r@x.com", "RESIDENT"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPerAccount(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })

	t.Run("limits posts per account", func(t *testing.T) {
		h := PerAccount(NewMemory(), 2, time.Minute, logger)(ok)
		alice := id.AccountID(uuid.New())

		assert.Equal(t, http.StatusCreated, serve(h, http.MethodPost, alice).Code)
		second := serve(h, http.MethodPost, alice)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

		third := serve(h, http.MethodPost, alice)
		assert.Equal(t, http.StatusTooManyRequests, third.Code)
		assert.NotEmpty(t, third.Header().Get("Retry-After"))

		assert.Equal(t, http.StatusCreated, serve(h, http.MethodPost, id.AccountID(uuid.New())).Code)
	})

	t.Run("reads are not limited", func(t *testing.T) {
		h := PerAccount(NewMemory(), 1, time.Minute, logger)(ok)
		alice := id.AccountID(uuid.New())
		serve(h, http.MethodGet, alice)
		assert.Equal(t, http.StatusCreated, serve(h, http.MethodGet, alice).Code)
	})

	t.Run("store failure lets the request through", func(t *testing.T) {
		h := PerAccount(failingStore{}, 1, time.Minute, logger)(ok)
		assert.Equal(t, http.StatusCreated, serve(h, http.MethodPost, id.AccountID(uuid.New())).Code)
	})
}
