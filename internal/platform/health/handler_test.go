package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReadiness(t *testing.T) {
	t.Run("ready when all checks pass", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("database", func(context.Context) error { return nil })

		rec := serve(t, h, "/health/ready")
		require.Equal(t, http.StatusOK, rec.Code)
		var body ReadinessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "ready", body.Status)
		assert.Equal(t, "up", body.Checks["database"])
	})

	t.Run("not ready when one check fails", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("database", func(context.Context) error { return nil })
		h.RegisterCheck("redis", func(context.Context) error { return errors.New("connection refused") })

		rec := serve(t, h, "/health/ready")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body ReadinessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "up", body.Checks["database"])
		assert.Equal(t, "down: connection refused", body.Checks["redis"])
	})

	t.Run("slow checks time out", func(t *testing.T) {
		h := New("test")
		h.checkTimeout = 10 * time.Millisecond
		h.RegisterCheck("broker", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})

		rec := serve(t, h, "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestLivenessAndStatus(t *testing.T) {
	h := New("staging")

	rec := serve(t, h, "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var body StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "staging", body.Environment)
	assert.Equal(t, Version, body.Version)
}
